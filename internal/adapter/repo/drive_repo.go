package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// DriveRepositoryPG implements domain.DriveRepository backed by PostgreSQL.
type DriveRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDriveRepository creates a new drive repo.
func NewDriveRepository(sql infra.SQLExecutor) *DriveRepositoryPG {
	return &DriveRepositoryPG{sql: sql}
}

// Create persists a validated drive; the database assigns the sequential ID
// and timestamps.
func (r *DriveRepositoryPG) Create(ctx context.Context, drive *domain.Drive) (*domain.Drive, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDrive,
		drive.Title,
		drive.Organization,
		drive.Description,
		drive.ImageURL,
		drive.TargetAmount,
		drive.Status,
		drive.EndDate,
		drive.Gallery,
	)
	return scanDrive(row)
}

// GetByID fetches a drive by its sequential ID.
func (r *DriveRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Drive, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectDriveByID, id)
	return scanDrive(row)
}

// List returns drives matching the filter, newest first. An empty result is
// an empty slice, not an error.
func (r *DriveRepositoryPG) List(ctx context.Context, filter domain.DriveFilter) ([]domain.Drive, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDrives,
		filter.Status,
		filter.Search,
		filter.Page.Take,
		filter.Page.Skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Drive{}
	for rows.Next() {
		var d domain.Drive
		if err := scanDriveFields(rows, &d); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// IncrementAmount adds delta to the running total as a single UPDATE, so
// concurrent increments serialize on the row instead of racing a read and a
// write.
func (r *DriveRepositoryPG) IncrementAmount(ctx context.Context, id int64, delta float64) (*domain.Drive, error) {
	if err := domain.ValidateAmount(delta); err != nil {
		return nil, err
	}
	row := r.sql.QueryRow(ctx, sqlinline.QIncrementDriveAmount, id, delta)
	return scanDrive(row)
}

func scanDrive(row pgx.Row) (*domain.Drive, error) {
	var d domain.Drive
	if err := scanDriveFields(row, &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func scanDriveFields(row pgx.Row, d *domain.Drive) error {
	return row.Scan(
		&d.ID,
		&d.Title,
		&d.Organization,
		&d.Description,
		&d.ImageURL,
		&d.CurrentAmount,
		&d.TargetAmount,
		&d.Status,
		&d.EndDate,
		&d.Gallery,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

var _ domain.DriveRepository = (*DriveRepositoryPG)(nil)
