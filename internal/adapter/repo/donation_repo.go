package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

const pgErrForeignKeyViolation = "23503"

// Postgres default constraint name for the user foreign key on donations;
// the other 23503 source on the insert is the drive foreign key.
const fkDonationsUser = "donations_user_id_fkey"

// DonationRepositoryPG implements the append-only ledger on PostgreSQL. It
// holds the pool directly because Record needs a transaction spanning the
// ledger insert and the drive total update.
type DonationRepositoryPG struct {
	pool   *pgxpool.Pool
	sql    infra.SQLExecutor
	logger zerolog.Logger
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool, logger zerolog.Logger) *DonationRepositoryPG {
	return &DonationRepositoryPG{
		pool:   pool,
		sql:    infra.NewSQLRunner(pool, logger),
		logger: logger,
	}
}

// Record inserts the donation and increments the owning drive's running
// total in one transaction. Either both land or neither does: a cancelled
// context or a failed increment rolls the insert back, so no donation row
// ever exists without its aggregation effect.
func (r *DonationRepositoryPG) Record(ctx context.Context, donation *domain.Donation) (*domain.Donation, error) {
	if donation.DriveID == nil {
		return nil, domain.ErrNotFound
	}
	if err := domain.ValidateAmount(donation.Amount); err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin donation tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	run := infra.NewTxRunner(tx, r.logger)

	var userID string
	if donation.UserID != nil {
		userID = *donation.UserID
	}

	var saved domain.Donation
	row := run.QueryRow(ctx, sqlinline.QInsertDonation,
		donation.ID,
		*donation.DriveID,
		userID,
		donation.Amount,
		donation.DateDonated,
	)
	if err := scanDonationFields(row, &saved); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation {
			// Two foreign keys can raise 23503 here; a dangling user_id
			// means the session outlived its account, not a missing drive.
			if pgErr.ConstraintName == fkDonationsUser {
				return nil, domain.ErrUnauthenticated
			}
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("insert donation: %w", err)
	}

	tag, err := run.Exec(ctx, sqlinline.QIncrementDriveAmount, *donation.DriveID, donation.Amount)
	if err != nil {
		return nil, fmt.Errorf("apply donation to drive total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Drive vanished between the insert and the update; roll everything back.
		return nil, domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit donation tx: %w", err)
	}
	return &saved, nil
}

// List returns donations matching the filter, most recent first. The drive
// snapshot comes from a join; orphaned donations carry a nil drive.
func (r *DonationRepositoryPG) List(ctx context.Context, filter domain.DonationFilter) ([]domain.DonationWithDrive, error) {
	var driveID int64
	if filter.DriveID != nil {
		driveID = *filter.DriveID
	}
	var userID string
	if filter.UserID != nil {
		userID = *filter.UserID
	}

	rows, err := r.sql.Query(ctx, sqlinline.QListDonations,
		driveID,
		userID,
		filter.Page.Take,
		filter.Page.Skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.DonationWithDrive{}
	for rows.Next() {
		var item domain.DonationWithDrive
		var drive joinedDrive
		if err := rows.Scan(
			&item.ID,
			&item.DriveID,
			&item.UserID,
			&item.Amount,
			&item.DateDonated,
			&item.CreatedAt,
			&item.UpdatedAt,
			&drive.id,
			&drive.title,
			&drive.organization,
			&drive.description,
			&drive.imageURL,
			&drive.currentAmount,
			&drive.targetAmount,
			&drive.status,
			&drive.endDate,
			&drive.gallery,
			&drive.createdAt,
			&drive.updatedAt,
		); err != nil {
			return nil, err
		}
		if filter.IncludeDrive {
			item.Drive = drive.toDomain()
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID fetches a donation by its opaque ID. Callers validate the ID
// format first; here an unknown ID is simply not found.
func (r *DonationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	var d domain.Donation
	row := r.sql.QueryRow(ctx, sqlinline.QSelectDonationByID, id)
	if err := scanDonationFields(row, &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// SumByUser totals every donation the user ever made, across the whole
// ledger rather than one page.
func (r *DonationRepositoryPG) SumByUser(ctx context.Context, userID string) (float64, error) {
	var total float64
	row := r.sql.QueryRow(ctx, sqlinline.QSumDonationsByUser, userID)
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func scanDonationFields(row pgx.Row, d *domain.Donation) error {
	return row.Scan(
		&d.ID,
		&d.DriveID,
		&d.UserID,
		&d.Amount,
		&d.DateDonated,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

// joinedDrive holds the nullable columns of a left-joined drive row.
type joinedDrive struct {
	id            *int64
	title         *string
	organization  *string
	description   *string
	imageURL      *string
	currentAmount *float64
	targetAmount  *float64
	status        *string
	endDate       *time.Time
	gallery       []string
	createdAt     *time.Time
	updatedAt     *time.Time
}

func (j *joinedDrive) toDomain() *domain.Drive {
	if j.id == nil {
		return nil
	}
	return &domain.Drive{
		ID:            *j.id,
		Title:         *j.title,
		Organization:  *j.organization,
		Description:   *j.description,
		ImageURL:      *j.imageURL,
		CurrentAmount: *j.currentAmount,
		TargetAmount:  j.targetAmount,
		Status:        *j.status,
		EndDate:       j.endDate,
		Gallery:       j.gallery,
		CreatedAt:     *j.createdAt,
		UpdatedAt:     *j.updatedAt,
	}
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
