package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// UserRepositoryPG reads identity records owned by the external auth
// provider. The core never writes this table.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new user repo.
func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

// GetByID fetches a user by UUID.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	row := r.sql.QueryRow(ctx, sqlinline.QSelectUserByID, id)
	if err := row.Scan(&u.ID, &u.Email, &u.EmailVerified, &u.Name, &u.Picture, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
