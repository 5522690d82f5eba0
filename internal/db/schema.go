package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full DDL for the core tables. Drives carry a sequential
// surrogate key; donations carry a random UUID key so records cannot be
// enumerated. The users table is owned by the external identity provider;
// it is created here only so the foreign key has somewhere to point in a
// fresh database.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	email text NOT NULL UNIQUE,
	email_verified boolean NOT NULL DEFAULT false,
	name text,
	picture text,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS drives (
	id bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	title text NOT NULL,
	organization text NOT NULL,
	description text NOT NULL,
	image_url text NOT NULL,
	current_amount double precision NOT NULL DEFAULT 0 CHECK (current_amount >= 0),
	target_amount double precision CHECK (target_amount > 0),
	status text NOT NULL DEFAULT 'active',
	end_date timestamptz,
	gallery text[],
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS donations (
	id uuid PRIMARY KEY,
	drive_id bigint REFERENCES drives(id),
	user_id uuid REFERENCES users(id),
	amount double precision NOT NULL CHECK (amount > 0),
	date_donated timestamptz NOT NULL DEFAULT now(),
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_drives_created_at ON drives (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_drives_status ON drives (status)`,
	`CREATE INDEX IF NOT EXISTS idx_donations_drive_id ON donations (drive_id)`,
	`CREATE INDEX IF NOT EXISTS idx_donations_user_id ON donations (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_donations_date_donated ON donations (date_donated DESC)`,
}

// Migrate applies the schema statements in order. Every statement is
// idempotent, so re-running against an existing database is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
