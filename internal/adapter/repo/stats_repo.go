package repo

import (
	"context"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// StatsRepositoryPG serves platform-wide totals for the public summary.
type StatsRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewStatsRepository creates a new stats repo.
func NewStatsRepository(sql infra.SQLExecutor) *StatsRepositoryPG {
	return &StatsRepositoryPG{sql: sql}
}

// Summary returns current counters. Eventual visibility is fine here; the
// numbers are display-only.
func (r *StatsRepositoryPG) Summary(ctx context.Context) (*domain.StatsSummary, error) {
	var s domain.StatsSummary
	row := r.sql.QueryRow(ctx, sqlinline.QStatsSummary)
	if err := row.Scan(&s.TotalDrives, &s.TotalDonations, &s.TotalRaised, &s.DonationsLast24h); err != nil {
		return nil, err
	}
	return &s, nil
}

var _ domain.StatsRepository = (*StatsRepositoryPG)(nil)
