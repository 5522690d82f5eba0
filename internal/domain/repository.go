package domain

import "context"

// Pagination bounds shared by every list operation.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a clamped pagination window.
type Page struct {
	Skip int
	Take int
}

// ClampPage floors Skip at 0 and clamps Take to [1, MaxPageSize].
func ClampPage(skip, take int) Page {
	if skip < 0 {
		skip = 0
	}
	if take < 1 {
		take = 1
	}
	if take > MaxPageSize {
		take = MaxPageSize
	}
	return Page{Skip: skip, Take: take}
}

// DriveFilter narrows drive listings. Status is an exact match; Search
// matches case-insensitively against title or organization.
type DriveFilter struct {
	Status string
	Search string
	Page   Page
}

// DonationFilter narrows donation listings.
type DonationFilter struct {
	DriveID      *int64
	UserID       *string
	IncludeDrive bool
	Page         Page
}

// DriveRepository persists fundraising drives.
type DriveRepository interface {
	Create(ctx context.Context, drive *Drive) (*Drive, error)
	GetByID(ctx context.Context, id int64) (*Drive, error)
	List(ctx context.Context, filter DriveFilter) ([]Drive, error)
	// IncrementAmount atomically adds delta (> 0) to the drive's running
	// total at the store level, so concurrent donations cannot lose an
	// update. Returns ErrNotFound if the drive vanished.
	IncrementAmount(ctx context.Context, id int64, delta float64) (*Drive, error)
}

// DonationRepository is the append-only ledger of contributions.
type DonationRepository interface {
	// Record inserts the donation and applies the aggregation increment to
	// the owning drive as one atomic unit of work. Returns ErrNotFound when
	// the drive does not exist; on any failure no partial state survives.
	Record(ctx context.Context, donation *Donation) (*Donation, error)
	List(ctx context.Context, filter DonationFilter) ([]DonationWithDrive, error)
	GetByID(ctx context.Context, id string) (*Donation, error)
	// SumByUser returns the grand total donated by the user across the
	// entire ledger, not a single page.
	SumByUser(ctx context.Context, userID string) (float64, error)
}

// UserRepository reads identity records owned by the auth provider.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// StatsSummary aggregates platform-wide totals for display.
type StatsSummary struct {
	TotalDrives      int64
	TotalDonations   int64
	TotalRaised      float64
	DonationsLast24h int64
}

// StatsRepository serves the read-only summary counters.
type StatsRepository interface {
	Summary(ctx context.Context) (*StatsSummary, error)
}
