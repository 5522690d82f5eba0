package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"server/internal/domain"
)

// fakeStore implements the drive and donation repositories over in-memory
// maps. Record mutates the ledger and the drive total under one mutex,
// honoring the same all-or-nothing contract the SQL implementation gives.
type fakeStore struct {
	mu           sync.Mutex
	nextDriveID  int64
	drives       map[int64]*domain.Drive
	donations    []domain.Donation
	deletedUsers map[string]bool

	lastDriveFilter    domain.DriveFilter
	lastDonationFilter domain.DonationFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		drives:       map[int64]*domain.Drive{},
		deletedUsers: map[string]bool{},
	}
}

func (s *fakeStore) Create(_ context.Context, drive *domain.Drive) (*domain.Drive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextDriveID++
	now := time.Now().UTC()
	saved := *drive
	saved.ID = s.nextDriveID
	saved.CreatedAt = now
	saved.UpdatedAt = now
	s.drives[saved.ID] = &saved
	copied := saved
	return &copied, nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*domain.Drive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	drive, ok := s.drives[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *drive
	return &copied, nil
}

func (s *fakeStore) List(_ context.Context, filter domain.DriveFilter) ([]domain.Drive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDriveFilter = filter

	var items []domain.Drive
	for _, drive := range s.drives {
		if filter.Status != "" && drive.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(drive.Title), needle) &&
				!strings.Contains(strings.ToLower(drive.Organization), needle) {
				continue
			}
		}
		items = append(items, *drive)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return paginate(items, filter.Page), nil
}

func (s *fakeStore) IncrementAmount(_ context.Context, id int64, delta float64) (*domain.Drive, error) {
	if err := domain.ValidateAmount(delta); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	drive, ok := s.drives[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	drive.CurrentAmount += delta
	drive.UpdatedAt = time.Now().UTC()
	copied := *drive
	return &copied, nil
}

func (s *fakeStore) Record(_ context.Context, donation *domain.Donation) (*domain.Donation, error) {
	if donation.DriveID == nil {
		return nil, domain.ErrNotFound
	}
	if err := domain.ValidateAmount(donation.Amount); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	drive, ok := s.drives[*donation.DriveID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	// Mirrors the user foreign key: a dangling donor reference fails the
	// insert without touching the drive total.
	if donation.UserID != nil && s.deletedUsers[*donation.UserID] {
		return nil, domain.ErrUnauthenticated
	}
	now := time.Now().UTC()
	saved := *donation
	saved.CreatedAt = now
	saved.UpdatedAt = now
	s.donations = append(s.donations, saved)
	drive.CurrentAmount += saved.Amount
	drive.UpdatedAt = now
	copied := saved
	return &copied, nil
}

func (s *fakeStore) ListDonations(_ context.Context, filter domain.DonationFilter) ([]domain.DonationWithDrive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDonationFilter = filter

	var items []domain.DonationWithDrive
	for _, donation := range s.donations {
		if filter.DriveID != nil && (donation.DriveID == nil || *donation.DriveID != *filter.DriveID) {
			continue
		}
		if filter.UserID != nil && (donation.UserID == nil || *donation.UserID != *filter.UserID) {
			continue
		}
		item := domain.DonationWithDrive{Donation: donation}
		if filter.IncludeDrive && donation.DriveID != nil {
			if drive, ok := s.drives[*donation.DriveID]; ok {
				copied := *drive
				item.Drive = &copied
			}
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].DateDonated.After(items[j].DateDonated) })
	return paginateDonations(items, filter.Page), nil
}

func (s *fakeStore) GetDonationByID(_ context.Context, id string) (*domain.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, donation := range s.donations {
		if donation.ID == id {
			copied := donation
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeStore) SumByUser(_ context.Context, userID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, donation := range s.donations {
		if donation.UserID != nil && *donation.UserID == userID {
			total += donation.Amount
		}
	}
	return total, nil
}

func (s *fakeStore) donationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.donations)
}

func (s *fakeStore) driveAmount(id int64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if drive, ok := s.drives[id]; ok {
		return drive.CurrentAmount
	}
	return -1
}

func (s *fakeStore) removeDrive(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drives, id)
}

func (s *fakeStore) removeUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletedUsers[id] = true
}

func paginate(items []domain.Drive, page domain.Page) []domain.Drive {
	if page.Skip >= len(items) {
		return []domain.Drive{}
	}
	items = items[page.Skip:]
	if page.Take < len(items) {
		items = items[:page.Take]
	}
	return items
}

func paginateDonations(items []domain.DonationWithDrive, page domain.Page) []domain.DonationWithDrive {
	if page.Skip >= len(items) {
		return []domain.DonationWithDrive{}
	}
	items = items[page.Skip:]
	if page.Take < len(items) {
		items = items[:page.Take]
	}
	return items
}

// donationRepoAdapter renames fakeStore's donation methods onto the
// DonationRepository shape; List and GetByID collide with the drive side.
type donationRepoAdapter struct {
	store *fakeStore
}

func (a donationRepoAdapter) Record(ctx context.Context, d *domain.Donation) (*domain.Donation, error) {
	return a.store.Record(ctx, d)
}

func (a donationRepoAdapter) List(ctx context.Context, f domain.DonationFilter) ([]domain.DonationWithDrive, error) {
	return a.store.ListDonations(ctx, f)
}

func (a donationRepoAdapter) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	return a.store.GetDonationByID(ctx, id)
}

func (a donationRepoAdapter) SumByUser(ctx context.Context, userID string) (float64, error) {
	return a.store.SumByUser(ctx, userID)
}

type fakeUsers struct {
	users map[string]*domain.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

type fakeStats struct {
	summary domain.StatsSummary
	err     error
}

func (f *fakeStats) Summary(context.Context) (*domain.StatsSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := f.summary
	return &copied, nil
}
