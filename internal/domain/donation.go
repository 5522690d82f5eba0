package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Donation is one immutable contribution event linked to a drive. IDs are
// random UUIDs so donation records cannot be enumerated; this asymmetry with
// the sequential drive IDs is deliberate.
type Donation struct {
	ID          string
	DriveID     *int64
	UserID      *string
	Amount      float64
	DateDonated time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DonationWithDrive pairs a donation with a snapshot of its owning drive.
// Drive is nil when the drive no longer exists; the donation itself is
// still reported.
type DonationWithDrive struct {
	Donation
	Drive *Drive
}

// NewDonation validates the amount and builds a donation with a fresh
// unguessable ID and DateDonated set to now. Drive existence is the
// repository's concern.
func NewDonation(driveID int64, amount float64, userID *string) (*Donation, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Donation{
		ID:          uuid.NewString(),
		DriveID:     &driveID,
		UserID:      userID,
		Amount:      amount,
		DateDonated: now,
	}, nil
}

// ValidateAmount rejects zero, negative, and non-finite donation amounts.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return validationErr("amount", "Amount must be a positive number")
	}
	return nil
}

// ParseDonationID checks the ledger identity format before any lookup, so a
// malformed ID surfaces as a ValidationError rather than a NotFound.
func ParseDonationID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", validationErr("id", "Invalid donation ID")
	}
	return parsed.String(), nil
}
