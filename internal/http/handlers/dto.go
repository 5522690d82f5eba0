package handlers

import (
	"time"

	"server/internal/domain"
)

// Wire shapes kept field-for-field compatible with the original frontend
// client. progress and the formatted strings are derived, presentation-only
// additions; stored amounts stay raw numerics.
type driveDTO struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Organization    string     `json:"organization"`
	Description     string     `json:"description"`
	CurrentAmount   float64    `json:"currentAmount"`
	TargetAmount    *float64   `json:"targetAmount,omitempty"`
	Status          string     `json:"status"`
	ImageURL        string     `json:"imageUrl"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Gallery         []string   `json:"gallery,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Progress        *int       `json:"progress,omitempty"`
	FormattedAmount string     `json:"formattedAmount,omitempty"`
}

type donationDTO struct {
	ID          string    `json:"id"`
	DriveID     *int64    `json:"driveId"`
	UserID      *string   `json:"userId"`
	Amount      float64   `json:"amount"`
	DateDonated time.Time `json:"dateDonated"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// donationWithDriveDTO always serializes the drive key, as null for orphaned
// donations, so enriched listings never silently drop records.
type donationWithDriveDTO struct {
	donationDTO
	Drive *driveDTO `json:"drive"`
}

func toDriveDTO(d *domain.Drive, locale string) driveDTO {
	return driveDTO{
		ID:              d.ID,
		Title:           d.Title,
		Organization:    d.Organization,
		Description:     d.Description,
		CurrentAmount:   d.CurrentAmount,
		TargetAmount:    d.TargetAmount,
		Status:          d.Status,
		ImageURL:        d.ImageURL,
		EndDate:         d.EndDate,
		Gallery:         d.Gallery,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		Progress:        d.Progress(),
		FormattedAmount: domain.FormatAmount(locale, d.CurrentAmount),
	}
}

func toDonationDTO(d *domain.Donation) donationDTO {
	return donationDTO{
		ID:          d.ID,
		DriveID:     d.DriveID,
		UserID:      d.UserID,
		Amount:      d.Amount,
		DateDonated: d.DateDonated,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
