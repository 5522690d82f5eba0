package domain

import (
	"math"
	"strings"
	"time"
)

// DriveStatusActive is the default status assigned to new drives.
const DriveStatusActive = "active"

// Drive represents a fundraising campaign with a running total and an
// optional goal. CurrentAmount is mutated exclusively through
// DriveRepository.IncrementAmount; it never decreases.
type Drive struct {
	ID            int64
	Title         string
	Organization  string
	Description   string
	ImageURL      string
	CurrentAmount float64
	TargetAmount  *float64
	Status        string
	EndDate       *time.Time
	Gallery       []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewDriveInput carries the caller-supplied fields for drive creation.
// TargetAmount and EndDate are tagged optionals: nil means absent, which is
// distinct from zero.
type NewDriveInput struct {
	Title        string
	Organization string
	Description  string
	ImageURL     string
	TargetAmount *float64
	Status       string
	EndDate      *time.Time
	Gallery      []string
}

// NewDrive validates the input and builds a drive ready for persistence.
// The store assigns ID and timestamps; CurrentAmount always starts at zero.
func NewDrive(in NewDriveInput) (*Drive, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationErr("title", "Title is required")
	}
	organization := strings.TrimSpace(in.Organization)
	if organization == "" {
		return nil, validationErr("organization", "Organization is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, validationErr("description", "Description is required")
	}
	imageURL := strings.TrimSpace(in.ImageURL)
	if imageURL == "" {
		return nil, validationErr("imageUrl", "Image URL is required")
	}

	if in.TargetAmount != nil {
		t := *in.TargetAmount
		if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
			return nil, validationErr("targetAmount", "Target amount must be a positive number")
		}
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = DriveStatusActive
	}

	var gallery []string
	for _, item := range in.Gallery {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			gallery = append(gallery, trimmed)
		}
	}

	return &Drive{
		Title:         title,
		Organization:  organization,
		Description:   description,
		ImageURL:      imageURL,
		CurrentAmount: 0,
		TargetAmount:  in.TargetAmount,
		Status:        status,
		EndDate:       in.EndDate,
		Gallery:       gallery,
	}, nil
}

// Progress returns the percentage of the target reached, capped at 100.
// Drives without a target have no defined progress and return nil; the
// result is never negative and never a division artifact.
func (d *Drive) Progress() *int {
	if d.TargetAmount == nil || *d.TargetAmount <= 0 {
		return nil
	}
	p := int(math.Round(d.CurrentAmount / *d.TargetAmount * 100))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return &p
}
