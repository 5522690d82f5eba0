package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"server/internal/domain"
	"server/internal/middleware"
)

type driveCreateRequest struct {
	Title        string          `json:"title" validate:"required"`
	Organization string          `json:"organization" validate:"required"`
	Description  string          `json:"description" validate:"required"`
	ImageURL     string          `json:"imageUrl" validate:"required"`
	TargetAmount *float64        `json:"targetAmount"`
	Status       string          `json:"status"`
	EndDate      *string         `json:"endDate"`
	Gallery      json.RawMessage `json:"gallery"`
}

// Per-field messages preserved from the public contract.
var driveFieldMessages = map[string]string{
	"Title":        "Title is required",
	"Organization": "Organization is required",
	"Description":  "Description is required",
	"ImageURL":     "Image URL is required",
	"TargetAmount": "Target amount must be a positive number",
	"EndDate":      "Invalid end date",
}

// DrivesList serves GET /drives with status filtering, substring search and
// clamped pagination. An empty result is a 200 with an empty list.
func (a *App) DrivesList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.DriveFilter{
		Status: strings.TrimSpace(q.Get("status")),
		Search: strings.TrimSpace(q.Get("q")),
		Page:   pageFromQuery(q),
	}

	drives, err := a.Drives.List(r.Context(), filter)
	if err != nil {
		a.domainError(w, r, err, "Drive not found")
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	items := make([]driveDTO, 0, len(drives))
	for i := range drives {
		items = append(items, toDriveDTO(&drives[i], locale))
	}
	a.json(w, http.StatusOK, map[string]any{"drives": items})
}

// DrivesGet serves GET /drives/{id}.
func (a *App) DrivesGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "Invalid drive ID")
		return
	}

	drive, err := a.Drives.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, r, err, "Drive not found")
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, map[string]any{"drive": toDriveDTO(drive, locale)})
}

// DrivesCreate serves POST /drives. Every rejection names the offending
// field with the contract's message.
func (a *App) DrivesCreate(w http.ResponseWriter, r *http.Request) {
	var req driveCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, driveDecodeMessage(err))
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Organization = strings.TrimSpace(req.Organization)
	req.Description = strings.TrimSpace(req.Description)
	req.ImageURL = strings.TrimSpace(req.ImageURL)

	if err := a.Validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			if msg, ok := driveFieldMessages[fieldErrs[0].Field()]; ok {
				a.error(w, http.StatusBadRequest, msg)
				return
			}
		}
		a.error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	var endDate *time.Time
	if req.EndDate != nil && strings.TrimSpace(*req.EndDate) != "" {
		parsed, err := parseEndDate(strings.TrimSpace(*req.EndDate))
		if err != nil {
			a.error(w, http.StatusBadRequest, "Invalid end date")
			return
		}
		endDate = &parsed
	}

	var gallery []string
	if len(req.Gallery) > 0 && string(req.Gallery) != "null" {
		if err := json.Unmarshal(req.Gallery, &gallery); err != nil {
			a.error(w, http.StatusBadRequest, "Gallery must be an array of strings")
			return
		}
	}

	drive, err := domain.NewDrive(domain.NewDriveInput{
		Title:        req.Title,
		Organization: req.Organization,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		TargetAmount: req.TargetAmount,
		Status:       req.Status,
		EndDate:      endDate,
		Gallery:      gallery,
	})
	if err != nil {
		a.domainError(w, r, err, "Drive not found")
		return
	}

	saved, err := a.Drives.Create(r.Context(), drive)
	if err != nil {
		a.domainError(w, r, err, "Drive not found")
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusCreated, toDriveDTO(saved, locale))
}

// driveDecodeMessage keeps wrong-typed fields on the same per-field message
// the contract uses for missing ones.
func driveDecodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "title":
			return driveFieldMessages["Title"]
		case "organization":
			return driveFieldMessages["Organization"]
		case "description":
			return driveFieldMessages["Description"]
		case "imageUrl":
			return driveFieldMessages["ImageURL"]
		case "targetAmount":
			return driveFieldMessages["TargetAmount"]
		case "endDate":
			return driveFieldMessages["EndDate"]
		}
	}
	return "Invalid JSON payload"
}

func parseEndDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unparseable end date")
}
