package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/middleware"
)

type donationCreateRequest struct {
	DriveID json.RawMessage `json:"driveId"`
	Amount  json.RawMessage `json:"amount"`
}

// DonationsCreate serves POST /donations: the access gate resolves the
// caller first, then the validated donation and its aggregation increment
// land as one atomic unit in the ledger.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" && !a.AllowAnonymousDonations {
		a.error(w, http.StatusUnauthorized, "Please sign in to donate")
		return
	}

	var req donationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if len(req.DriveID) == 0 || string(req.DriveID) == "null" {
		a.error(w, http.StatusBadRequest, "Drive ID is required")
		return
	}
	driveID, ok := coerceDriveID(req.DriveID)
	if !ok {
		a.error(w, http.StatusBadRequest, "Invalid drive ID")
		return
	}

	var amount float64
	if len(req.Amount) == 0 || string(req.Amount) == "null" ||
		json.Unmarshal(req.Amount, &amount) != nil {
		a.error(w, http.StatusBadRequest, "Amount must be a positive number")
		return
	}
	if err := domain.ValidateAmount(amount); err != nil {
		a.domainError(w, r, err, "Drive not found")
		return
	}

	if _, err := a.Drives.GetByID(r.Context(), driveID); err != nil {
		a.domainError(w, r, err, "Drive not found")
		return
	}

	var donor *string
	if userID != "" {
		donor = &userID
	}
	donation, err := domain.NewDonation(driveID, amount, donor)
	if err != nil {
		a.domainError(w, r, err, "Drive not found")
		return
	}

	saved, err := a.Donations.Record(r.Context(), donation)
	if err != nil {
		// A session can outlive its account; the ledger insert rolls back
		// and the caller is asked to sign in again.
		if errors.Is(err, domain.ErrUnauthenticated) {
			a.error(w, http.StatusUnauthorized, "Please sign in to donate")
			return
		}
		// The drive may have vanished between the existence check and the
		// transaction; the ledger insert rolled back with it.
		a.domainError(w, r, err, "Drive not found")
		return
	}

	a.json(w, http.StatusCreated, toDonationDTO(saved))
}

// DonationsList serves GET /donations. The response is a bare array; with
// includeDrive each entry carries its drive snapshot, null when the drive is
// gone.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.DonationFilter{
		IncludeDrive: q.Get("includeDrive") == "true",
		Page:         pageFromQuery(q),
	}

	if raw := strings.TrimSpace(q.Get("driveId")); raw != "" {
		driveID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			a.error(w, http.StatusBadRequest, "Invalid driveId")
			return
		}
		filter.DriveID = &driveID
	}
	if raw := strings.TrimSpace(q.Get("userId")); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			a.error(w, http.StatusBadRequest, "Invalid userId")
			return
		}
		normalized := parsed.String()
		filter.UserID = &normalized
	}

	donations, err := a.Donations.List(r.Context(), filter)
	if err != nil {
		a.domainError(w, r, err, "Donation not found")
		return
	}

	if !filter.IncludeDrive {
		items := make([]donationDTO, 0, len(donations))
		for i := range donations {
			items = append(items, toDonationDTO(&donations[i].Donation))
		}
		a.json(w, http.StatusOK, items)
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	items := make([]donationWithDriveDTO, 0, len(donations))
	for i := range donations {
		item := donationWithDriveDTO{donationDTO: toDonationDTO(&donations[i].Donation)}
		if donations[i].Drive != nil {
			dto := toDriveDTO(donations[i].Drive, locale)
			item.Drive = &dto
		}
		items = append(items, item)
	}
	a.json(w, http.StatusOK, items)
}

// DonationsGet serves GET /donations/{id}. A malformed ID is a validation
// failure before any lookup happens.
func (a *App) DonationsGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseDonationID(chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, r, err, "Donation not found")
		return
	}

	donation, err := a.Donations.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, r, err, "Donation not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{"donation": toDonationDTO(donation)})
}

// coerceDriveID accepts the drive reference as a JSON number or a numeric
// string, mirroring what clients historically sent.
func coerceDriveID(raw json.RawMessage) (int64, bool) {
	var asNumber int64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber, true
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		id, err := strconv.ParseInt(strings.TrimSpace(asString), 10, 64)
		if err == nil {
			return id, true
		}
	}
	return 0, false
}
