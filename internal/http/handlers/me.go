package handlers

import (
	"net/http"

	"server/internal/domain"
	"server/internal/middleware"
)

// MyDonations serves GET /me/donations: the caller's history joined with
// drive snapshots, plus the grand total over the entire ledger rather than
// the returned page.
func (a *App) MyDonations(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "Please sign in")
		return
	}

	filter := domain.DonationFilter{
		UserID:       &userID,
		IncludeDrive: true,
		Page:         pageFromQuery(r.URL.Query()),
	}

	donations, err := a.Donations.List(r.Context(), filter)
	if err != nil {
		a.domainError(w, r, err, "Donation not found")
		return
	}

	total, err := a.Donations.SumByUser(r.Context(), userID)
	if err != nil {
		a.domainError(w, r, err, "Donation not found")
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

	a.json(w, http.StatusOK, map[string]any{
		"donations":      items,
		"totalDonated":   total,
		"formattedTotal": domain.FormatAmount(locale, total),
	})
}
