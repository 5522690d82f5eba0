package handlers

import (
	"net/http"

	"server/internal/domain"
	"server/internal/middleware"
)

// StatsSummary serves GET /stats/summary, the public impact counters the
// landing page shows.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Stats.Summary(r.Context())
	if err != nil {
		a.domainError(w, r, err, "Stats not found")
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, map[string]any{
		"total_drives":           summary.TotalDrives,
		"total_donations":        summary.TotalDonations,
		"total_raised":           summary.TotalRaised,
		"donations_last_24h":     summary.DonationsLast24h,
		"formatted_total_raised": domain.FormatAmount(locale, summary.TotalRaised),
	})
}
