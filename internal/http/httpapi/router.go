package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter assembles the HTTP surface. The country lookup may be nil when
// no GeoIP database is configured.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Locale(cfg.DefaultLocale, lookup),
		middleware.Auth(cfg.AuthSecret),
	)

	writeLimit := middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)

	r.Get("/healthz", app.Health)
	r.Get("/openapi.json", app.OpenAPIJSON)
	r.Get("/docs", app.OpenAPIDocs)

	r.Route("/drives", func(r chi.Router) {
		r.Get("/", app.DrivesList)
		r.Get("/{id}", app.DrivesGet)
		r.With(writeLimit).Post("/", app.DrivesCreate)
	})

	r.Route("/donations", func(r chi.Router) {
		r.Get("/", app.DonationsList)
		r.Get("/{id}", app.DonationsGet)
		r.With(writeLimit).Post("/", app.DonationsCreate)
	})

	r.Get("/me/donations", app.MyDonations)
	r.Get("/stats/summary", app.StatsSummary)

	return r
}
