package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
	"server/internal/middleware"
)

// App carries the handler dependencies. Repositories are interfaces so tests
// can swap in fakes without a database.
type App struct {
	Drives    domain.DriveRepository
	Donations domain.DonationRepository
	Users     domain.UserRepository
	Stats     domain.StatsRepository
	Logger    zerolog.Logger
	Validate  *validator.Validate

	// AllowAnonymousDonations relaxes the access gate on donation writes.
	// The donation entity keeps identity optional either way.
	AllowAnonymousDonations bool
}

// NewApp wires the Postgres-backed repositories onto a shared pool.
func NewApp(pool *pgxpool.Pool, logger zerolog.Logger, allowAnonymous bool) *App {
	runner := infra.NewSQLRunner(pool, logger)
	return &App{
		Drives:                  repo.NewDriveRepository(runner),
		Donations:               repo.NewDonationRepository(pool, logger),
		Users:                   repo.NewUserRepository(runner),
		Stats:                   repo.NewStatsRepository(runner),
		Logger:                  logger,
		Validate:                validator.New(),
		AllowAnonymousDonations: allowAnonymous,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]string{"error": message})
}

// domainError maps component-level failures onto the HTTP contract:
// validation 400, missing entity 404 with the given message, anything else a
// generic 500 with no internal detail leaked.
func (a *App) domainError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	if ve, ok := domain.AsValidation(err); ok {
		a.error(w, http.StatusBadRequest, ve.Message)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, notFoundMessage)
		return
	}
	a.Logger.Error().Err(err).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("path", r.URL.Path).
		Msg("request failed")
	a.error(w, http.StatusInternalServerError, "Internal server error")
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
