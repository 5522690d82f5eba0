package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/middleware"
)

const testAuthSecret = "handler-test-secret"

func newTestApp() (*App, *fakeStore) {
	store := newFakeStore()
	app := &App{
		Drives:    store,
		Donations: donationRepoAdapter{store},
		Users:     &fakeUsers{users: map[string]*domain.User{}},
		Stats:     &fakeStats{},
		Logger:    zerolog.Nop(),
		Validate:  validator.New(),
	}
	return app, store
}

// newTestRouter mounts the handlers with the same route shape and the auth
// and locale middleware the production router uses.
func newTestRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Locale("en", nil), middleware.Auth(testAuthSecret))

	r.Get("/healthz", app.Health)
	r.Get("/drives", app.DrivesList)
	r.Get("/drives/{id}", app.DrivesGet)
	r.Post("/drives", app.DrivesCreate)
	r.Get("/donations", app.DonationsList)
	r.Get("/donations/{id}", app.DonationsGet)
	r.Post("/donations", app.DonationsCreate)
	r.Get("/me/donations", app.MyDonations)
	r.Get("/stats/summary", app.StatsSummary)

	return r
}

func testToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := middleware.SignSessionToken(testAuthSecret, userID, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reader = bytes.NewBufferString(raw)
		} else {
			buf, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			reader = bytes.NewBuffer(buf)
		}
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, rec, &body)
	return body["error"]
}

func seedDrive(t *testing.T, store *fakeStore, title string, target *float64) *domain.Drive {
	t.Helper()
	drive, err := domain.NewDrive(domain.NewDriveInput{
		Title:        title,
		Organization: "Test Org",
		Description:  "A test drive",
		ImageURL:     "https://example.com/cover.jpg",
		TargetAmount: target,
	})
	if err != nil {
		t.Fatalf("new drive: %v", err)
	}
	saved, err := store.Create(context.Background(), drive)
	if err != nil {
		t.Fatalf("seed drive: %v", err)
	}
	return saved
}

func floatPtr(v float64) *float64 { return &v }
