package handlers

import (
	"net/http"
	"testing"
)

func TestDrivesCreateValidation(t *testing.T) {
	app, _ := newTestApp()
	router := newTestRouter(app)

	base := map[string]any{
		"title":        "School Supplies",
		"organization": "Barangay Youth Council",
		"description":  "Notebooks and pencils for the coming school year",
		"imageUrl":     "https://example.com/supplies.jpg",
	}

	cases := []struct {
		name    string
		mutate  func(map[string]any)
		message string
	}{
		{"missing title", func(m map[string]any) { delete(m, "title") }, "Title is required"},
		{"blank title", func(m map[string]any) { m["title"] = "   " }, "Title is required"},
		{"missing organization", func(m map[string]any) { delete(m, "organization") }, "Organization is required"},
		{"missing description", func(m map[string]any) { delete(m, "description") }, "Description is required"},
		{"missing image", func(m map[string]any) { delete(m, "imageUrl") }, "Image URL is required"},
		{"zero target", func(m map[string]any) { m["targetAmount"] = 0 }, "Target amount must be a positive number"},
		{"negative target", func(m map[string]any) { m["targetAmount"] = -100 }, "Target amount must be a positive number"},
		{"target wrong type", func(m map[string]any) { m["targetAmount"] = "lots" }, "Target amount must be a positive number"},
		{"bad end date", func(m map[string]any) { m["endDate"] = "sometime soon" }, "Invalid end date"},
		{"gallery not strings", func(m map[string]any) { m["gallery"] = []int{1, 2} }, "Gallery must be an array of strings"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := map[string]any{}
			for k, v := range base {
				payload[k] = v
			}
			tc.mutate(payload)

			rec := doRequest(t, router, http.MethodPost, "/drives", "", payload)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := errorMessage(t, rec); got != tc.message {
				t.Fatalf("error = %q, want %q", got, tc.message)
			}
		})
	}
}

func TestDrivesCreateRejectsMalformedJSON(t *testing.T) {
	app, _ := newTestApp()
	router := newTestRouter(app)

	rec := doRequest(t, router, http.MethodPost, "/drives", "", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := errorMessage(t, rec); got != "Invalid JSON payload" {
		t.Fatalf("error = %q", got)
	}
}

func TestDrivesCreateDefaults(t *testing.T) {
	app, store := newTestApp()
	router := newTestRouter(app)

	rec := doRequest(t, router, http.MethodPost, "/drives", "", map[string]any{
		"title":        "Typhoon Relief",
		"organization": "Red Cross",
		"description":  "Emergency shelter kits",
		"imageUrl":     "https://example.com/relief.jpg",
		"targetAmount": 6000,
		"endDate":      "2026-12-31",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created driveDTO
	decodeBody(t, rec, &created)
	if created.ID == 0 {
		t.Fatal("expected assigned ID")
	}
	if created.Status != "active" {
		t.Fatalf("status = %q, want active", created.Status)
	}
	if created.CurrentAmount != 0 {
		t.Fatalf("currentAmount = %v, want 0", created.CurrentAmount)
	}
	if created.Progress == nil || *created.Progress != 0 {
		t.Fatalf("progress = %v, want 0", created.Progress)
	}
	if created.EndDate == nil {
		t.Fatal("expected end date")
	}
	if got := store.driveAmount(created.ID); got != 0 {
		t.Fatalf("stored amount = %v", got)
	}
}

func TestDrivesGet(t *testing.T) {
	app, store := newTestApp()
	router := newTestRouter(app)
	drive := seedDrive(t, store, "Community Pantry", floatPtr(5000))

	t.Run("found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/drives/1", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var body struct {
			Drive driveDTO `json:"drive"`
		}
		decodeBody(t, rec, &body)
		if body.Drive.ID != drive.ID || body.Drive.Title != "Community Pantry" {
			t.Fatalf("unexpected drive: %+v", body.Drive)
		}
	})

	t.Run("missing", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/drives/999", "", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if got := errorMessage(t, rec); got != "Drive not found" {
			t.Fatalf("error = %q", got)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/drives/abc", "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := errorMessage(t, rec); got != "Invalid drive ID" {
			t.Fatalf("error = %q", got)
		}
	})
}

func TestDrivesListPagination(t *testing.T) {
	app, store := newTestApp()
	router := newTestRouter(app)
	for i := 0; i < 3; i++ {
		seedDrive(t, store, "Drive", nil)
	}

	rec := doRequest(t, router, http.MethodGet, "/drives?skip=-5&take=101", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	got := store.lastDriveFilter.Page
	if got.Skip != 0 {
		t.Fatalf("skip = %d, want 0 after clamping", got.Skip)
	}
	if got.Take != 100 {
		t.Fatalf("take = %d, want 100 after clamping", got.Take)
	}

	rec = doRequest(t, router, http.MethodGet, "/drives", "", nil)
	if page := store.lastDriveFilter.Page; page.Take != 10 || page.Skip != 0 {
		t.Fatalf("default page = %+v", page)
	}

	var body struct {
		Drives []driveDTO `json:"drives"`
	}
	decodeBody(t, rec, &body)
	if len(body.Drives) != 3 {
		t.Fatalf("len = %d, want 3", len(body.Drives))
	}
}

func TestDrivesListFilters(t *testing.T) {
	app, store := newTestApp()
	router := newTestRouter(app)
	seedDrive(t, store, "Flood Relief Cebu", nil)
	seedDrive(t, store, "Library Books", nil)

	rec := doRequest(t, router, http.MethodGet, "/drives?q=flood", "", nil)
	var body struct {
		Drives []driveDTO `json:"drives"`
	}
	decodeBody(t, rec, &body)
	if len(body.Drives) != 1 || body.Drives[0].Title != "Flood Relief Cebu" {
		t.Fatalf("search result: %+v", body.Drives)
	}

	rec = doRequest(t, router, http.MethodGet, "/drives?status=closed", "", nil)
	body.Drives = nil
	decodeBody(t, rec, &body)
	if len(body.Drives) != 0 {
		t.Fatalf("expected no closed drives, got %d", len(body.Drives))
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("empty list status = %d, want 200", rec.Code)
	}
}

func TestDrivesListDoesNotMutate(t *testing.T) {
	app, store := newTestApp()
	router := newTestRouter(app)
	drive := seedDrive(t, store, "Readonly", floatPtr(1000))

	for i := 0; i < 5; i++ {
		doRequest(t, router, http.MethodGet, "/drives", "", nil)
		doRequest(t, router, http.MethodGet, "/drives/1", "", nil)
	}
	if got := store.driveAmount(drive.ID); got != 0 {
		t.Fatalf("amount changed to %v after reads", got)
	}
	if n := store.donationCount(); n != 0 {
		t.Fatalf("reads appended %d donations", n)
	}
}
