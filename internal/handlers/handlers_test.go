package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blitzboat/backend-go/internal/auth"
	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/dashboard"
	"blitzboat/backend-go/internal/models"
)

func newTestAPI(t *testing.T) (*API, *httptest.Server) {
	t.Helper()
	today := time.Now().Format("20060102")
	prob := 0.22
	snap := models.Snapshot{
		Date:       today,
		UpdatedAt:  "2026-02-18T09:00:00+09:00",
		TotalRaces: 86,
		ChanceRaces: []models.Race{{
			Venue: "01", VenueName: "桐生", RaceNo: 8,
			Boat1WinProb: &prob,
			Boat1:        &models.Entrant{Boat: 1, Name: "佐藤翔太", NationalRate: 3.82, LocalRate: 2.14},
			Tickets:      []models.Ticket{{Trifecta: "2-3-4", Prob: 0.082, CumProb: 0.082, Amount: 6300, Kimarite: "まくり"}},
		}},
		VenueStatsSummary: map[string]models.VenueStats{
			"01": {Name: "桐生", TotalRaces: 120, FilteredRaces: 78, TopPatterns: []models.Pattern{
				{Trifecta: "2-3-4", Prob: 0.082, CumProb: 0.082, Count: 6, Kimarite: "まくり"},
			}},
		},
	}
	body, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == fmt.Sprintf("/daily_%s.json", today) || r.URL.Path == "/latest.json" {
			w.Write(body)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Load()
	cfg.SnapshotBaseURL = srv.URL
	cfg.RequestTimeout = 2 * time.Second
	return New(cfg, nil), srv
}

func sessionCookieFrom(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("session cookie not issued")
	return nil
}

func unlock(t *testing.T, a *API, cookie *http.Cookie, password string) (unlockResponse, *http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session/unlock",
		strings.NewReader(fmt.Sprintf(`{"password":%q}`, password)))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.Unlock(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unlock status %d", rec.Code)
	}
	var resp unlockResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unlock body: %v", err)
	}
	if cookie == nil {
		cookie = sessionCookieFrom(t, rec.Result())
	}
	return resp, cookie
}

func TestDashboardLockedByDefault(t *testing.T) {
	a, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	a.Dashboard(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("locked dashboard status %d, want 401", rec.Code)
	}
	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || !body["locked"] {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	sessionCookieFrom(t, rec.Result())
}

func TestUnlockWrongPassword(t *testing.T) {
	a, _ := newTestAPI(t)

	resp, cookie := unlock(t, a, nil, "wrong")
	if resp.Ok || resp.Unlocked {
		t.Fatalf("wrong password must not unlock: %+v", resp)
	}
	if resp.ErrorMessage != "パスワードが違います" {
		t.Fatalf("unexpected error message %q", resp.ErrorMessage)
	}

	// The session status reflects the transient message too.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	a.Session(rec, req)
	var status sessionStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("session body: %v", err)
	}
	if status.Unlocked || status.ErrorMessage == "" {
		t.Fatalf("unexpected session status %+v", status)
	}
}

func TestUnlockAndLoadDashboard(t *testing.T) {
	a, _ := newTestAPI(t)
	password := auth.DerivedPassword(time.Now().Format("20060102"), a.cfg.AuthSecret)

	resp, cookie := unlock(t, a, nil, password)
	if !resp.Ok || !resp.Unlocked || resp.ErrorMessage != "" {
		t.Fatalf("correct password must unlock: %+v", resp)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	a.Dashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status %d", rec.Code)
	}
	var view dashboard.DashboardView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("dashboard body: %v", err)
	}
	if view.Summary.ChanceCount != 1 || view.Summary.TotalRaces != 86 {
		t.Fatalf("unexpected summary %+v", view.Summary)
	}
	if len(view.Races.Cards) != 1 || view.Races.Cards[0].VenueName != "桐生" {
		t.Fatalf("unexpected cards %+v", view.Races.Cards)
	}
}

func TestUnlockDoesNotLeakAcrossSessions(t *testing.T) {
	a, _ := newTestAPI(t)
	password := auth.DerivedPassword(time.Now().Format("20060102"), a.cfg.AuthSecret)
	if resp, _ := unlock(t, a, nil, password); !resp.Unlocked {
		t.Fatalf("unlock failed: %+v", resp)
	}

	// A fresh session (no cookie) is still locked.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	a.Dashboard(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("fresh session status %d, want 401", rec.Code)
	}
}

func TestRaceSelection(t *testing.T) {
	a, _ := newTestAPI(t)
	password := auth.DerivedPassword(time.Now().Format("20060102"), a.cfg.AuthSecret)
	_, cookie := unlock(t, a, nil, password)

	get := func(target string) raceDetailResponse {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		a.Race(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("race status %d", rec.Code)
		}
		var resp raceDetailResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("race body: %v", err)
		}
		return resp
	}

	resp := get("/api/v1/race?index=0")
	if !resp.Selected || resp.Race == nil || resp.Race.VenueName != "桐生" {
		t.Fatalf("unexpected selection %+v", resp)
	}
	if resp.Race.Tickets.Rows[0].Amount != "¥6,300" {
		t.Fatalf("unexpected ticket row %+v", resp.Race.Tickets.Rows[0])
	}

	for _, target := range []string{"/api/v1/race?index=5", "/api/v1/race?index=-1", "/api/v1/race"} {
		if resp := get(target); resp.Selected || resp.Race != nil {
			t.Fatalf("%s must not select: %+v", target, resp)
		}
	}
}

func TestHealth(t *testing.T) {
	a, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	a.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("health status %d", rec.Code)
	}
	var resp models.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("health body: %v", err)
	}
	if !resp.Ok || resp.Service != "backend-go" {
		t.Fatalf("unexpected health response %+v", resp)
	}
	if st, ok := resp.DepsStatus["snapshot_upstream"]; !ok || !st.Ok {
		t.Fatalf("snapshot upstream should be healthy: %+v", resp.DepsStatus)
	}
}

func TestUnlockRejectsBadRequests(t *testing.T) {
	a, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/unlock", nil)
	rec := httptest.NewRecorder()
	a.Unlock(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET unlock status %d, want 405", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/session/unlock", strings.NewReader("not json"))
	rec = httptest.NewRecorder()
	a.Unlock(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed unlock status %d, want 400", rec.Code)
	}
}
