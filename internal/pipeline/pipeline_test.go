package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/models"
)

func newTestPipeline(t *testing.T, feedURL string) *Pipeline {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		DataAPIBaseURL: feedURL,
		CollectDelay:   time.Millisecond,
		RequestTimeout: 2 * time.Second,
		DBPath:         filepath.Join(dir, "results.db"),
		OutputDir:      filepath.Join(dir, "daily"),
		ThresholdsPath: filepath.Join(dir, "missing.yaml"),
	}
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	p.now = func() time.Time {
		return time.Date(2026, 2, 18, 9, 0, 0, 0, time.Local)
	}
	return p
}

func feedHandler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/results/", func(w http.ResponseWriter, r *http.Request) {
		date := filepath.Base(r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"results": []models.RaceResult{
				{Venue: "01", Date: date, RaceNo: 8, Trifecta: "2-3-4", WinningBoat: 2, Kimarite: "まくり"},
				{Venue: "01", Date: date, RaceNo: 9, Trifecta: "3-2-4", WinningBoat: 3, Kimarite: "まくり差し"},
			},
		})
	})
	mux.HandleFunc("/v2/venues/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"venues": []models.VenueMeeting{{Jcd: "01", Name: "桐生", Races: 1}},
		})
	})
	mux.HandleFunc("/v2/programs/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.RaceProgram{
			VenueName:      "桐生",
			Entries:        []models.Entrant{{Boat: 1, Name: "佐藤翔太", NationalRate: 3.82, LocalRate: 2.14}},
			MotorSTHistory: []float64{0.19, 0.21, 0.20, 0.22},
		})
	})
	mux.HandleFunc("/v2/previews/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"st_info": []models.STRecord{{Boat: 1, ExhibitST: 0.2}},
		})
	})
	return mux
}

func TestCollectSkipsStoredDays(t *testing.T) {
	srv := httptest.NewServer(feedHandler(t))
	defer srv.Close()
	p := newTestPipeline(t, srv.URL)

	ticks := 0
	added, err := p.Collect(context.Background(), 3, func() { ticks++ })
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if added != 6 {
		t.Fatalf("expected 6 results over 3 days, got %d", added)
	}
	if ticks != 3 {
		t.Fatalf("expected 3 progress ticks, got %d", ticks)
	}

	added, err = p.Collect(context.Background(), 3, nil)
	if err != nil {
		t.Fatalf("Collect (again): %v", err)
	}
	if added != 0 {
		t.Fatalf("re-collect must skip stored days, added %d", added)
	}

	total, days, err := p.ResultCounts()
	if err != nil || total != 6 || days != 3 {
		t.Fatalf("counts total=%d days=%d err=%v", total, days, err)
	}
}

func TestDailyRunProducesSnapshot(t *testing.T) {
	srv := httptest.NewServer(feedHandler(t))
	defer srv.Close()
	p := newTestPipeline(t, srv.URL)

	ctx := context.Background()
	if _, err := p.Collect(ctx, 2, nil); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	venueStats, err := p.RebuildStats()
	if err != nil {
		t.Fatalf("RebuildStats: %v", err)
	}
	if venueStats["01"].TotalRaces != 4 {
		t.Fatalf("venue stats off: %+v", venueStats["01"])
	}

	races, totalRaces, err := p.Analyze(ctx, "20260218")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(races) != 1 || totalRaces != 1 {
		t.Fatalf("expected 1 chance race of 1, got %d of %d", len(races), totalRaces)
	}

	p.AttachTickets(races, venueStats)
	if len(races[0].Tickets) == 0 {
		t.Fatal("tickets not attached")
	}
	sum := 0
	for _, tk := range races[0].Tickets {
		sum += tk.Amount
	}
	if sum != p.th.TotalBudget {
		t.Fatalf("ticket total %d, want %d", sum, p.th.TotalBudget)
	}

	snap := p.BuildSnapshot("20260218", races, venueStats, totalRaces)
	path, err := p.WriteSnapshot(snap)
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if filepath.Base(path) != "daily_20260218.json" {
		t.Fatalf("unexpected snapshot path %s", path)
	}

	latest, err := os.ReadFile(filepath.Join(p.cfg.OutputDir, "latest.json"))
	if err != nil {
		t.Fatalf("latest.json missing: %v", err)
	}
	var decoded models.Snapshot
	if err := json.Unmarshal(latest, &decoded); err != nil {
		t.Fatalf("latest.json malformed: %v", err)
	}
	if decoded.Date != "20260218" || len(decoded.ChanceRaces) != 1 {
		t.Fatalf("unexpected snapshot %+v", decoded)
	}
	if decoded.UpdatedAt == "" {
		t.Fatal("snapshot missing updated_at")
	}
}

func TestBuildSnapshotEmptyDay(t *testing.T) {
	srv := httptest.NewServer(feedHandler(t))
	defer srv.Close()
	p := newTestPipeline(t, srv.URL)

	snap := p.BuildSnapshot("20260218", nil, map[string]models.VenueStats{}, 0)
	if snap.ChanceRaces == nil {
		t.Fatal("chance_races must marshal as an empty array, not null")
	}
}
