package stats

import (
	"testing"

	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/models"
)

func result(venue, trifecta string, boat int, kimarite string) models.RaceResult {
	return models.RaceResult{
		Venue: venue, Date: "20260217", RaceNo: 1,
		Trifecta: trifecta, WinningBoat: boat, Kimarite: kimarite,
	}
}

func TestBuildVenueStatsFiltering(t *testing.T) {
	th := config.DefaultThresholds()
	results := []models.RaceResult{
		result("01", "2-3-4", 2, "まくり"),
		result("01", "2-3-4", 2, "まくり"),
		result("01", "3-2-4", 3, "まくり差し"),
		result("01", "2-1-3", 2, "差し"),    // sashi excluded
		result("01", "1-2-3", 1, "逃げ"),    // boat 1 never allowed
		result("01", "2-4-3", 2, "まくり差し"), // makurizashi not allowed for boat 2
		result("01", "", 0, ""),           // incomplete result
	}

	stats := BuildVenueStats(results, th)
	vs, ok := stats["01"]
	if !ok {
		t.Fatal("missing venue 01")
	}
	if vs.Name != "桐生" {
		t.Fatalf("venue name lookup failed: %s", vs.Name)
	}
	if vs.TotalRaces != 7 {
		t.Fatalf("total races %d", vs.TotalRaces)
	}
	if vs.FilteredRaces != 3 {
		t.Fatalf("filtered races %d, want 3", vs.FilteredRaces)
	}

	if len(vs.TopPatterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(vs.TopPatterns))
	}
	top := vs.TopPatterns[0]
	if top.Trifecta != "2-3-4" || top.Count != 2 {
		t.Fatalf("unexpected top pattern %+v", top)
	}
	if top.Prob != round6(2.0/3.0) {
		t.Fatalf("top prob %v", top.Prob)
	}
	if top.CumProb != top.Prob {
		t.Fatalf("first cumulative must equal first prob, got %v", top.CumProb)
	}
	second := vs.TopPatterns[1]
	if second.CumProb < top.CumProb {
		t.Fatal("cumulative probability must be non-decreasing")
	}
}

func TestBuildVenueStatsCumulativeCutoff(t *testing.T) {
	th := config.DefaultThresholds()
	th.CumulativeProbCutoff = 0.5

	// Four equally likely patterns; the 0.5 cutoff keeps exactly two.
	results := []models.RaceResult{
		result("12", "2-3-4", 2, "まくり"),
		result("12", "3-2-4", 3, "まくり"),
		result("12", "4-2-3", 4, "まくり"),
		result("12", "5-2-3", 5, "まくり"),
	}
	stats := BuildVenueStats(results, th)
	if got := len(stats["12"].TopPatterns); got != 2 {
		t.Fatalf("cutoff should keep 2 patterns, got %d", got)
	}
}

func TestBuildVenueStatsUnknownVenueName(t *testing.T) {
	th := config.DefaultThresholds()
	stats := BuildVenueStats([]models.RaceResult{result("99", "2-3-4", 2, "まくり")}, th)
	if stats["99"].Name != "99" {
		t.Fatalf("unknown venue must fall back to its code, got %s", stats["99"].Name)
	}
}

func TestVenueRankingAndTopN(t *testing.T) {
	stats := map[string]models.VenueStats{
		"01": {TopPatterns: []models.Pattern{{Trifecta: "2-3-4"}, {Trifecta: "3-2-4"}, {Trifecta: "4-2-3"}}},
	}
	if got := VenueRanking(stats, "99"); got != nil {
		t.Fatal("unknown venue must return nil")
	}
	ranked := VenueRanking(stats, "01")
	if len(TopN(ranked, 2)) != 2 {
		t.Fatal("TopN must trim")
	}
	if len(TopN(ranked, 10)) != 3 {
		t.Fatal("TopN must not pad")
	}
}
