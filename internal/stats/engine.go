// Package stats builds per-venue outcome-pattern rankings from stored race
// results. 差し wins are excluded outright, every other result must match
// the allowed technique for its winning boat, and the ranked list is cut at
// the cumulative-probability ceiling.
package stats

import (
	"math"
	"sort"

	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/models"
)

type venueAccumulator struct {
	total    int
	filtered int
	counts   map[string]int
	kimarite map[string]string
}

// BuildVenueStats aggregates results into the ranking each venue's panel
// shows. TopPatterns holds the full cumulative-filtered list; snapshot
// writers truncate it for publication.
func BuildVenueStats(results []models.RaceResult, th config.Thresholds) map[string]models.VenueStats {
	acc := make(map[string]*venueAccumulator)

	for _, r := range results {
		if r.Venue == "" {
			continue
		}
		a, ok := acc[r.Venue]
		if !ok {
			a = &venueAccumulator{
				counts:   make(map[string]int),
				kimarite: make(map[string]string),
			}
			acc[r.Venue] = a
		}
		a.total++

		if r.Kimarite == "" || r.Trifecta == "" || r.WinningBoat == 0 {
			continue
		}
		if r.Kimarite == "差し" {
			continue
		}
		if !th.KimariteAllowed(r.WinningBoat, r.Kimarite) {
			continue
		}

		a.filtered++
		a.counts[r.Trifecta]++
		a.kimarite[r.Trifecta] = r.Kimarite
	}

	out := make(map[string]models.VenueStats, len(acc))
	for jcd, a := range acc {
		out[jcd] = models.VenueStats{
			Name:          th.VenueName(jcd),
			TotalRaces:    a.total,
			FilteredRaces: a.filtered,
			TopPatterns:   rankPatterns(a, th.CumulativeProbCutoff),
		}
	}
	return out
}

func rankPatterns(a *venueAccumulator, cutoff float64) []models.Pattern {
	if a.filtered == 0 {
		return []models.Pattern{}
	}

	patterns := make([]models.Pattern, 0, len(a.counts))
	for trifecta, count := range a.counts {
		patterns = append(patterns, models.Pattern{
			Trifecta: trifecta,
			Count:    count,
			Prob:     round6(float64(count) / float64(a.filtered)),
			Kimarite: a.kimarite[trifecta],
		})
	}
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Prob != patterns[j].Prob {
			return patterns[i].Prob > patterns[j].Prob
		}
		return patterns[i].Trifecta < patterns[j].Trifecta
	})

	cum := 0.0
	ranked := make([]models.Pattern, 0, len(patterns))
	for _, p := range patterns {
		cum += p.Prob
		p.CumProb = round6(cum)
		ranked = append(ranked, p)
		if cum >= cutoff {
			break
		}
	}
	return ranked
}

// VenueRanking returns one venue's ranked patterns, empty when unknown.
func VenueRanking(stats map[string]models.VenueStats, jcd string) []models.Pattern {
	if vs, ok := stats[jcd]; ok {
		return vs.TopPatterns
	}
	return nil
}

// TopN trims a ranked pattern list for snapshot publication.
func TopN(patterns []models.Pattern, n int) []models.Pattern {
	if n <= 0 || len(patterns) <= n {
		return patterns
	}
	return patterns[:n]
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
