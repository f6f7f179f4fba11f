// Package analyzer flags "chance races": races whose boat-1 favorite looks
// unusually likely to lose. A race qualifies when both conditions hold:
// a weak boat-1 record (condition 1) and a slow start-timing profile for
// its motor (condition 2).
package analyzer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/models"
)

const (
	reasonNotMet         = "条件未達"
	reasonInsufficientST = "STデータ不足"
)

// STStats summarizes a motor's start-timing history.
type STStats struct {
	Avg      float64
	Std      float64
	Combined float64
	ProbSlow float64
	Samples  int
	Reason   string
}

// IsBoat1Weak evaluates condition 1: the boat-1 racer's national win rate is
// below the threshold, or their local form lags the national record by more
// than the allowed gap. The reason string joins every triggered clause.
func IsBoat1Weak(nationalRate, localRate float64, th config.Thresholds) (bool, string) {
	var reasons []string
	if nationalRate < th.NationalRateThreshold {
		reasons = append(reasons, fmt.Sprintf("全国勝率 %.2f < %g", nationalRate, th.NationalRateThreshold))
	}
	if diff := nationalRate - localRate; diff > th.RateDiffThreshold {
		reasons = append(reasons, fmt.Sprintf("全国-当地 = %.2f > %g", diff, th.RateDiffThreshold))
	}
	if len(reasons) == 0 {
		return false, reasonNotMet
	}
	return true, strings.Join(reasons, " / ")
}

// IsSTSlow evaluates condition 2 over a motor's ST history: mean plus sample
// standard deviation above the threshold. Needs at least two samples.
func IsSTSlow(history []float64, th config.Thresholds) (bool, STStats) {
	if len(history) < 2 {
		return false, STStats{Samples: len(history), Reason: reasonInsufficientST}
	}

	avg := stat.Mean(history, nil)
	std := math.Sqrt(stat.Variance(history, nil))
	combined := avg + std

	st := STStats{
		Avg:      round4(avg),
		Std:      round4(std),
		Combined: round4(combined),
		ProbSlow: round4(probSlow(history, th.STSlowThreshold)),
		Samples:  len(history),
	}

	if combined > th.STSlowThreshold {
		st.Reason = fmt.Sprintf("avg(%.4f) + std(%.4f) = %.4f > %g", avg, std, combined, th.STSlowThreshold)
		return true, st
	}
	st.Reason = reasonNotMet
	return false, st
}

// probSlow is P(ST > threshold) under a normal fit of the history. The fit
// uses the population deviation, matching a maximum-likelihood estimate.
func probSlow(history []float64, threshold float64) float64 {
	mu := stat.Mean(history, nil)
	var ss float64
	for _, v := range history {
		d := v - mu
		ss += d * d
	}
	sigma := math.Sqrt(ss / float64(len(history)))
	if sigma <= 0 {
		if mu > threshold {
			return 1
		}
		return 0
	}
	n := distuv.Normal{Mu: mu, Sigma: sigma}
	return n.Survival(threshold)
}

// EvaluateBoat1WinProbability estimates boat 1's win chance in [0.05, 0.95].
// National rate sets the base, local form adjusts it, a probably-slow start
// is penalized, and lane 1's structural advantage is added back.
func EvaluateBoat1WinProbability(nationalRate, localRate float64, st STStats) float64 {
	base := math.Min(nationalRate/13.0, 0.70)

	diff := nationalRate - localRate
	if diff > 0 {
		base -= diff * 0.03
	} else if diff < 0 {
		base += math.Abs(diff) * 0.02
	}

	if st.ProbSlow > 0.5 {
		base -= st.ProbSlow * 0.15
	}

	base += 0.15

	return math.Max(math.Min(base, 0.95), 0.05)
}

// IdentifyChanceRaces extracts the races where both conditions hold, sorted
// by estimated boat-1 win probability ascending (most vulnerable first).
func IdentifyChanceRaces(programs []models.RaceProgram, th config.Thresholds) []models.Race {
	var out []models.Race

	for _, prog := range programs {
		boat1 := findBoat1(prog.Entries)
		if boat1 == nil {
			continue
		}

		cond1, cond1Reason := IsBoat1Weak(boat1.NationalRate, boat1.LocalRate, th)

		var exhibitSTs []float64
		for _, rec := range prog.STInfo {
			if rec.Boat == 1 {
				exhibitSTs = append(exhibitSTs, rec.ExhibitST)
			}
		}
		// Exhibit STs stand in for missing motor history, but the full
		// statistical test needs at least two samples; a lone exhibit
		// time gets the quick threshold check instead.
		history := prog.MotorSTHistory
		if len(history) == 0 && len(exhibitSTs) >= 2 {
			history = exhibitSTs
		}

		var cond2 bool
		var st STStats
		switch {
		case len(history) >= 2:
			cond2, st = IsSTSlow(history, th)
		case len(exhibitSTs) > 0 && exhibitSTs[0] > th.STSlowThreshold:
			cond2 = true
			st = STStats{
				Avg:     exhibitSTs[0],
				Samples: 1,
				Reason:  fmt.Sprintf("展示ST %g > %g", exhibitSTs[0], th.STSlowThreshold),
			}
		default:
			cond2 = false
			st = STStats{Reason: reasonInsufficientST}
		}

		if !cond1 || !cond2 {
			continue
		}

		winProb := round4(EvaluateBoat1WinProbability(boat1.NationalRate, boat1.LocalRate, st))
		b1 := *boat1
		out = append(out, models.Race{
			Date:         prog.Date,
			Venue:        prog.Venue,
			VenueName:    prog.VenueName,
			RaceNo:       prog.RaceNo,
			Boat1WinProb: &winProb,
			Boat1:        &b1,
			Cond1:        models.Condition{Triggered: true, Reason: cond1Reason},
			Cond2:        models.Condition{Triggered: true, Reason: st.Reason},
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Boat1WinProb < *out[j].Boat1WinProb
	})
	return out
}

func findBoat1(entries []models.Entrant) *models.Entrant {
	for i := range entries {
		if entries[i].Boat == 1 {
			return &entries[i]
		}
	}
	return nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
