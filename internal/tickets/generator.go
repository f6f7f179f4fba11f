// Package tickets turns a venue's ranked outcome patterns into a budgeted
// trifecta bet list. Stakes follow each pattern's probability weight,
// rounded to the wager unit, with every ticket funded at least one unit.
package tickets

import (
	"math"

	"blitzboat/backend-go/internal/models"
)

// Generate splits budget across the patterns in proportion to probability.
// Rounding drift lands on the top ticket first, then the remainder after
// re-flooring goes to the last ticket so the total matches the budget
// exactly. Returns nil when no stake can be placed.
func Generate(patterns []models.Pattern, budget, unit int) []models.Ticket {
	if len(patterns) == 0 || budget < unit || unit <= 0 {
		return nil
	}

	var probSum float64
	for _, p := range patterns {
		probSum += p.Prob
	}
	if probSum <= 0 {
		return nil
	}

	out := make([]models.Ticket, len(patterns))
	total := 0
	for i, p := range patterns {
		amount := int(math.Round(float64(budget)*p.Prob/probSum/float64(unit))) * unit
		if amount < unit {
			amount = unit
		}
		out[i] = models.Ticket{
			Trifecta: p.Trifecta,
			Prob:     p.Prob,
			CumProb:  p.CumProb,
			Kimarite: p.Kimarite,
			Amount:   amount,
		}
		total += amount
	}

	if diff := budget - total; diff != 0 {
		adjusted := out[0].Amount + diff
		if adjusted < unit {
			adjusted = unit
		}
		total += adjusted - out[0].Amount
		out[0].Amount = adjusted
	}
	if diff := budget - total; diff != 0 {
		last := len(out) - 1
		adjusted := out[last].Amount + diff
		if adjusted < unit {
			adjusted = unit
		}
		out[last].Amount = adjusted
	}
	return out
}

// Total sums the stakes on a ticket list.
func Total(tickets []models.Ticket) int {
	sum := 0
	for _, t := range tickets {
		sum += t.Amount
	}
	return sum
}
