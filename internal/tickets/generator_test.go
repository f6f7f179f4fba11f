package tickets

import (
	"testing"

	"blitzboat/backend-go/internal/models"
)

func patterns(probs ...float64) []models.Pattern {
	out := make([]models.Pattern, len(probs))
	cum := 0.0
	for i, p := range probs {
		cum += p
		out[i] = models.Pattern{Trifecta: "2-3-4", Prob: p, CumProb: cum, Kimarite: "まくり"}
	}
	return out
}

func TestGenerateProportionalAllocation(t *testing.T) {
	ps := patterns(0.082, 0.065, 0.055, 0.048, 0.042, 0.038, 0.032, 0.028)
	got := Generate(ps, 30000, 100)
	want := []int{6300, 5000, 4200, 3700, 3200, 2900, 2500, 2200}

	if len(got) != len(want) {
		t.Fatalf("expected %d tickets, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Amount != w {
			t.Fatalf("ticket %d: amount %d, want %d", i, got[i].Amount, w)
		}
	}
	if Total(got) != 30000 {
		t.Fatalf("total %d, want 30000", Total(got))
	}
}

func TestGenerateTotalsMatchBudget(t *testing.T) {
	cases := [][]float64{
		{0.5, 0.3, 0.2},
		{0.082, 0.065, 0.055, 0.048},
		{0.9, 0.001, 0.001},
		{0.25, 0.25, 0.25, 0.25},
	}
	for _, probs := range cases {
		got := Generate(patterns(probs...), 30000, 100)
		if Total(got) != 30000 {
			t.Fatalf("probs %v: total %d", probs, Total(got))
		}
		for i, tk := range got {
			if tk.Amount < 100 || tk.Amount%100 != 0 {
				t.Fatalf("probs %v ticket %d: stake %d breaks unit rule", probs, i, tk.Amount)
			}
		}
	}
}

func TestGenerateCarriesPatternFields(t *testing.T) {
	ps := []models.Pattern{{Trifecta: "3-2-4", Prob: 0.1, CumProb: 0.1, Kimarite: "まくり差し"}}
	got := Generate(ps, 1000, 100)
	if len(got) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(got))
	}
	tk := got[0]
	if tk.Trifecta != "3-2-4" || tk.Kimarite != "まくり差し" || tk.Prob != 0.1 || tk.CumProb != 0.1 {
		t.Fatalf("pattern fields not carried: %+v", tk)
	}
	if tk.Amount != 1000 {
		t.Fatalf("single ticket must take the whole budget, got %d", tk.Amount)
	}
}

func TestGenerateDegenerateInputs(t *testing.T) {
	if got := Generate(nil, 30000, 100); got != nil {
		t.Fatal("no patterns must yield no tickets")
	}
	if got := Generate(patterns(0.1), 50, 100); got != nil {
		t.Fatal("budget below one unit must yield no tickets")
	}
	if got := Generate([]models.Pattern{{Trifecta: "2-3-4", Prob: 0}}, 30000, 100); got != nil {
		t.Fatal("zero probability mass must yield no tickets")
	}
}
