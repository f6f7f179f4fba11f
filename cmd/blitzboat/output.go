package main

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"blitzboat/backend-go/internal/models"
)

var yen = message.NewPrinter(language.Japanese)

func printRaces(races []models.Race) {
	if len(races) == 0 {
		fmt.Println("本日のチャンスレースはありません")
		return
	}
	for _, r := range races {
		fmt.Printf("📍 %s %dR\n", r.VenueName, r.RaceNo)
		if r.Boat1 != nil {
			fmt.Printf("  1号艇 %s (全国%.2f / 当地%.2f)\n", r.Boat1.Name, r.Boat1.NationalRate, r.Boat1.LocalRate)
		}
		if r.Boat1WinProb != nil {
			fmt.Printf("  1号艇勝率予測: %.0f%%\n", *r.Boat1WinProb*100)
		}
		if r.Cond1.Reason != "" {
			fmt.Printf("  ・%s\n", r.Cond1.Reason)
		}
		if r.Cond2.Reason != "" {
			fmt.Printf("  ・%s\n", r.Cond2.Reason)
		}
		printTickets(r.Tickets)
		fmt.Println()
	}
}

func printTickets(tickets []models.Ticket) {
	if len(tickets) == 0 {
		fmt.Println("  推奨舟券なし")
		return
	}
	fmt.Println("  推奨舟券:")
	total := 0
	for i, t := range tickets {
		fmt.Printf("  %2d. %-7s %8s (%.1f%% / 累積%.1f%%) %s\n",
			i+1, t.Trifecta, yen.Sprintf("¥%d", t.Amount), t.Prob*100, t.CumProb*100, t.Kimarite)
		total += t.Amount
	}
	fmt.Printf("  合計 %s\n", yen.Sprintf("¥%d", total))
}

func printVenueRanking(jcd string, venueStats map[string]models.VenueStats) {
	vs, ok := venueStats[jcd]
	if !ok {
		fmt.Printf("%s: データなし\n", jcd)
		return
	}
	fmt.Printf("=== %s (%s): %d races, %d after filtering ===\n", vs.Name, jcd, vs.TotalRaces, vs.FilteredRaces)
	if len(vs.TopPatterns) == 0 {
		fmt.Println("  ランキングデータなし")
		return
	}
	for i, p := range vs.TopPatterns {
		fmt.Printf("  %2d. %-7s %6.2f%% (累積 %5.1f%%) x%d %s\n",
			i+1, p.Trifecta, p.Prob*100, p.CumProb*100, p.Count, p.Kimarite)
	}
	fmt.Println()
}
