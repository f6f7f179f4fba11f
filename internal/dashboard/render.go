package dashboard

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"blitzboat/backend-go/internal/models"
)

const (
	noSelectionLabel   = "会場を選択"
	noDataMessage      = "データなし"
	noRankingMessage   = "ランキングデータなし"
	noTicketsMessage   = "推奨舟券なし"
	noChanceMessage    = "本日のチャンスレースはありません"
	unknownEntrantName = "不明"
)

// yen groups digits per locale rules, e.g. ¥6,300.
var yen = message.NewPrinter(language.Japanese)

// BuildDashboard derives the complete dashboard state from a snapshot.
func BuildDashboard(snap models.Snapshot) DashboardView {
	return DashboardView{
		Summary: buildSummary(snap),
		Alert:   buildAlert(snap),
		Races:   BuildRaceCards(snap.ChanceRaces),
		Venues:  BuildVenueOptions(snap.VenueStatsSummary),
	}
}

func buildSummary(snap models.Snapshot) SummaryView {
	tickets := 0
	for _, r := range snap.ChanceRaces {
		tickets += len(r.Tickets)
	}
	lowest := "-"
	if len(snap.ChanceRaces) > 0 {
		lowest = pctInt(lowestWinProb(snap.ChanceRaces))
	}
	return SummaryView{
		ChanceCount:  len(snap.ChanceRaces),
		TotalRaces:   snap.TotalRaces,
		LowestWinPct: lowest,
		TicketCount:  tickets,
	}
}

func buildAlert(snap models.Snapshot) *AlertView {
	if len(snap.ChanceRaces) == 0 {
		return nil
	}
	return &AlertView{
		Text: fmt.Sprintf("🔥 Today's flagged races: %d detected! Lowest boat-1 win rate: %s",
			len(snap.ChanceRaces), pctInt(lowestWinProb(snap.ChanceRaces))),
	}
}

// lowestWinProb treats an absent boat1_win_prob as 1.0 so that a race with
// missing data never wins the minimum. Callers must not invoke this on an
// empty slice.
func lowestWinProb(races []models.Race) float64 {
	lowest := 1.0
	for _, r := range races {
		p := 1.0
		if r.Boat1WinProb != nil {
			p = *r.Boat1WinProb
		}
		if p < lowest {
			lowest = p
		}
	}
	return lowest
}

// BuildRaceCards renders the chance-race list in snapshot order.
func BuildRaceCards(races []models.Race) RaceListView {
	if len(races) == 0 {
		return RaceListView{Empty: true, EmptyMessage: noChanceMessage}
	}
	cards := make([]RaceCardView, 0, len(races))
	for i, r := range races {
		winProb := 0.0
		if r.Boat1WinProb != nil {
			winProb = *r.Boat1WinProb
		}
		name := unknownEntrantName
		national, local := 0.0, 0.0
		if r.Boat1 != nil {
			if r.Boat1.Name != "" {
				name = r.Boat1.Name
			}
			national = r.Boat1.NationalRate
			local = r.Boat1.LocalRate
		}
		cards = append(cards, RaceCardView{
			Index:        i,
			VenueName:    r.VenueName,
			RaceNo:       r.RaceNo,
			WinPct:       pctInt(winProb),
			EntrantName:  name,
			NationalRate: fmt.Sprintf("%.2f", national),
			LocalRate:    fmt.Sprintf("%.2f", local),
			Cond1Reason:  r.Cond1.Reason,
			Cond2Reason:  r.Cond2.Reason,
		})
	}
	return RaceListView{Cards: cards}
}

// SelectRace resolves a card click by position. Out-of-range indexes and
// empty snapshots are a deliberate no-op: ok is false and the caller changes
// nothing.
func SelectRace(snap models.Snapshot, index int) (RaceDetailView, bool) {
	if index < 0 || index >= len(snap.ChanceRaces) {
		return RaceDetailView{}, false
	}
	r := snap.ChanceRaces[index]
	return RaceDetailView{
		Venue:     r.Venue,
		VenueName: r.VenueName,
		RaceNo:    r.RaceNo,
		Tickets:   BuildTickets(r.Tickets),
		Ranking:   BuildRanking(snap, r.Venue),
	}, true
}

// BuildVenueOptions lists the snapshot's venues sorted by code, behind a
// leading no-selection placeholder.
func BuildVenueOptions(stats map[string]models.VenueStats) VenueSelectView {
	codes := make([]string, 0, len(stats))
	for code := range stats {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	options := make([]VenueOptionView, 0, len(codes)+1)
	options = append(options, VenueOptionView{Value: "", Label: noSelectionLabel})
	for _, code := range codes {
		label := stats[code].Name
		if label == "" {
			label = code
		}
		options = append(options, VenueOptionView{Value: code, Label: label})
	}
	return VenueSelectView{Options: options}
}

// BuildRanking renders one venue's pattern ranking. The bar of each row is
// normalized against the venue's own maximum, so the top pattern always
// fills the full width.
func BuildRanking(snap models.Snapshot, venueCode string) RankingView {
	stats, ok := snap.VenueStatsSummary[venueCode]
	if venueCode == "" || !ok {
		return RankingView{Empty: true, EmptyMessage: noDataMessage}
	}
	if len(stats.TopPatterns) == 0 {
		return RankingView{Empty: true, EmptyMessage: noRankingMessage, VenueName: stats.Name}
	}

	maxProb := 0.0
	for _, p := range stats.TopPatterns {
		if p.Prob > maxProb {
			maxProb = p.Prob
		}
	}

	rows := make([]RankingRowView, 0, len(stats.TopPatterns))
	for i, p := range stats.TopPatterns {
		width := 0
		if maxProb > 0 {
			width = int(math.Round(p.Prob / maxProb * 100))
		}
		rows = append(rows, RankingRowView{
			Rank:     i + 1,
			Trifecta: p.Trifecta,
			ProbPct:  pct2(p.Prob),
			CumPct:   pct1(p.CumProb),
			Count:    p.Count,
			Kimarite: p.Kimarite,
			BarWidth: width,
		})
	}
	return RankingView{VenueName: stats.Name, Rows: rows}
}

// BuildTickets renders a race's suggested tickets with a total row.
func BuildTickets(tickets []models.Ticket) TicketTableView {
	if len(tickets) == 0 {
		return TicketTableView{Empty: true, EmptyMessage: noTicketsMessage}
	}
	rows := make([]TicketRowView, 0, len(tickets))
	total := 0
	for i, t := range tickets {
		total += t.Amount
		rows = append(rows, TicketRowView{
			Rank:     i + 1,
			Trifecta: t.Trifecta,
			Kimarite: t.Kimarite,
			ProbPct:  pct1(t.Prob),
			Amount:   formatYen(t.Amount),
		})
	}
	return TicketTableView{Rows: rows, Total: formatYen(total)}
}

func formatYen(amount int) string {
	return yen.Sprintf("¥%d", amount)
}

func pctInt(p float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(p*100)))
}

func pct1(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

func pct2(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}
