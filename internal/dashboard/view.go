// Package dashboard turns a loaded Snapshot into declarative view models.
// Renderers are pure functions over the snapshot; the HTTP layer is only a
// transport for the structures built here, which keeps every display rule
// testable with plain equality checks.
package dashboard

// DashboardView is the full visual state derived from one Snapshot. Building
// it is idempotent and always a full replacement, never an incremental patch.
type DashboardView struct {
	Summary SummaryView     `json:"summary"`
	Alert   *AlertView      `json:"alert,omitempty"`
	Races   RaceListView    `json:"races"`
	Venues  VenueSelectView `json:"venues"`
}

// SummaryView is the four-number stats strip.
type SummaryView struct {
	ChanceCount  int    `json:"chance_count"`
	TotalRaces   int    `json:"total_races"`
	LowestWinPct string `json:"lowest_win_pct"`
	TicketCount  int    `json:"ticket_count"`
}

// AlertView is the headline banner; present only when chance races exist.
type AlertView struct {
	Text string `json:"text"`
}

type RaceListView struct {
	Empty        bool           `json:"empty"`
	EmptyMessage string         `json:"empty_message,omitempty"`
	Cards        []RaceCardView `json:"cards,omitempty"`
}

// RaceCardView is one clickable chance-race summary. Index is the card's
// position in the snapshot's chance_races sequence; selection is by index,
// not by a stable race identifier.
type RaceCardView struct {
	Index        int    `json:"index"`
	VenueName    string `json:"venue_name"`
	RaceNo       int    `json:"race_no"`
	WinPct       string `json:"win_pct"`
	EntrantName  string `json:"entrant_name"`
	NationalRate string `json:"national_rate"`
	LocalRate    string `json:"local_rate"`
	Cond1Reason  string `json:"cond1_reason"`
	Cond2Reason  string `json:"cond2_reason"`
}

// RaceDetailView is what a card click reveals: the race's suggested tickets
// plus the venue whose ranking panel should now be shown.
type RaceDetailView struct {
	Venue     string          `json:"venue"`
	VenueName string          `json:"venue_name"`
	RaceNo    int             `json:"race_no"`
	Tickets   TicketTableView `json:"tickets"`
	Ranking   RankingView     `json:"ranking"`
}

type TicketTableView struct {
	Empty        bool            `json:"empty"`
	EmptyMessage string          `json:"empty_message,omitempty"`
	Rows         []TicketRowView `json:"rows,omitempty"`
	Total        string          `json:"total,omitempty"`
}

type TicketRowView struct {
	Rank     int    `json:"rank"`
	Trifecta string `json:"trifecta"`
	Kimarite string `json:"kimarite"`
	ProbPct  string `json:"prob_pct"`
	Amount   string `json:"amount"`
}

type VenueSelectView struct {
	Options []VenueOptionView `json:"options"`
}

type VenueOptionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type RankingView struct {
	Empty        bool             `json:"empty"`
	EmptyMessage string           `json:"empty_message,omitempty"`
	VenueName    string           `json:"venue_name,omitempty"`
	Rows         []RankingRowView `json:"rows,omitempty"`
}

// RankingRowView is one pattern row. BarWidth is the proportional bar in
// integer percent, normalized against the venue's own best pattern.
type RankingRowView struct {
	Rank     int    `json:"rank"`
	Trifecta string `json:"trifecta"`
	ProbPct  string `json:"prob_pct"`
	CumPct   string `json:"cum_pct"`
	Count    int    `json:"count"`
	Kimarite string `json:"kimarite"`
	BarWidth int    `json:"bar_width"`
}
