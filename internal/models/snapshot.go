package models

// Snapshot is the root object of one day's published analysis. The pipeline
// writes it as daily_YYYYMMDD.json (and latest.json); the dashboard backend
// only ever reads it.
type Snapshot struct {
	Date              string                `json:"date"`
	UpdatedAt         string                `json:"updated_at,omitempty"`
	TotalRaces        int                   `json:"total_races"`
	ChanceRaces       []Race                `json:"chance_races"`
	VenueStatsSummary map[string]VenueStats `json:"venue_stats_summary"`
}

// Race is one flagged chance race. Boat1 and Boat1WinProb may be absent in
// older snapshots; readers fall back to the defaults the views specify.
type Race struct {
	Date         string    `json:"date,omitempty"`
	Venue        string    `json:"venue"`
	VenueName    string    `json:"venue_name"`
	RaceNo       int       `json:"race_no"`
	Boat1WinProb *float64  `json:"boat1_win_prob,omitempty"`
	Boat1        *Entrant  `json:"boat1,omitempty"`
	Cond1        Condition `json:"cond1"`
	Cond2        Condition `json:"cond2"`
	Tickets      []Ticket  `json:"tickets,omitempty"`
}

type Entrant struct {
	Boat         int     `json:"boat,omitempty"`
	Name         string  `json:"name"`
	NationalRate float64 `json:"national_rate"`
	LocalRate    float64 `json:"local_rate"`
	MotorNo      string  `json:"motor_no"`
}

type Condition struct {
	Triggered bool   `json:"triggered"`
	Reason    string `json:"reason"`
}

// Ticket is one suggested trifecta bet with its allocated stake in yen.
type Ticket struct {
	Trifecta string  `json:"trifecta"`
	Prob     float64 `json:"prob"`
	CumProb  float64 `json:"cum_prob,omitempty"`
	Amount   int     `json:"amount"`
	Kimarite string  `json:"kimarite"`
}

type VenueStats struct {
	Name          string    `json:"name"`
	TotalRaces    int       `json:"total_races"`
	FilteredRaces int       `json:"filtered_races"`
	TopPatterns   []Pattern `json:"top_patterns"`
}

// Pattern is one outcome in a venue's ranking, best-first. CumProb is the
// running sum down the ranked list as computed upstream; it is not
// re-validated here.
type Pattern struct {
	Trifecta string  `json:"trifecta"`
	Prob     float64 `json:"prob"`
	CumProb  float64 `json:"cum_prob"`
	Count    int     `json:"count"`
	Kimarite string  `json:"kimarite"`
}
