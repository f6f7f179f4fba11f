package models

// Raw race data consumed by the pipeline side (collector, analyzer, stats
// engine). The dashboard never sees these shapes directly.

// VenueMeeting is one venue holding races on a given day.
type VenueMeeting struct {
	Jcd   string `json:"jcd"`
	Name  string `json:"name"`
	Races int    `json:"races"`
}

// RaceResult is a finished race's outcome as stored in the results database.
type RaceResult struct {
	Venue       string `json:"venue"`
	Date        string `json:"date"`
	RaceNo      int    `json:"race_no"`
	Trifecta    string `json:"trifecta"`
	WinningBoat int    `json:"winning_boat"`
	Kimarite    string `json:"kimarite"`
}

// STRecord is one boat's exhibition start timing before a race.
type STRecord struct {
	Boat      int     `json:"boat"`
	ExhibitST float64 `json:"exhibit_st"`
}

// RaceProgram bundles everything the analyzer needs for one upcoming race.
type RaceProgram struct {
	Date           string     `json:"date"`
	Venue          string     `json:"venue"`
	VenueName      string     `json:"venue_name"`
	RaceNo         int        `json:"race_no"`
	Entries        []Entrant  `json:"entries"`
	STInfo         []STRecord `json:"st_info"`
	MotorSTHistory []float64  `json:"motor_st_history,omitempty"`
}

type DepStatus struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type HealthResponse struct {
	Ok          bool                 `json:"ok"`
	TsISO       string               `json:"tsISO"`
	Service     string               `json:"service"`
	Version     string               `json:"version,omitempty"`
	Deps        []string             `json:"deps"`
	DepsStatus  map[string]DepStatus `json:"deps_status"`
	DataMissing []string             `json:"data_missing"`
}
