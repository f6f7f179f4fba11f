package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the analysis tuning knobs and the venue code table.
// Values mirror the ones the pipeline has always used; a YAML file can
// override any subset of them.
type Thresholds struct {
	NationalRateThreshold float64          `yaml:"national_rate_threshold"`
	RateDiffThreshold     float64          `yaml:"rate_diff_threshold"`
	STSlowThreshold       float64          `yaml:"st_slow_threshold"`
	CumulativeProbCutoff  float64          `yaml:"cumulative_prob_cutoff"`
	TotalBudget           int              `yaml:"total_budget"`
	MinBetUnit            int              `yaml:"min_bet_unit"`
	TopPatternsPerVenue   int              `yaml:"top_patterns_per_venue"`
	AllowedKimarite       map[int][]string  `yaml:"allowed_kimarite"`
	VenueNames            map[string]string `yaml:"venue_names"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		NationalRateThreshold: 4.5,
		RateDiffThreshold:     1.5,
		STSlowThreshold:       0.18,
		CumulativeProbCutoff:  0.97,
		TotalBudget:           30_000,
		MinBetUnit:            100,
		TopPatternsPerVenue:   10,
		AllowedKimarite: map[int][]string{
			2: {"まくり"},
			3: {"まくり", "まくり差し"},
			4: {"まくり", "まくり差し"},
			5: {"まくり", "まくり差し"},
			6: {"まくり", "まくり差し"},
		},
		VenueNames: map[string]string{
			"01": "桐生", "02": "戸田", "03": "江戸川", "04": "平和島",
			"05": "多摩川", "06": "浜名湖", "07": "蒲郡", "08": "常滑",
			"09": "津", "10": "三国", "11": "びわこ", "12": "住之江",
			"13": "尼崎", "14": "鳴門", "15": "丸亀", "16": "児島",
			"17": "宮島", "18": "徳山", "19": "下関", "20": "若松",
			"21": "芦屋", "22": "福岡", "23": "唐津", "24": "大村",
		},
	}
}

// LoadThresholds reads a YAML override file on top of the defaults. A missing
// file is not an error; a malformed one is.
func LoadThresholds(path string) (Thresholds, error) {
	th := DefaultThresholds()
	if path == "" {
		return th, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return th, nil
		}
		return th, fmt.Errorf("read thresholds: %w", err)
	}
	if err := yaml.Unmarshal(b, &th); err != nil {
		return th, fmt.Errorf("parse thresholds: %w", err)
	}
	return th, nil
}

// KimariteAllowed reports whether a winning technique counts toward the
// pattern statistics for the given winning boat. Boat 1 wins and 差し wins
// are always excluded.
func (t Thresholds) KimariteAllowed(winningBoat int, kimarite string) bool {
	for _, k := range t.AllowedKimarite[winningBoat] {
		if k == kimarite {
			return true
		}
	}
	return false
}

// VenueName resolves a venue code to its display name, falling back to the
// code itself.
func (t Thresholds) VenueName(jcd string) string {
	if name, ok := t.VenueNames[jcd]; ok {
		return name
	}
	return jcd
}
