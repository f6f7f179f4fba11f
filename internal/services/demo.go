package services

import "blitzboat/backend-go/internal/models"

// DemoSnapshot is the fixed fallback payload served when no published
// snapshot can be retrieved. Two chance races with full ticket sets, so
// every panel of the dashboard has something to show.
func DemoSnapshot() models.Snapshot {
	return models.Snapshot{
		Date:       "20260218",
		TotalRaces: 86,
		ChanceRaces: []models.Race{
			{
				Date:         "20260218",
				Venue:        "01",
				VenueName:    "桐生",
				RaceNo:       8,
				Boat1WinProb: fp(0.22),
				Boat1: &models.Entrant{
					Boat:         1,
					Name:         "佐藤翔太",
					NationalRate: 3.82,
					LocalRate:    2.14,
					MotorNo:      "34",
				},
				Cond1: models.Condition{
					Triggered: true,
					Reason:    "全国勝率 3.82 < 4.5 / 全国-当地 = 1.68 > 1.5",
				},
				Cond2: models.Condition{
					Triggered: true,
					Reason:    "avg(0.1712) + std(0.0231) = 0.1943 > 0.18",
				},
				Tickets: []models.Ticket{
					{Trifecta: "2-3-4", Prob: 0.082, Amount: 6300, Kimarite: "まくり"},
					{Trifecta: "3-2-4", Prob: 0.065, Amount: 5000, Kimarite: "まくり差し"},
					{Trifecta: "4-2-3", Prob: 0.055, Amount: 4200, Kimarite: "まくり"},
					{Trifecta: "2-4-3", Prob: 0.048, Amount: 3700, Kimarite: "まくり"},
					{Trifecta: "3-4-2", Prob: 0.042, Amount: 3200, Kimarite: "まくり差し"},
					{Trifecta: "4-3-2", Prob: 0.038, Amount: 2900, Kimarite: "まくり"},
					{Trifecta: "5-2-3", Prob: 0.032, Amount: 2500, Kimarite: "まくり"},
					{Trifecta: "2-5-3", Prob: 0.028, Amount: 2200, Kimarite: "まくり"},
				},
			},
			{
				Date:         "20260218",
				Venue:        "12",
				VenueName:    "住之江",
				RaceNo:       11,
				Boat1WinProb: fp(0.34),
				Boat1: &models.Entrant{
					Boat:         1,
					Name:         "高橋健",
					NationalRate: 4.21,
					LocalRate:    4.05,
					MotorNo:      "58",
				},
				Cond1: models.Condition{
					Triggered: true,
					Reason:    "全国勝率 4.21 < 4.5",
				},
				Cond2: models.Condition{
					Triggered: true,
					Reason:    "avg(0.1688) + std(0.0174) = 0.1862 > 0.18",
				},
				Tickets: []models.Ticket{
					{Trifecta: "2-3-4", Prob: 0.091, Amount: 10100, Kimarite: "まくり"},
					{Trifecta: "3-4-2", Prob: 0.072, Amount: 8100, Kimarite: "まくり差し"},
					{Trifecta: "4-2-3", Prob: 0.058, Amount: 6500, Kimarite: "まくり"},
					{Trifecta: "2-4-3", Prob: 0.047, Amount: 5300, Kimarite: "まくり"},
				},
			},
		},
		VenueStatsSummary: map[string]models.VenueStats{
			"01": {
				Name:          "桐生",
				TotalRaces:    612,
				FilteredRaces: 147,
				TopPatterns: []models.Pattern{
					{Trifecta: "2-3-4", Prob: 0.082, CumProb: 0.082, Count: 12, Kimarite: "まくり"},
					{Trifecta: "3-2-4", Prob: 0.065, CumProb: 0.147, Count: 10, Kimarite: "まくり差し"},
					{Trifecta: "4-2-3", Prob: 0.055, CumProb: 0.202, Count: 8, Kimarite: "まくり"},
					{Trifecta: "2-4-3", Prob: 0.048, CumProb: 0.250, Count: 7, Kimarite: "まくり"},
					{Trifecta: "3-4-2", Prob: 0.042, CumProb: 0.292, Count: 6, Kimarite: "まくり差し"},
					{Trifecta: "4-3-2", Prob: 0.038, CumProb: 0.330, Count: 6, Kimarite: "まくり"},
					{Trifecta: "5-2-3", Prob: 0.032, CumProb: 0.362, Count: 5, Kimarite: "まくり"},
					{Trifecta: "2-5-3", Prob: 0.028, CumProb: 0.390, Count: 4, Kimarite: "まくり"},
				},
			},
			"12": {
				Name:          "住之江",
				TotalRaces:    598,
				FilteredRaces: 129,
				TopPatterns: []models.Pattern{
					{Trifecta: "2-3-4", Prob: 0.091, CumProb: 0.091, Count: 12, Kimarite: "まくり"},
					{Trifecta: "3-4-2", Prob: 0.072, CumProb: 0.163, Count: 9, Kimarite: "まくり差し"},
					{Trifecta: "4-2-3", Prob: 0.058, CumProb: 0.221, Count: 7, Kimarite: "まくり"},
					{Trifecta: "2-4-3", Prob: 0.047, CumProb: 0.268, Count: 6, Kimarite: "まくり"},
				},
			},
		},
	}
}

func fp(v float64) *float64 { return &v }
