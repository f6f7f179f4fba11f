// Package pipeline wires the collector, results store, analyzer, statistics
// engine, and ticket generator into the daily runs the CLI drives.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"blitzboat/backend-go/internal/analyzer"
	"blitzboat/backend-go/internal/collector"
	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/models"
	"blitzboat/backend-go/internal/stats"
	"blitzboat/backend-go/internal/storage"
	"blitzboat/backend-go/internal/tickets"
)

const dateLayout = "20060102"

// Pipeline owns the shared pieces a run needs.
type Pipeline struct {
	cfg    config.Config
	th     config.Thresholds
	store  *storage.Storage
	client *collector.Client

	now func() time.Time
}

func New(cfg config.Config) (*Pipeline, error) {
	th, err := config.LoadThresholds(cfg.ThresholdsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load thresholds: %w", err)
	}
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:    cfg,
		th:     th,
		store:  store,
		client: collector.NewClient(cfg),
		now:    time.Now,
	}, nil
}

func (p *Pipeline) Close() error {
	return p.store.Close()
}

func (p *Pipeline) Thresholds() config.Thresholds { return p.th }

// Collect backfills results for the given number of days ending yesterday.
// Days already in the store are skipped. progress, when non-nil, is called
// once per day.
func (p *Pipeline) Collect(ctx context.Context, days int, progress func()) (int, error) {
	if days <= 0 {
		days = 1
	}
	added := 0
	yesterday := p.now().AddDate(0, 0, -1)
	for i := days - 1; i >= 0; i-- {
		date := yesterday.AddDate(0, 0, -i).Format(dateLayout)

		have, err := p.store.HasDate(date)
		if err != nil {
			return added, err
		}
		if have {
			if progress != nil {
				progress()
			}
			continue
		}

		results, err := p.client.DayResults(ctx, date)
		if err != nil {
			log.Printf("collect: %s failed: %v", date, err)
			if ctx.Err() != nil {
				return added, ctx.Err()
			}
			if progress != nil {
				progress()
			}
			continue
		}
		if err := p.store.AddResults(results); err != nil {
			return added, err
		}
		added += len(results)
		if progress != nil {
			progress()
		}
	}
	return added, nil
}

// RebuildStats recomputes every venue's pattern ranking from stored results.
func (p *Pipeline) RebuildStats() (map[string]models.VenueStats, error) {
	results, err := p.store.AllResults()
	if err != nil {
		return nil, err
	}
	return stats.BuildVenueStats(results, p.th), nil
}

// Analyze flags the chance races on the given day's program.
func (p *Pipeline) Analyze(ctx context.Context, date string) ([]models.Race, int, error) {
	programs, err := p.client.DayPrograms(ctx, date, p.th)
	if err != nil {
		return nil, 0, err
	}
	races := analyzer.IdentifyChanceRaces(programs, p.th)
	for i := range races {
		if races[i].Date == "" {
			races[i].Date = date
		}
	}
	return races, len(programs), nil
}

// AttachTickets adds the budgeted bet list to each race from its venue's
// pattern ranking. Races at venues with no ranking get no tickets.
func (p *Pipeline) AttachTickets(races []models.Race, venueStats map[string]models.VenueStats) {
	for i := range races {
		patterns := stats.VenueRanking(venueStats, races[i].Venue)
		races[i].Tickets = tickets.Generate(patterns, p.th.TotalBudget, p.th.MinBetUnit)
	}
}

// BuildSnapshot assembles the published daily snapshot.
func (p *Pipeline) BuildSnapshot(date string, races []models.Race, venueStats map[string]models.VenueStats, totalRaces int) models.Snapshot {
	summary := make(map[string]models.VenueStats, len(venueStats))
	for jcd, vs := range venueStats {
		vs.TopPatterns = stats.TopN(vs.TopPatterns, p.th.TopPatternsPerVenue)
		summary[jcd] = vs
	}
	if races == nil {
		races = []models.Race{}
	}
	return models.Snapshot{
		Date:              date,
		UpdatedAt:         p.now().Format(time.RFC3339),
		TotalRaces:        totalRaces,
		ChanceRaces:       races,
		VenueStatsSummary: summary,
	}
}

// WriteSnapshot writes daily_DATE.json and refreshes latest.json in the
// output directory. Returns the daily file's path.
func (p *Pipeline) WriteSnapshot(snap models.Snapshot) (string, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	daily := filepath.Join(p.cfg.OutputDir, fmt.Sprintf("daily_%s.json", snap.Date))
	if err := os.WriteFile(daily, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", daily, err)
	}
	latest := filepath.Join(p.cfg.OutputDir, "latest.json")
	if err := os.WriteFile(latest, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", latest, err)
	}
	return daily, nil
}

// ResultCounts reports stored totals for the stats command.
func (p *Pipeline) ResultCounts() (total, days int, err error) {
	return p.store.CountResults()
}
