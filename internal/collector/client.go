// Package collector fetches venue schedules, race programs, and finished
// results from the upstream race-data feed. Requests are paced with a rate
// limiter and guarded by a circuit breaker so a flaky feed cannot stall a
// backfill run.
package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/models"
)

const maxAttempts = 3

// Client talks to the race-data feed.
type Client struct {
	baseURL string
	hc      *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker
}

func NewClient(cfg config.Config) *Client {
	delay := cfg.CollectDelay
	if delay <= 0 {
		delay = time.Second
	}
	st := gobreaker.Settings{Name: "race-data-feed"}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool { return counts.ConsecutiveFailures >= 5 }
	st.Timeout = 30 * time.Second
	return &Client{
		baseURL: cfg.DataAPIBaseURL,
		hc:      &http.Client{Timeout: cfg.RequestTimeout},
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		cb:      gobreaker.NewCircuitBreaker(st),
	}
}

// TodayVenues lists the venues holding meetings on the given day (YYYYMMDD).
func (c *Client) TodayVenues(ctx context.Context, date string) ([]models.VenueMeeting, error) {
	var resp struct {
		Venues []models.VenueMeeting `json:"venues"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/v2/venues/%s", date), &resp); err != nil {
		return nil, err
	}
	return resp.Venues, nil
}

// DayResults fetches every finished result for the day across all venues.
func (c *Client) DayResults(ctx context.Context, date string) ([]models.RaceResult, error) {
	var resp struct {
		Results []models.RaceResult `json:"results"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/v2/results/%s", date), &resp); err != nil {
		return nil, err
	}
	for i := range resp.Results {
		if resp.Results[i].Date == "" {
			resp.Results[i].Date = date
		}
	}
	return resp.Results, nil
}

// Racelist fetches the program card for one race.
func (c *Client) Racelist(ctx context.Context, date, jcd string, raceNo int) (models.RaceProgram, error) {
	var prog models.RaceProgram
	if err := c.getJSON(ctx, fmt.Sprintf("/v2/programs/%s/%s/%d", date, jcd, raceNo), &prog); err != nil {
		return models.RaceProgram{}, err
	}
	prog.Date = date
	prog.Venue = jcd
	prog.RaceNo = raceNo
	return prog, nil
}

// BeforeInfo fetches the pre-race exhibition start timings for one race.
func (c *Client) BeforeInfo(ctx context.Context, date, jcd string, raceNo int) ([]models.STRecord, error) {
	var resp struct {
		STInfo []models.STRecord `json:"st_info"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/v2/previews/%s/%s/%d", date, jcd, raceNo), &resp); err != nil {
		return nil, err
	}
	return resp.STInfo, nil
}

// DayPrograms assembles the full program for the day: every race at every
// venue, with exhibition timings attached where the feed has them. Races the
// feed cannot serve are skipped rather than failing the whole day.
func (c *Client) DayPrograms(ctx context.Context, date string, th config.Thresholds) ([]models.RaceProgram, error) {
	venues, err := c.TodayVenues(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues for %s: %w", date, err)
	}

	var programs []models.RaceProgram
	for _, v := range venues {
		races := v.Races
		if races <= 0 {
			races = 12
		}
		for raceNo := 1; raceNo <= races; raceNo++ {
			prog, err := c.Racelist(ctx, date, v.Jcd, raceNo)
			if err != nil {
				if ctx.Err() != nil {
					return programs, ctx.Err()
				}
				continue
			}
			if prog.VenueName == "" {
				prog.VenueName = th.VenueName(v.Jcd)
			}
			if st, err := c.BeforeInfo(ctx, date, v.Jcd, raceNo); err == nil {
				prog.STInfo = st
			}
			programs = append(programs, prog)
		}
	}
	return programs, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		_, err := c.cb.Execute(func() (any, error) {
			return nil, c.doOnce(ctx, path, out)
		})
		if err == nil {
			return nil
		}
		lastErr = err
		if errors.Is(err, gobreaker.ErrOpenState) || ctx.Err() != nil {
			break
		}
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
	}
	return fmt.Errorf("GET %s: %w", path, lastErr)
}

func (c *Client) doOnce(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
