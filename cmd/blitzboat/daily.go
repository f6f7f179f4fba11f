package main

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/notify"
	"blitzboat/backend-go/internal/pipeline"
)

// daily is the cron entry point: pull in yesterday's results, refresh the
// venue rankings, flag today's races, and publish the snapshot the dashboard
// serves.
func dailyCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Run the full daily pipeline and publish today's snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			ctx := cmd.Context()
			added, err := p.Collect(ctx, 1, nil)
			if err != nil {
				return err
			}
			log.Printf("daily: %d results collected", added)

			venueStats, err := p.RebuildStats()
			if err != nil {
				return err
			}

			today := time.Now().Format("20060102")
			races, totalRaces, err := p.Analyze(ctx, today)
			if err != nil {
				return err
			}
			p.AttachTickets(races, venueStats)
			log.Printf("daily: %d of %d races flagged", len(races), totalRaces)

			snap := p.BuildSnapshot(today, races, venueStats, totalRaces)
			path, err := p.WriteSnapshot(snap)
			if err != nil {
				return err
			}
			log.Printf("daily: snapshot written to %s", path)

			notifier, err := notify.New(cfg)
			if err != nil {
				return err
			}
			if notifier == nil {
				log.Print("daily: telegram not configured, skipping notification")
				return nil
			}
			if err := notifier.SendDaily(snap); err != nil {
				// The snapshot is already published; a failed push is not fatal.
				log.Printf("daily: notification failed: %v", err)
			}
			return nil
		},
	}
}
