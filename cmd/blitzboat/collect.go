package main

import (
	"log"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/pipeline"
)

func collectCmd(cfg config.Config) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Backfill race results into the local store and rebuild venue stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			bar := pb.StartNew(days)
			added, err := p.Collect(cmd.Context(), days, func() { bar.Increment() })
			bar.Finish()
			if err != nil {
				return err
			}
			log.Printf("collect: %d new results stored", added)

			venueStats, err := p.RebuildStats()
			if err != nil {
				return err
			}
			log.Printf("collect: rankings rebuilt for %d venues", len(venueStats))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "days of history ending yesterday")
	return cmd
}
