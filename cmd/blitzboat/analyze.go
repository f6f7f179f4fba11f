package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/pipeline"
)

func analyzeCmd(cfg config.Config) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Flag chance races for a day and print the bet recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format("20060102")
			}
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			races, totalRaces, err := p.Analyze(cmd.Context(), date)
			if err != nil {
				return err
			}
			venueStats, err := p.RebuildStats()
			if err != nil {
				return err
			}
			p.AttachTickets(races, venueStats)

			fmt.Printf("%s: %d races checked, %d flagged\n\n", date, totalRaces, len(races))
			printRaces(races)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to analyze (YYYYMMDD, default today)")
	return cmd
}
