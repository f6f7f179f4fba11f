package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/pipeline"
)

func statsCmd(cfg config.Config) *cobra.Command {
	var venue string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Rebuild and print per-venue pattern rankings",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			total, days, err := p.ResultCounts()
			if err != nil {
				return err
			}
			fmt.Printf("stored results: %d over %d days\n\n", total, days)

			venueStats, err := p.RebuildStats()
			if err != nil {
				return err
			}

			if venue != "" {
				printVenueRanking(venue, venueStats)
				return nil
			}
			codes := make([]string, 0, len(venueStats))
			for jcd := range venueStats {
				codes = append(codes, jcd)
			}
			sort.Strings(codes)
			for _, jcd := range codes {
				printVenueRanking(jcd, venueStats)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&venue, "venue", "", "venue code to print (default all)")
	return cmd
}
