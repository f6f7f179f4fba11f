package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"blitzboat/backend-go/internal/config"
)

func main() {
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	root := &cobra.Command{
		Use:           "blitzboat",
		Short:         "Race-data pipeline: collect results, flag chance races, publish snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(collectCmd(cfg), analyzeCmd(cfg), dailyCmd(cfg), statsCmd(cfg))

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
