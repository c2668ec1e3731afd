package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-po/cmd/api"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "Path to the YAML configuration file")
	maxConc := flag.Int("max-concurrent", 100, "Maximum number of concurrent HTTP requests to process")
	migrateUp := flag.Bool("migrate", false, "Apply pending schema migrations before serving")
	flag.Parse()

	if *maxConc < 1 {
		fmt.Fprintln(os.Stderr, "Error: --max-concurrent must be >= 1")
		flag.Usage()
		os.Exit(2)
	}

	// context cancelled on SIGINT/SIGTERM for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := api.Run(ctx, *cfgPath, *maxConc, *migrateUp); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	// tiny delay to let deferred logs flush on very fast exits
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Millisecond):
	}
}
