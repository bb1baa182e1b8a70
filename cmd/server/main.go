// Command server runs the progress and rewards HTTP API.
//
// Configuration is read from a YAML file (CONFIG_PATH) with environment
// variable overrides; see internal/config. The server stops gracefully on
// SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/lingora/lingora-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
