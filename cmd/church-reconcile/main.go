// Command church-reconcile runs a single orphaned-image sweep and exits.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"church-app-go/internal/app"
	"church-app-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv("church-reconcile")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		os.Exit(1)
	}

	runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	report, err := application.Reconcile(runCtx)
	cancel()

	exitCode := 0
	if err != nil {
		log.Error("reconcile: run failed", "err", err)
		exitCode = 1
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)

	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		exitCode = 1
	}
	os.Exit(exitCode)
}
