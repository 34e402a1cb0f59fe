package main

import (
	"context"
	"delivery-emissions-service/internal/config"
	"delivery-emissions-service/internal/platform/obs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	// Console output belongs to the result block; keep logs to warnings.
	obs.InitLogger(config.Get("LOG_LEVEL", "warn"), config.Get("LOG_FORMAT", "console"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(buildFromEnv).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
