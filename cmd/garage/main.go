package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kevrnd/car-garage/internal/app"
	"github.com/Kevrnd/car-garage/platform/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, quit := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM,
	)
	defer quit()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Failed to create an application:", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	if err := a.Run(ctx, os.Args[1:]); err != nil {
		if app.IsSessionExpired(err) {
			fmt.Fprintln(os.Stderr, "🔒 session expired, log in again: run `garage login` or set GARAGE_USERNAME/GARAGE_PASSWORD")
			return 3
		}
		fmt.Fprintln(os.Stderr, "❌", err)
		if app.IsUsage(err) {
			return 2
		}
		return 1
	}

	return 0
}
