// Package main is the entry point for the football-statistic-scraper application
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/myusername/football-statistic-scraper/cmd/football-scraper/commands"
)

// Version is set during build using ldflags
var (
	version = "dev"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	commands.ExecuteContext(ctx, version)
}
