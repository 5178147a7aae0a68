// Command railctl searches the rail network and manages bookings from the
// terminal. It shares configuration and the booking ledger with the API server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pkordes/railbooking/internal/cli"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if err := cli.NewApp(os.Stdout, logger).RunContext(context.Background(), os.Args); err != nil {
		slog.Error("railctl failed", "error", err)
		os.Exit(1)
	}
}
