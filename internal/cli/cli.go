// Package cli implements railctl, a terminal front end over the same services
// and ledger the HTTP server uses.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/pkordes/railbooking/internal/app"
	"github.com/pkordes/railbooking/internal/config"
)

// session is shared by every command. It is populated in Before.
type session struct {
	app *app.App
	out io.Writer
}

// NewApp returns the railctl application writing results to out and logs
// to log. Configuration comes from the environment, as for the server;
// the global flags override the ledger location and seed file.
func NewApp(out io.Writer, log *slog.Logger) *cli.App {
	s := &session{out: out}

	return &cli.App{
		Name:      "railctl",
		Usage:     "search trains and manage bookings",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "ledger",
				Usage: "booking ledger file (overrides LEDGER_PATH)",
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "reference network YAML (overrides SEED_FILE)",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if v := c.String("ledger"); v != "" {
				cfg.LedgerPath = v
			}
			if v := c.String("seed"); v != "" {
				cfg.SeedFile = v
			}
			a, err := app.New(contextOf(c), cfg, log)
			if err != nil {
				return err
			}
			s.app = a
			return nil
		},
		After: func(*cli.Context) error {
			if s.app != nil {
				s.app.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			s.stationsCommand(),
			s.trainsCommand(),
			s.searchCommand(),
			s.fareCommand(),
			s.bookCommand(),
			s.bookingsCommand(),
			s.cancelCommand(),
		},
	}
}

func contextOf(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
