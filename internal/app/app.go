// Package app assembles the reference data, services and booking ledger from
// a Config. Both the HTTP server and the railctl CLI start here so they read
// and write the same ledger the same way.
package app

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/railbooking/apidoc"
	"github.com/pkordes/railbooking/internal/config"
	"github.com/pkordes/railbooking/internal/handler"
	"github.com/pkordes/railbooking/internal/idgen"
	"github.com/pkordes/railbooking/internal/middleware"
	"github.com/pkordes/railbooking/internal/refdata"
	"github.com/pkordes/railbooking/internal/repo"
	"github.com/pkordes/railbooking/internal/seed"
	"github.com/pkordes/railbooking/internal/service"
	"github.com/pkordes/railbooking/migrations"
)

// App holds the wired components. Call Close when done.
type App struct {
	Network  *refdata.Network
	Catalog  *refdata.Catalog
	Search   *service.SearchService
	Bookings *service.BookingService

	log  *slog.Logger
	pool *pgxpool.Pool
}

// New seeds the reference data and opens the configured ledger.
// Seeding errors are fatal: the process must not serve a partial network.
// With the postgres backend, pending migrations are applied before New returns.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	data, err := loadSeed(cfg)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}
	a := &App{
		Network: data.Network,
		Catalog: data.Catalog,
		Search:  service.NewSearchService(data.Network, data.Catalog),
		log:     log,
	}

	ledger, err := a.openLedger(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app.New: %w", err)
	}
	a.Bookings = service.NewBookingService(data.Catalog, idgen.New(), ledger)

	log.Info("reference data loaded",
		"stations", count(data.Network.Stations()),
		"trains", count(data.Catalog.AllTrains()),
		"ledger", cfg.LedgerBackend,
	)
	return a, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
}

// Router returns the HTTP handler with the full middleware chain applied.
// Middleware order: RequestID → RealIP → SlogLogger → Recoverer → CORS → body limit.
func (a *App) Router(cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(a.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv := handler.NewServer(handler.Deps{
		Stations: a.Network,
		Trains:   a.Catalog,
		Search:   a.Search,
		Bookings: a.Bookings,
		Logger:   a.log,
		OpenAPI:  apidoc.OpenAPI,
	})
	r.Mount("/", srv.Routes())
	return r
}

func loadSeed(cfg config.Config) (seed.Data, error) {
	if cfg.SeedFile != "" {
		return seed.LoadFile(cfg.SeedFile)
	}
	return seed.LoadDefault()
}

func (a *App) openLedger(ctx context.Context, cfg config.Config) (repo.BookingRepo, error) {
	if cfg.LedgerBackend != config.LedgerPostgres {
		return repo.NewFileBookingRepo(cfg.LedgerPath), nil
	}

	// New does not open connections; Ping verifies the database is reachable.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}
	a.pool = pool
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(ctx, db)
	db.Close()
	if err != nil {
		return nil, err
	}
	a.log.Info("database ready", "migrations_applied", applied)

	return repo.NewPgBookingRepo(pool), nil
}

func count[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}
