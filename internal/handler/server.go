// Package handler implements the HTTP adapter for the rail booking core.
// Every endpoint is a thin translation between JSON (or CSV) and one service
// call; all methods hang off Server so they share its dependencies.
package handler

import (
	"context"
	"iter"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/railbooking/internal/domain"
)

// Searcher defines the search operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without building reference data.
type Searcher interface {
	FindDirect(origin, destination string) (iter.Seq[domain.Match], error)
	FindDirectStrict(origin, destination string) (iter.Seq[domain.Match], error)
	IsRouteServiced(origin, destination string) bool
}

// Booker defines the booking ledger operations the handlers depend on.
type Booker interface {
	FareOf(code, class string) (int, error)
	CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error)
	Persist(ctx context.Context, b domain.Booking, owner string) error
	ListForUser(ctx context.Context, owner string) (iter.Seq[domain.Booking], error)
	Cancel(ctx context.Context, id string) (int, error)
}

// StationLister lists the network. Satisfied by *refdata.Network.
type StationLister interface {
	Stations() iter.Seq[domain.Station]
}

// TrainLister lists the catalog. Satisfied by *refdata.Catalog.
type TrainLister interface {
	AllTrains() iter.Seq[*domain.Train]
}

// Deps bundles everything the Server needs.
type Deps struct {
	Stations StationLister
	Trains   TrainLister
	Search   Searcher
	Bookings Booker
	// Logger records unexpected errors. Defaults to slog.Default().
	Logger *slog.Logger
	// OpenAPI is served verbatim at /openapi.yaml when non-empty.
	OpenAPI []byte
}

// Server implements every HTTP endpoint.
type Server struct {
	stations StationLister
	trains   TrainLister
	search   Searcher
	bookings Booker
	log      *slog.Logger
	openAPI  []byte
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		stations: d.Stations,
		trains:   d.Trains,
		search:   d.Search,
		bookings: d.Bookings,
		log:      log,
		openAPI:  d.OpenAPI,
	}
}

// Routes registers every endpoint on a new chi router.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/stations", s.ListStations)
	r.Get("/trains", s.ListTrains)
	r.Get("/trains/{code}/fares/{class}", s.GetFare)
	r.Get("/search", s.SearchTrains)
	r.Get("/routes/serviced", s.GetRouteServiced)

	r.Post("/bookings/quote", s.QuoteBooking)
	r.Delete("/bookings/{id}", s.CancelBooking)
	r.Route("/users/{username}/bookings", func(r chi.Router) {
		r.Post("/", s.CreateBooking)
		r.Get("/", s.ListBookings)
	})

	return r
}
