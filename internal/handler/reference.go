package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// TrackResponse is one directed edge in GET /stations.
type TrackResponse struct {
	To       string `json:"to"`
	Distance int    `json:"distance"`
}

// StationResponse is one station in GET /stations.
type StationResponse struct {
	Name   string          `json:"name"`
	Tracks []TrackResponse `json:"tracks"`
}

// StopResponse is one timetable entry.
type StopResponse struct {
	Station   string `json:"station"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}

// TrainResponse is one train in GET /trains.
type TrainResponse struct {
	Code  string         `json:"code"`
	Name  string         `json:"name"`
	Stops []StopResponse `json:"stops"`
	Fares map[string]int `json:"fares"`
}

// FareResponse is the body of GET /trains/{code}/fares/{class}.
type FareResponse struct {
	TrainCode string `json:"train_code"`
	SeatClass string `json:"seat_class"`
	Price     int    `json:"price"`
}

// RouteServicedResponse is the body of GET /routes/serviced.
type RouteServicedResponse struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Serviced    bool   `json:"serviced"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}

// ListStations handles GET /stations in insertion order.
func (s *Server) ListStations(w http.ResponseWriter, _ *http.Request) {
	out := []StationResponse{}
	for st := range s.stations.Stations() {
		tracks := make([]TrackResponse, 0, len(st.Tracks))
		for _, tr := range st.Tracks {
			tracks = append(tracks, TrackResponse{To: tr.To, Distance: tr.Distance})
		}
		out = append(out, StationResponse{Name: st.Name, Tracks: tracks})
	}
	writeJSON(w, http.StatusOK, listResponse[StationResponse]{Data: out})
}

// ListTrains handles GET /trains in insertion order.
func (s *Server) ListTrains(w http.ResponseWriter, _ *http.Request) {
	out := []TrainResponse{}
	for t := range s.trains.AllTrains() {
		stops := make([]StopResponse, 0, len(t.Stops))
		for _, st := range t.Stops {
			stops = append(stops, StopResponse(st))
		}
		out = append(out, TrainResponse{Code: t.Code, Name: t.Name, Stops: stops, Fares: t.Fares})
	}
	writeJSON(w, http.StatusOK, listResponse[TrainResponse]{Data: out})
}

// GetFare handles GET /trains/{code}/fares/{class}.
func (s *Server) GetFare(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	class := chi.URLParam(r, "class")

	price, err := s.bookings.FareOf(code, class)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FareResponse{TrainCode: code, SeatClass: class, Price: price})
}

// GetRouteServiced handles GET /routes/serviced?from=&to=.
// Unknown stations answer serviced=false rather than an error.
func (s *Server) GetRouteServiced(w http.ResponseWriter, r *http.Request) {
	var from, to string
	if err := bindQuery(r, "from", true, &from); err != nil {
		requestError(w, err.Error())
		return
	}
	if err := bindQuery(r, "to", true, &to); err != nil {
		requestError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, RouteServicedResponse{
		Origin:      from,
		Destination: to,
		Serviced:    s.search.IsRouteServiced(from, to),
	})
}

// bindQuery decodes one form-style query parameter into dest.
func bindQuery(r *http.Request, name string, required bool, dest any) error {
	return runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), dest)
}
