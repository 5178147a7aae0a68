package handler

import (
	"net/http"

	"github.com/pkordes/railbooking/internal/domain"
)

// MatchResponse is one train in GET /search.
type MatchResponse struct {
	TrainCode string `json:"train_code"`
	TrainName string `json:"train_name"`
	// Departure is the departure time at the origin station.
	Departure string `json:"departure"`
	// Arrival is the arrival time at the destination station.
	Arrival string `json:"arrival"`
	// Duration is "Xh YYm" or "N/A" when it cannot be computed.
	Duration string `json:"duration"`
	// Forward reports whether the origin comes before the destination
	// in the train's stop order.
	Forward bool `json:"forward"`
}

// SearchTrains handles GET /search?from=&to=[&strict=true].
// Without strict, every train stopping at both stations is returned in
// catalog order. With strict, only trains travelling from origin towards
// destination are returned.
func (s *Server) SearchTrains(w http.ResponseWriter, r *http.Request) {
	var (
		from, to string
		strict   *bool
	)
	if err := bindQuery(r, "from", true, &from); err != nil {
		requestError(w, err.Error())
		return
	}
	if err := bindQuery(r, "to", true, &to); err != nil {
		requestError(w, err.Error())
		return
	}
	if err := bindQuery(r, "strict", false, &strict); err != nil {
		requestError(w, err.Error())
		return
	}

	find := s.search.FindDirect
	if strict != nil && *strict {
		find = s.search.FindDirectStrict
	}
	matches, err := find(from, to)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := []MatchResponse{}
	for m := range matches {
		out = append(out, matchToResponse(m))
	}
	writeJSON(w, http.StatusOK, listResponse[MatchResponse]{Data: out})
}

func matchToResponse(m domain.Match) MatchResponse {
	return MatchResponse{
		TrainCode: m.TrainCode,
		TrainName: m.TrainName,
		Departure: m.Origin.Departure,
		Arrival:   m.Destination.Arrival,
		Duration:  m.Duration.String(),
		Forward:   m.Forward,
	}
}
