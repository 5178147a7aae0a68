package handler

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/pkordes/railbooking/internal/domain"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// notFoundSentinels are reference lookups that should read as 404 rather than
// as a server fault.
var notFoundSentinels = []error{
	domain.ErrUnknownStation,
	domain.ErrUnknownTrain,
	domain.ErrUnknownFareClass,
}

// writeServiceError maps a service error onto a status code and body.
// Unexpected errors are logged and reported without internal detail.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", unwrapMessage(err)))
		return
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("conflict", unwrapMessage(err)))
		return
	}
	for _, nf := range notFoundSentinels {
		if errors.Is(err, nf) {
			writeJSON(w, http.StatusNotFound, errorBody("not_found", unwrapMessage(err)))
			return
		}
	}

	s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
}

// requestError reports a request rejected before reaching the service layer
// (malformed body, missing query parameter).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", message))
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// callSite matches the "pkg.Type.Method" token every layer prefixes to the
// errors it wraps, with the separator that follows it.
var callSite = regexp.MustCompile(`^[a-z]+\.[A-Za-z]+\.[A-Za-z]+(: | )`)

// unwrapMessage strips the call-site prefixes from a wrapped error, leaving
// the human-readable part.
// e.g. "service.BookingService.CreateBooking: refdata.Catalog.Train \"PK999\": unknown train"
// → "\"PK999\": unknown train"
func unwrapMessage(err error) string {
	msg := err.Error()
	for {
		loc := callSite.FindStringIndex(msg)
		if loc == nil {
			return msg
		}
		msg = msg[loc[1]:]
	}
}
