package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gocarina/gocsv"

	"github.com/pkordes/railbooking/internal/domain"
)

// BookingRequestBody is the JSON body of POST /bookings/quote and
// POST /users/{username}/bookings.
type BookingRequestBody struct {
	TrainCode     string `json:"train_code"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Date          string `json:"date"`
	PassengerName string `json:"passenger_name"`
	Gender        string `json:"gender"`
	SeatClass     string `json:"seat_class"`
	PaymentMethod string `json:"payment_method"`
}

// CancelResponse is the body of a successful DELETE /bookings/{id}.
type CancelResponse struct {
	Removed int `json:"removed"`
}

// bookingCSVRow is one line of the CSV export.
type bookingCSVRow struct {
	BookingID     string `csv:"booking_id"`
	TrainCode     string `csv:"train_code"`
	TrainName     string `csv:"train_name"`
	Origin        string `csv:"origin"`
	Destination   string `csv:"destination"`
	Date          string `csv:"date"`
	PassengerName string `csv:"passenger_name"`
	Gender        string `csv:"gender"`
	SeatClass     string `csv:"seat_class"`
	Price         int    `csv:"price"`
	PaymentMethod string `csv:"payment_method"`
}

// QuoteBooking handles POST /bookings/quote.
// It prices a booking and assigns it an id without writing to the ledger.
func (s *Server) QuoteBooking(w http.ResponseWriter, r *http.Request) {
	req, ok := readBookingRequest(w, r)
	if !ok {
		return
	}
	b, err := s.bookings.CreateBooking(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// CreateBooking handles POST /users/{username}/bookings.
// The booking is created and appended to the ledger under username.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "username")
	req, ok := readBookingRequest(w, r)
	if !ok {
		return
	}

	b, err := s.bookings.CreateBooking(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if err := s.bookings.Persist(r.Context(), b, owner); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	b.Owner = owner
	writeJSON(w, http.StatusCreated, b)
}

// ListBookings handles GET /users/{username}/bookings[?format=csv].
// Bookings are returned in ledger order.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "username")

	var format *string
	if err := bindQuery(r, "format", false, &format); err != nil {
		requestError(w, err.Error())
		return
	}
	csv := false
	if format != nil {
		switch *format {
		case "json":
		case "csv":
			csv = true
		default:
			requestError(w, `format must be "json" or "csv"`)
			return
		}
	}

	seq, err := s.bookings.ListForUser(r.Context(), owner)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if !csv {
		out := []domain.Booking{}
		for b := range seq {
			out = append(out, b)
		}
		writeJSON(w, http.StatusOK, listResponse[domain.Booking]{Data: out})
		return
	}

	rows := []bookingCSVRow{}
	for b := range seq {
		rows = append(rows, bookingToCSV(b))
	}
	body, err := gocsv.MarshalBytes(rows)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// CancelBooking handles DELETE /bookings/{id}.
// Every ledger record whose id equals {id} exactly is removed; 404 when none.
func (s *Server) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := s.bookings.Cancel(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if removed == 0 {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "booking "+id+" not found"))
		return
	}
	writeJSON(w, http.StatusOK, CancelResponse{Removed: removed})
}

func readBookingRequest(w http.ResponseWriter, r *http.Request) (domain.BookingRequest, bool) {
	var body BookingRequestBody
	if err := decodeJSON(r, &body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("payload_too_large", "request body too large"))
			return domain.BookingRequest{}, false
		}
		requestError(w, err.Error())
		return domain.BookingRequest{}, false
	}
	return domain.BookingRequest(body), true
}

func bookingToCSV(b domain.Booking) bookingCSVRow {
	return bookingCSVRow{
		BookingID:     b.ID,
		TrainCode:     b.TrainCode,
		TrainName:     b.TrainName,
		Origin:        b.Origin,
		Destination:   b.Destination,
		Date:          b.Date,
		PassengerName: b.PassengerName,
		Gender:        b.Gender,
		SeatClass:     b.SeatClass,
		Price:         b.Price,
		PaymentMethod: b.PaymentMethod,
	}
}
