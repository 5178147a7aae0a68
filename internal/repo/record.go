package repo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkordes/railbooking/internal/domain"
)

// Ledger line layout:
//
//	username,bookingId,trainCode,trainName,origin,destination,date,passengerName,gender,seatClass,price,paymentMethod
//
// Fields are not escaped, so no field may contain the separator or a line break.
const (
	fieldSeparator = ","
	recordFields   = 12
	idField        = 1
)

// CheckRecord reports whether b can be written as a single ledger line.
// Returns domain.ErrUnpersistableRecord naming the first offending field.
func CheckRecord(b domain.Booking) error {
	fields := []struct{ name, value string }{
		{"owner", b.Owner},
		{"booking id", b.ID},
		{"train code", b.TrainCode},
		{"train name", b.TrainName},
		{"origin", b.Origin},
		{"destination", b.Destination},
		{"date", b.Date},
		{"passenger name", b.PassengerName},
		{"gender", b.Gender},
		{"seat class", b.SeatClass},
		{"payment method", b.PaymentMethod},
	}
	for _, f := range fields {
		if strings.ContainsAny(f.value, fieldSeparator+"\r\n") {
			return fmt.Errorf("%w: %s must not contain %q or line breaks", domain.ErrUnpersistableRecord, f.name, fieldSeparator)
		}
	}
	if b.ID == "" {
		return fmt.Errorf("%w: booking id is required", domain.ErrUnpersistableRecord)
	}
	return nil
}

// encodeRecord renders b as one ledger line without the trailing newline.
func encodeRecord(b domain.Booking) (string, error) {
	if err := CheckRecord(b); err != nil {
		return "", err
	}
	return strings.Join([]string{
		b.Owner,
		b.ID,
		b.TrainCode,
		b.TrainName,
		b.Origin,
		b.Destination,
		b.Date,
		b.PassengerName,
		b.Gender,
		b.SeatClass,
		strconv.Itoa(b.Price),
		b.PaymentMethod,
	}, fieldSeparator), nil
}

// decodeRecord parses one ledger line. ok is false for malformed lines
// (wrong field count or non-numeric price).
func decodeRecord(line string) (b domain.Booking, ok bool) {
	f := strings.Split(line, fieldSeparator)
	if len(f) != recordFields {
		return domain.Booking{}, false
	}
	price, err := strconv.Atoi(f[10])
	if err != nil {
		return domain.Booking{}, false
	}
	return domain.Booking{
		Owner:         f[0],
		ID:            f[1],
		TrainCode:     f[2],
		TrainName:     f[3],
		Origin:        f[4],
		Destination:   f[5],
		Date:          f[6],
		PassengerName: f[7],
		Gender:        f[8],
		SeatClass:     f[9],
		Price:         price,
		PaymentMethod: f[11],
	}, true
}

// recordID returns the identifier field of a well-formed line.
func recordID(line string) (string, bool) {
	f := strings.Split(line, fieldSeparator)
	if len(f) != recordFields {
		return "", false
	}
	return f[idField], true
}
