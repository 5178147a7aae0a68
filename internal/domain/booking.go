package domain

// Recognized passenger genders.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// IsValidGender reports whether g is one of the recognized genders.
func IsValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// PaymentMethods lists the payment labels offered to passengers.
// The ledger stores the label verbatim and does not restrict it to this list.
var PaymentMethods = []string{
	"Credit Card",
	"Debit Card",
	"JazzCash",
	"EasyPaisa",
	"Bank Transfer",
	"Cash",
}

// Booking is a reservation tying a user, a train, a route, a date and
// passenger details to a price. TrainName is copied from the catalog at
// creation so ledger entries stay self-describing. Price is the fare at
// creation time and is never recomputed.
type Booking struct {
	ID            string `json:"booking_id"`
	Owner         string `json:"owner,omitempty"`
	TrainCode     string `json:"train_code"`
	TrainName     string `json:"train_name"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Date          string `json:"date"` // user-supplied, not validated
	PassengerName string `json:"passenger_name"`
	Gender        string `json:"gender"`
	SeatClass     string `json:"seat_class"`
	Price         int    `json:"price"`
	PaymentMethod string `json:"payment_method"`
}

// BookingRequest carries the passenger's choices for CreateBooking.
type BookingRequest struct {
	TrainCode     string
	Origin        string
	Destination   string
	Date          string
	PassengerName string
	Gender        string
	SeatClass     string
	PaymentMethod string
}
