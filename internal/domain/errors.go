package domain

import "errors"

// Category errors. Every specific error below unwraps to exactly one of them,
// so callers can branch on either level with errors.Is.
var (
	// ErrReferenceData marks a problem with seeded stations, trains or fares.
	// Fatal during seeding; at query time it means the caller asked for
	// something the reference data does not contain.
	ErrReferenceData = errors.New("reference data error")

	// ErrValidation marks input that fails a business rule. The caller should
	// re-prompt with the specific reason. Handlers map this to HTTP 422.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a write that would violate ledger uniqueness.
	// Handlers map this to HTTP 409.
	ErrConflict = errors.New("conflict")

	// ErrStorage wraps I/O failures reading or writing the ledger.
	ErrStorage = errors.New("storage error")
)

var (
	ErrDuplicateStation = categorized("duplicate station", ErrReferenceData)
	ErrUnknownStation   = categorized("unknown station", ErrReferenceData)
	ErrNegativeDistance = categorized("negative track distance", ErrReferenceData)
	ErrDuplicateTrain   = categorized("duplicate train", ErrReferenceData)
	ErrUnknownTrain     = categorized("unknown train", ErrReferenceData)
	ErrUnknownFareClass = categorized("unknown fare class", ErrReferenceData)

	ErrInvalidPassengerDetails = categorized("invalid passenger details", ErrValidation)
	ErrUnpersistableRecord     = categorized("unpersistable record", ErrValidation)

	// ErrDuplicateBookingID is returned when a booking id is already present
	// in the ledger at persist time.
	ErrDuplicateBookingID = categorized("duplicate booking id", ErrConflict)
)

// kindError is a named sentinel that belongs to a category.
type kindError struct {
	msg  string
	kind error
}

func categorized(msg string, kind error) error {
	return &kindError{msg: msg, kind: kind}
}

func (e *kindError) Error() string { return e.msg }

// Unwrap exposes the category so errors.Is(err, ErrValidation) matches.
func (e *kindError) Unwrap() error { return e.kind }
