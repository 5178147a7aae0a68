package service

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/pkordes/railbooking/internal/domain"
	"github.com/pkordes/railbooking/internal/repo"
)

// maxIDAttempts bounds how many generated identifiers CreateBooking tries
// before giving up on finding one that is not already in the ledger.
const maxIDAttempts = 16

// FareSource resolves trains and fares. Satisfied by *refdata.Catalog.
type FareSource interface {
	Train(code string) (*domain.Train, error)
	FareOf(code, class string) (int, error)
}

// IDSource produces booking identifiers. Satisfied by *idgen.Sequence.
type IDSource interface {
	Next() string
}

// BookingService creates, persists, lists and cancels bookings.
// Safe for concurrent use; the ledger serializes writes.
type BookingService struct {
	fares  FareSource
	ids    IDSource
	ledger repo.BookingRepo
}

// NewBookingService constructs a BookingService.
func NewBookingService(fares FareSource, ids IDSource, ledger repo.BookingRepo) *BookingService {
	return &BookingService{fares: fares, ids: ids, ledger: ledger}
}

// FareOf returns the price of class on the train registered under code.
func (s *BookingService) FareOf(code, class string) (int, error) {
	price, err := s.fares.FareOf(code, class)
	if err != nil {
		return 0, fmt.Errorf("service.BookingService.FareOf: %w", err)
	}
	return price, nil
}

// CreateBooking validates the request, prices it from the train's fare table
// and assigns an identifier not yet present in the ledger. The booking is
// not persisted; call Persist to commit it.
//
// Returns domain.ErrInvalidPassengerDetails for a blank name or an
// unrecognized gender, domain.ErrUnknownTrain or domain.ErrUnknownFareClass
// for reference data the catalog does not have.
func (s *BookingService) CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	if err := validatePassenger(req); err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.CreateBooking: %w", err)
	}

	train, err := s.fares.Train(req.TrainCode)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.CreateBooking: %w", err)
	}
	price, err := s.fares.FareOf(train.Code, req.SeatClass)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.CreateBooking: %w", err)
	}

	id, err := s.nextFreeID(ctx)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.CreateBooking: %w", err)
	}

	return domain.Booking{
		ID:            id,
		TrainCode:     train.Code,
		TrainName:     train.Name,
		Origin:        req.Origin,
		Destination:   req.Destination,
		Date:          req.Date,
		PassengerName: strings.TrimSpace(req.PassengerName),
		Gender:        req.Gender,
		SeatClass:     req.SeatClass,
		Price:         price,
		PaymentMethod: req.PaymentMethod,
	}, nil
}

// Persist appends b to the ledger as owned by owner.
// Returns domain.ErrUnpersistableRecord if any field would corrupt the
// record format, domain.ErrDuplicateBookingID if b.ID is already stored.
func (s *BookingService) Persist(ctx context.Context, b domain.Booking, owner string) error {
	if strings.TrimSpace(owner) == "" {
		return fmt.Errorf("service.BookingService.Persist: %w: owner is required", domain.ErrUnpersistableRecord)
	}
	b.Owner = owner
	if err := repo.CheckRecord(b); err != nil {
		return fmt.Errorf("service.BookingService.Persist: %w", err)
	}
	if err := s.ledger.Append(ctx, b); err != nil {
		return fmt.Errorf("service.BookingService.Persist: %w", err)
	}
	return nil
}

// ListForUser returns owner's bookings, oldest first. The sequence is a
// snapshot taken at call time and can be ranged over repeatedly.
func (s *BookingService) ListForUser(ctx context.Context, owner string) (iter.Seq[domain.Booking], error) {
	bookings, err := s.ledger.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.ListForUser: %w", err)
	}
	return slices.Values(bookings), nil
}

// Cancel removes every record whose identifier is exactly id and returns how
// many were removed. Zero means the booking was not found.
func (s *BookingService) Cancel(ctx context.Context, id string) (int, error) {
	if id == "" {
		return 0, nil
	}
	n, err := s.ledger.DeleteByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("service.BookingService.Cancel: %w", err)
	}
	return n, nil
}

// nextFreeID draws identifiers until one is not already in the ledger.
// Persist re-checks under the ledger's write lock, so a concurrent writer
// taking the same id between here and Persist is still caught.
func (s *BookingService) nextFreeID(ctx context.Context) (string, error) {
	for range maxIDAttempts {
		id := s.ids.Next()
		taken, err := s.ledger.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free id after %d attempts: %w", maxIDAttempts, domain.ErrDuplicateBookingID)
}

// validatePassenger enforces the passenger rules of CreateBooking.
//   - PassengerName must be non-empty (whitespace-only names are rejected).
//   - Gender must be one of the recognized values.
func validatePassenger(req domain.BookingRequest) error {
	if strings.TrimSpace(req.PassengerName) == "" {
		return fmt.Errorf("%w: passenger name is required", domain.ErrInvalidPassengerDetails)
	}
	if !domain.IsValidGender(req.Gender) {
		return fmt.Errorf("%w: gender must be %s or %s", domain.ErrInvalidPassengerDetails, domain.GenderMale, domain.GenderFemale)
	}
	return nil
}
