package service_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/railbooking/internal/domain"
	"github.com/pkordes/railbooking/internal/refdata"
	"github.com/pkordes/railbooking/internal/repo"
	"github.com/pkordes/railbooking/internal/service"
)

// ---- mocks -----------------------------------------------------------------

// mockBookingRepo is a hand-written test double for repo.BookingRepo.
// Unset methods behave like an empty ledger.
type mockBookingRepo struct {
	appendFn     func(ctx context.Context, b domain.Booking) error
	listByOwner  func(ctx context.Context, owner string) ([]domain.Booking, error)
	deleteByID   func(ctx context.Context, id string) (int, error)
	exists       func(ctx context.Context, id string) (bool, error)
	appendCalls  int
	deleteCalled bool
}

func (m *mockBookingRepo) Append(ctx context.Context, b domain.Booking) error {
	m.appendCalls++
	if m.appendFn != nil {
		return m.appendFn(ctx, b)
	}
	return nil
}
func (m *mockBookingRepo) ListByOwner(ctx context.Context, owner string) ([]domain.Booking, error) {
	if m.listByOwner != nil {
		return m.listByOwner(ctx, owner)
	}
	return nil, nil
}
func (m *mockBookingRepo) DeleteByID(ctx context.Context, id string) (int, error) {
	m.deleteCalled = true
	if m.deleteByID != nil {
		return m.deleteByID(ctx, id)
	}
	return 0, nil
}
func (m *mockBookingRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.exists != nil {
		return m.exists(ctx, id)
	}
	return false, nil
}

// compile-time check: mockBookingRepo must satisfy repo.BookingRepo.
var _ repo.BookingRepo = (*mockBookingRepo)(nil)

// fixedIDs hands out the given identifiers in order.
type fixedIDs struct {
	ids []string
	i   int
}

func (f *fixedIDs) Next() string {
	id := f.ids[f.i%len(f.ids)]
	f.i++
	return id
}

// ---- helpers ---------------------------------------------------------------

func catalogFixture(t *testing.T) *refdata.Catalog {
	t.Helper()
	c := refdata.NewCatalog()
	require.NoError(t, c.AddTrain("PK101", "Green Line Express"))
	require.NoError(t, c.SetStop("PK101", "Karachi", "08:00", "08:15"))
	require.NoError(t, c.SetStop("PK101", "Lahore", "16:30", "16:45"))
	return c
}

func validRequest() domain.BookingRequest {
	return domain.BookingRequest{
		TrainCode:     "PK101",
		Origin:        "Karachi",
		Destination:   "Lahore",
		Date:          "2025-06-01",
		PassengerName: "Ali Raza",
		Gender:        domain.GenderMale,
		SeatClass:     domain.ClassEconomy,
		PaymentMethod: "EasyPaisa",
	}
}

func newBookingService(t *testing.T, ledger repo.BookingRepo, ids ...string) *service.BookingService {
	t.Helper()
	if len(ids) == 0 {
		ids = []string{"PKR-1"}
	}
	return service.NewBookingService(catalogFixture(t), &fixedIDs{ids: ids}, ledger)
}

// ---- FareOf ----------------------------------------------------------------

func TestBookingService_FareOf(t *testing.T) {
	svc := newBookingService(t, &mockBookingRepo{})

	price, err := svc.FareOf("PK101", "Business")
	require.NoError(t, err)
	assert.Equal(t, 1000, price)

	_, err = svc.FareOf("PK101", "Sleeper")
	assert.ErrorIs(t, err, domain.ErrUnknownFareClass)
}

// ---- CreateBooking ---------------------------------------------------------

func TestBookingService_CreateBooking_OK(t *testing.T) {
	ledger := &mockBookingRepo{}
	svc := newBookingService(t, ledger, "PKR-4521")

	got, err := svc.CreateBooking(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.Booking{
		ID:            "PKR-4521",
		TrainCode:     "PK101",
		TrainName:     "Green Line Express",
		Origin:        "Karachi",
		Destination:   "Lahore",
		Date:          "2025-06-01",
		PassengerName: "Ali Raza",
		Gender:        "Male",
		SeatClass:     "Economy",
		Price:         500,
		PaymentMethod: "EasyPaisa",
	}, got)
	assert.Zero(t, ledger.appendCalls, "CreateBooking must not persist")
}

func TestBookingService_CreateBooking_InvalidPassenger(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.BookingRequest)
	}{
		{"empty name", func(r *domain.BookingRequest) { r.PassengerName = "" }},
		{"blank name", func(r *domain.BookingRequest) { r.PassengerName = "   " }},
		{"missing gender", func(r *domain.BookingRequest) { r.Gender = "" }},
		{"unknown gender", func(r *domain.BookingRequest) { r.Gender = "male" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newBookingService(t, &mockBookingRepo{})
			req := validRequest()
			tc.mutate(&req)

			_, err := svc.CreateBooking(context.Background(), req)

			assert.ErrorIs(t, err, domain.ErrInvalidPassengerDetails)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestBookingService_CreateBooking_UnknownFareClass(t *testing.T) {
	svc := newBookingService(t, &mockBookingRepo{})
	req := validRequest()
	req.SeatClass = "First"

	_, err := svc.CreateBooking(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrUnknownFareClass)
}

func TestBookingService_CreateBooking_UnknownTrain(t *testing.T) {
	svc := newBookingService(t, &mockBookingRepo{})
	req := validRequest()
	req.TrainCode = "PK999"

	_, err := svc.CreateBooking(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrUnknownTrain)
}

func TestBookingService_CreateBooking_SkipsTakenIDs(t *testing.T) {
	ledger := &mockBookingRepo{
		exists: func(_ context.Context, id string) (bool, error) {
			return id == "PKR-1" || id == "PKR-2", nil
		},
	}
	svc := newBookingService(t, ledger, "PKR-1", "PKR-2", "PKR-3")

	got, err := svc.CreateBooking(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "PKR-3", got.ID)
}

func TestBookingService_CreateBooking_NoFreeID(t *testing.T) {
	ledger := &mockBookingRepo{
		exists: func(_ context.Context, _ string) (bool, error) { return true, nil },
	}
	svc := newBookingService(t, ledger)

	_, err := svc.CreateBooking(context.Background(), validRequest())

	assert.ErrorIs(t, err, domain.ErrDuplicateBookingID)
}

func TestBookingService_CreateBooking_LedgerError(t *testing.T) {
	boom := errors.New("disk on fire")
	ledger := &mockBookingRepo{
		exists: func(_ context.Context, _ string) (bool, error) { return false, boom },
	}
	svc := newBookingService(t, ledger)

	_, err := svc.CreateBooking(context.Background(), validRequest())

	assert.ErrorIs(t, err, boom)
}

// ---- Persist ---------------------------------------------------------------

func TestBookingService_Persist_SetsOwner(t *testing.T) {
	var stored domain.Booking
	ledger := &mockBookingRepo{
		appendFn: func(_ context.Context, b domain.Booking) error {
			stored = b
			return nil
		},
	}
	svc := newBookingService(t, ledger)
	b, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Persist(context.Background(), b, "user"))

	assert.Equal(t, "user", stored.Owner)
	assert.Equal(t, b.ID, stored.ID)
}

func TestBookingService_Persist_RejectsSeparator(t *testing.T) {
	tests := []struct {
		name   string
		owner  string
		mutate func(*domain.Booking)
	}{
		{"comma in passenger name", "user", func(b *domain.Booking) { b.PassengerName = "Raza, Ali" }},
		{"comma in payment method", "user", func(b *domain.Booking) { b.PaymentMethod = "Card,Visa" }},
		{"newline in date", "user", func(b *domain.Booking) { b.Date = "2025-06-01\n" }},
		{"comma in owner", "a,b", func(*domain.Booking) {}},
		{"empty owner", "", func(*domain.Booking) {}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger := &mockBookingRepo{}
			svc := newBookingService(t, ledger)
			b, err := svc.CreateBooking(context.Background(), validRequest())
			require.NoError(t, err)
			tc.mutate(&b)

			err = svc.Persist(context.Background(), b, tc.owner)

			assert.ErrorIs(t, err, domain.ErrUnpersistableRecord)
			assert.Zero(t, ledger.appendCalls)
		})
	}
}

func TestBookingService_Persist_DuplicateID(t *testing.T) {
	ledger := &mockBookingRepo{
		appendFn: func(_ context.Context, _ domain.Booking) error {
			return domain.ErrDuplicateBookingID
		},
	}
	svc := newBookingService(t, ledger)
	b, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	err = svc.Persist(context.Background(), b, "user")

	assert.ErrorIs(t, err, domain.ErrDuplicateBookingID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ---- ListForUser -----------------------------------------------------------

func TestBookingService_ListForUser(t *testing.T) {
	want := []domain.Booking{{ID: "PKR-1", Owner: "user"}, {ID: "PKR-2", Owner: "user"}}
	ledger := &mockBookingRepo{
		listByOwner: func(_ context.Context, owner string) ([]domain.Booking, error) {
			assert.Equal(t, "user", owner)
			return want, nil
		},
	}
	svc := newBookingService(t, ledger)

	seq, err := svc.ListForUser(context.Background(), "user")

	require.NoError(t, err)
	assert.Equal(t, want, slices.Collect(seq))
	assert.Equal(t, want, slices.Collect(seq), "sequence is restartable")
}

func TestBookingService_ListForUser_Error(t *testing.T) {
	ledger := &mockBookingRepo{
		listByOwner: func(_ context.Context, _ string) ([]domain.Booking, error) {
			return nil, domain.ErrStorage
		},
	}
	svc := newBookingService(t, ledger)

	_, err := svc.ListForUser(context.Background(), "user")

	assert.ErrorIs(t, err, domain.ErrStorage)
}

// ---- Cancel ----------------------------------------------------------------

func TestBookingService_Cancel(t *testing.T) {
	ledger := &mockBookingRepo{
		deleteByID: func(_ context.Context, id string) (int, error) {
			if id == "PKR-1" {
				return 1, nil
			}
			return 0, nil
		},
	}
	svc := newBookingService(t, ledger)

	n, err := svc.Cancel(context.Background(), "PKR-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.Cancel(context.Background(), "PKR-2")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestBookingService_Cancel_EmptyIDTouchesNothing(t *testing.T) {
	ledger := &mockBookingRepo{}
	svc := newBookingService(t, ledger)

	n, err := svc.Cancel(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, ledger.deleteCalled)
}
