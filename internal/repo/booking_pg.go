package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/railbooking/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// pgBookingRepo is the Postgres implementation of BookingRepo.
// Uniqueness of booking_id is enforced by the table's unique constraint, so
// no application-level lock is needed.
type pgBookingRepo struct {
	db db
}

// NewPgBookingRepo constructs a BookingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPgBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

// Append inserts one booking row. The record rules of the flat-file ledger
// apply here too, so bookings can move between backends.
func (r *pgBookingRepo) Append(ctx context.Context, b domain.Booking) error {
	if err := CheckRecord(b); err != nil {
		return fmt.Errorf("repo.PgBookingRepo.Append: %w", err)
	}

	const q = `
		INSERT INTO bookings (booking_id, owner, train_code, train_name, origin, destination,
		                      travel_date, passenger_name, gender, seat_class, price, payment_method)
		VALUES (@booking_id, @owner, @train_code, @train_name, @origin, @destination,
		        @travel_date, @passenger_name, @gender, @seat_class, @price, @payment_method)`

	args := pgx.NamedArgs{
		"booking_id":     b.ID,
		"owner":          b.Owner,
		"train_code":     b.TrainCode,
		"train_name":     b.TrainName,
		"origin":         b.Origin,
		"destination":    b.Destination,
		"travel_date":    b.Date,
		"passenger_name": b.PassengerName,
		"gender":         b.Gender,
		"seat_class":     b.SeatClass,
		"price":          b.Price,
		"payment_method": b.PaymentMethod,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("repo.PgBookingRepo.Append %s: %w", b.ID, domain.ErrDuplicateBookingID)
		}
		return fmt.Errorf("repo.PgBookingRepo.Append: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// ListByOwner returns the owner's bookings in insertion order.
func (r *pgBookingRepo) ListByOwner(ctx context.Context, owner string) ([]domain.Booking, error) {
	const q = `
		SELECT booking_id, owner, train_code, train_name, origin, destination,
		       travel_date, passenger_name, gender, seat_class, price, payment_method
		FROM bookings
		WHERE owner = @owner
		ORDER BY seq ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("repo.PgBookingRepo.ListByOwner: %w: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PgBookingRepo.ListByOwner: scan: %w: %w", domain.ErrStorage, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PgBookingRepo.ListByOwner: rows: %w: %w", domain.ErrStorage, err)
	}
	return out, nil
}

// DeleteByID removes rows whose booking_id equals id exactly.
func (r *pgBookingRepo) DeleteByID(ctx context.Context, id string) (int, error) {
	const q = `DELETE FROM bookings WHERE booking_id = @booking_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"booking_id": id})
	if err != nil {
		return 0, fmt.Errorf("repo.PgBookingRepo.DeleteByID: %w: %w", domain.ErrStorage, err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgBookingRepo) Exists(ctx context.Context, id string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM bookings WHERE booking_id = @booking_id)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"booking_id": id}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.PgBookingRepo.Exists: %w: %w", domain.ErrStorage, err)
	}
	return exists, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (domain.Booking, error) {
	var b domain.Booking
	err := s.Scan(&b.ID, &b.Owner, &b.TrainCode, &b.TrainName, &b.Origin, &b.Destination,
		&b.Date, &b.PassengerName, &b.Gender, &b.SeatClass, &b.Price, &b.PaymentMethod)
	return b, err
}
