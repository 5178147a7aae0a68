// Package repo contains the booking ledger storage for the rail booking system.
// The service layer depends on the BookingRepo interface; the flat-file
// implementation is the default and a Postgres implementation is available
// for deployments that already run a database.
package repo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkordes/railbooking/internal/domain"
)

// BookingRepo defines the persistence operations of the booking ledger.
type BookingRepo interface {
	// Append writes b as a new record. b.Owner must be set.
	// Returns domain.ErrDuplicateBookingID if a record with b.ID already exists.
	Append(ctx context.Context, b domain.Booking) error

	// ListByOwner returns every record owned by owner, oldest first.
	// Malformed records are skipped.
	ListByOwner(ctx context.Context, owner string) ([]domain.Booking, error)

	// DeleteByID removes every record whose identifier equals id exactly and
	// returns how many were removed.
	DeleteByID(ctx context.Context, id string) (int, error)

	// Exists reports whether a record with the given identifier is stored.
	Exists(ctx context.Context, id string) (bool, error)
}

// fileBookingRepo stores one record per line in a plain text file.
//
// Writers (Append, DeleteByID) hold mu. Readers do not lock: appends are a
// single write of a complete line, and rewrites go through a temporary file
// that is renamed over the ledger, so a reader sees the old or the new file.
type fileBookingRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileBookingRepo constructs a BookingRepo backed by the file at path.
// The file is created on first Append; a missing file reads as an empty ledger.
func NewFileBookingRepo(path string) BookingRepo {
	return &fileBookingRepo{path: path}
}

func (r *fileBookingRepo) Append(ctx context.Context, b domain.Booking) error {
	line, err := encodeRecord(b)
	if err != nil {
		return fmt.Errorf("repo.FileBookingRepo.Append: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.read()
	if err != nil {
		return fmt.Errorf("repo.FileBookingRepo.Append: %w", err)
	}
	for _, l := range splitLines(data) {
		if id, ok := recordID(l); ok && id == b.ID {
			return fmt.Errorf("repo.FileBookingRepo.Append %s: %w", b.ID, domain.ErrDuplicateBookingID)
		}
	}

	// A ledger edited by hand may lack the final newline.
	if len(data) > 0 && data[len(data)-1] != '\n' {
		line = "\n" + line
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("repo.FileBookingRepo.Append: %w: %w", domain.ErrStorage, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("repo.FileBookingRepo.Append: write: %w: %w", domain.ErrStorage, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("repo.FileBookingRepo.Append: sync: %w: %w", domain.ErrStorage, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("repo.FileBookingRepo.Append: close: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

func (r *fileBookingRepo) ListByOwner(ctx context.Context, owner string) ([]domain.Booking, error) {
	data, err := r.read()
	if err != nil {
		return nil, fmt.Errorf("repo.FileBookingRepo.ListByOwner: %w", err)
	}

	var out []domain.Booking
	for _, l := range splitLines(data) {
		b, ok := decodeRecord(l)
		if !ok || b.Owner != owner {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fileBookingRepo) DeleteByID(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.read()
	if err != nil {
		return 0, fmt.Errorf("repo.FileBookingRepo.DeleteByID: %w", err)
	}

	var (
		kept    []string
		removed int
	)
	for _, l := range splitLines(data) {
		if rid, ok := recordID(l); ok && rid == id {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	if removed == 0 {
		return 0, nil
	}

	if err := r.replace(kept); err != nil {
		return 0, fmt.Errorf("repo.FileBookingRepo.DeleteByID: %w", err)
	}
	return removed, nil
}

func (r *fileBookingRepo) Exists(ctx context.Context, id string) (bool, error) {
	data, err := r.read()
	if err != nil {
		return false, fmt.Errorf("repo.FileBookingRepo.Exists: %w", err)
	}
	for _, l := range splitLines(data) {
		if rid, ok := recordID(l); ok && rid == id {
			return true, nil
		}
	}
	return false, nil
}

// read returns the whole ledger. A missing file is an empty ledger.
func (r *fileBookingRepo) read() ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return data, nil
}

// replace writes lines to a temporary file in the ledger's directory and
// renames it over the ledger. On any failure the original file is untouched.
func (r *fileBookingRepo) replace(lines []string) (err error) {
	dir, base := filepath.Split(r.path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp: %w", domain.ErrStorage, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	if _, err = tmp.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: write temp: %w", domain.ErrStorage, err)
	}
	if info, statErr := os.Stat(r.path); statErr == nil {
		if err = tmp.Chmod(info.Mode().Perm()); err != nil {
			return fmt.Errorf("%w: chmod temp: %w", domain.ErrStorage, err)
		}
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync temp: %w", domain.ErrStorage, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp: %w", domain.ErrStorage, err)
	}
	if err = os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("%w: rename: %w", domain.ErrStorage, err)
	}
	return nil
}

// splitLines splits the ledger into lines, dropping empty ones.
func splitLines(data []byte) []string {
	var out []string
	for _, l := range strings.Split(string(data), "\n") {
		l = strings.TrimSuffix(l, "\r")
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
