package ordercode

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	pkgdb "github.com/dookiees/bakery-backend/pkg/db"
	"github.com/dookiees/bakery-backend/pkg/db/models"
)

// Prefix is the fixed leading segment of every order code.
const Prefix = "DK"

// Format renders a code as <PREFIX>-<YEAR>-<6-digit zero-padded sequence>,
// e.g. DK-2026-000123.
func Format(year, seq int) string {
	return fmt.Sprintf("%s-%d-%06d", Prefix, year, seq)
}

// ParseSequence extracts the numeric suffix from an order code. Malformed
// codes (wrong segment count, non-numeric suffix) report ok=false.
func ParseSequence(code string) (int, bool) {
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		return 0, false
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// Allocator hands out year-scoped sequential order codes. Allocation is an
// atomic increment of a per-year counter row, so concurrent checkouts inside
// separate transactions cannot observe the same sequence value. The unique
// index on orders.order_code remains as a backstop.
type Allocator struct {
	db *gorm.DB
}

// NewAllocator builds an allocator tied to the provided GORM DB.
func NewAllocator(db *gorm.DB) *Allocator {
	return &Allocator{db: db}
}

// WithTx returns an allocator bound to the provided transaction. Callers
// allocating as part of a larger write sequence must use the same
// transaction so the counter increment rolls back with the rest.
func (a *Allocator) WithTx(tx *gorm.DB) *Allocator {
	return &Allocator{db: tx}
}

// Next allocates the next order code for the given year. The first call for
// a year seeds the counter from the most recently created order carrying that
// year's prefix; absent or malformed prior codes start the sequence at 1.
func (a *Allocator) Next(ctx context.Context, year int) (string, error) {
	db := a.db.WithContext(ctx)

	incremented, err := a.increment(db, year)
	if err != nil {
		return "", err
	}
	if !incremented {
		if err := a.seed(db, year); err != nil {
			return "", err
		}
	}

	var counter models.OrderCodeCounter
	if err := db.First(&counter, "year = ?", year).Error; err != nil {
		return "", fmt.Errorf("read order code counter: %w", err)
	}
	return Format(year, int(counter.LastSeq)), nil
}

// Resync advances the counter to the highest sequence already present in the
// orders table for the year. Needed when a code was inserted past the counter
// by something other than the allocator: without the resync every retry would
// re-increment the rolled-back counter to the same colliding sequence. Must
// run outside the failed transaction.
func (a *Allocator) Resync(ctx context.Context, year int) error {
	db := a.db.WithContext(ctx)

	var last models.Order
	err := db.
		Where("order_code LIKE ?", fmt.Sprintf("%s-%d-%%", Prefix, year)).
		Order("order_code DESC").
		First(&last).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find highest order code: %w", err)
	}

	seq, ok := ParseSequence(last.OrderCode)
	if !ok {
		return nil
	}

	result := db.Model(&models.OrderCodeCounter{}).
		Where("year = ? AND last_seq < ?", year, seq).
		Updates(map[string]any{
			"last_seq":   seq,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("resync order code counter: %w", result.Error)
	}
	return nil
}

// increment bumps the counter row in place. Reports false when no row exists
// for the year yet.
func (a *Allocator) increment(db *gorm.DB, year int) (bool, error) {
	result := db.Model(&models.OrderCodeCounter{}).
		Where("year = ?", year).
		Updates(map[string]any{
			"last_seq":   gorm.Expr("last_seq + 1"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("increment order code counter: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// seed creates the counter row for a year, starting one past the highest
// sequence already present in the orders table. A concurrent seeder losing
// the insert race falls back to incrementing the winner's row.
func (a *Allocator) seed(db *gorm.DB, year int) error {
	lastSeq := 0
	var last models.Order
	err := db.
		Where("order_code LIKE ?", fmt.Sprintf("%s-%d-%%", Prefix, year)).
		Order("created_at DESC").
		First(&last).
		Error
	switch {
	case err == nil:
		if seq, ok := ParseSequence(last.OrderCode); ok {
			lastSeq = seq
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return fmt.Errorf("find latest order code: %w", err)
	}

	counter := models.OrderCodeCounter{Year: year, LastSeq: int64(lastSeq + 1)}
	if err := db.Create(&counter).Error; err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			if incremented, incErr := a.increment(db, year); incErr != nil {
				return incErr
			} else if incremented {
				return nil
			}
		}
		return fmt.Errorf("seed order code counter: %w", err)
	}
	return nil
}
