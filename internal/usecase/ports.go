package usecase

import (
	"context"
	"time"

	"garage-scheduler/internal/domain/garage"
	"garage-scheduler/internal/domain/lot"

	"github.com/google/uuid"
)

// Allocator is the booking surface of a garage.Pool.
type Allocator interface {
	Allocate(ctx context.Context, durationSec int64) (garage.Outcome, error)
	Snapshot() garage.Snapshot
	Capacity() int
}

// BookingEvent is one allocation decision, successful or full.
//
// For a full outcome LotID is garage.FullSentinel and Start is the
// next-available hint.
type BookingEvent struct {
	ID          uuid.UUID
	LotID       int
	Start       lot.Timestamp
	DurationSec int64
	Full        bool
	At          time.Time
}

type AuditTotals struct {
	Booked int64
	Full   int64
}

// AuditLog keeps the booking history outside the lots themselves.
// Recording is best-effort: a failure must not fail the booking.
type AuditLog interface {
	Record(ctx context.Context, ev BookingEvent) error
	// LotHistory returns up to limit booking starts of one lot, newest first.
	LotHistory(ctx context.Context, lotID int, limit int) ([]lot.Timestamp, error)
	Totals(ctx context.Context) (AuditTotals, error)
}
