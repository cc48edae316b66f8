// Package garage implements a fixed-capacity pool of lots with
// earliest-availability allocation.
//
// Allocate follows a check-out / evaluate / check-in protocol. The minimal lot
// under lot.Compare is withdrawn from a shared priority queue, evaluated and
// possibly booked while no lock is held, then put back. Only the withdraw and
// the reinsert touch shared state, so callers holding different lots proceed
// in parallel, and at most Capacity callers hold a lot at once.
//
// Because the withdrawn lot is the minimal one left in the queue, a busy
// candidate means every lot is busy: the pool is full. Lots held by other
// callers at that moment were themselves minimal when they left, so they
// cannot be free earlier than the candidate.
package garage

import (
	"context"
	"slices"

	"garage-scheduler/internal/domain/lot"
	"garage-scheduler/internal/pkg/clock"
	"garage-scheduler/internal/pkg/errs"
	"garage-scheduler/internal/pkg/pqueue"

	"go.uber.org/atomic"
)

// FullSentinel is the lot id reported when no lot is free.
const FullSentinel = -1

// Outcome is the result of one Allocate call.
//
// On success LotID is the booked lot and Start the booking start. When the
// pool is full LotID is FullSentinel and Start is the earliest instant a lot
// was expected to free up. That instant is a hint, not a reservation.
type Outcome struct {
	LotID int
	Start lot.Timestamp
}

func (o Outcome) Full() bool { return o.LotID == FullSentinel }

type Stats struct {
	Allocated int64
	Full      int64
	Rejected  int64
}

type Pool struct {
	capacity     int
	historyLimit int
	clock        clock.Clock
	queue        *pqueue.Queue[*lot.Lot]

	allocated atomic.Int64
	full      atomic.Int64
	rejected  atomic.Int64
}

type Option func(*Pool)

func WithClock(c clock.Clock) Option {
	return func(p *Pool) { p.clock = c }
}

// WithHistoryLimit bounds how many booking starts each lot remembers.
func WithHistoryLimit(n int) Option {
	return func(p *Pool) { p.historyLimit = n }
}

// New creates a pool of capacity lots numbered 1..capacity, all free.
// Multiple pools may coexist; each one synchronizes only itself.
func New(capacity int, opts ...Option) (*Pool, error) {
	if capacity <= 0 {
		return nil, errs.Wrapf(errs.ErrInvalidArgument, "capacity %d must be positive", capacity)
	}

	p := &Pool{
		capacity:     capacity,
		historyLimit: lot.DefaultHistoryLimit,
		clock:        clock.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.queue = pqueue.New(capacity, lot.Less)
	for id := 1; id <= capacity; id++ {
		l, err := lot.NewLot(id, p.historyLimit)
		if err != nil {
			return nil, err
		}
		p.queue.Push(l)
	}
	return p, nil
}

// Allocate books the earliest-available lot for durationSec seconds starting now.
//
// Errors: ErrInvalidArgument for a non-positive duration or one whose end
// overflows the timestamp range (no lot is mutated);
// ErrCanceled, wrapping ctx.Err(), if ctx ends while waiting for a lot to be
// reinserted by another caller. Once a lot is withdrawn the call runs to
// completion and the lot is always reinserted.
func (p *Pool) Allocate(ctx context.Context, durationSec int64) (Outcome, error) {
	if durationSec <= 0 {
		p.rejected.Inc()
		return Outcome{}, errs.Wrapf(errs.ErrInvalidArgument, "duration %ds must be positive", durationSec)
	}

	candidate, err := p.queue.Pop(ctx)
	if err != nil {
		return Outcome{}, errs.Mark(errs.Wrap(err, "waiting for a lot"), errs.ErrCanceled)
	}
	defer p.queue.Push(candidate)

	// sampled once the lot is held
	now := lot.Timestamp(p.clock.Now().Unix())
	if !lot.FitsAfter(now, durationSec) {
		p.rejected.Inc()
		return Outcome{}, errs.Wrapf(errs.ErrInvalidArgument, "duration %ds from %d overflows the timestamp range", durationSec, now)
	}

	if next := candidate.QueryAvailability(now); next != lot.Free {
		p.full.Inc()
		return Outcome{LotID: FullSentinel, Start: next}, nil
	}

	if err := candidate.CommitBooking(now, durationSec); err != nil {
		return Outcome{}, err
	}
	p.allocated.Inc()
	return Outcome{LotID: candidate.ID(), Start: now}, nil
}

func (p *Pool) Capacity() int { return p.capacity }

func (p *Pool) Stats() Stats {
	return Stats{
		Allocated: p.allocated.Load(),
		Full:      p.full.Load(),
		Rejected:  p.rejected.Load(),
	}
}

// Snapshot describes the pool at one instant.
// Lots lists only lots resident in the queue, in allocation order; Withdrawn
// counts lots currently held by in-flight Allocate calls.
type Snapshot struct {
	Capacity  int
	Withdrawn int
	Lots      []lot.View
	Stats     Stats
}

// Snapshot reads resident lots under the queue lock. Withdrawn lots are not
// read: their owner may be mutating them.
func (p *Pool) Snapshot() Snapshot {
	views := make([]lot.View, 0, p.capacity)
	p.queue.Range(func(l *lot.Lot) {
		views = append(views, l.Snapshot())
	})
	slices.SortFunc(views, lot.CompareViews)

	return Snapshot{
		Capacity:  p.capacity,
		Withdrawn: p.capacity - len(views),
		Lots:      views,
		Stats:     p.Stats(),
	}
}
