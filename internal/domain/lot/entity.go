package lot

import (
	"math"
	"slices"

	"garage-scheduler/internal/pkg/errs"
)

// Timestamp is an instant in unix seconds.
//
// Free (0) is reserved: QueryAvailability returns it for a lot that can be
// booked now, whether it was never booked or its last window has elapsed.
// It is never interpreted as the real instant 1970-01-01T00:00:00Z.
type Timestamp int64

// Free is the availability of a lot that can be booked now.
const Free Timestamp = 0

// DefaultHistoryLimit applies when NewLot gets a non-positive limit.
const DefaultHistoryLimit = 64

// Lot is one bookable unit of a garage.
//
// A lot is not safe for concurrent use. Its state is mutated only by the
// goroutine that currently holds it withdrawn from the garage's queue.
type Lot struct {
	id            int
	nextAvailable Timestamp
	history       []Timestamp
	historyLimit  int
}

// NewLot returns a free lot with no history. id must be positive.
func NewLot(id, historyLimit int) (*Lot, error) {
	if id <= 0 {
		return nil, errs.Wrapf(errs.ErrInvalidArgument, "lot id %d must be positive", id)
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Lot{id: id, historyLimit: historyLimit}, nil
}

// QueryAvailability returns NextAvailable if the lot is still busy at now,
// or Free if it can be booked at now.
func (l *Lot) QueryAvailability(now Timestamp) Timestamp {
	if l.nextAvailable > now {
		return l.nextAvailable
	}
	return Free
}

// CommitBooking reserves the lot for durationSec seconds starting at start.
// start is the wall time the caller sampled; history entries before it are
// dropped and the newest historyLimit entries are kept.
func (l *Lot) CommitBooking(start Timestamp, durationSec int64) error {
	if durationSec <= 0 {
		return errs.Wrapf(errs.ErrInvalidArgument, "duration %ds must be positive", durationSec)
	}
	if !FitsAfter(start, durationSec) {
		return errs.Wrapf(errs.ErrInvalidArgument, "duration %ds from %d overflows the timestamp range", durationSec, start)
	}
	if busyUntil := l.QueryAvailability(start); busyUntil != Free {
		return errs.Wrapf(errs.ErrInvalidState, "lot %d is busy until %d, cannot book at %d", l.id, busyUntil, start)
	}

	l.history = slices.DeleteFunc(l.history, func(ts Timestamp) bool { return ts < start })
	l.history = append(l.history, start)
	if over := len(l.history) - l.historyLimit; over > 0 {
		l.history = slices.Delete(l.history, 0, over)
	}
	l.nextAvailable = start + Timestamp(durationSec)
	return nil
}

// FitsAfter reports whether start+durationSec is representable as a Timestamp.
func FitsAfter(start Timestamp, durationSec int64) bool {
	return durationSec <= math.MaxInt64-int64(start)
}

// ID is the lot's number in its garage, 1..capacity.
func (l *Lot) ID() int { return l.id }

// NextAvailable is the end of the latest booking, or Free if never booked.
func (l *Lot) NextAvailable() Timestamp { return l.nextAvailable }

// HistoryLimit is the number of booking starts the lot keeps.
func (l *Lot) HistoryLimit() int { return l.historyLimit }

// History returns a copy of the recorded booking starts, oldest first.
func (l *Lot) History() []Timestamp {
	return slices.Clone(l.history)
}

// View is an immutable copy of a lot's state.
type View struct {
	ID            int
	NextAvailable Timestamp
	History       []Timestamp
}

func (l *Lot) Snapshot() View {
	return View{
		ID:            l.id,
		NextAvailable: l.nextAvailable,
		History:       l.History(),
	}
}
