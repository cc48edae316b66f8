package audit

import (
	"context"
	"slices"
	"sync"

	"garage-scheduler/internal/domain/lot"
	"garage-scheduler/internal/usecase"
)

// MemoryLog does not expire anything; per-lot history is capped instead.
type MemoryLog struct {
	mu           sync.Mutex
	totals       usecase.AuditTotals
	byLot        map[int][]lot.Timestamp // oldest first
	historyLimit int
}

type MemoryOption func(*MemoryLog)

func WithMemoryHistoryLimit(n int) MemoryOption {
	return func(m *MemoryLog) {
		if n > 0 {
			m.historyLimit = n
		}
	}
}

func NewMemoryLog(opts ...MemoryOption) *MemoryLog {
	m := &MemoryLog{
		byLot:        make(map[int][]lot.Timestamp),
		historyLimit: 1000,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryLog) Record(_ context.Context, ev usecase.BookingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.Full {
		m.totals.Full++
		return nil
	}
	m.totals.Booked++

	h := append(m.byLot[ev.LotID], ev.Start)
	if over := len(h) - m.historyLimit; over > 0 {
		h = slices.Delete(h, 0, over)
	}
	m.byLot[ev.LotID] = h
	return nil
}

func (m *MemoryLog) LotHistory(_ context.Context, lotID int, limit int) ([]lot.Timestamp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.byLot[lotID]
	n := len(h)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]lot.Timestamp, 0, n)
	for i := len(h) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h[i])
	}
	return out, nil
}

func (m *MemoryLog) Totals(_ context.Context) (usecase.AuditTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals, nil
}
