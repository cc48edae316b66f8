package limiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeNow) Add(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newFakeNow() *fakeNow {
	return &fakeNow{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestStore_Allow(t *testing.T) {
	t.Run("burst is admitted then denied with retry hint", func(t *testing.T) {
		now := newFakeNow()
		s := NewStore(1, 2, WithNow(now.Now))

		ok, _ := s.Allow("10.0.0.1")
		assert.True(t, ok)
		ok, _ = s.Allow("10.0.0.1")
		assert.True(t, ok)

		ok, retry := s.Allow("10.0.0.1")
		assert.False(t, ok)
		assert.Equal(t, time.Second, retry)
	})

	t.Run("denied request does not consume a token", func(t *testing.T) {
		now := newFakeNow()
		s := NewStore(1, 1, WithNow(now.Now))

		ok, _ := s.Allow("k")
		require.True(t, ok)
		for range 3 {
			ok, _ = s.Allow("k")
			require.False(t, ok)
		}

		now.Add(time.Second)
		ok, _ = s.Allow("k")
		assert.True(t, ok)
	})

	t.Run("retry hint rounds up to whole seconds", func(t *testing.T) {
		now := newFakeNow()
		s := NewStore(0.4, 1, WithNow(now.Now))

		ok, _ := s.Allow("k")
		require.True(t, ok)

		ok, retry := s.Allow("k")
		assert.False(t, ok)
		assert.Equal(t, 3*time.Second, retry)
	})

	t.Run("keys are independent", func(t *testing.T) {
		now := newFakeNow()
		s := NewStore(1, 1, WithNow(now.Now))

		ok, _ := s.Allow("a")
		require.True(t, ok)
		ok, _ = s.Allow("b")
		assert.True(t, ok)
		assert.Equal(t, 2, s.Len())
	})
}

func TestStore_Get(t *testing.T) {
	s := NewStore(5, 10)

	lim := s.Get("k")
	assert.Same(t, lim, s.Get("k"))
	assert.Equal(t, 10, lim.Burst())
	assert.InDelta(t, 5.0, s.RPS(), 1e-9)
	assert.Equal(t, 10, s.Burst())
}

func TestStore_Cleanup(t *testing.T) {
	now := newFakeNow()
	s := NewStore(1, 1, WithNow(now.Now), WithIdleTTL(time.Minute))

	s.Get("old")
	now.Add(45 * time.Second)
	s.Get("fresh")
	now.Add(30 * time.Second)

	s.Cleanup()

	assert.Equal(t, 1, s.Len())
	s.mu.Lock()
	_, ok := s.entries["fresh"]
	s.mu.Unlock()
	assert.True(t, ok)
}

func TestStore_StartJanitor(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("removes idle keys until stopped", func(t *testing.T) {
		now := newFakeNow()
		s := NewStore(1, 1,
			WithNow(now.Now),
			WithIdleTTL(time.Minute),
			WithCleanupEvery(5*time.Millisecond),
		)
		s.Get("idle")
		now.Add(2 * time.Minute)

		ctx, cancel := context.WithCancel(context.Background())
		s.StartJanitor(ctx)

		require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
		cancel()
	})

	t.Run("disabled janitor starts nothing", func(t *testing.T) {
		s := NewStore(1, 1, WithCleanupEvery(0))
		s.StartJanitor(context.Background())
	})
}
