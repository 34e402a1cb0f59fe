package session

import (
	"delivery-emissions-service/internal/domain"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()

	s := r.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, r.Delete(s.ID))
	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, r.Delete(s.ID), domain.ErrSessionNotFound)
}

func TestSessionsAreIsolated(t *testing.T) {
	r := NewRegistry()
	a, b := r.Create(), r.Create()
	assert.NotEqual(t, a.ID, b.ID)

	require.NoError(t, a.With(func(l *domain.SessionLedger) error {
		l.Append(domain.DeliveryRecord{StartLocation: "A"})
		return nil
	}))

	var n int
	require.NoError(t, b.With(func(l *domain.SessionLedger) error {
		n = l.Len()
		return nil
	}))
	assert.Zero(t, n)
}

func TestWithSerializesWriters(t *testing.T) {
	s := NewRegistry().Create()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With(func(l *domain.SessionLedger) error {
				l.Append(domain.DeliveryRecord{})
				return nil
			})
		}()
	}
	wg.Wait()

	_ = s.With(func(l *domain.SessionLedger) error {
		assert.Equal(t, 50, l.Len())
		return nil
	})
}

func TestSweepDropsIdleSessions(t *testing.T) {
	r := NewRegistry()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	old := r.Create()
	now = now.Add(2 * time.Hour)
	fresh := r.Create()

	assert.Equal(t, 1, r.Sweep(time.Hour))
	_, err := r.Get(old.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = r.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestSweepDoesNotWaitOnBusySession(t *testing.T) {
	r := NewRegistry()
	busy, other := r.Create(), r.Create()

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = busy.With(func(l *domain.SessionLedger) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered
	defer close(release)

	done := make(chan int, 1)
	go func() { done <- r.Sweep(time.Hour) }()

	select {
	case n := <-done:
		assert.Zero(t, n)
	case <-time.After(time.Second):
		t.Fatal("Sweep blocked on a session held by With")
	}

	got, err := r.Get(other.ID)
	require.NoError(t, err)
	assert.Same(t, other, got)
}

func TestInUseSessionIsNotSwept(t *testing.T) {
	r := NewRegistry()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	s := r.Create()
	now = now.Add(3 * time.Hour)
	require.NoError(t, s.With(func(*domain.SessionLedger) error { return nil }))

	assert.Zero(t, r.Sweep(time.Hour))
	_, err := r.Get(s.ID)
	assert.NoError(t, err)
}
