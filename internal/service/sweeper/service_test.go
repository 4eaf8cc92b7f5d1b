package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/reservation-service/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// memHoldStore хранит холды и реализует батчевое удаление истёкших
type memHoldStore struct {
	mu    sync.Mutex
	holds []*domain.TemporaryHold
	err   error
}

func (s *memHoldStore) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return 0, s.err
	}

	kept := s.holds[:0]
	var removed int64
	for _, h := range s.holds {
		if h.IsBlocked() && h.IsExpired(now) {
			removed++
			continue
		}
		kept = append(kept, h)
	}
	s.holds = kept
	return removed, nil
}

var now = time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

func hold(status domain.HoldStatus, expiresAt time.Time) *domain.TemporaryHold {
	return &domain.TemporaryHold{Status: status, ExpiresAt: expiresAt}
}

func TestSweep_RemovesOnlyExpiredBlockedHolds(t *testing.T) {
	store := &memHoldStore{holds: []*domain.TemporaryHold{
		hold(domain.HoldStatusBlocked, now.Add(-time.Minute)),   // истёк
		hold(domain.HoldStatusBlocked, now),                     // истёк ровно сейчас
		hold(domain.HoldStatusBlocked, now.Add(time.Minute)),    // живой
		hold(domain.HoldStatusConfirmed, now.Add(-time.Minute)), // подтверждён, не трогаем
	}}

	svc := NewService(store, nil, nopLogger{})
	svc.timeProvider = fixedTime{now: now}

	reclaimed, err := svc.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), reclaimed)
	assert.Len(t, store.holds, 2)
}

func TestSweep_SecondRunFindsNothing(t *testing.T) {
	store := &memHoldStore{holds: []*domain.TemporaryHold{
		hold(domain.HoldStatusBlocked, now.Add(-time.Hour)),
	}}

	svc := NewService(store, nil, nopLogger{})
	svc.timeProvider = fixedTime{now: now}

	first, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second)
}

func TestSweep_EmptyStoreIsZero(t *testing.T) {
	svc := NewService(&memHoldStore{}, nil, nopLogger{})
	svc.timeProvider = fixedTime{now: now}

	reclaimed, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, reclaimed)
}

func TestSweep_StorageErrorPropagates(t *testing.T) {
	store := &memHoldStore{err: errors.New("deadlock detected")}
	svc := NewService(store, nil, nopLogger{})
	svc.timeProvider = fixedTime{now: now}

	_, err := svc.Sweep(context.Background())
	assert.Error(t, err)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }
