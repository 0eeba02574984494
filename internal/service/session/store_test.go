package session

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/chat"
	"github.com/sarahkali/oracle/backend/internal/model/profile"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return NewStore(DefaultIdleTTL, WithClock(clock.Now)), clock
}

func TestGetCreatesStartSession(t *testing.T) {
	store, clock := newTestStore()

	s := store.Get("5511999990000")
	require.Equal(t, chat.StageStart, s.Stage)
	require.Nil(t, s.Service)
	require.False(t, s.PaymentConfirmed)
	require.Equal(t, clock.Now(), s.LastActivity)
	require.Equal(t, 1, store.Len())
}

func TestUpdateMergesAndRefreshesActivity(t *testing.T) {
	store, clock := newTestStore()
	svc := catalog.Seed()[1]

	store.Get("u1")
	clock.Advance(10 * time.Minute)
	store.Update("u1", func(s *chat.Session) {
		s.Stage = chat.StageAwaitingPayment
		s.Service = &svc
	})

	got := store.Get("u1")
	require.Equal(t, chat.StageAwaitingPayment, got.Stage)
	require.Equal(t, "numerologia", got.Service.ID)
	require.Equal(t, clock.Now(), got.LastActivity)
}

func TestExpiredSessionStartsOver(t *testing.T) {
	store, clock := newTestStore()
	svc := catalog.Seed()[2]

	store.Update("u1", func(s *chat.Session) {
		s.Stage = chat.StagePaymentConfirmed
		s.Service = &svc
		s.PaymentConfirmed = true
	})

	clock.Advance(DefaultIdleTTL - time.Second)
	require.Equal(t, chat.StagePaymentConfirmed, store.Get("u1").Stage)

	clock.Advance(DefaultIdleTTL + time.Second)
	got := store.Get("u1")
	require.Equal(t, chat.StageStart, got.Stage)
	require.Nil(t, got.Service)
	require.False(t, got.PaymentConfirmed)
}

func TestResetClearsSelection(t *testing.T) {
	store, _ := newTestStore()
	svc := catalog.Seed()[1]
	store.Update("u1", func(s *chat.Session) {
		s.Stage = chat.StagePaymentConfirmed
		s.Service = &svc
		s.PaymentConfirmed = true
		s.Asked = profile.FieldName
	})

	got := store.Reset("u1")
	require.Equal(t, chat.StageStart, got.Stage)
	require.Nil(t, got.Service)
	require.False(t, got.PaymentConfirmed)
	require.Equal(t, profile.FieldNone, got.Asked)
}

func TestSweepEvictsOnlyIdleSessions(t *testing.T) {
	store, clock := newTestStore()
	store.Get("old")
	clock.Advance(90 * time.Minute)
	store.Get("fresh")
	clock.Advance(40 * time.Minute)

	require.Equal(t, 1, store.Sweep(clock.Now()))
	require.Equal(t, 1, store.Len())
}

func TestLockSerialisesSameUser(t *testing.T) {
	store, _ := newTestStore()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := store.Lock("u1")
			defer unlock()

			v := counter
			runtime.Gosched()
			counter = v + 1
		}()
	}
	wg.Wait()

	require.Equal(t, 50, counter)
	store.mu.Lock()
	require.Empty(t, store.locks, "per-user locks are released")
	store.mu.Unlock()
}

func TestLockDistinctUsersDoNotBlock(t *testing.T) {
	store, _ := newTestStore()

	unlockA := store.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := store.Lock("b")
		unlock()
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for another user blocked")
	}
}

func TestRunJanitorStopsOnCancel(t *testing.T) {
	store := NewStore(time.Millisecond)
	store.Get("u1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.RunJanitor(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
