package services

import (
	"sort"
	"sync"
	"time"
)

// SystemClock reads the wall clock
type SystemClock struct{}

// Now implements Clock
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant
type FixedClock struct {
	At time.Time
}

// Now implements Clock
func (c FixedClock) Now() time.Time { return c.At }

// TimerScheduler schedules callbacks on the runtime timer
type TimerScheduler struct{}

// AfterFunc implements Scheduler
func (TimerScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler fires callbacks only when Advance moves its clock past
// their deadline.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	owner    *ManualScheduler
	deadline time.Duration
	f        func()
	done     bool
}

// NewManualScheduler creates a scheduler at time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{owner: s, deadline: s.now + d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves time forward and runs every callback now due, in deadline
// order. Callbacks run without the scheduler lock held.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTimer
	remaining := s.pending[:0]
	for _, t := range s.pending {
		if t.done {
			continue
		}
		if t.deadline <= s.now {
			t.done = true
			due = append(due, t)
			continue
		}
		remaining = append(remaining, t)
	}
	s.pending = remaining
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline < due[j].deadline })
	for _, t := range due {
		t.f()
	}
}

// Pending returns the number of callbacks that have neither fired nor been
// stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.done {
			n++
		}
	}
	return n
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}
