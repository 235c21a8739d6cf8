package narrative

import (
	"sync"
	"time"
)

// breaker tracks consecutive generator failures:
// - Open after N consecutive failures; while open, calls short-circuit to the
//   unavailable state without hitting the external service.
// - While open, one probe call is let through per probe interval.
// - Close again after M consecutive successful probes.
type breaker struct {
	mu               sync.Mutex
	state            breakerState
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
	probeInterval    time.Duration
	lastProbe        time.Time
}

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
)

func newBreaker() *breaker {
	return &breaker{
		state:            breakerClosed,
		failureThreshold: 5,
		successThreshold: 2,
		probeInterval:    30 * time.Second,
	}
}

// Allow reports whether a call may proceed, counting open-state probes.
func (b *breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == breakerClosed {
		return true
	}
	if time.Since(b.lastProbe) >= b.probeInterval {
		b.lastProbe = time.Now()
		return true
	}
	return false
}

func (b *breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failureCount++
	b.successCount = 0
	if b.state == breakerClosed && b.failureCount >= b.failureThreshold {
		b.state = breakerOpen
		b.lastProbe = time.Now()
	}
}

func (b *breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == breakerOpen {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = breakerClosed
			b.failureCount = 0
			b.successCount = 0
		}
		return
	}
	b.failureCount = 0
}
