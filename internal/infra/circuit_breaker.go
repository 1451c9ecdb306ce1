package infra

import (
	"errors"
	"sync"
	"time"
)

// Circuit breaker guarding the reverse-geocoding service
// (Closed → Open → Half-Open). While open, lookups fast-fail and attendance
// records are written without an address.

// BreakerState is the current breaker position.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // normal — requests flow
	BreakerOpen                         // tripped — fast-fail all requests
	BreakerHalfOpen                     // probing — one request allowed
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBreakerOpen is returned when Execute is called while the breaker is open.
var ErrBreakerOpen = errors.New("circuit breaker is open")

// Breaker trips open after maxFailures consecutive failures, probes again
// after openTimeout, and closes after two successful probes.
type Breaker struct {
	mu          sync.Mutex
	state       BreakerState
	failures    int
	probeWins   int
	lastFailure time.Time
	maxFailures int
	openTimeout time.Duration
}

const breakerProbeWinsToClose = 2

func NewBreaker(maxFailures int, openTimeout time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if openTimeout <= 0 {
		openTimeout = time.Minute
	}
	return &Breaker{state: BreakerClosed, maxFailures: maxFailures, openTimeout: openTimeout}
}

// State returns the current position, moving open → half-open once the
// open timeout has elapsed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BreakerOpen && time.Since(b.lastFailure) >= b.openTimeout {
		b.state = BreakerHalfOpen
		b.probeWins = 0
	}
	return b.state
}

// Execute runs fn through the breaker, returning ErrBreakerOpen immediately
// when open.
func (b *Breaker) Execute(fn func() error) error {
	if b.State() == BreakerOpen {
		return ErrBreakerOpen
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.recordFailure()
		return err
	}
	b.recordSuccess()
	return nil
}

// recordFailure must be called under b.mu.
func (b *Breaker) recordFailure() {
	b.failures++
	b.lastFailure = time.Now()

	switch b.state {
	case BreakerClosed:
		if b.failures >= b.maxFailures {
			b.state = BreakerOpen
			b.probeWins = 0
		}
	case BreakerHalfOpen:
		// Probe failed — back to open
		b.state = BreakerOpen
		b.failures = 0
	}
}

// recordSuccess must be called under b.mu.
func (b *Breaker) recordSuccess() {
	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		b.probeWins++
		if b.probeWins >= breakerProbeWinsToClose {
			b.state = BreakerClosed
			b.failures = 0
			b.probeWins = 0
		}
	}
}
