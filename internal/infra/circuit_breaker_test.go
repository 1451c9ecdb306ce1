package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

func failN(b *Breaker, n int) {
	for i := 0; i < n; i++ {
		_ = b.Execute(func() error { return errUpstream })
	}
}

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	b := NewBreaker(3, time.Minute)
	assert.Equal(t, BreakerClosed, b.State())

	failN(b, 2)
	assert.Equal(t, BreakerClosed, b.State())

	failN(b, 1)
	assert.Equal(t, BreakerOpen, b.State())

	// While open, Execute fast-fails without calling fn
	called := false
	err := b.Execute(func() error { called = true; return nil })
	assert.Equal(t, ErrBreakerOpen, err)
	assert.False(t, called)
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b := NewBreaker(3, time.Minute)

	failN(b, 2)
	require.NoError(t, b.Execute(func() error { return nil }))
	// The streak broke: two more failures are not enough to trip
	failN(b, 2)
	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreakerProbesAfterTimeout(t *testing.T) {
	b := NewBreaker(1, 20*time.Millisecond)
	failN(b, 1)
	require.Equal(t, BreakerOpen, b.State())

	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, BreakerHalfOpen, b.State())

	// Failed probe re-opens
	failN(b, 1)
	assert.Equal(t, BreakerOpen, b.State())
}

func TestBreakerClosesAfterTwoProbeWins(t *testing.T) {
	b := NewBreaker(1, 10*time.Millisecond)
	failN(b, 1)
	time.Sleep(15 * time.Millisecond)
	require.Equal(t, BreakerHalfOpen, b.State())

	require.NoError(t, b.Execute(func() error { return nil }))
	assert.Equal(t, BreakerHalfOpen, b.State())

	require.NoError(t, b.Execute(func() error { return nil }))
	assert.Equal(t, BreakerClosed, b.State())
}
