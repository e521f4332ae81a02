package circuit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errUpstream = errors.New("upstream failed")

func failing() error { return errUpstream }
func passing() error { return nil }

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	b := NewBreaker(Config{Name: "routes", MaxFailures: 2, Timeout: time.Minute})

	assert.Equal(t, errUpstream, b.Execute(failing, nil))
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, errUpstream, b.Execute(failing, nil))
	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	}, nil)
	assert.Equal(t, ErrCircuitOpen, err)
	assert.False(t, called)
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	b := NewBreaker(Config{MaxFailures: 2})

	_ = b.Execute(failing, nil)
	assert.NoError(t, b.Execute(passing, nil))
	_ = b.Execute(failing, nil)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerIgnoresUncountableErrors(t *testing.T) {
	b := NewBreaker(Config{MaxFailures: 1})

	err := b.Execute(failing, func(error) bool { return false })
	assert.Equal(t, errUpstream, err)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerUncountableErrorsKeepFailureCount(t *testing.T) {
	b := NewBreaker(Config{MaxFailures: 2})
	uncountable := func(err error) bool { return err == errUpstream }

	_ = b.Execute(failing, uncountable)
	_ = b.Execute(func() error { return errors.New("bad request") }, uncountable)
	_ = b.Execute(failing, uncountable)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerHalfOpenUncountableErrorKeepsProbing(t *testing.T) {
	now := time.Now()
	b := NewBreaker(Config{MaxFailures: 1, Timeout: time.Second, HalfOpenMax: 1})
	b.now = func() time.Time { return now }
	uncountable := func(err error) bool { return err == errUpstream }

	_ = b.Execute(failing, nil)
	now = now.Add(2 * time.Second)

	errCanceled := errors.New("canceled")
	assert.Equal(t, errCanceled, b.Execute(func() error { return errCanceled }, uncountable))
	assert.Equal(t, StateHalfOpen, b.State())

	// the slot is free again for the next probe
	assert.NoError(t, b.Execute(passing, uncountable))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	now := time.Now()
	var transitions []State

	b := NewBreaker(Config{
		MaxFailures: 1,
		Timeout:     10 * time.Second,
		HalfOpenMax: 1,
		OnStateChange: func(_ string, _, to State) {
			transitions = append(transitions, to)
		},
	})
	b.now = func() time.Time { return now }

	_ = b.Execute(failing, nil)
	assert.Equal(t, StateOpen, b.State())

	now = now.Add(11 * time.Second)
	assert.NoError(t, b.Execute(passing, nil))
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, transitions)
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	now := time.Now()
	b := NewBreaker(Config{MaxFailures: 1, Timeout: time.Second})
	b.now = func() time.Time { return now }

	_ = b.Execute(failing, nil)
	now = now.Add(2 * time.Second)
	_ = b.Execute(failing, nil)

	assert.Equal(t, StateOpen, b.State())
	assert.Equal(t, ErrCircuitOpen, b.Execute(passing, nil))
}

func TestBreakerGroup(t *testing.T) {
	g := NewBreakerGroup(Config{MaxFailures: 1})

	assert.Same(t, g.Get("geocoding"), g.Get("geocoding"))
	_ = g.Get("routes").Execute(failing, nil)

	states := g.States()
	assert.Equal(t, StateClosed, states["geocoding"])
	assert.Equal(t, StateOpen, states["routes"])
}
