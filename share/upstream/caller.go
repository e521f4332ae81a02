// Package upstream wraps calls to the external mapping and prediction
// services with a per-attempt timeout, a circuit breaker per endpoint,
// bounded retries for idempotent calls, and tally metrics.
package upstream

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/medi-route/triage-api/share/circuit"
)

const (
	logPrefix = "upstream"

	defaultTimeout = 5 * time.Second
	defaultBackoff = 200 * time.Millisecond
)

// ErrPermanent marks an error that retrying cannot fix, such as a 4xx
// response or an undecodable body.
var ErrPermanent = errors.New("permanent upstream error")

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }
func (e *permanentError) Is(target error) bool {
	return target == ErrPermanent
}

// Permanent wraps err so that it is neither retried nor counted by the breaker.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Config of a Caller
type Config struct {
	Timeout     time.Duration
	Attempts    int
	Backoff     time.Duration
	MaxFailures int
	OpenTimeout time.Duration
}

// Caller executes upstream calls
type Caller struct {
	timeout  time.Duration
	attempts int
	backoff  time.Duration
	breakers *circuit.BreakerGroup
	scope    tally.Scope
}

// NewCaller returns a Caller reporting to scope. A nil scope disables metrics.
func NewCaller(cfg Config, scope tally.Scope) *Caller {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = defaultBackoff
	}
	if scope == nil {
		scope = tally.NoopScope
	}

	return &Caller{
		timeout:  cfg.Timeout,
		attempts: cfg.Attempts,
		backoff:  cfg.Backoff,
		breakers: circuit.NewBreakerGroup(circuit.Config{
			MaxFailures: cfg.MaxFailures,
			Timeout:     cfg.OpenTimeout,
			OnStateChange: func(name string, from, to circuit.State) {
				log.WithFields(log.Fields{
					"prefix":   logPrefix,
					"endpoint": name,
					"from":     from.String(),
					"to":       to.String(),
				}).Warn("circuit state changed")
			},
		}),
		scope: scope.SubScope("upstream"),
	}
}

// Breakers exposes the breaker states for health reporting.
func (c *Caller) Breakers() map[string]circuit.State {
	return c.breakers.States()
}

// Do runs fn once, under the per-attempt timeout.
func (c *Caller) Do(ctx context.Context, endpoint string, fn func(ctx context.Context) error) error {
	return c.call(ctx, endpoint, 1, fn)
}

// DoIdempotent runs fn and retries it with exponential backoff on
// transient failure.
func (c *Caller) DoIdempotent(ctx context.Context, endpoint string, fn func(ctx context.Context) error) error {
	return c.call(ctx, endpoint, c.attempts, fn)
}

func (c *Caller) call(ctx context.Context, endpoint string, attempts int, fn func(ctx context.Context) error) error {
	scope := c.scope.Tagged(map[string]string{"endpoint": endpoint})
	breaker := c.breakers.Get(endpoint)

	var err error
	wait := c.backoff
	for attempt := 1; attempt <= attempts; attempt++ {
		scope.Counter("calls").Inc(1)
		sw := scope.Timer("latency").Start()

		err = breaker.Execute(func() error {
			attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()
			return fn(attemptCtx)
		}, countable)
		sw.Stop()

		if err == nil {
			return nil
		}

		scope.Counter("errors").Inc(1)
		log.WithFields(log.Fields{
			"prefix":   logPrefix,
			"endpoint": endpoint,
			"attempt":  attempt,
		}).WithError(err).Warn("upstream call failed")

		if !retryable(err) || attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}

	return err
}

func countable(err error) bool {
	return !errors.Is(err, ErrPermanent) && !errors.Is(err, context.Canceled)
}

func retryable(err error) bool {
	if errors.Is(err, ErrPermanent) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, circuit.ErrCircuitOpen) || errors.Is(err, circuit.ErrTooManyRequests) {
		return false
	}
	return true
}
