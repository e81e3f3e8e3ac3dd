package generation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/distill-api/internal/config"
)

// Default retry settings: three attempts, 1s/2s between them.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// Policy bounds a generation call.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the linear backoff unit: the delay after attempt n is n*BaseDelay.
	BaseDelay time.Duration
	// AttemptTimeout bounds each attempt. Zero means no per-attempt bound
	// beyond the caller's context.
	AttemptTimeout time.Duration
}

// DefaultPolicy returns the default retry policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
	}
}

// PolicyFromConfig builds the retry policy described by cfg.
func PolicyFromConfig(cfg config.LLMConfig) Policy {
	return Policy{
		MaxAttempts:    cfg.MaxAttempts,
		BaseDelay:      cfg.RetryDelay(),
		AttemptTimeout: cfg.Timeout(),
	}
}

// Delay returns the backoff after the given 1-based attempt.
func (p Policy) Delay(attempt int) time.Duration {
	return time.Duration(attempt) * p.BaseDelay
}

func (p Policy) maxAttempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Outcome is the result of a retry state transition.
type Outcome int

const (
	// OutcomeSuccess means the last attempt produced a result.
	OutcomeSuccess Outcome = iota
	// OutcomeRetry means another attempt follows after a backoff.
	OutcomeRetry
	// OutcomeExhausted means the last attempt failed and no attempts remain.
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetry:
		return "retry"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// RetryState tracks one generation call. The zero value is the state before
// the first attempt.
type RetryState struct {
	// Attempt is the number of completed attempts.
	Attempt int
	// LastErr is the error from the most recent failed attempt.
	LastErr error
	// Elapsed is the cumulative backoff scheduled so far.
	Elapsed time.Duration
}

// Next returns the state following an attempt that ended with err.
func (p Policy) Next(s RetryState, err error) (RetryState, Outcome) {
	s.Attempt++
	if err == nil {
		return s, OutcomeSuccess
	}
	s.LastErr = err
	if s.Attempt >= p.maxAttempts() {
		return s, OutcomeExhausted
	}
	s.Elapsed += p.Delay(s.Attempt)
	return s, OutcomeRetry
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// ContextSleeper is the default Sleeper backed by a timer.
func ContextSleeper(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AttemptFunc performs a single generation attempt.
type AttemptFunc func(ctx context.Context) (string, error)

// Retrier runs attempts under a Policy.
type Retrier struct {
	policy Policy
	sleep  Sleeper
	logger *slog.Logger
}

// RetrierOption customizes a Retrier.
type RetrierOption func(*Retrier)

// WithSleeper replaces the backoff sleeper.
func WithSleeper(sleep Sleeper) RetrierOption {
	return func(r *Retrier) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// NewRetrier creates a Retrier. A nil logger falls back to slog.Default().
func NewRetrier(policy Policy, logger *slog.Logger, opts ...RetrierOption) *Retrier {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Retrier{
		policy: policy,
		sleep:  ContextSleeper,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the policy the Retrier runs under.
func (r *Retrier) Policy() Policy {
	return r.policy
}

// Do calls fn until it succeeds or the policy is exhausted. No partial result
// is returned on failure. If ctx is done during a backoff, Do stops and the
// returned FailedError joins the context error with the last attempt error.
func (r *Retrier) Do(ctx context.Context, fn AttemptFunc) (string, error) {
	maxAttempts := r.policy.maxAttempts()
	var state RetryState

	for {
		attemptNum := state.Attempt + 1
		r.logger.InfoContext(ctx, "calling generation endpoint",
			"attempt", attemptNum,
			"max_attempts", maxAttempts)

		text, err := r.attempt(ctx, fn)

		next, outcome := r.policy.Next(state, err)
		switch outcome {
		case OutcomeSuccess:
			r.logger.InfoContext(ctx, "generation succeeded", "attempt", next.Attempt)
			return text, nil
		case OutcomeExhausted:
			r.logger.ErrorContext(ctx, "generation attempts exhausted",
				"attempts", next.Attempt,
				"error", next.LastErr)
			return "", &FailedError{Attempts: next.Attempt, Err: next.LastErr}
		}

		delay := r.policy.Delay(next.Attempt)
		r.logger.WarnContext(ctx, "generation attempt failed, retrying after delay",
			"attempt", next.Attempt,
			"error", err,
			"delay_seconds", delay.Seconds())

		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			r.logger.WarnContext(ctx, "generation cancelled during retry delay",
				"attempt", next.Attempt,
				"ctx_err", sleepErr)
			return "", &FailedError{Attempts: next.Attempt, Err: errors.Join(sleepErr, next.LastErr)}
		}
		state = next
	}
}

func (r *Retrier) attempt(ctx context.Context, fn AttemptFunc) (string, error) {
	if r.policy.AttemptTimeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, r.policy.AttemptTimeout)
	defer cancel()
	return fn(attemptCtx)
}
