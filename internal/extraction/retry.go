package extraction

import (
	"context"
	"time"
)

const (
	defaultMaxRetries        = 3
	defaultInitialDelay      = 1 * time.Second
	defaultMaxDelay          = 5 * time.Second
	defaultBackoffMultiplier = 2.0
)

// RetryConfig bounds the extract-and-validate retry loop.
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the stock policy: 3 attempts, 1s initial delay
// doubling per attempt, capped at 5s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        defaultMaxRetries,
		InitialDelay:      defaultInitialDelay,
		MaxDelay:          defaultMaxDelay,
		BackoffMultiplier: defaultBackoffMultiplier,
	}
}

// TableData is the validated output of one successful extraction attempt.
type TableData struct {
	Rows   [][]string
	Stats  Stats
	RawCSV string
}

// Attempt records one try within the loop. Ephemeral: aggregated into the
// RetryResult, logged by the caller, then discarded.
type Attempt struct {
	Number   int
	Success  bool
	Err      error
	Kind     FailureKind
	Duration time.Duration
}

// RetryResult is the controller's structured outcome, success or not, with
// the full attempt history.
type RetryResult struct {
	Success  bool
	Data     *TableData
	Attempts []Attempt
	LastErr  error
}

// TotalAttempts returns how many attempts were made.
func (r RetryResult) TotalAttempts() int {
	return len(r.Attempts)
}

// Operation is one extract-and-validate call. hints carries the accumulated
// prompt adjustments; lastErr restates the previous attempt's failure so the
// prompt can include it.
type Operation func(ctx context.Context, hints []string, lastErr error) (*TableData, error)

// Controller wraps an Operation in a bounded, exponentially-backed-off retry
// loop, classifying each failure to adjust the next prompt. Pure over
// (operation, config): no persistent state changes happen here.
type Controller struct {
	cfg   RetryConfig
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithSleeper overrides how backoff sleeps are performed, for tests.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) ControllerOption {
	return func(c *Controller) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

func NewController(cfg RetryConfig, opts ...ControllerOption) *Controller {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = defaultInitialDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}
	if cfg.BackoffMultiplier <= 1 {
		cfg.BackoffMultiplier = defaultBackoffMultiplier
	}

	c := &Controller{
		cfg:   cfg,
		sleep: sleepWithContext,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunWithRetry attempts op up to MaxRetries times. On failure it classifies
// the error, appends the matching prompt adjustment to the hint list, waits
// the current backoff delay, and tries again. The attempt history is
// returned either way.
func (c *Controller) RunWithRetry(ctx context.Context, op Operation) RetryResult {
	result := RetryResult{}
	var hints []string
	var lastErr error

	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		started := c.now()
		data, err := op(ctx, hints, lastErr)
		elapsed := c.now().Sub(started)

		if err == nil {
			result.Attempts = append(result.Attempts, Attempt{
				Number:   attempt,
				Success:  true,
				Duration: elapsed,
			})
			result.Success = true
			result.Data = data
			return result
		}

		kind := ClassifyFailure(err)
		result.Attempts = append(result.Attempts, Attempt{
			Number:   attempt,
			Err:      err,
			Kind:     kind,
			Duration: elapsed,
		})
		lastErr = err

		if hint := AdjustmentFor(kind); hint != "" {
			hints = appendHint(hints, hint)
		}

		if attempt == c.cfg.MaxRetries {
			break
		}
		if err := c.sleep(ctx, c.delay(attempt)); err != nil {
			result.LastErr = err
			return result
		}
	}

	result.LastErr = lastErr
	return result
}

// delay computes the backoff before the attempt following the given 1-based
// attempt number: initial * multiplier^(attempt-1), capped at MaxDelay.
func (c *Controller) delay(attempt int) time.Duration {
	d := float64(c.cfg.InitialDelay)
	for i := 1; i < attempt; i++ {
		d *= c.cfg.BackoffMultiplier
		if time.Duration(d) >= c.cfg.MaxDelay {
			return c.cfg.MaxDelay
		}
	}
	if time.Duration(d) > c.cfg.MaxDelay {
		return c.cfg.MaxDelay
	}
	return time.Duration(d)
}

func appendHint(hints []string, hint string) []string {
	for _, h := range hints {
		if h == hint {
			return hints
		}
	}
	return append(hints, hint)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
