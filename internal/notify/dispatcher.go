package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rejoyj/Resume-Filter/internal/models"
)

// Retry schedule for transient transport failures. Validation failures are
// never retried.
const (
	DefaultConcurrency  = 4
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = 500 * time.Millisecond
)

// Transport delivers one message to one recipient. Implementations report
// transient failures as *models.TransportError so the dispatcher retries
// them.
type Transport interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Failure records one recipient the job could not reach.
type Failure struct {
	Address string `json:"address"`
	Reason  string `json:"reason"`
}

// Result aggregates per-recipient outcomes for one job.
type Result struct {
	JobID     string    `json:"job_id"`
	State     State     `json:"state"`
	Succeeded []string  `json:"succeeded"`
	Failed    []Failure `json:"failed"`
}

// Dispatcher fans a job's sends out over a bounded worker pool. Each
// recipient resolves independently; one failure never aborts the rest.
type Dispatcher struct {
	transport    Transport
	concurrency  int
	maxAttempts  int
	initialDelay time.Duration
	log          *zap.Logger
}

// NewDispatcher creates a dispatcher. Zero values fall back to the package
// defaults.
func NewDispatcher(transport Transport, concurrency, maxAttempts int, initialDelay time.Duration, log *zap.Logger) *Dispatcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if initialDelay <= 0 {
		initialDelay = DefaultInitialDelay
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		transport:    transport,
		concurrency:  concurrency,
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
		log:          log,
	}
}

// Send validates the job and dispatches to every recipient. A validation
// failure leaves the job in Draft and issues zero network calls.
// Cancellation stops issuing new sends; already-completed sends stand, and
// the job still reaches a terminal state.
func (d *Dispatcher) Send(ctx context.Context, job *Job) (*Result, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	job.state = StateSending

	recipients := job.Recipients()
	result := &Result{JobID: job.ID}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(d.concurrency)

	for _, to := range recipients {
		g.Go(func() error {
			// Cancellation gate: do not start a send after abort.
			select {
			case <-ctx.Done():
				mu.Lock()
				result.Failed = append(result.Failed, Failure{Address: to, Reason: "cancelled before dispatch"})
				mu.Unlock()
				return nil
			default:
			}

			err := d.sendWithRetry(ctx, to, job.Subject, job.Body)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, Failure{Address: to, Reason: err.Error()})
				d.log.Warn("recipient send failed", zap.String("job", job.ID), zap.String("to", to), zap.Error(err))
			} else {
				result.Succeeded = append(result.Succeeded, to)
			}
			return nil
		})
	}
	g.Wait()

	switch {
	case len(result.Failed) == 0:
		job.state = StateCompleted
	case len(result.Succeeded) == 0:
		job.state = StateFailed
	default:
		job.state = StatePartiallyFailed
	}
	result.State = job.state

	d.log.Info("notification job finished",
		zap.String("job", job.ID),
		zap.String("state", string(job.state)),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// sendWithRetry attempts one recipient up to maxAttempts times with
// exponential backoff. Only transport failures are retried.
func (d *Dispatcher) sendWithRetry(ctx context.Context, to, subject, body string) error {
	delay := d.initialDelay
	var lastErr error

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		lastErr = d.transport.Send(ctx, to, subject, body)
		if lastErr == nil {
			return nil
		}

		var transportErr *models.TransportError
		if !errors.As(lastErr, &transportErr) {
			return lastErr
		}
		if attempt == d.maxAttempts {
			break
		}

		d.log.Debug("retrying recipient",
			zap.String("to", to),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return lastErr
}
