package resilience

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// ErrOpen is returned by Do while the breaker refuses calls.
var ErrOpen = errors.New("resilience: circuit open")

// State is a breaker state.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half_open"
	}
	return "unknown"
}

// Options configures a Breaker.
type Options struct {
	// Target labels metrics and logs, e.g. "paper_stocks".
	Target string
	// MinRequests is the number of outcomes observed before the failure
	// ratio is evaluated.
	MinRequests int
	// FailureRatio opens the breaker once reached.
	FailureRatio float64
	// Cooldown is how long the breaker stays open before a probe.
	Cooldown time.Duration
	Logger   zerolog.Logger
	// IsFailure classifies errors returned by guarded calls. Nil counts every
	// non-nil error.
	IsFailure func(error) bool
}

// Breaker is a failure-ratio circuit breaker. While open it fails calls
// immediately; after the cooldown a single probe decides whether to close.
type Breaker struct {
	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
	probing   bool
	opts      Options
	now       func() time.Time
}

// NewBreaker returns a closed breaker.
func NewBreaker(opts Options) *Breaker {
	if opts.MinRequests <= 0 {
		opts.MinRequests = 10
	}
	if opts.FailureRatio <= 0 || opts.FailureRatio > 1 {
		opts.FailureRatio = 0.5
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = 15 * time.Second
	}
	opts.Target = strings.TrimSpace(opts.Target)
	if opts.Target == "" {
		opts.Target = "default"
	}
	b := &Breaker{opts: opts, now: time.Now}
	observeState(b.opts.Target, Closed)
	return b
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Do runs fn unless the breaker is open. A nil Breaker always runs fn.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if b == nil {
		return fn(ctx)
	}
	if !b.allow(ctx) {
		return ErrOpen
	}
	err := fn(ctx)
	b.report(ctx, err == nil || !b.failure(err))
	return err
}

func (b *Breaker) failure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if b.opts.IsFailure != nil {
		return b.opts.IsFailure(err)
	}
	return true
}

func (b *Breaker) allow(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Open:
		if b.now().Sub(b.openedAt) < b.opts.Cooldown {
			return false
		}
		b.transition(ctx, HalfOpen)
		b.probing = true
		return true
	case HalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true
	}
	return true
}

func (b *Breaker) report(ctx context.Context, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Open:
		return
	case HalfOpen:
		b.probing = false
		if success {
			b.transition(ctx, Closed)
		} else {
			b.transition(ctx, Open)
		}
		return
	}

	if success {
		b.successes++
	} else {
		b.failures++
	}
	total := b.failures + b.successes
	if total < b.opts.MinRequests {
		return
	}
	if float64(b.failures)/float64(total) >= b.opts.FailureRatio {
		b.transition(ctx, Open)
		return
	}
	// halve the window so old outcomes fade
	if total >= b.opts.MinRequests*2 {
		b.successes /= 2
		b.failures /= 2
	}
}

func (b *Breaker) transition(ctx context.Context, next State) {
	prev := b.state
	b.state = next
	b.failures, b.successes = 0, 0
	if next == Open {
		b.openedAt = b.now()
	}
	observeState(b.opts.Target, next)
	observeTransition(b.opts.Target, prev, next)

	evt := b.opts.Logger.Warn()
	if next == Closed {
		evt = b.opts.Logger.Info()
	}
	evt = evt.Str("target", b.opts.Target).Str("from_state", prev.String()).Str("to_state", next.String())
	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		evt = evt.Str("trace_id", span.TraceID().String())
	}
	evt.Msg("breaker transition")
}

// Backoff doubles base for every attempt after the first, caps the result at
// max (when positive) and spreads it by ±jitter (a fraction).
func Backoff(base, max time.Duration, attempt int, jitter float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if base <= 0 {
		base = time.Second
	}
	if attempt > 30 {
		attempt = 30
	}
	d := base << uint(attempt-1)
	if max > 0 && (d > max || d <= 0) {
		d = max
	}
	if jitter <= 0 {
		return d
	}
	delta := (rand.Float64()*2 - 1) * jitter * float64(d)
	return d + time.Duration(delta)
}
