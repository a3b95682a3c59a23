package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"github.com/furisto/ask/backend/event"
	"github.com/furisto/ask/backend/question"
)

// Surface presents a dialog to the user. Present feeds user events into the
// dialog and returns once it is resolved, the user closed the surface, or
// ctx is done.
type Surface interface {
	Present(ctx context.Context, d *Dialog) error
}

type SurfaceFunc func(ctx context.Context, d *Dialog) error

func (f SurfaceFunc) Present(ctx context.Context, d *Dialog) error {
	return f(ctx, d)
}

// errTimedOut is the cancellation cause of the collector's own timeout.
var errTimedOut = errors.New("question timed out")

type CollectorOption func(*Collector)

func WithTimeout(timeout time.Duration) CollectorOption {
	return func(c *Collector) {
		c.timeout = timeout
	}
}

func WithAttachmentLoader(loader *AttachmentLoader) CollectorOption {
	return func(c *Collector) {
		c.loader = loader
	}
}

func WithEventSink(sink event.Sink) CollectorOption {
	return func(c *Collector) {
		c.sink = sink
	}
}

func WithLogger(logger *slog.Logger) CollectorOption {
	return func(c *Collector) {
		c.logger = logger
	}
}

// Collector runs one question at a time through a Surface and blocks the
// caller until the interaction is resolved.
type Collector struct {
	surface Surface
	loader  *AttachmentLoader
	timeout time.Duration
	sink    event.Sink
	logger  *slog.Logger

	slot chan struct{}
}

func NewCollector(surface Surface, opts ...CollectorOption) *Collector {
	c := &Collector{
		surface: surface,
		sink:    event.NopSink{},
		logger:  slog.Default(),
		slot:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.loader == nil {
		c.loader = NewAttachmentLoader(nil, 0)
	}

	return c
}

// Collect presents q and returns its answer. It never panics and never
// returns nil; internal faults become Failed.
func (c *Collector) Collect(ctx context.Context, q *question.Question) Answer {
	select {
	case c.slot <- struct{}{}:
	case <-ctx.Done():
		return Failed{Detail: fmt.Sprintf("waiting for the previous question: %v", ctx.Err())}
	}
	defer func() { <-c.slot }()

	interactionID := uuid.NewString()
	kind := ""
	if q != nil {
		kind = q.Kind.String()
	}

	logger := c.logger.With("interaction_id", interactionID, "kind", kind)
	c.sink.Publish(ctx, event.QuestionAskedEvent{InteractionID: interactionID, Kind: kind})
	start := time.Now()

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeoutCause(ctx, c.timeout, errTimedOut)
		defer cancel()
	}

	d := New(q, c.loader)
	result := make(chan Answer, 1)
	go func() {
		result <- c.run(runCtx, d, logger)
	}()
	answer := <-result

	resolved := event.QuestionResolvedEvent{
		InteractionID: interactionID,
		Kind:          kind,
		Outcome:       answer.String(),
		Duration:      time.Since(start),
	}
	if cancelled, ok := answer.(Cancelled); ok {
		resolved.Reason = cancelled.Reason.String()
	}
	c.sink.Publish(ctx, resolved)

	return answer
}

func (c *Collector) run(ctx context.Context, d *Dialog, logger *slog.Logger) (answer Answer) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			logger.Error("question dialog panicked", "panic", r)
			d.Fail(fmt.Sprintf("internal error: %v", r))
			answer = d.Resolve()
		}
	}()

	if err := d.Render(); err != nil {
		d.Fail(fmt.Sprintf("failed to render question: %v", err))
		return d.Resolve()
	}

	err := c.surface.Present(ctx, d)
	if _, resolved := d.Answer(); !resolved {
		switch {
		case errors.Is(context.Cause(ctx), errTimedOut):
			d.Cancel(ReasonTimeout)
		case ctx.Err() != nil:
			d.Fail(fmt.Sprintf("interaction aborted: %v", ctx.Err()))
		case err != nil:
			d.Fail(fmt.Sprintf("question dialog failed: %v", err))
		}
	} else if err != nil {
		logger.Warn("surface reported an error after the question was resolved", "error", err)
	}

	answer = d.Resolve()
	if cancelled, ok := answer.(Cancelled); ok && cancelled.Anomalous() {
		logger.Warn("question dialog closed without an answer or a cancel reason")
	}

	return answer
}
