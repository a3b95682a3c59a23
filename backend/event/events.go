package event

import (
	"context"
	"log/slog"
	"time"
)

type Event interface {
	Event()
}

type QuestionAskedEvent struct {
	InteractionID string
	Kind          string
}

func (QuestionAskedEvent) Event() {}

type QuestionResolvedEvent struct {
	InteractionID string
	Kind          string
	Outcome       string
	Reason        string
	Duration      time.Duration
}

func (QuestionResolvedEvent) Event() {}

type Sink interface {
	Publish(ctx context.Context, e Event)
}

// Sinks fans an event out to every sink in order.
type Sinks []Sink

func (s Sinks) Publish(ctx context.Context, e Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Publish(ctx, e)
		}
	}
}

type NopSink struct{}

func (NopSink) Publish(context.Context, Event) {}

type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Publish(ctx context.Context, e Event) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch e := e.(type) {
	case QuestionAskedEvent:
		logger.InfoContext(ctx, "question asked", "interaction_id", e.InteractionID, "kind", e.Kind)
	case QuestionResolvedEvent:
		attrs := []any{"interaction_id", e.InteractionID, "kind", e.Kind, "outcome", e.Outcome, "duration", e.Duration}
		if e.Reason != "" {
			attrs = append(attrs, "reason", e.Reason)
		}
		if e.Outcome == "failed" || e.Outcome == "anomalous" {
			logger.WarnContext(ctx, "question resolved", attrs...)
			return
		}
		logger.InfoContext(ctx, "question resolved", attrs...)
	}
}

var (
	_ Sink = Sinks(nil)
	_ Sink = NopSink{}
	_ Sink = LogSink{}
)
