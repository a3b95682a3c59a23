package event

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

type MetricsSink struct {
	questions *prometheus.CounterVec
	answers   *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

func NewMetricsSink(registry prometheus.Registerer) (*MetricsSink, error) {
	sink := &MetricsSink{
		questions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ask_questions_total",
			Help: "Questions presented to the user.",
		}, []string{"kind"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ask_answers_total",
			Help: "Resolved questions by outcome.",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ask_interaction_duration_seconds",
			Help:    "Time from presenting a question until it was resolved.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}, []string{"kind"}),
	}

	for _, collector := range []prometheus.Collector{sink.questions, sink.answers, sink.duration} {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return sink, nil
}

func (s *MetricsSink) Publish(_ context.Context, e Event) {
	switch e := e.(type) {
	case QuestionAskedEvent:
		s.questions.WithLabelValues(e.Kind).Inc()
	case QuestionResolvedEvent:
		s.answers.WithLabelValues(e.Kind, e.Outcome).Inc()
		s.duration.WithLabelValues(e.Kind).Observe(e.Duration.Seconds())
	}
}

var _ Sink = (*MetricsSink)(nil)
