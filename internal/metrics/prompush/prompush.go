// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// This package adapts the generic metrics.Backend interface to Prometheus by:
//
//   - Using client_golang counter and summary collectors.
//   - Mapping the compiler's labels (step, status, kind, language, ...) onto
//     Prometheus labels.
//   - Pushing collected metrics to a Prometheus Pushgateway instance instead
//     of exposing an HTTP scrape endpoint; the compiler is a short-lived
//     batch process, so there is nothing to scrape.
//
// The package intentionally contains all Prometheus-specific dependencies so
// that the rest of the project remains decoupled from Prometheus and can swap
// to alternative backends (e.g. Datadog) without changes to the compiler core.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"surveygen/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stepCounter  *prometheus.CounterVec // "surveygen_step_total"
	stepDuration *prometheus.SummaryVec // "surveygen_step_duration_seconds"

	questionCounter *prometheus.CounterVec // "surveygen_questions_total"
	mismatchCounter *prometheus.CounterVec // "surveygen_translation_mismatches_total"
	documentCounter *prometheus.CounterVec // "surveygen_documents_total"
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name (usually the configured compile job).
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "surveygen"
	}

	reg := prometheus.NewRegistry()

	// job is the Pushgateway grouping key; the remaining label dimensions are
	// dynamic per metric.
	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surveygen_step_total",
			Help: "Total number of compile step executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "surveygen_step_duration_seconds",
			Help:       "Duration of compile steps in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)
	questionCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surveygen_questions_total",
			Help: "Question-level counts per kind (rows, questions, pages, triggers).",
		},
		[]string{"kind"},
	)
	mismatchCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surveygen_translation_mismatches_total",
			Help: "Translation-consistency findings, partitioned by language and action.",
		},
		[]string{"language", "action"},
	)
	documentCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surveygen_documents_total",
			Help: "Compiled survey documents, partitioned by session and language.",
		},
		[]string{"session", "language"},
	)

	if err := reg.Register(stepCounter); err != nil {
		return nil, fmt.Errorf("prompush: register step counter: %w", err)
	}
	if err := reg.Register(stepDuration); err != nil {
		return nil, fmt.Errorf("prompush: register step summary: %w", err)
	}
	if err := reg.Register(questionCounter); err != nil {
		return nil, fmt.Errorf("prompush: register question counter: %w", err)
	}
	if err := reg.Register(mismatchCounter); err != nil {
		return nil, fmt.Errorf("prompush: register mismatch counter: %w", err)
	}
	if err := reg.Register(documentCounter); err != nil {
		return nil, fmt.Errorf("prompush: register document counter: %w", err)
	}

	return &Backend{
		gatewayURL:      gatewayURL,
		jobName:         jobName,
		reg:             reg,
		stepCounter:     stepCounter,
		stepDuration:    stepDuration,
		questionCounter: questionCounter,
		mismatchCounter: mismatchCounter,
		documentCounter: documentCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "surveygen_step_total":
		if b.stepCounter == nil {
			return
		}
		b.stepCounter.WithLabelValues(labels["step"], labels["status"]).Add(delta)

	case "surveygen_questions_total":
		if b.questionCounter == nil {
			return
		}
		b.questionCounter.WithLabelValues(labels["kind"]).Add(delta)

	case "surveygen_translation_mismatches_total":
		if b.mismatchCounter == nil {
			return
		}
		b.mismatchCounter.WithLabelValues(labels["language"], labels["action"]).Add(delta)

	case "surveygen_documents_total":
		if b.documentCounter == nil {
			return
		}
		b.documentCounter.WithLabelValues(labels["session"], labels["language"]).Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "surveygen_step_duration_seconds" || b.stepDuration == nil {
		return
	}
	b.stepDuration.WithLabelValues(labels["step"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
