// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the survey compiler.
//
// The package is intentionally minimal and opinionated:
//
//   - It exposes a narrow interface (Backend) focused on counters and timing
//     data.
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured.
//   - It mirrors the answers-store abstraction pattern used elsewhere in the
//     project: the rest of the codebase depends only on this interface while
//     concrete metric systems stay isolated in subpackages.
//
// The primary use case is instrumentation of compile runs (rows normalized,
// questions generated, translation mismatches found and repaired) without
// coupling the compiler core to Prometheus or Datadog.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
// It is intentionally generic so we can plug in Prometheus, Datadog, etc.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures one pipeline step: latency plus success/failure.
// Typical steps are "load", "normalize", "filter", "randomize", "assemble"
// and "write".
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter("surveygen_step_total", 1, lbls)
	backend.ObserveHistogram("surveygen_step_duration_seconds", d.Seconds(), lbls)
}

// RecordQuestions increments a question-level counter for the given job and
// kind.
//
// Typical kinds mirror the compile summary fields, e.g.:
//   - "rows"       (normalized layout rows)
//   - "questions"  (generated question nodes)
//   - "pages"
//   - "triggers"
func RecordQuestions(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("surveygen_questions_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordMismatch counts one translation-consistency finding for a language,
// and whether it was repaired (full compile) or only reported (validation).
func RecordMismatch(job, language string, repaired bool) {
	action := "reported"
	if repaired {
		action = "repaired"
	}
	backend.IncCounter("surveygen_translation_mismatches_total", 1, Labels{
		"job":      job,
		"language": language,
		"action":   action,
	})
}

// RecordDocuments increments the compiled-documents counter for the given
// session and language.
func RecordDocuments(job, session, language string) {
	backend.IncCounter("surveygen_documents_total", 1, Labels{
		"job":      job,
		"session":  session,
		"language": language,
	})
}
