package prompush

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"surveygen/internal/metrics"
)

func gatherFamily(t *testing.T, b *Backend, name string) *dto.MetricFamily {
	t.Helper()
	families, err := b.reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func labelValue(m *dto.Metric, key string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == key {
			return lp.GetValue()
		}
	}
	return ""
}

/*
TestBackend_CounterRouting verifies the name-based routing from the generic
backend interface onto the registered collectors, including the label subset
each collector keeps.
*/
func TestBackend_CounterRouting(t *testing.T) {
	b, err := NewBackend("tastestudy", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	b.IncCounter("surveygen_step_total", 1, metrics.Labels{
		"job": "tastestudy", "step": "assemble", "status": "success",
	})
	b.IncCounter("surveygen_questions_total", 42, metrics.Labels{
		"job": "tastestudy", "kind": "questions",
	})
	b.IncCounter("surveygen_translation_mismatches_total", 1, metrics.Labels{
		"job": "tastestudy", "language": "de", "action": "repaired",
	})
	b.IncCounter("surveygen_documents_total", 1, metrics.Labels{
		"job": "tastestudy", "session": "last", "language": "it",
	})
	b.IncCounter("surveygen_unknown_metric", 1, nil) // silently dropped

	steps := gatherFamily(t, b, "surveygen_step_total")
	if steps == nil || len(steps.GetMetric()) != 1 {
		t.Fatalf("step family = %+v", steps)
	}
	m := steps.GetMetric()[0]
	if m.GetCounter().GetValue() != 1 || labelValue(m, "step") != "assemble" || labelValue(m, "status") != "success" {
		t.Errorf("step metric = %+v", m)
	}

	questions := gatherFamily(t, b, "surveygen_questions_total")
	if got := questions.GetMetric()[0].GetCounter().GetValue(); got != 42 {
		t.Errorf("questions = %v, want 42", got)
	}

	mismatches := gatherFamily(t, b, "surveygen_translation_mismatches_total")
	m = mismatches.GetMetric()[0]
	if labelValue(m, "language") != "de" || labelValue(m, "action") != "repaired" {
		t.Errorf("mismatch metric = %+v", m)
	}

	docs := gatherFamily(t, b, "surveygen_documents_total")
	m = docs.GetMetric()[0]
	if labelValue(m, "session") != "last" || labelValue(m, "language") != "it" {
		t.Errorf("document metric = %+v", m)
	}

	if mf := gatherFamily(t, b, "surveygen_unknown_metric"); mf != nil {
		t.Errorf("unknown metric registered: %+v", mf)
	}
}

func TestBackend_DurationSummary(t *testing.T) {
	b, err := NewBackend("tastestudy", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	lbls := metrics.Labels{"step": "load", "status": "success"}
	b.ObserveHistogram("surveygen_step_duration_seconds", 0.5, lbls)
	b.ObserveHistogram("surveygen_step_duration_seconds", 1.5, lbls)
	b.ObserveHistogram("surveygen_other_duration_seconds", 9, lbls) // dropped

	mf := gatherFamily(t, b, "surveygen_step_duration_seconds")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatalf("duration family = %+v", mf)
	}
	sum := mf.GetMetric()[0].GetSummary()
	if sum.GetSampleCount() != 2 || sum.GetSampleSum() != 2.0 {
		t.Errorf("summary = count %d sum %v, want 2 / 2.0", sum.GetSampleCount(), sum.GetSampleSum())
	}
}

func TestNewBackend_RequiresURL(t *testing.T) {
	if _, err := NewBackend("tastestudy", ""); err == nil {
		t.Fatal("expected error for empty gateway URL")
	}
}
