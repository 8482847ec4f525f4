// Package datadog implements a DogStatsD backend for the metrics package.
//
// It adapts the generic metrics.Backend interface to Datadog's statsd
// protocol: labels become "key:value" tags, counters map to Count and
// duration observations to Histogram. Everything Datadog-specific stays in
// this package; the compiler core only sees metrics.Backend and can swap to
// the Pushgateway backend without other changes.
package datadog

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"

	"surveygen/internal/metrics"
)

// Config holds the DogStatsD client settings.
type Config struct {
	// Addr is the DogStatsD address, e.g. "127.0.0.1:8125" or
	// "unix:///var/run/datadog/dsd.socket".
	Addr string

	// Namespace prefixes every metric name, e.g. "surveygen.".
	Namespace string

	// GlobalTags are attached to every metric, e.g.
	// []string{"env:prod", "service:surveygen"}.
	GlobalTags []string

	// SampleRate thins high-volume metrics agent-side; 0 means 1 (send all).
	// Compile runs emit few metrics, so sampling is normally left off.
	SampleRate float64
}

// Backend forwards metrics to a Datadog agent. Install it globally with
// metrics.SetBackend.
type Backend struct {
	client *statsd.Client
	rate   float64
}

// NewBackend connects a DogStatsD client per cfg. Addr is required.
func NewBackend(cfg Config) (*Backend, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("datadog: Addr is required")
	}

	var opts []statsd.Option
	if cfg.Namespace != "" {
		opts = append(opts, statsd.WithNamespace(cfg.Namespace))
	}
	if len(cfg.GlobalTags) > 0 {
		opts = append(opts, statsd.WithTags(cfg.GlobalTags))
	}
	c, err := statsd.New(cfg.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("datadog: create client: %w", err)
	}

	rate := cfg.SampleRate
	if rate == 0 {
		rate = 1
	}
	return &Backend{client: c, rate: rate}, nil
}

// IncCounter implements metrics.Backend. Fractional deltas are truncated;
// the compiler only emits whole counts.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	if b.client == nil {
		return
	}
	b.client.Count(name, int64(delta), labelsToTags(labels), b.rate)
}

// ObserveHistogram implements metrics.Backend.
func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if b.client == nil {
		return
	}
	b.client.Histogram(name, value, labelsToTags(labels), b.rate)
}

// Flush implements metrics.Backend. The statsd client flushes buffered data
// on Close, which is the right shutdown behavior for a short-lived compile
// run.
func (b *Backend) Flush() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

func labelsToTags(lbls metrics.Labels) []string {
	if len(lbls) == 0 {
		return nil
	}
	tags := make([]string, 0, len(lbls))
	for k, v := range lbls {
		tags = append(tags, k+":"+v)
	}
	return tags
}
