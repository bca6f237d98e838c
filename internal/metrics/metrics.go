// Package metrics exposes Prometheus counters for the video pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Submissions *prometheus.CounterVec
	Lookups     *prometheus.CounterVec
	Published   *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "videoshelf",
			Name:      "video_submissions_total",
			Help:      "Video form submissions by outcome.",
		}, []string{"outcome"}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "videoshelf",
			Name:      "video_lookups_total",
			Help:      "Video detail lookups by result.",
		}, []string{"result"}),
		Published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "videoshelf",
			Name:      "video_events_published_total",
			Help:      "video.created events sent to the broker, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.Submissions, m.Lookups, m.Published)
	return m
}

// Submission counts one form submission under outcome.
func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// Lookup records a detail lookup; found is false for misses.
func (m *Metrics) Lookup(found bool) {
	if m == nil {
		return
	}
	result := "found"
	if !found {
		result = "not_found"
	}
	m.Lookups.WithLabelValues(result).Inc()
}

func (m *Metrics) Publish(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Published.WithLabelValues(result).Inc()
}
