// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SnapshotLoads counts snapshot resolutions by source: cache, daily,
	// latest, or demo.
	SnapshotLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blitzboat",
		Name:      "snapshot_loads_total",
		Help:      "Snapshot loads by resolved source.",
	}, []string{"source"})

	// UnlockAttempts counts password submissions by outcome.
	UnlockAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blitzboat",
		Name:      "unlock_attempts_total",
		Help:      "Session unlock attempts by result.",
	}, []string{"result"})

	// UpstreamFailures counts failed snapshot candidate fetches.
	UpstreamFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blitzboat",
		Name:      "snapshot_fetch_failures_total",
		Help:      "Failed snapshot candidate fetches (network, status, or parse).",
	})
)
