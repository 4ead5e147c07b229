// Package metrics exposes Prometheus counters for the dispatch workflow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage label values.
const (
	StageRender = "render"
	StageLink   = "link"
	StageRelay  = "relay"
)

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

var (
	// DispatchStageTotal counts dispatch stage executions by outcome.
	DispatchStageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caredesk_dispatch_stage_total",
			Help: "Dispatch stage executions by stage and outcome.",
		},
		[]string{"stage", "outcome"},
	)

	// DispatchRejectedTotal counts dispatches rejected by the per-bill
	// in-flight guard.
	DispatchRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "caredesk_dispatch_rejected_total",
			Help: "Dispatch requests rejected because one was already in flight for the bill.",
		},
	)

	// UpstreamRetriesTotal counts retried calls to the rendering and relay
	// services.
	UpstreamRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caredesk_upstream_retries_total",
			Help: "Retry attempts against upstream services.",
		},
		[]string{"service"},
	)
)
