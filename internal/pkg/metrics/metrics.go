// Package metrics provides Prometheus metrics for the OpsSight client
// (stream health + REST calls). Names are stable; dashboards rely on them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "opssight"

var (
	// StreamConnected is 1 while the event stream is connected.
	StreamConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_connected",
			Help:      "1 if the event stream connection is established, 0 otherwise.",
		},
	)

	// EventsReceivedTotal counts decoded event envelopes by event type.
	EventsReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_events_received_total",
			Help:      "Total stream events received, by event type.",
		},
		[]string{"type"},
	)

	// EventsDispatchedTotal counts callback invocations.
	EventsDispatchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_events_dispatched_total",
			Help:      "Total subscription callback invocations.",
		},
	)

	// FramesDroppedTotal counts inbound frames dropped, whether malformed
	// or displaced from the full pre-ready buffer.
	FramesDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_frames_dropped_total",
			Help:      "Total inbound frames dropped (decode errors or pre-ready buffer overflow).",
		},
	)

	// CallbackPanicsTotal counts recovered subscriber callback panics.
	CallbackPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_callback_panics_total",
			Help:      "Total subscriber callbacks that panicked and were recovered.",
		},
	)

	// ReconnectsTotal counts reconnection attempts after unclean closes.
	ReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_reconnects_total",
			Help:      "Total reconnection attempts.",
		},
	)

	// APIRequestTotal counts REST calls by method, path, status.
	APIRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total REST API requests by method, path, and status.",
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestDurationSeconds is REST call latency.
	APIRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "REST API request duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 10), // 1ms to ~9.3s
		},
		[]string{"method", "path"},
	)

	// APICacheHitsTotal counts GET response cache hits.
	APICacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_cache_hits_total",
			Help:      "Total REST GET cache hits.",
		},
	)

	// APICacheMissesTotal counts GET response cache misses.
	APICacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_cache_misses_total",
			Help:      "Total REST GET cache misses.",
		},
	)
)
