package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for ingestion and recompute
var (
	// InteractionsIngested counts interactions committed, by channel.
	InteractionsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "touchpoint_interactions_ingested_total",
		Help: "Total number of interactions committed",
	}, []string{"channel"})

	// InteractionsSkipped counts events dropped for a missing artist or timestamp.
	InteractionsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "touchpoint_interactions_skipped_total",
		Help: "Total number of events skipped during ingestion",
	})

	// QueueMessagesParsed counts queue messages seen by the consumer, by parse outcome.
	QueueMessagesParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "touchpoint_queue_messages_parsed_total",
		Help: "Total number of queue messages parsed by the consumer",
	}, []string{"outcome"})

	// MirrorFailures counts interaction batches the analytics mirror rejected.
	MirrorFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "touchpoint_mirror_failures_total",
		Help: "Total number of failed interaction mirror writes",
	})

	// SourceFailures counts sources that could not be loaded or ingested.
	SourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "touchpoint_source_failures_total",
		Help: "Total number of failed sources",
	}, []string{"connector"})

	// RecomputeDuration measures recompute latency, by engine.
	RecomputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "touchpoint_recompute_duration_seconds",
		Help:    "Recompute latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"engine"})

	// PipelineRuns counts orchestrator runs, by outcome.
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "touchpoint_pipeline_runs_total",
		Help: "Total number of pipeline runs",
	}, []string{"status"})
)
