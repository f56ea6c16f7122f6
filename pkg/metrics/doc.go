/*
Package metrics provides Prometheus metrics collection and exposition for
the forum core: entity counts, pipeline backpressure, durable-log append
and replay timing, and per-operation outcome counters. Metrics are exposed
via an HTTP endpoint for scraping by Prometheus servers.

# Metrics Catalog

Entity Metrics:

forumcore_entities_total{kind}:
  - Type: Gauge
  - Description: Live entities by kind (user, thread, message, tag,
    category, comment, privateMessage, attachment)
  - Example: forumcore_entities_total{kind="thread"} 1204

Pipeline Metrics:

forumcore_pipeline_queue_depth:
  - Type: Gauge
  - Description: Blobs currently buffered in the append pipeline

forumcore_pipeline_queue_full_total:
  - Type: Counter
  - Description: Times a producer found the queue at capacity

Persistence Metrics:

forumcore_appender_frames_total, forumcore_appender_bytes_total,
forumcore_appender_rotations_total:
  - Type: Counter
  - Description: Durable-log write volume and file rotation count

forumcore_append_duration_seconds:
  - Type: Histogram
  - Description: Time to append and fsync a batch of frames

Replay Metrics:

forumcore_replay_frames_total:
  - Type: Counter
  - Description: Frames applied during startup replay

forumcore_replay_duration_seconds:
  - Type: Histogram
  - Description: Time to replay the full durable log on startup

Operation Metrics:

forumcore_operations_total{event, status}:
  - Type: Counter
  - Description: Repository operations by event type and status code

forumcore_operation_duration_seconds{event}:
  - Type: Histogram
  - Description: Repository operation duration by event type

forumcore_votes_cast_total{direction}:
  - Type: Counter
  - Description: Votes cast by direction (up, down, reset)

# Usage

	import "github.com/forumkit/forumcore/pkg/metrics"

	metrics.EntitiesTotal.WithLabelValues("thread").Set(1204)
	metrics.VotesCastTotal.WithLabelValues("up").Inc()

	timer := metrics.NewTimer()
	// ... append a batch ...
	timer.ObserveDuration(metrics.AppendDuration)

	http.Handle("/metrics", metrics.Handler())

# Design Patterns

Metrics are registered once at package init via MustRegister. Collector
polls entity counts and pipeline depth on a ticker rather than hooking
every mutation site, matching how this package's lineage samples cluster
state rather than instrumenting every call site. Label cardinality stays
low: entity kind, event type, vote direction — never an id or a
timestamp.

# See Also

  - Prometheus client library: https://github.com/prometheus/client_golang
  - Histogram best practices: https://prometheus.io/docs/practices/histograms/
*/
package metrics
