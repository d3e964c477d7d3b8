// Package metrics defines the observability sinks of the marketplace.
//
// Sinks record job submissions, and optionally the latest simulated price and
// fleet composition, for monitoring purposes. Implementations such as the
// Prometheus and InfluxDB sinks live in infra/metrics and register themselves
// in the sink registry; NewMetricsSink builds a MultiSink automatically when
// several sinks are configured.
package metrics
