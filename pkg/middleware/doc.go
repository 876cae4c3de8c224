// Package middleware wraps the dispatch of work onto a reactive app with
// observability.
//
// A Dispatch is one unit of work: a browser event delivered by the live
// host, or a benchmark action timed by the bench runner. Handlers process a
// Dispatch and Middleware decorates handlers:
//
//	h := middleware.Chain(apply,
//	    middleware.Recover(logger),
//	    middleware.OpenTelemetry(),
//	    metrics.Middleware(),
//	)
//
// # OpenTelemetry
//
// OpenTelemetry starts a span per dispatch named "reactor.<kind>.<name>"
// with the session id, target node and produced operation count. The
// tracer comes from the global provider.
//
// # Prometheus
//
// Metrics collects:
//   - reactor_dispatch_total: dispatches by kind, name and status
//   - reactor_dispatch_duration_seconds: dispatch duration histogram
//   - reactor_dispatch_errors_total: failed dispatches by error type
//   - reactor_ops_sent_total: tree operations sent to clients
//   - reactor_active_sessions: current live sessions
//   - reactor_list_pass_seconds: keyed list reconciliation duration
//   - reactor_list_rows_total: rows created, moved and removed by lists
//   - reactor_websocket_errors_total: WebSocket errors by type
package middleware
