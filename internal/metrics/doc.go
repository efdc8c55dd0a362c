// Package metrics records build metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	b := site.NewBuilder(cfg, out).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// Builds are one-shot processes, so the Prometheus recorder is exported with
// WriteTextfile for the node exporter's textfile collector rather than served.
package metrics
