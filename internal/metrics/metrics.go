// Package metrics records generation statistics for the Prometheus textfile collector.
package metrics

import (
	"time"

	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "domaingen"

// Recorder holds the metrics of one process. A nil *Recorder ignores every call.
type Recorder struct {
	registry *prometheus.Registry

	criteria  prometheus.Counter
	ruleFiles prometheus.Counter
	commands  *prometheus.CounterVec
	status    prometheus.Gauge
	duration  *prometheus.HistogramVec
	lastRun   prometheus.Gauge
}

// New creates a Recorder on a private registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		criteria: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "criteria_loaded_total",
			Help:      "Selection criteria loaded from criteria files.",
		}),
		ruleFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_files_loaded_total",
			Help:      "Rule files parsed and propagated.",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_emitted_total",
			Help:      "Builder commands emitted, by verb.",
		}, []string{"verb"}),
		status: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "builder_exit_status",
			Help:      "Exit status of the last builder run.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"stage"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last generation finished.",
		}),
	}
	r.registry.MustRegister(r.criteria, r.ruleFiles, r.commands, r.status, r.duration, r.lastRun)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) CriteriaLoaded(n int) {
	if r == nil {
		return
	}
	r.criteria.Add(float64(n))
}

func (r *Recorder) RuleFilesLoaded(n int) {
	if r == nil {
		return
	}
	r.ruleFiles.Add(float64(n))
}

// CommandEmitted counts one command under its verb.
func (r *Recorder) CommandEmitted(cmd domain.Command) {
	if r == nil {
		return
	}
	r.commands.WithLabelValues(cmd.Verb()).Inc()
}

func (r *Recorder) BuilderStatus(code int) {
	if r == nil {
		return
	}
	r.status.Set(float64(code))
}

// ObserveStage records how long a stage took, measured from start.
func (r *Recorder) ObserveStage(stage string, start time.Time) {
	if r == nil {
		return
	}
	r.duration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Finished stamps the end of a generation.
func (r *Recorder) Finished(t time.Time) {
	if r == nil {
		return
	}
	r.lastRun.Set(float64(t.Unix()))
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
