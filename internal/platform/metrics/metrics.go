// Package metrics collects per-run Prometheus metrics for the recon pipeline.
//
// Byakugan is a one-shot CLI, so nothing is served over HTTP: the registry
// is dumped once at exit in text exposition format when a textfile path is
// configured (node_exporter textfile collector layout).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"byakugan/internal/core/domain"
	"byakugan/internal/platform/errors"
)

const namespace = "byakugan"

// Outcomes de un proveedor o analizador.
const (
	OutcomeOK     = "ok"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// Recorder agrupa las métricas de una corrida.
// Un *Recorder nil es válido y descarta todo.
type Recorder struct {
	registry *prometheus.Registry

	providerRuns     *prometheus.CounterVec
	providerHosts    *prometheus.CounterVec
	stageState       *prometheus.GaugeVec
	stageDuration    *prometheus.HistogramVec
	analyzerAttempts *prometheus.CounterVec
	analysisRecords  *prometheus.CounterVec
	alerts           *prometheus.CounterVec
}

// New crea un Recorder con un registry propio (nunca el global).
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	r := &Recorder{
		registry: reg,
		providerRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enumeration",
			Name:      "provider_runs_total",
			Help:      "Subdomain provider invocations by outcome.",
		}, []string{"provider", "outcome"}),
		providerHosts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enumeration",
			Name:      "provider_hosts_total",
			Help:      "Hosts returned by each subdomain provider before dedup.",
		}, []string{"provider"}),
		stageState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_state",
			Help:      "1 for the current resume state of each stage.",
		}, []string{"stage", "state"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent executing a stage.",
			Buckets:   []float64{0.1, 1, 5, 15, 60, 300, 900, 3600},
		}, []string{"stage"}),
		analyzerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "analyzer_attempts_total",
			Help:      "Analyzer calls by outcome.",
		}, []string{"analyzer", "outcome"}),
		analysisRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "records_total",
			Help:      "Analysis records produced, by source.",
		}, []string{"source"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "liveness",
			Name:      "alerts_total",
			Help:      "High-value keyword alerts raised for live hosts.",
		}, []string{"keyword"}),
	}

	reg.MustRegister(
		r.providerRuns,
		r.providerHosts,
		r.stageState,
		r.stageDuration,
		r.analyzerAttempts,
		r.analysisRecords,
		r.alerts,
	)
	return r
}

// Registry expone el registry subyacente.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveProvider registra el resultado de un proveedor de subdominios.
func (r *Recorder) ObserveProvider(provider string, hosts int, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeFailed
	case hosts == 0:
		outcome = OutcomeEmpty
	}
	r.providerRuns.WithLabelValues(provider, outcome).Inc()
	r.providerHosts.WithLabelValues(provider).Add(float64(hosts))
}

// SetStageState marca el estado actual de una fase; los demás estados quedan en 0.
func (r *Recorder) SetStageState(stage domain.Stage, state domain.StageState) {
	if r == nil {
		return
	}
	for _, s := range []domain.StageState{domain.StatePending, domain.StateLoaded, domain.StateCompleted} {
		v := 0.0
		if s == state {
			v = 1
		}
		r.stageState.WithLabelValues(stage.String(), s.String()).Set(v)
	}
}

// ObserveStageDuration registra el tiempo de ejecución de una fase.
func (r *Recorder) ObserveStageDuration(stage domain.Stage, d time.Duration) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage.String()).Observe(d.Seconds())
}

// ObserveAnalyzer registra un intento de análisis.
func (r *Recorder) ObserveAnalyzer(analyzer domain.AnalysisSource, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	r.analyzerAttempts.WithLabelValues(analyzer.String(), outcome).Inc()
}

// ObserveRecord cuenta un registro final del reporte.
func (r *Recorder) ObserveRecord(source domain.AnalysisSource) {
	if r == nil {
		return
	}
	r.analysisRecords.WithLabelValues(source.String()).Inc()
}

// ObserveAlert cuenta una alerta de keyword.
func (r *Recorder) ObserveAlert(keyword string) {
	if r == nil {
		return
	}
	r.alerts.WithLabelValues(keyword).Inc()
}

// WriteTextfile vuelca el registry en formato de exposición de texto.
// Path vacío no hace nada.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(err, "write metrics textfile %s", path)
	}
	return nil
}
