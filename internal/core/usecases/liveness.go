// internal/core/usecases/liveness.go
package usecases

import (
	"context"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/platform/metrics"
	"byakugan/internal/platform/ui"
)

// LivenessFilter reduce los candidatos a los hosts que responden y
// levanta alertas para los que contienen keywords de alto valor.
type LivenessFilter struct {
	prober    ports.LivenessProber
	keywords  []string
	logger    logx.Logger
	presenter ui.Presenter
	metrics   *metrics.Recorder
}

// LivenessOptions configura el LivenessFilter.
type LivenessOptions struct {
	Prober ports.LivenessProber
	// Keywords vacío usa domain.DefaultKeywords
	Keywords  []string
	Logger    logx.Logger
	Presenter ui.Presenter
	Metrics   *metrics.Recorder
}

// NewLivenessFilter crea un LivenessFilter.
func NewLivenessFilter(opts LivenessOptions) *LivenessFilter {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if len(opts.Keywords) == 0 {
		opts.Keywords = domain.DefaultKeywords
	}
	return &LivenessFilter{
		prober:    opts.Prober,
		keywords:  opts.Keywords,
		logger:    opts.Logger.With("component", "liveness"),
		presenter: opts.Presenter,
		metrics:   opts.Metrics,
	}
}

// Filter retorna los hosts vivos en el orden del prober y las alertas.
// Entrada vacía no invoca al prober. Un fallo del prober equivale a
// "ningún host vivo".
func (f *LivenessFilter) Filter(ctx context.Context, hosts []string) ([]string, []domain.Alert) {
	alerts := make([]domain.Alert, 0)
	if len(hosts) == 0 {
		return []string{}, alerts
	}

	live, err := f.prober.Probe(ctx, hosts)
	if err != nil {
		f.logger.Warn("liveness probe failed", "candidates", len(hosts), "error", err.Error())
		f.presenter.Error("Error running httpx: " + err.Error())
		return []string{}, alerts
	}
	if live == nil {
		live = []string{}
	}

	f.logger.Debug("checking for high-value targets", "live", len(live))
	for _, host := range live {
		kw, ok := domain.MatchKeyword(host, f.keywords)
		if !ok {
			continue
		}
		alerts = append(alerts, domain.Alert{Host: host, Keyword: kw})
		f.logger.Warn("high-value target found", "host", host, "keyword", kw)
		f.presenter.Alert(host, kw)
		f.metrics.ObserveAlert(kw)
	}

	f.logger.Info("liveness probe finished", "candidates", len(hosts), "live", len(live), "alerts", len(alerts))
	return live, alerts
}
