// internal/core/usecases/analysis_chain.go
package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/errors"
	"byakugan/internal/platform/logx"
	"byakugan/internal/platform/metrics"
	"byakugan/internal/platform/ui"
)

// DefaultPacingDelay es la espera después de cada host analizado.
const DefaultPacingDelay = time.Second

// AnalysisChain produce exactamente un AnalysisRecord por host probando
// los analizadores en orden; el primero que responde gana.
type AnalysisChain struct {
	analyzers []ports.Analyzer
	pacing    time.Duration
	wait      func(ctx context.Context, d time.Duration) error
	logger    logx.Logger
	presenter ui.Presenter
	metrics   *metrics.Recorder
}

// AnalysisOptions configura la cadena.
type AnalysisOptions struct {
	// Analyzers en orden de preferencia
	Analyzers []ports.Analyzer

	// PacingDelay tras cada host, incluido el último. 0 desactiva la espera.
	PacingDelay time.Duration

	Logger    logx.Logger
	Presenter ui.Presenter
	Metrics   *metrics.Recorder
}

// NewAnalysisChain crea la cadena de fallback.
func NewAnalysisChain(opts AnalysisOptions) *AnalysisChain {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.PacingDelay < 0 {
		opts.PacingDelay = 0
	}
	return &AnalysisChain{
		analyzers: opts.Analyzers,
		pacing:    opts.PacingDelay,
		wait:      sleepContext,
		logger:    opts.Logger.With("component", "analysis"),
		presenter: opts.Presenter,
		metrics:   opts.Metrics,
	}
}

// Names retorna la cadena configurada.
func (c *AnalysisChain) Names() []string {
	names := make([]string, 0, len(c.analyzers))
	for _, a := range c.analyzers {
		names = append(names, a.Name().String())
	}
	return names
}

// Analyze recorre hosts en orden y retorna el reporte (mismo orden que la
// entrada) y los registros high-risk. Si ctx se cancela retorna lo
// analizado hasta ese momento; el caller decide no persistirlo.
func (c *AnalysisChain) Analyze(ctx context.Context, hosts []string) (domain.AnalysisReport, []domain.AnalysisRecord) {
	report := make(domain.AnalysisReport, 0, len(hosts))
	if len(hosts) == 0 {
		return report, report.HighRisk()
	}

	c.logger.Info("running analysis", "hosts", len(hosts), "chain", strings.Join(c.Names(), ","))

	for i, host := range hosts {
		if ctx.Err() != nil {
			break
		}

		rec := c.AnalyzeHost(ctx, host)
		report = append(report, rec)
		c.metrics.ObserveRecord(rec.Source)

		if rec.Source == domain.SourceUnscored {
			c.presenter.Warning(fmt.Sprintf("[%d/%d] %s: all analyzers failed", i+1, len(hosts), host))
		} else {
			c.presenter.Info(fmt.Sprintf("[%d/%d] %s: %s risk (%s)",
				i+1, len(hosts), host, strings.ToUpper(string(rec.RiskLevel)), rec.Source))
		}

		if err := c.wait(ctx, c.pacing); err != nil {
			break
		}
	}

	high := report.HighRisk()
	c.logger.Info("analysis finished", "analyzed", len(report), "high_risk", len(high))
	return report, high
}

// AnalyzeHost aplica la cadena a un solo host. Nunca falla: sin respuesta
// válida retorna el registro unscored.
func (c *AnalysisChain) AnalyzeHost(ctx context.Context, host string) domain.AnalysisRecord {
	for _, analyzer := range c.analyzers {
		if ctx.Err() != nil {
			break
		}

		partial, err := analyzer.Analyze(ctx, host)
		if err == nil && partial == nil {
			err = errors.Mark(errors.New("empty analysis"), domain.ErrSchemaMismatch)
		}
		c.metrics.ObserveAnalyzer(analyzer.Name(), err)

		if err != nil {
			if errors.Is(err, domain.ErrProviderDisabled) {
				c.logger.Debug("analyzer disabled", "analyzer", analyzer.Name(), "host", host)
			} else {
				c.logger.Warn("analyzer failed", "analyzer", analyzer.Name(), "host", host, "error", err.Error())
			}
			continue
		}

		return domain.Normalize(host, analyzer.Name(), partial)
	}

	c.logger.Warn("all analyzers failed", "host", host)
	return domain.UnscoredRecord(host)
}

// sleepContext espera d o hasta que ctx se cancele.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
