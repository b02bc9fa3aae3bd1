// internal/core/usecases/aggregator.go
package usecases

import (
	"context"
	"fmt"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/platform/metrics"
	"byakugan/internal/platform/ui"
)

// Aggregator ejecuta los proveedores de subdominios en orden fijo y une
// sus resultados. Un proveedor que falla no contribuye nada y no afecta
// a los demás.
type Aggregator struct {
	providers []ports.SubdomainProvider
	dedupe    *DedupeService
	logger    logx.Logger
	presenter ui.Presenter
	metrics   *metrics.Recorder
}

// AggregatorOptions configura el Aggregator.
type AggregatorOptions struct {
	// Providers en el orden de ejecución (subfinder, assetfinder, amass, crtsh)
	Providers []ports.SubdomainProvider
	Logger    logx.Logger
	Presenter ui.Presenter
	Metrics   *metrics.Recorder
}

// NewAggregator crea un Aggregator.
func NewAggregator(opts AggregatorOptions) *Aggregator {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	return &Aggregator{
		providers: opts.Providers,
		dedupe:    NewDedupeService(),
		logger:    opts.Logger.With("component", "aggregator"),
		presenter: opts.Presenter,
		metrics:   opts.Metrics,
	}
}

// Names retorna los nombres de los proveedores en orden.
func (a *Aggregator) Names() []string {
	names := make([]string, 0, len(a.providers))
	for _, p := range a.providers {
		names = append(names, p.Name())
	}
	return names
}

// Enumerate consulta cada proveedor en secuencia y retorna la unión
// deduplicada, ordenada ascendente. Nunca falla: sin contribuciones el
// resultado es una lista vacía. Solo la cancelación de ctx corta el bucle.
func (a *Aggregator) Enumerate(ctx context.Context, target domain.Target) []string {
	results := make([][]string, 0, len(a.providers))
	contributing := 0

	for _, provider := range a.providers {
		if ctx.Err() != nil {
			a.logger.Warn("enumeration interrupted", "remaining_from", provider.Name())
			break
		}

		name := provider.Name()
		hosts, err := provider.Enumerate(ctx, target)
		a.metrics.ObserveProvider(name, len(hosts), err)

		if err != nil {
			a.logger.Warn(fmt.Sprintf("[-] %s not found or failed", name), "error", err.Error())
			a.presenter.ProviderResult(name, ui.StatusError, 0)
			continue
		}

		a.logger.Info(fmt.Sprintf("[+] %s found %d", name, len(hosts)))
		status := ui.StatusSuccess
		if len(hosts) == 0 {
			status = ui.StatusWarning
		} else {
			contributing++
		}
		a.presenter.ProviderResult(name, status, len(hosts))
		results = append(results, hosts)
	}

	unique := a.dedupe.Union(results...)
	a.logger.Info("enumeration finished",
		"total_unique", len(unique),
		"contributing_tools", contributing,
	)
	a.presenter.Info(fmt.Sprintf("Total unique subdomains found: %d (combined results from %d tools)", len(unique), contributing))
	return unique
}
