// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar colores, secciones y tablas en la terminal.
type PTermPresenter struct {
	mu sync.Mutex

	info      RunInfo
	startTime time.Time
}

var _ Presenter = (*PTermPresenter)(nil)

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{}
}

// Start muestra el banner y la configuración de la corrida
func (p *PTermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info = info
	p.startTime = time.Now()

	pterm.Println(StylePrimary.Sprint(Banner))
	pterm.Println("   " + IconEye + "  " + StyleAccent.Sprint(Tagline))
	pterm.Println()

	panel := pterm.DefaultBox.
		WithTitle("Run").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgMagenta))

	content := fmt.Sprintf("%s Target: %s\n", IconTarget, pterm.Cyan(info.Target))
	content += fmt.Sprintf("%s Output: %s\n", IconFolder, info.OutputDir)
	content += fmt.Sprintf("%s Stages: %s\n", IconStage, strings.Join(info.Stages, " → "))
	analyzers := "none (unscored)"
	if len(info.Analyzers) > 0 {
		analyzers = strings.Join(info.Analyzers, " → ") + " → unscored"
	}
	content += fmt.Sprintf("%s Analysis: %s\n", IconBrain, analyzers)
	content += fmt.Sprintf("   Run ID: %s", StyleSecondary.Sprint(info.RunID))

	panel.Println(content)
	pterm.Println()
	pterm.Println(StyleAccent.Sprint(SeparatorHeavy))
	pterm.Println()
}

// StartStage muestra el header del stage
func (p *PTermPresenter) StartStage(stage StageInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	title := fmt.Sprintf("%s %s", IconStage, stageTitle(stage))
	pterm.DefaultSection.WithLevel(2).Println(title)

	if len(stage.Tools) > 0 {
		pterm.Println(StyleSecondary.Sprintf("  using %s", strings.Join(stage.Tools, ", ")))
	}
}

// SkipStage muestra que el stage se reanudó desde disco
func (p *PTermPresenter) SkipStage(stage StageInfo, loaded int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("%s %s: found previous results for %s, skipping",
		StatusSkipped.Symbol(), stageTitle(stage), p.info.Target)
	if loaded >= 0 {
		line += fmt.Sprintf(" (loaded %d)", loaded)
	}
	StatusSkipped.Style().Println(line)
}

// FinishStage notifica la finalización de un stage
func (p *PTermPresenter) FinishStage(stage StageInfo, duration time.Duration, produced int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	pterm.Info.Printf("%s completed in %s (%d items)\n", stageTitle(stage), formatDuration(duration), produced)
	pterm.Println(pterm.Gray(SeparatorLight))
	pterm.Println()
}

// ProviderResult renderiza la línea de un proveedor de subdominios
func (p *PTermPresenter) ProviderResult(name string, status Status, count int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var line string
	switch status {
	case StatusSuccess:
		line = fmt.Sprintf("  %s %s found %s", status.Symbol(), name, pterm.Cyan(count))
	case StatusWarning:
		line = fmt.Sprintf("  %s %s found nothing", status.Symbol(), name)
	default:
		line = fmt.Sprintf("  %s %s not found or failed", status.Symbol(), name)
	}
	status.Style().Println(line)
}

// HostList imprime los hosts como viñetas
func (p *PTermPresenter) HostList(title string, hosts []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	pterm.Println(StylePrimary.Sprintf("%s (%d)", title, len(hosts)))
	pterm.Println(pterm.Gray(SeparatorLight))
	if len(hosts) == 0 {
		pterm.Println(StyleSecondary.Sprint("  (none)"))
		return
	}
	for _, h := range hosts {
		pterm.Println("  • " + h)
	}
}

// Alert destaca un host de alto valor
func (p *PTermPresenter) Alert(host, keyword string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println(fmt.Sprintf("%s %s %s %s",
		IconAlert,
		StyleError.Sprint("High-value target found:"),
		pterm.Bold.Sprint(host),
		StyleSecondary.Sprintf("[%s]", keyword),
	))
}

// HighRisk renderiza la tabla de hosts con riesgo alto
func (p *PTermPresenter) HighRisk(rows []RiskRow) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	if len(rows) == 0 {
		pterm.Success.Println("No high-risk targets found")
		return
	}

	pterm.DefaultSection.WithLevel(2).Println(fmt.Sprintf("%s High-Risk Targets (%d)", IconFire, len(rows)))

	data := pterm.TableData{{"#", "Host", "Summary", "Source", "Bounty"}}
	for i, r := range rows {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			StyleError.Sprint(r.Host),
			r.Summary,
			r.Source,
			bountyMark(r.Bounty),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render(); err != nil {
		pterm.Error.Println(err.Error())
	}
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Info.Println(msg)
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Warning.Println(msg)
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Error.Println(msg)
}

// Finish finaliza la presentación con estadísticas finales
func (p *PTermPresenter) Finish(stats RunStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	pterm.Println(StyleAccent.Sprint(SeparatorHeavy))
	pterm.Println()

	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgMagenta)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("Recon Completed")

	pterm.Println()

	panel := pterm.DefaultBox.
		WithTitle("Run Statistics").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen))

	content := fmt.Sprintf("%s Duration: %s\n", IconTime, pterm.Green(formatDuration(stats.Duration)))
	content += fmt.Sprintf("%s Subdomains: %s\n", IconHosts, pterm.Cyan(stats.Subdomains))
	content += fmt.Sprintf("%s Live: %s\n", IconLive, pterm.Cyan(stats.Live))
	if stats.Alerts > 0 {
		content += fmt.Sprintf("%s Alerts: %s\n", IconAlert, StyleError.Sprint(stats.Alerts))
	}
	content += fmt.Sprintf("%s Analyzed: %d (%s high risk)\n", IconBrain, stats.Analyzed, StyleError.Sprint(stats.HighRisk))
	content += fmt.Sprintf("%s Results: %s", IconFolder, stats.OutputDir)
	panel.Println(content)

	if len(stats.Stages) > 0 {
		pterm.Println()
		data := pterm.TableData{{"Stage", "State", "Items"}}
		for _, s := range stats.Stages {
			data = append(data, []string{s.Name, s.State, fmt.Sprintf("%d", s.Count)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render(); err != nil {
			pterm.Error.Println(err.Error())
		}
	}

	pterm.Println()
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	return nil
}
