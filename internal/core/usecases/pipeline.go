// internal/core/usecases/pipeline.go
package usecases

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/platform/metrics"
	"byakugan/internal/platform/ui"
)

// Pipeline es el Stage Resume Controller: ejecuta enumerate, probe,
// screenshot y analyze en orden fijo, saltando los stages cuyo artefacto
// ya existe al iniciar la corrida.
type Pipeline struct {
	store        ports.ResultStore
	aggregator   *Aggregator
	liveness     *LivenessFilter
	screenshots  ports.ScreenshotTaker
	analysis     *AnalysisChain
	screenshotBy string

	runID     string
	outputDir string
	logger    logx.Logger
	presenter ui.Presenter
	metrics   *metrics.Recorder
	now       func() time.Time
}

// PipelineOptions configura el Pipeline.
type PipelineOptions struct {
	Store       ports.ResultStore
	Aggregator  *Aggregator
	Liveness    *LivenessFilter
	Screenshots ports.ScreenshotTaker
	Analysis    *AnalysisChain

	// ScreenshotTool es el nombre mostrado para el stage de capturas
	ScreenshotTool string

	// RunID identifica la corrida en logs y resumen
	RunID string

	// OutputDir es la raíz del store, solo para mostrar
	OutputDir string

	Logger    logx.Logger
	Presenter ui.Presenter
	Metrics   *metrics.Recorder
}

// NewPipeline crea el controlador.
func NewPipeline(opts PipelineOptions) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.ScreenshotTool == "" {
		opts.ScreenshotTool = "gowitness"
	}
	return &Pipeline{
		store:        opts.Store,
		aggregator:   opts.Aggregator,
		liveness:     opts.Liveness,
		screenshots:  opts.Screenshots,
		analysis:     opts.Analysis,
		screenshotBy: opts.ScreenshotTool,
		runID:        opts.RunID,
		outputDir:    opts.OutputDir,
		logger:       opts.Logger.With("component", "pipeline"),
		presenter:    opts.Presenter,
		metrics:      opts.Metrics,
		now:          time.Now,
	}
}

// runState es el estado mutable de una corrida.
type runState struct {
	target  domain.Target
	plan    *StagePlan
	summary *domain.RunSummary

	subdomains []string
	live       []string
	report     domain.AnalysisReport
}

// Run ejecuta el pipeline completo sobre target. Los fallos de proveedores
// y de persistencia no son fatales; solo la cancelación de ctx corta la
// corrida, en cuyo caso se retorna el resumen parcial junto con ctx.Err().
func (p *Pipeline) Run(ctx context.Context, target domain.Target) (*domain.RunSummary, error) {
	name := target.Root
	rs := &runState{
		target:  target,
		plan:    Plan(p.store, name),
		summary: domain.NewRunSummary(p.runID, name, filepath.Join(p.outputDir, name), p.now()),
	}

	for _, stage := range domain.Stages {
		p.metrics.SetStageState(stage, rs.plan.State(stage))
	}
	p.logger.Info("running recon",
		"target", name,
		"loaded", p.loadedStages(rs.plan),
	)

	steps := []struct {
		stage domain.Stage
		run   func(context.Context, *runState)
	}{
		{domain.StageEnumerate, p.enumerate},
		{domain.StageProbe, p.probe},
		{domain.StageScreenshot, p.screenshot},
		{domain.StageAnalyze, p.analyze},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return p.finish(rs), err
		}
		step.run(ctx, rs)
		if err := ctx.Err(); err != nil {
			p.logger.Warn("run interrupted", "stage", step.stage)
			return p.finish(rs), err
		}
		if step.stage == domain.StageProbe {
			p.persistHostLists(rs)
		}
	}

	return p.finish(rs), nil
}

func (p *Pipeline) enumerate(ctx context.Context, rs *runState) {
	const stage = domain.StageEnumerate
	info := p.stageInfo(stage, p.aggregator.Names())

	if hosts, ok := p.loadHosts(rs, stage); ok {
		rs.subdomains = hosts
		p.presenter.SkipStage(info, len(hosts))
		p.record(rs, stage, len(hosts), 0)
	} else {
		p.presenter.StartStage(info)
		start := p.now()
		rs.subdomains = p.aggregator.Enumerate(ctx, rs.target)
		elapsed := p.now().Sub(start)
		if ctx.Err() == nil {
			rs.plan.Complete(stage)
		}
		p.presenter.FinishStage(info, elapsed, len(rs.subdomains))
		p.record(rs, stage, len(rs.subdomains), elapsed)
	}

	rs.summary.Subdomains = len(rs.subdomains)
	p.presenter.HostList("Subdomains found", rs.subdomains)
}

func (p *Pipeline) probe(ctx context.Context, rs *runState) {
	const stage = domain.StageProbe
	info := p.stageInfo(stage, []string{"httpx"})

	if hosts, ok := p.loadHosts(rs, stage); ok {
		rs.live = hosts
		p.presenter.SkipStage(info, len(hosts))
		p.record(rs, stage, len(hosts), 0)
	} else {
		p.presenter.StartStage(info)
		start := p.now()
		live, alerts := p.liveness.Filter(ctx, rs.subdomains)
		elapsed := p.now().Sub(start)
		rs.live = live
		rs.summary.Alerts = append(rs.summary.Alerts, alerts...)
		if ctx.Err() == nil {
			rs.plan.Complete(stage)
		}
		p.presenter.FinishStage(info, elapsed, len(live))
		p.record(rs, stage, len(live), elapsed)
	}

	rs.summary.Live = len(rs.live)
	p.presenter.HostList("Live subdomains", rs.live)
}

// persistHostLists escribe subdomains.txt y live.txt juntos, solo si al
// menos uno de los dos no se cargó de disco.
func (p *Pipeline) persistHostLists(rs *runState) {
	if rs.plan.Loaded(domain.StageEnumerate) && rs.plan.Loaded(domain.StageProbe) {
		return
	}

	name := rs.target.Root
	saved := true
	if err := p.store.SaveHosts(name, domain.ArtifactSubdomains, rs.subdomains); err != nil {
		p.fail(rs, "save subdomains", err)
		saved = false
	}
	if err := p.store.SaveHosts(name, domain.ArtifactLive, rs.live); err != nil {
		p.fail(rs, "save live hosts", err)
		saved = false
	}
	if saved {
		p.logger.Info("recon results saved", "dir", rs.summary.OutputDir,
			"subdomains", len(rs.subdomains), "live", len(rs.live))
		p.presenter.Info(fmt.Sprintf("Results saved to %s (subdomains.txt: %d, live.txt: %d)",
			rs.summary.OutputDir, len(rs.subdomains), len(rs.live)))
	}
}

func (p *Pipeline) screenshot(ctx context.Context, rs *runState) {
	const stage = domain.StageScreenshot
	info := p.stageInfo(stage, []string{p.screenshotBy})

	if rs.plan.Loaded(stage) {
		p.presenter.SkipStage(info, -1)
		p.record(rs, stage, 0, 0)
		return
	}

	p.presenter.StartStage(info)
	start := p.now()

	if len(rs.live) == 0 {
		p.presenter.Info("No live subdomains to screenshot")
	} else {
		p.capture(ctx, rs)
	}

	elapsed := p.now().Sub(start)
	if ctx.Err() == nil {
		rs.plan.Complete(stage)
	}
	p.presenter.FinishStage(info, elapsed, len(rs.live))
	p.record(rs, stage, len(rs.live), elapsed)
}

func (p *Pipeline) capture(ctx context.Context, rs *runState) {
	dir, err := p.store.ScreenshotDir(rs.target.Root)
	if err != nil {
		p.fail(rs, "create screenshot directory", err)
		return
	}

	p.presenter.Info(fmt.Sprintf("Capturing screenshots of %d live subdomains...", len(rs.live)))
	if err := p.screenshots.Capture(ctx, rs.live, dir); err != nil {
		p.logger.Warn("screenshot capture failed", "error", err.Error())
		p.presenter.Error("Error capturing screenshots: " + err.Error())
		return
	}
	p.presenter.Info("Screenshots saved to " + dir)
}

func (p *Pipeline) analyze(ctx context.Context, rs *runState) {
	const stage = domain.StageAnalyze
	info := p.stageInfo(stage, p.analysis.Names())
	name := rs.target.Root

	if rs.plan.Loaded(stage) {
		report, err := p.store.LoadReport(name)
		if err == nil {
			rs.report = report
			rs.summary.ApplyReport(report)
			p.presenter.SkipStage(info, len(report))
			p.record(rs, stage, len(report), 0)
			return
		}
		p.fail(rs, "load analysis.json", err)
		rs.plan.Demote(stage)
	}

	p.presenter.StartStage(info)
	start := p.now()

	if len(rs.live) == 0 {
		// sin hosts vivos no se escribe analysis.json
		p.presenter.Info("No live subdomains to analyze")
		rs.plan.Complete(stage)
		p.presenter.FinishStage(info, p.now().Sub(start), 0)
		p.record(rs, stage, 0, p.now().Sub(start))
		return
	}

	report, high := p.analysis.Analyze(ctx, rs.live)
	elapsed := p.now().Sub(start)
	if ctx.Err() != nil {
		// reporte parcial: nunca se persiste
		p.record(rs, stage, len(report), elapsed)
		return
	}

	rs.report = report
	rs.summary.ApplyReport(report)
	if err := p.store.SaveReport(name, report); err != nil {
		p.fail(rs, "save analysis.json", err)
	}
	rs.plan.Complete(stage)

	p.presenter.FinishStage(info, elapsed, len(report))
	p.presenter.HighRisk(riskRows(high))
	p.record(rs, stage, len(report), elapsed)
}

// loadHosts carga el artefacto de un stage Loaded. Si no se puede leer,
// el stage vuelve a Pending y se ejecuta.
func (p *Pipeline) loadHosts(rs *runState, stage domain.Stage) ([]string, bool) {
	if !rs.plan.Loaded(stage) {
		return nil, false
	}
	hosts, err := p.store.LoadHosts(rs.target.Root, stage.Artifact())
	if err != nil {
		p.fail(rs, "load "+stage.Artifact().FileName(), err)
		rs.plan.Demote(stage)
		return nil, false
	}
	p.logger.Info("found previous results, skipping", "stage", stage, "loaded", len(hosts))
	return hosts, true
}

// record agrega el stage al resumen y actualiza métricas.
func (p *Pipeline) record(rs *runState, stage domain.Stage, count int, elapsed time.Duration) {
	state := rs.plan.State(stage)
	rs.summary.Stages = append(rs.summary.Stages, domain.StageReport{
		Stage:    stage,
		State:    state.String(),
		Count:    count,
		Duration: elapsed,
	})
	p.metrics.SetStageState(stage, state)
	if state == domain.StateCompleted {
		p.metrics.ObserveStageDuration(stage, elapsed)
	}
}

func (p *Pipeline) fail(rs *runState, what string, err error) {
	msg := fmt.Sprintf("%s: %v", what, err)
	rs.summary.Errors = append(rs.summary.Errors, msg)
	p.logger.Err(err, "op", what)
	p.presenter.Error(msg)
}

func (p *Pipeline) finish(rs *runState) *domain.RunSummary {
	rs.summary.FinishedAt = p.now()

	stages := make([]ui.StageOutcome, 0, len(rs.summary.Stages))
	for _, s := range rs.summary.Stages {
		stages = append(stages, ui.StageOutcome{Name: s.Stage.String(), State: s.State, Count: s.Count})
	}
	p.presenter.Finish(ui.RunStats{
		Duration:   rs.summary.Duration(),
		Subdomains: rs.summary.Subdomains,
		Live:       rs.summary.Live,
		Alerts:     len(rs.summary.Alerts),
		Analyzed:   rs.summary.Analyzed,
		HighRisk:   len(rs.summary.HighRisk),
		OutputDir:  rs.summary.OutputDir,
		Stages:     stages,
	})

	p.logger.Info("recon finished",
		"target", rs.summary.Target,
		"duration", rs.summary.Duration().String(),
		"subdomains", rs.summary.Subdomains,
		"live", rs.summary.Live,
		"analyzed", rs.summary.Analyzed,
		"high_risk", len(rs.summary.HighRisk),
		"errors", len(rs.summary.Errors),
	)
	return rs.summary
}

func (p *Pipeline) stageInfo(stage domain.Stage, tools []string) ui.StageInfo {
	return ui.StageInfo{
		Number:      stageNumber(stage),
		TotalStages: len(domain.Stages),
		Name:        stage.String(),
		Tools:       tools,
	}
}

func (p *Pipeline) loadedStages(plan *StagePlan) []string {
	out := make([]string, 0, len(domain.Stages))
	for _, s := range domain.Stages {
		if plan.Loaded(s) {
			out = append(out, s.String())
		}
	}
	return out
}

func riskRows(records []domain.AnalysisRecord) []ui.RiskRow {
	rows := make([]ui.RiskRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ui.RiskRow{
			Host:    r.Subdomain,
			Summary: r.Summary,
			Source:  r.Source.String(),
			Bounty:  r.BugBountyPotential,
		})
	}
	return rows
}
