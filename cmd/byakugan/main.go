// cmd/byakugan/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	"byakugan/internal/adapters/output"
	"byakugan/internal/adapters/store"
	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/core/usecases"
	"byakugan/internal/platform/config"
	"byakugan/internal/platform/logx"
	"byakugan/internal/platform/metrics"
	"byakugan/internal/platform/registry"
	"byakugan/internal/platform/ui"
	"byakugan/internal/sources/amass"
	"byakugan/internal/sources/assetfinder"
	"byakugan/internal/sources/common"
	"byakugan/internal/sources/crtsh"
	"byakugan/internal/sources/gowitness"
	"byakugan/internal/sources/httpx"
	"byakugan/internal/sources/subfinder"
	"byakugan/internal/toolcheck"

	// Analizadores: se registran vía init()
	_ "byakugan/internal/analyzers/gemini"
	_ "byakugan/internal/analyzers/gork"
	_ "byakugan/internal/analyzers/openai"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitInterrupted es el código de salida tras SIGINT/SIGTERM.
const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Config: .env, archivo, entorno y flags
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, config.Usage)
		return 2
	}
	if cfg.Core.PrintHelp {
		config.PrintHelp()
	}
	if cfg.Core.PrintVersion {
		config.PrintVersion(version, commit, date)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, config.Usage)
		fmt.Fprintln(os.Stderr, "Try: byakugan -h for help")
		return 2
	}

	target := domain.NewTarget(cfg.Core.Target)
	if err := target.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// 2. Presenter y logger según formato y terminal
	presenter, logger := buildPresentation(cfg, term.IsTerminal(int(os.Stdout.Fd())))
	defer presenter.Close()

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	logger.Info("byakugan starting",
		"version", version,
		"commit", commit,
		"target", target.Root,
		"output_dir", cfg.Output.Dir,
		"format", cfg.Output.Format,
	)

	// 3. Contexto raíz cancelado por señales
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	presenter.Start(ui.RunInfo{
		Target:    target.Root,
		RunID:     runID,
		OutputDir: cfg.Output.Dir,
		Stages:    stageNames(),
		Analyzers: cfg.Analysis.Providers,
	})

	runner := common.NewExecRunner(logger)

	// 4. Herramientas externas (nunca fatal)
	if !cfg.Core.SkipToolCheck {
		checkTools(ctx, cfg, runner, logger, presenter)
	}

	// 5. Colaboradores
	rec := metrics.New()
	pipeline, err := buildPipeline(cfg, runID, runner, logger, presenter, rec)
	if err != nil {
		logger.Err(err, "phase", "build")
		return 1
	}

	// 6. Pipeline
	summary, runErr := pipeline.Run(ctx, *target)

	if err := writeSummary(cfg.Output.Format, os.Stdout, summary); err != nil {
		logger.Err(err, "phase", "output")
	}

	if cfg.Metrics.File != "" {
		if err := rec.WriteTextfile(cfg.Metrics.File); err != nil {
			logger.Err(err, "phase", "metrics")
		} else {
			logger.Debug("metrics written", "file", cfg.Metrics.File)
		}
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			presenter.Warning("Interrupted, partial results kept on disk")
			logger.Warn("run interrupted", "target", target.Root)
			return exitInterrupted
		}
		logger.Err(runErr, "phase", "run")
		return 1
	}
	return 0
}

// buildPresentation elige presenter y logger. En modo pretty sobre una
// terminal el presenter ya reporta el progreso y el logger solo muestra
// debug si se pidió.
func buildPresentation(cfg config.Config, tty bool) (ui.Presenter, logx.Logger) {
	level := logx.ParseLevel(cfg.Core.LogLevel)

	switch cfg.Output.Format {
	case config.FormatTable:
		return ui.NewRawPresenter(os.Stderr, ui.LogFormatText), logx.NewWithLevel(level)
	case config.FormatJSON:
		return ui.NewRawPresenter(os.Stderr, ui.LogFormatJSON), logx.NewWithLevel(level)
	}

	if !tty {
		return ui.NewRawPresenter(os.Stdout, ui.LogFormatText), logx.NewWithLevel(level)
	}
	if level == logx.LevelDebug {
		return ui.NewPTermPresenter(), logx.NewWithLevel(level)
	}
	return ui.NewPTermPresenter(), logx.NewSilent()
}

func buildPipeline(cfg config.Config, runID string, runner ports.CommandRunner, logger logx.Logger, presenter ui.Presenter, rec *metrics.Recorder) (*usecases.Pipeline, error) {
	t := cfg.Tools

	// Orden fijo de proveedores de enumeración
	providers := []ports.SubdomainProvider{
		subfinder.NewWithConfig(runner, logger, t.Subfinder.Path, t.Subfinder.Timeout),
		assetfinder.NewWithConfig(runner, logger, t.Assetfinder.Path, t.Assetfinder.Timeout),
		amass.NewWithConfig(runner, logger, t.Amass.Path, t.Amass.Timeout),
		crtsh.NewWithConfig(logger, crtsh.Config{BaseURL: t.Crtsh.BaseURL, Timeout: t.Crtsh.Timeout}),
	}

	analyzers, err := registry.Global().Build(cfg.Analysis.Providers, cfg.AnalyzerConfigs(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build analyzers: %w", err)
	}
	if len(analyzers) == 0 {
		logger.Warn("no analyzers configured, every host will be unscored")
	}

	return usecases.NewPipeline(usecases.PipelineOptions{
		Store: store.New(cfg.Output.Dir, logger),
		Aggregator: usecases.NewAggregator(usecases.AggregatorOptions{
			Providers: providers,
			Logger:    logger,
			Presenter: presenter,
			Metrics:   rec,
		}),
		Liveness: usecases.NewLivenessFilter(usecases.LivenessOptions{
			Prober:    httpx.NewWithConfig(runner, logger, t.Httpx.Path, t.Httpx.Timeout),
			Logger:    logger,
			Presenter: presenter,
			Metrics:   rec,
		}),
		Screenshots: gowitness.NewWithConfig(runner, logger, t.Gowitness.Path, t.Gowitness.Timeout),
		Analysis: usecases.NewAnalysisChain(usecases.AnalysisOptions{
			Analyzers:   analyzers,
			PacingDelay: cfg.Analysis.PacingDelay,
			Logger:      logger,
			Presenter:   presenter,
			Metrics:     rec,
		}),
		RunID:     runID,
		OutputDir: cfg.Output.Dir,
		Logger:    logger,
		Presenter: presenter,
		Metrics:   rec,
	}), nil
}

func checkTools(ctx context.Context, cfg config.Config, runner ports.CommandRunner, logger logx.Logger, presenter ui.Presenter) {
	deps, err := toolcheck.DefaultConfig()
	if err != nil {
		logger.Err(err, "phase", "toolcheck")
		return
	}

	checker := toolcheck.New(toolcheck.Options{
		Config: deps,
		Paths: map[string]string{
			"subfinder":   cfg.Tools.Subfinder.Path,
			"assetfinder": cfg.Tools.Assetfinder.Path,
			"amass":       cfg.Tools.Amass.Path,
			"httpx":       cfg.Tools.Httpx.Path,
			"gowitness":   cfg.Tools.Gowitness.Path,
		},
		Runner: runner,
		Logger: logger,
		OnInstall: func(tool toolcheck.Tool) {
			presenter.Info(fmt.Sprintf("Installing %s...", tool.Name))
		},
	})

	start := time.Now()
	results := checker.EnsureInstalled(ctx)
	for _, r := range results {
		switch r.Status {
		case toolcheck.StatusInstalled:
			logger.Debug("tool available", "tool", r.Tool.Name, "path", r.Path)
		case toolcheck.StatusSuccess:
			presenter.Info(fmt.Sprintf("%s installed successfully", r.Tool.Name))
		case toolcheck.StatusManual:
			presenter.Warning(fmt.Sprintf("%s not found, install manually from %s", r.Tool.Name, r.Tool.Install.Manual))
		default:
			presenter.Error(fmt.Sprintf("%s: %s", r.Tool.Name, r.Message))
		}
	}

	ready, missing := toolcheck.Summary(results)
	logger.Info("tool check finished", "ready", ready, "missing", missing, "duration", time.Since(start).String())
}

func writeSummary(format string, w io.Writer, summary *domain.RunSummary) error {
	if summary == nil {
		return nil
	}
	switch format {
	case config.FormatTable:
		return output.WriteSummaryTable(w, summary)
	case config.FormatJSON:
		return output.WriteSummaryJSON(w, summary, true)
	default:
		// pretty: el presenter ya mostró el resumen
		return nil
	}
}

func stageNames() []string {
	names := make([]string, 0, len(domain.Stages))
	for _, s := range domain.Stages {
		names = append(names, s.String())
	}
	return names
}
