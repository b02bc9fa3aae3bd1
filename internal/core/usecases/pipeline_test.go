// internal/core/usecases/pipeline_test.go
package usecases

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"byakugan/internal/adapters/store"
	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/platform/metrics"
	"byakugan/internal/testutil"
)

const testDomain = "example.com"

// pipelineFixture arma un Pipeline con mocks sobre un FileStore real.
type pipelineFixture struct {
	store     *store.FileStore
	provider  *mockProvider
	prober    *mockProber
	shots     *mockScreenshotter
	analyzer  *mockAnalyzer
	presenter *recordingPresenter
	pipeline  *Pipeline
	chain     *AnalysisChain
}

func newPipelineFixture(t *testing.T, root string) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		store:     store.New(root, logx.NewSilent()),
		provider:  &mockProvider{name: "subfinder", hosts: []string{"b.example.com", "admin.example.com"}},
		prober:    &mockProber{live: []string{"admin.example.com"}},
		shots:     &mockScreenshotter{writeImage: true},
		analyzer:  riskAnalyzer(domain.SourceGork, "high"),
		presenter: newRecordingPresenter(),
	}

	logger := logx.NewSilent()
	rec := metrics.New()

	f.chain = NewAnalysisChain(AnalysisOptions{
		Analyzers: []ports.Analyzer{f.analyzer},
		Logger:    logger,
		Presenter: f.presenter,
		Metrics:   rec,
	})
	f.pipeline = NewPipeline(PipelineOptions{
		Store: f.store,
		Aggregator: NewAggregator(AggregatorOptions{
			Providers: []ports.SubdomainProvider{f.provider},
			Logger:    logger,
			Presenter: f.presenter,
			Metrics:   rec,
		}),
		Liveness: NewLivenessFilter(LivenessOptions{
			Prober:    f.prober,
			Logger:    logger,
			Presenter: f.presenter,
			Metrics:   rec,
		}),
		Screenshots: f.shots,
		Analysis:    f.chain,
		RunID:       "test-run",
		OutputDir:   root,
		Logger:      logger,
		Presenter:   f.presenter,
		Metrics:     rec,
	})
	return f
}

func (f *pipelineFixture) run(t *testing.T) *domain.RunSummary {
	t.Helper()
	summary, err := f.pipeline.Run(context.Background(), domain.Target{Root: testDomain})
	testutil.AssertNoError(t, err, "run")
	testutil.AssertNotNil(t, summary, "summary")
	return summary
}

func TestPipeline_FreshRun(t *testing.T) {
	root := t.TempDir()
	f := newPipelineFixture(t, root)

	summary := f.run(t)

	testutil.AssertEqual(t, testutil.ReadFile(t, f.store.Path(testDomain, domain.ArtifactSubdomains)),
		"admin.example.com\nb.example.com\n", "sorted subdomains.txt")
	testutil.AssertEqual(t, testutil.ReadFile(t, f.store.Path(testDomain, domain.ArtifactLive)),
		"admin.example.com\n", "live.txt")
	testutil.AssertTrue(t, f.store.Exists(testDomain, domain.ArtifactScreenshots), "screenshots captured")
	testutil.AssertTrue(t, f.store.Exists(testDomain, domain.ArtifactAnalysis), "analysis.json written")

	testutil.AssertStrings(t, f.prober.input, []string{"admin.example.com", "b.example.com"}, "prober gets the sorted union")
	testutil.AssertStrings(t, f.shots.hosts, []string{"admin.example.com"}, "screenshots of live hosts")

	testutil.AssertEqual(t, summary.Subdomains, 2, "subdomains")
	testutil.AssertEqual(t, summary.Live, 1, "live")
	testutil.AssertEqual(t, summary.Analyzed, 1, "analyzed")
	testutil.AssertLen(t, summary.HighRisk, 1, "high risk")
	testutil.AssertLen(t, summary.Alerts, 1, "admin keyword alert")
	testutil.AssertLen(t, summary.Errors, 0, "no errors")
	for _, stage := range domain.Stages {
		testutil.AssertEqual(t, summary.StageState(stage), "completed", stage.String())
	}
	testutil.AssertLen(t, f.presenter.highRisk, 1, "high risk table")
	testutil.AssertEqual(t, f.presenter.highRisk[0].Host, "admin.example.com", "high risk host")

	report, err := f.store.LoadReport(testDomain)
	testutil.AssertNoError(t, err, "report readable")
	testutil.AssertEqual(t, report[0].Source, domain.SourceGork, "source recorded")
}

func TestPipeline_FullResume(t *testing.T) {
	root := t.TempDir()
	newPipelineFixture(t, root).run(t)

	before := testutil.ReadFile(t, store.New(root, logx.NewSilent()).Path(testDomain, domain.ArtifactAnalysis))

	f := newPipelineFixture(t, root)
	summary := f.run(t)

	testutil.AssertEqual(t, f.provider.count, 0, "no provider calls")
	testutil.AssertEqual(t, f.prober.count, 0, "no prober calls")
	testutil.AssertEqual(t, f.shots.count, 0, "no screenshot calls")
	testutil.AssertEqual(t, f.analyzer.count, 0, "no analyzer calls")
	testutil.AssertStrings(t, f.presenter.skipped, []string{"enumerate", "probe", "screenshot", "analyze"}, "every stage skipped")
	testutil.AssertLen(t, f.presenter.started, 0, "no stage started")

	for _, stage := range domain.Stages {
		testutil.AssertEqual(t, summary.StageState(stage), "loaded", stage.String())
	}
	testutil.AssertEqual(t, summary.Subdomains, 2, "loaded subdomains")
	testutil.AssertEqual(t, summary.Live, 1, "loaded live")
	testutil.AssertEqual(t, summary.Analyzed, 1, "loaded report")
	testutil.AssertEqual(t, testutil.ReadFile(t, f.store.Path(testDomain, domain.ArtifactAnalysis)), before, "report untouched")
}

func TestPipeline_NoLiveHosts(t *testing.T) {
	f := newPipelineFixture(t, t.TempDir())
	f.prober.live = []string{}

	summary := f.run(t)

	testutil.AssertEqual(t, f.shots.count, 0, "nothing to screenshot")
	testutil.AssertEqual(t, f.analyzer.count, 0, "nothing to analyze")
	testutil.AssertFalse(t, testutil.FileExists(f.store.Path(testDomain, domain.ArtifactAnalysis)), "no analysis.json")
	testutil.AssertEqual(t, testutil.ReadFile(t, f.store.Path(testDomain, domain.ArtifactLive)), "", "empty live.txt")
	testutil.AssertEqual(t, summary.StageState(domain.StageAnalyze), "completed", "analyze completed")
	testutil.AssertEqual(t, summary.Live, 0, "live")
}

func TestPipeline_EnumerateLoadedProbePending(t *testing.T) {
	f := newPipelineFixture(t, t.TempDir())
	testutil.AssertNoError(t, f.store.SaveHosts(testDomain, domain.ArtifactSubdomains,
		[]string{"x.example.com", "admin.example.com"}), "seed")
	f.prober.live = []string{"x.example.com"}

	summary := f.run(t)

	testutil.AssertEqual(t, f.provider.count, 0, "enumeration skipped")
	testutil.AssertStrings(t, f.prober.input, []string{"x.example.com", "admin.example.com"}, "loaded list probed as is")
	testutil.AssertEqual(t, summary.StageState(domain.StageEnumerate), "loaded", "enumerate loaded")
	testutil.AssertEqual(t, summary.StageState(domain.StageProbe), "completed", "probe ran")
	testutil.AssertEqual(t, testutil.ReadFile(t, f.store.Path(testDomain, domain.ArtifactSubdomains)),
		"x.example.com\nadmin.example.com\n", "subdomains.txt rewritten with the loaded list")
	testutil.AssertEqual(t, testutil.ReadFile(t, f.store.Path(testDomain, domain.ArtifactLive)),
		"x.example.com\n", "live.txt written")
}

func TestPipeline_HostListsLoadedNotRewritten(t *testing.T) {
	f := newPipelineFixture(t, t.TempDir())
	subs := testutil.WriteFile(t, mustDomainDir(t, f.store), "subdomains.txt", "  admin.example.com\n\nb.example.com")
	live := testutil.WriteFile(t, mustDomainDir(t, f.store), "live.txt", "admin.example.com")

	summary := f.run(t)

	testutil.AssertEqual(t, f.provider.count, 0, "no enumeration")
	testutil.AssertEqual(t, f.prober.count, 0, "no probing")
	testutil.AssertEqual(t, testutil.ReadFile(t, subs), "  admin.example.com\n\nb.example.com", "subdomains.txt byte-identical")
	testutil.AssertEqual(t, testutil.ReadFile(t, live), "admin.example.com", "live.txt byte-identical")
	testutil.AssertEqual(t, summary.Live, 1, "trimmed live list")
	testutil.AssertEqual(t, f.analyzer.count, 1, "pending analysis runs on loaded live list")
}

func TestPipeline_CancelledBeforeStart(t *testing.T) {
	f := newPipelineFixture(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := f.pipeline.Run(ctx, domain.Target{Root: testDomain})
	testutil.AssertTrue(t, errors.Is(err, context.Canceled), "cancellation reported")
	testutil.AssertNotNil(t, summary, "partial summary")
	testutil.AssertLen(t, summary.Stages, 0, "no stage ran")
	testutil.AssertEqual(t, f.provider.count, 0, "no provider calls")
	testutil.AssertFalse(t, testutil.FileExists(f.store.Path(testDomain, domain.ArtifactSubdomains)), "nothing written")
}

func TestPipeline_CancelledDuringAnalysis(t *testing.T) {
	f := newPipelineFixture(t, t.TempDir())
	f.prober.live = []string{"admin.example.com", "b.example.com"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.chain.wait = func(context.Context, time.Duration) error {
		cancel()
		return context.Canceled
	}

	_, err := f.pipeline.Run(ctx, domain.Target{Root: testDomain})
	testutil.AssertTrue(t, errors.Is(err, context.Canceled), "interrupted")
	testutil.AssertEqual(t, f.analyzer.count, 1, "stopped after first host")
	testutil.AssertFalse(t, testutil.FileExists(f.store.Path(testDomain, domain.ArtifactAnalysis)), "partial report not saved")
	testutil.AssertTrue(t, f.store.Exists(testDomain, domain.ArtifactLive), "earlier stages persisted")
}

func TestPipeline_CorruptReportReruns(t *testing.T) {
	root := t.TempDir()
	newPipelineFixture(t, root).run(t)

	f := newPipelineFixture(t, root)
	path := f.store.Path(testDomain, domain.ArtifactAnalysis)
	testutil.AssertNoError(t, os.WriteFile(path, []byte("{not json"), 0o644), "corrupt report")

	summary := f.run(t)

	testutil.AssertEqual(t, f.analyzer.count, 1, "analysis re-ran")
	testutil.AssertEqual(t, summary.StageState(domain.StageAnalyze), "completed", "analyze completed")
	testutil.AssertLen(t, summary.Errors, 1, "load failure recorded")

	_, err := f.store.LoadReport(testDomain)
	testutil.AssertNoError(t, err, "report rewritten")
}

func TestPipeline_ScreenshotFailureNotFatal(t *testing.T) {
	f := newPipelineFixture(t, t.TempDir())
	f.shots.writeImage = false
	f.shots.err = domain.ErrToolMissing

	summary := f.run(t)

	testutil.AssertEqual(t, f.shots.count, 1, "capture attempted")
	testutil.AssertEqual(t, f.analyzer.count, 1, "analysis still runs")
	testutil.AssertFalse(t, f.store.Exists(testDomain, domain.ArtifactScreenshots), "no images")
	testutil.AssertEqual(t, summary.StageState(domain.StageAnalyze), "completed", "analyze completed")
}

func mustDomainDir(t *testing.T, fs *store.FileStore) string {
	t.Helper()
	dir, err := fs.DomainDir(testDomain)
	testutil.AssertNoError(t, err, "domain dir")
	return dir
}
