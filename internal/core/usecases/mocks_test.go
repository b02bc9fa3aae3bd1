// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"byakugan/internal/core/domain"
	"byakugan/internal/platform/ui"
)

// mockProvider es un mock de ports.SubdomainProvider
type mockProvider struct {
	name  string
	hosts []string
	err   error

	calls *[]string // orden global de llamadas, compartido entre mocks
	count int
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Enumerate(ctx context.Context, target domain.Target) ([]string, error) {
	m.count++
	if m.calls != nil {
		*m.calls = append(*m.calls, m.name)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.hosts, nil
}

// mockProber es un mock de ports.LivenessProber
type mockProber struct {
	live  []string
	err   error
	count int
	input []string
}

func (m *mockProber) Probe(ctx context.Context, hosts []string) ([]string, error) {
	m.count++
	m.input = hosts
	if m.err != nil {
		return nil, m.err
	}
	return m.live, nil
}

// mockScreenshotter es un mock de ports.ScreenshotTaker; si writeImage
// está activo deja un png en dir como haría gowitness.
type mockScreenshotter struct {
	writeImage bool
	err        error
	count      int
	hosts      []string
	dir        string
}

func (m *mockScreenshotter) Capture(ctx context.Context, hosts []string, dir string) error {
	m.count++
	m.hosts = hosts
	m.dir = dir
	if m.err != nil {
		return m.err
	}
	if m.writeImage {
		return os.WriteFile(filepath.Join(dir, "https-"+hosts[0]+".png"), []byte("png"), 0o644)
	}
	return nil
}

// mockAnalyzer es un mock de ports.Analyzer
type mockAnalyzer struct {
	source  domain.AnalysisSource
	analyze func(host string) (*domain.PartialAnalysis, error)
	count   int
}

func (m *mockAnalyzer) Name() domain.AnalysisSource { return m.source }

func (m *mockAnalyzer) Analyze(ctx context.Context, host string) (*domain.PartialAnalysis, error) {
	m.count++
	if m.analyze == nil {
		return &domain.PartialAnalysis{}, nil
	}
	return m.analyze(host)
}

func failingAnalyzer(src domain.AnalysisSource, err error) *mockAnalyzer {
	return &mockAnalyzer{source: src, analyze: func(string) (*domain.PartialAnalysis, error) {
		return nil, err
	}}
}

func riskAnalyzer(src domain.AnalysisSource, risk string) *mockAnalyzer {
	return &mockAnalyzer{source: src, analyze: func(string) (*domain.PartialAnalysis, error) {
		summary := "checked by " + string(src)
		return &domain.PartialAnalysis{RiskLevel: &risk, Summary: &summary}, nil
	}}
}

// recordingPresenter guarda los eventos que interesan a los tests
type recordingPresenter struct {
	ui.NoopPresenter

	mu        sync.Mutex
	alerts    []string
	skipped   []string
	started   []string
	providers map[string]ui.Status
	highRisk  []ui.RiskRow
	errors    []string
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{providers: make(map[string]ui.Status)}
}

func (r *recordingPresenter) Alert(host, keyword string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, host+":"+keyword)
}

func (r *recordingPresenter) SkipStage(stage ui.StageInfo, loaded int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, stage.Name)
}

func (r *recordingPresenter) StartStage(stage ui.StageInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, stage.Name)
}

func (r *recordingPresenter) ProviderResult(name string, status ui.Status, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = status
}

func (r *recordingPresenter) HighRisk(rows []ui.RiskRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highRisk = rows
}

func (r *recordingPresenter) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

// waitRecorder sustituye la espera entre hosts
type waitRecorder struct {
	delays []time.Duration
	err    error
}

func (w *waitRecorder) wait(ctx context.Context, d time.Duration) error {
	w.delays = append(w.delays, d)
	return w.err
}
