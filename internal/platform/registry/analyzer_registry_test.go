// internal/platform/registry/analyzer_registry_test.go
package registry

import (
	"context"
	"fmt"
	"testing"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/testutil"
)

type stubAnalyzer struct {
	source domain.AnalysisSource
	key    string
}

func (s *stubAnalyzer) Name() domain.AnalysisSource { return s.source }
func (s *stubAnalyzer) Analyze(context.Context, string) (*domain.PartialAnalysis, error) {
	return &domain.PartialAnalysis{}, nil
}

func stubFactory(src domain.AnalysisSource) AnalyzerFactory {
	return func(cfg ports.AnalyzerConfig, _ logx.Logger) (ports.Analyzer, error) {
		return &stubAnalyzer{source: src, key: cfg.APIKey}, nil
	}
}

func TestAnalyzerRegistry_Register(t *testing.T) {
	registry := NewAnalyzerRegistry(logx.NewSilent())

	err := registry.Register("Gork", stubFactory(domain.SourceGork), ports.AnalyzerMetadata{Name: "gork"})
	testutil.AssertNoError(t, err, "register should succeed")
	testutil.AssertTrue(t, registry.IsRegistered("gork"), "names are case-insensitive")

	err = registry.Register("gork", stubFactory(domain.SourceGork), ports.AnalyzerMetadata{})
	testutil.AssertError(t, err, "duplicate registration should fail")

	testutil.AssertError(t, registry.Register("", stubFactory(domain.SourceGork), ports.AnalyzerMetadata{}), "empty name")
	testutil.AssertError(t, registry.Register("x", nil, ports.AnalyzerMetadata{}), "nil factory")
}

func TestAnalyzerRegistry_BuildKeepsOrder(t *testing.T) {
	registry := NewAnalyzerRegistry(logx.NewSilent())
	_ = registry.Register("gork", stubFactory(domain.SourceGork), ports.AnalyzerMetadata{})
	_ = registry.Register("openai", stubFactory(domain.SourceOpenAI), ports.AnalyzerMetadata{})
	_ = registry.Register("gemini", stubFactory(domain.SourceGemini), ports.AnalyzerMetadata{})

	configs := map[string]ports.AnalyzerConfig{"openai": {APIKey: "sk-test"}}
	analyzers, err := registry.Build([]string{"openai", "unknown", "gork", "openai"}, configs, logx.NewSilent())
	testutil.AssertNoError(t, err, "build")

	testutil.AssertEqual(t, len(analyzers), 2, "unknown and duplicate names are skipped")
	testutil.AssertEqual(t, analyzers[0].Name(), domain.SourceOpenAI, "first in configured order")
	testutil.AssertEqual(t, analyzers[1].Name(), domain.SourceGork, "second in configured order")
	testutil.AssertEqual(t, analyzers[0].(*stubAnalyzer).key, "sk-test", "config routed by name")
}

func TestAnalyzerRegistry_BuildFactoryError(t *testing.T) {
	registry := NewAnalyzerRegistry(logx.NewSilent())
	_ = registry.Register("broken", func(ports.AnalyzerConfig, logx.Logger) (ports.Analyzer, error) {
		return nil, fmt.Errorf("boom")
	}, ports.AnalyzerMetadata{})
	_ = registry.Register("gork", stubFactory(domain.SourceGork), ports.AnalyzerMetadata{})

	analyzers, err := registry.Build([]string{"broken", "gork"}, nil, logx.NewSilent())
	testutil.AssertNoError(t, err, "factory errors are not fatal")
	testutil.AssertEqual(t, len(analyzers), 1, "remaining analyzers are built")
}

func TestAnalyzerRegistry_List(t *testing.T) {
	registry := NewAnalyzerRegistry(logx.NewSilent())
	_ = registry.Register("openai", stubFactory(domain.SourceOpenAI), ports.AnalyzerMetadata{EnvKey: "OPENAI_API_KEY"})
	_ = registry.Register("gork", stubFactory(domain.SourceGork), ports.AnalyzerMetadata{})

	testutil.AssertStrings(t, registry.List(), []string{"gork", "openai"}, "sorted names")

	meta, ok := registry.GetMetadata("openai")
	testutil.AssertTrue(t, ok, "metadata present")
	testutil.AssertEqual(t, meta.EnvKey, "OPENAI_API_KEY", "env key")
}
