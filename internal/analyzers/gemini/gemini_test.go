package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/platform/registry"
	"byakugan/internal/testutil"
)

func candidateReply(t *testing.T, texts ...string) string {
	t.Helper()
	parts := make([]part, 0, len(texts))
	for _, s := range texts {
		parts = append(parts, part{Text: s})
	}
	data, err := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{"content": content{Role: "model", Parts: parts}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestGemini_Registered(t *testing.T) {
	meta, ok := registry.Global().GetMetadata("gemini")
	testutil.AssertTrue(t, ok, "gemini registers itself")
	testutil.AssertEqual(t, meta.EnvKey, "GEMINI_API_KEY", "credential env var")
}

func TestGemini_Analyze(t *testing.T) {
	server := testutil.NewMockServer(t, http.StatusOK, candidateReply(t, `{"tech_stack":["react"],`, `"risk_level":"medium"}`))
	g := New(ports.AnalyzerConfig{APIKey: "gm", BaseURL: server.URL + "/"}, logx.NewSilent())

	p, err := g.Analyze(context.Background(), "app.example.com")
	testutil.AssertNoError(t, err, "analyze")

	rec := domain.Normalize("app.example.com", g.Name(), p)
	testutil.AssertEqual(t, rec.RiskLevel, domain.RiskMedium, "risk")
	testutil.AssertStrings(t, rec.TechStack, []string{"react"}, "tech stack from joined parts")
	testutil.AssertEqual(t, rec.Source, domain.SourceGemini, "source")

	req := server.Requests()[0]
	testutil.AssertEqual(t, req.Path, "/models/gemini-1.5-pro:generateContent", "endpoint path")
	testutil.AssertEqual(t, req.Header.Get("x-goog-api-key"), "gm", "api key header")
	testutil.AssertEqual(t, req.Header.Get("Authorization"), "", "no bearer token")
}

func TestGemini_AnalyzeFailures(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		g := New(ports.AnalyzerConfig{}, logx.NewSilent())
		_, err := g.Analyze(context.Background(), "x.example.com")
		testutil.AssertTrue(t, errors.Is(err, domain.ErrProviderDisabled), "disabled")
	})

	t.Run("no candidates", func(t *testing.T) {
		server := testutil.NewMockServer(t, http.StatusOK, `{"candidates":[]}`)
		g := New(ports.AnalyzerConfig{APIKey: "gm", BaseURL: server.URL}, logx.NewSilent())
		_, err := g.Analyze(context.Background(), "x.example.com")
		testutil.AssertTrue(t, errors.Is(err, domain.ErrSchemaMismatch), "schema mismatch")
	})
}
