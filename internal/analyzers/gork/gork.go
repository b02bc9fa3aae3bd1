// Package gork implements the Gork AI security analysis API as an analyzer.
package gork

import (
	"context"
	"encoding/json"

	"byakugan/internal/analyzers"
	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/errors"
	"byakugan/internal/platform/httpclient"
	"byakugan/internal/platform/logx"
	"byakugan/internal/platform/registry"
	"byakugan/internal/platform/validator"
)

const (
	name = "gork"

	// DefaultURL es el endpoint de análisis.
	DefaultURL = "https://api.gork.ai/v1/analyze"

	// EnvKey contiene la credencial.
	EnvKey = "GORK_API_KEY"

	defaultSummary = "Analyzed by Gork AI"
)

// Auto-registro del analizador al importar el package
func init() {
	if err := registry.Global().Register(
		name,
		func(cfg ports.AnalyzerConfig, logger logx.Logger) (ports.Analyzer, error) {
			return New(cfg, logger), nil
		},
		ports.AnalyzerMetadata{
			Name:        name,
			Description: "Gork AI security analysis API",
			Source:      domain.SourceGork,
			EnvKey:      EnvKey,
		},
	); err != nil {
		logx.New().Warn("failed to register gork analyzer", "error", err.Error())
	}
}

// Gork implements ports.Analyzer.
type Gork struct {
	client *httpclient.Client
	logger logx.Logger
	apiKey string
	url    string
}

// New crea el analizador; sin APIKey queda deshabilitado.
func New(cfg ports.AnalyzerConfig, logger logx.Logger) *Gork {
	url := cfg.BaseURL
	if url == "" {
		url = DefaultURL
	}
	return &Gork{
		client: analyzers.NewBearerClient(cfg.APIKey, cfg.Timeout, logger),
		logger: logger.With("analyzer", name),
		apiKey: cfg.APIKey,
		url:    url,
	}
}

// Name implements ports.Analyzer.
func (g *Gork) Name() domain.AnalysisSource {
	return domain.SourceGork
}

type request struct {
	URL          string `json:"url"`
	AnalysisType string `json:"analysis_type"`
}

type response struct {
	Analysis *struct {
		RiskScore       float64   `json:"risk_score"`
		Technologies    *[]string `json:"technologies"`
		Vulnerabilities *[]string `json:"vulnerabilities"`
		Summary         *string   `json:"summary"`
	} `json:"analysis"`
}

// Analyze posts {"url","analysis_type":"security"} and maps risk_score
// to a risk level (>7 high, >4 medium) and bounty potential (>5).
func (g *Gork) Analyze(ctx context.Context, host string) (*domain.PartialAnalysis, error) {
	if g.apiKey == "" {
		return nil, domain.ErrProviderDisabled
	}

	body, err := json.Marshal(request{URL: validator.WithScheme(host), AnalysisType: "security"})
	if err != nil {
		return nil, errors.Wrap(err, "encode gork request")
	}

	raw, err := g.client.PostJSON(ctx, g.url, body, nil)
	if err != nil {
		return nil, analyzers.Classify(err)
	}

	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode gork response"), domain.ErrSchemaMismatch)
	}
	if resp.Analysis == nil {
		return nil, errors.Mark(errors.New("gork response has no analysis"), domain.ErrSchemaMismatch)
	}

	a := resp.Analysis
	risk := string(domain.RiskFromScore(a.RiskScore))
	bounty := a.RiskScore > 5
	summary := defaultSummary
	if a.Summary != nil {
		summary = *a.Summary
	}

	return &domain.PartialAnalysis{
		TechStack:          a.Technologies,
		LikelyIssues:       a.Vulnerabilities,
		RiskLevel:          &risk,
		BugBountyPotential: &bounty,
		Summary:            &summary,
	}, nil
}
