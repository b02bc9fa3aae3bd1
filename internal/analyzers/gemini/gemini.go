// Package gemini implements Google's Gemini generateContent API as an analyzer.
// It is only part of the chain when listed in analysis.providers.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"byakugan/internal/analyzers"
	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/errors"
	"byakugan/internal/platform/httpclient"
	"byakugan/internal/platform/logx"
	"byakugan/internal/platform/registry"
)

const (
	name = "gemini"

	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-pro"
	EnvKey         = "GEMINI_API_KEY"

	apiKeyHeader = "x-goog-api-key"
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
			Description: "Google Gemini generateContent with a JSON-only security prompt",
			Source:      domain.SourceGemini,
			EnvKey:      EnvKey,
		},
	); err != nil {
		logx.New().Warn("failed to register gemini analyzer", "error", err.Error())
	}
}

// Gemini implements ports.Analyzer.
type Gemini struct {
	client  *httpclient.Client
	logger  logx.Logger
	apiKey  string
	baseURL string
	model   string
}

// New crea el analizador; sin APIKey queda deshabilitado.
func New(cfg ports.AnalyzerConfig, logger logx.Logger) *Gemini {
	g := &Gemini{
		client:  analyzers.NewClient(cfg.Timeout, logger),
		logger:  logger.With("analyzer", name),
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
	}
	if g.baseURL == "" {
		g.baseURL = DefaultBaseURL
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	return g
}

// Name implements ports.Analyzer.
func (g *Gemini) Name() domain.AnalysisSource {
	return domain.SourceGemini
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateRequest struct {
	SystemInstruction content          `json:"systemInstruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
}

// Analyze sends the shared prompt and parses the concatenated text parts
// of the first candidate.
func (g *Gemini) Analyze(ctx context.Context, host string) (*domain.PartialAnalysis, error) {
	if g.apiKey == "" {
		return nil, domain.ErrProviderDisabled
	}

	body, err := json.Marshal(generateRequest{
		SystemInstruction: content{Parts: []part{{Text: analyzers.SystemPrompt}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: analyzers.UserPrompt(host)}}}},
		GenerationConfig:  generationConfig{Temperature: 0.3, ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode gemini request")
	}

	raw, err := g.client.PostJSON(ctx, g.endpoint(), body, map[string]string{apiKeyHeader: g.apiKey})
	if err != nil {
		return nil, analyzers.Classify(err)
	}

	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode gemini response"), domain.ErrSchemaMismatch)
	}
	if len(resp.Candidates) == 0 {
		return nil, errors.Mark(errors.New("gemini response has no candidates"), domain.ErrSchemaMismatch)
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return analyzers.ParsePartial(sb.String())
}
