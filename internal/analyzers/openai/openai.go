// Package openai implements the OpenAI chat completions API as an analyzer.
package openai

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
)

const (
	name = "openai"

	DefaultURL   = "https://api.openai.com/v1/chat/completions"
	DefaultModel = "gpt-3.5-turbo"
	EnvKey       = "OPENAI_API_KEY"

	temperature = 0.3
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
			Description: "OpenAI chat completions with a JSON-only security prompt",
			Source:      domain.SourceOpenAI,
			EnvKey:      EnvKey,
		},
	); err != nil {
		logx.New().Warn("failed to register openai analyzer", "error", err.Error())
	}
}

// OpenAI implements ports.Analyzer.
type OpenAI struct {
	client *httpclient.Client
	logger logx.Logger
	apiKey string
	url    string
	model  string
}

// New crea el analizador; sin APIKey queda deshabilitado.
func New(cfg ports.AnalyzerConfig, logger logx.Logger) *OpenAI {
	o := &OpenAI{
		client: analyzers.NewBearerClient(cfg.APIKey, cfg.Timeout, logger),
		logger: logger.With("analyzer", name),
		apiKey: cfg.APIKey,
		url:    cfg.BaseURL,
		model:  cfg.Model,
	}
	if o.url == "" {
		o.url = DefaultURL
	}
	if o.model == "" {
		o.model = DefaultModel
	}
	return o
}

// Name implements ports.Analyzer.
func (o *OpenAI) Name() domain.AnalysisSource {
	return domain.SourceOpenAI
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Analyze asks the model for the record as JSON and parses the first choice.
func (o *OpenAI) Analyze(ctx context.Context, host string) (*domain.PartialAnalysis, error) {
	if o.apiKey == "" {
		return nil, domain.ErrProviderDisabled
	}

	body, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []message{
			{Role: "system", Content: analyzers.SystemPrompt},
			{Role: "user", Content: analyzers.UserPrompt(host)},
		},
		Temperature: temperature,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode openai request")
	}

	raw, err := o.client.PostJSON(ctx, o.url, body, nil)
	if err != nil {
		return nil, analyzers.Classify(err)
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode openai response"), domain.ErrSchemaMismatch)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.Mark(errors.New("openai response has no choices"), domain.ErrSchemaMismatch)
	}

	return analyzers.ParsePartial(resp.Choices[0].Message.Content)
}
