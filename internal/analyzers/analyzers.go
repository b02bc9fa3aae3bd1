// Package analyzers holds what the AI risk analyzers share: the prompt,
// the authenticated HTTP client and the parsing of model replies.
package analyzers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"byakugan/internal/core/domain"
	"byakugan/internal/platform/errors"
	"byakugan/internal/platform/httpclient"
	"byakugan/internal/platform/logx"
	"byakugan/internal/platform/validator"
)

// DefaultTimeout es el timeout por llamada de todos los analizadores.
const DefaultTimeout = 15 * time.Second

// SystemPrompt fija el rol del modelo.
const SystemPrompt = "You are a cybersecurity expert. Respond only with valid JSON."

// UserPrompt pide el análisis de un host en el esquema de AnalysisRecord.
func UserPrompt(host string) string {
	return fmt.Sprintf(`Analyze this subdomain: %s - Return JSON with:
  - tech_stack: List of technologies detected
  - likely_issues: List of likely security issues
  - risk_level: "high", "medium", or "low"
  - bug_bounty_potential: true or false
  - summary: One-line security assessment

Respond only with valid JSON, no additional text.`, validator.WithScheme(host))
}

// NewBearerClient crea un httpclient que firma cada petición con
// "Authorization: Bearer <apiKey>" vía oauth2.StaticTokenSource.
// Sin reintentos: la cadena de fallback es el reintento.
func NewBearerClient(apiKey string, timeout time.Duration, logger logx.Logger) *httpclient.Client {
	cfg := clientConfig(timeout)
	cfg.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"}),
		Base:   http.DefaultTransport,
	}
	return httpclient.New(cfg, logger)
}

// NewClient crea un httpclient sin autenticación de transporte
// (el proveedor usa su propia cabecera de API key).
func NewClient(timeout time.Duration, logger logx.Logger) *httpclient.Client {
	return httpclient.New(clientConfig(timeout), logger)
}

func clientConfig(timeout time.Duration) httpclient.Config {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return httpclient.Config{
		Timeout:    timeout,
		MaxRetries: 0,
	}
}

// ParsePartial decodifica la respuesta textual de un modelo.
// Tolera bloques ```json ... ``` alrededor del JSON.
func ParsePartial(content string) (*domain.PartialAnalysis, error) {
	content = StripCodeFence(content)
	if content == "" {
		return nil, errors.Mark(errors.New("empty model reply"), domain.ErrSchemaMismatch)
	}

	var partial domain.PartialAnalysis
	if err := json.Unmarshal([]byte(content), &partial); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "model reply is not JSON"), domain.ErrSchemaMismatch)
	}
	return &partial, nil
}

// StripCodeFence quita el cercado markdown (``` o ```json) de una respuesta.
func StripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimPrefix(content, "json")
		content = strings.TrimPrefix(content, "JSON")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// Classify marca un error de transporte/HTTP como ErrNetwork.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrSchemaMismatch) || errors.Is(err, domain.ErrNetwork) {
		return err
	}
	return errors.Mark(err, domain.ErrNetwork)
}
