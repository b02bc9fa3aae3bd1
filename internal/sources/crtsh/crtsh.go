// internal/sources/crtsh/crtsh.go
package crtsh

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"byakugan/internal/core/domain"
	"byakugan/internal/platform/errors"
	"byakugan/internal/platform/httpclient"
	"byakugan/internal/platform/logx"
)

const (
	sourceName = "crtsh"

	// DefaultBaseURL es el endpoint público de crt.sh.
	DefaultBaseURL = "https://crt.sh/"

	defaultTimeout = 10 * time.Second
)

// CRT implementa una fuente que consulta la base de datos crt.sh
// para descubrir subdominios en certificados SSL/TLS.
type CRT struct {
	client  *httpclient.Client
	logger  logx.Logger
	baseURL string
}

// Config permite sobreescribir endpoint y timeout (tests, mirrors).
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New crea la fuente crt.sh con la configuración por defecto.
func New(logger logx.Logger) *CRT {
	return NewWithConfig(logger, Config{})
}

// NewWithConfig crea la fuente crt.sh con endpoint/timeout propios.
func NewWithConfig(logger logx.Logger, cfg Config) *CRT {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	httpConfig := httpclient.Config{
		Timeout:         cfg.Timeout,
		MaxRetries:      1, // crt.sh devuelve 502 con frecuencia
		RetryBackoff:    2 * time.Second,
		MaxRetryBackoff: 10 * time.Second,
		RateLimit:       2.0, // 2 req/s - ser respetuoso con crt.sh
		RateLimitBurst:  1,
	}

	return &CRT{
		client:  httpclient.New(httpConfig, logger),
		logger:  logger.With("source", sourceName),
		baseURL: cfg.BaseURL,
	}
}

// Name retorna el nombre de la fuente.
func (c *CRT) Name() string {
	return sourceName
}

// Enumerate consulta `?q=<domain>&output=json` y extrae los nombres de
// cada certificado. Solo se conservan los que contienen el dominio como
// substring (filtro de relevancia conservador, no de sufijo).
func (c *CRT) Enumerate(ctx context.Context, target domain.Target) ([]string, error) {
	c.logger.Debug("starting crtsh query", "target", target.Root)

	body, err := c.client.FetchJSON(ctx, c.buildURL(target.Root))
	if err != nil {
		return nil, errors.Mark(err, domain.ErrNetwork)
	}

	var records []certRecord
	if err := json.Unmarshal(body, &records); err != nil {
		// crt.sh a veces devuelve HTML de error con status 200
		return nil, errors.Mark(errors.Wrap(err, "crt.sh returned invalid JSON"), domain.ErrNetwork)
	}

	hosts := extractHosts(records, target)
	c.logger.Debug("parsed crtsh records", "records", len(records), "hosts", len(hosts))
	return hosts, nil
}

func (c *CRT) buildURL(root string) string {
	q := url.Values{}
	q.Set("q", root)
	q.Set("output", "json")
	return c.baseURL + "?" + q.Encode()
}

// extractHosts aplica el split por \n de name_value y el filtro de relevancia.
func extractHosts(records []certRecord, target domain.Target) []string {
	hosts := make([]string, 0)
	for _, record := range records {
		// name_value puede contener múltiples dominios separados por \n
		for _, host := range strings.Split(record.NameValue, "\n") {
			host = strings.TrimSpace(host)
			if host == "" || !target.Mentions(host) {
				continue
			}
			hosts = append(hosts, host)
		}
	}
	return hosts
}

// certRecord representa un registro de certificado de crt.sh.
type certRecord struct {
	IssuerName   string `json:"issuer_name"`
	NameValue    string `json:"name_value"`
	NotAfter     string `json:"not_after"`
	NotBefore    string `json:"not_before"`
	SerialNumber string `json:"serial_number"`
}
