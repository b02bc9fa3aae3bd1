// Package amass wraps the OWASP Amass CLI as a passive subdomain provider.
package amass

import (
	"context"
	"strings"
	"time"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/sources/common"
)

const (
	sourceName     = "amass"
	defaultTimeout = 600 * time.Second // passive enum is slow
)

// AmassSource implements ports.SubdomainProvider.
type AmassSource struct {
	*common.BaseCLISource
}

// New creates an AmassSource that runs "amass" from PATH.
func New(runner ports.CommandRunner, logger logx.Logger) *AmassSource {
	return NewWithConfig(runner, logger, sourceName, defaultTimeout)
}

// NewWithConfig creates AmassSource with a custom binary and timeout.
func NewWithConfig(runner ports.CommandRunner, logger logx.Logger, execPath string, timeout time.Duration) *AmassSource {
	return &AmassSource{
		BaseCLISource: common.NewBaseCLISource(runner, logger, common.BaseCLIConfig{
			SourceName: sourceName,
			ExecPath:   execPath,
			Timeout:    timeout,
		}),
	}
}

// Name returns the source name.
func (s *AmassSource) Name() string {
	return sourceName
}

// Enumerate runs `amass enum -passive -d <domain>`.
func (s *AmassSource) Enumerate(ctx context.Context, target domain.Target) ([]string, error) {
	lines, err := s.RunLines(ctx, "enum", "-passive", "-d", target.Root)
	if err != nil {
		return nil, err
	}

	hosts := make([]string, 0, len(lines))
	for _, line := range lines {
		if host := parseLine(line); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts, nil
}

// parseLine acepta tanto la salida plana (un host por línea) como el
// formato de grafo de amass v4: "a.example.com (FQDN) --> ...".
func parseLine(line string) string {
	if i := strings.Index(line, " ("); i > 0 {
		return strings.TrimSpace(line[:i])
	}
	return line
}
