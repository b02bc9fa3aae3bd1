// Package subfinder wraps Project Discovery's subfinder CLI as a subdomain provider.
package subfinder

import (
	"context"
	"time"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/sources/common"
)

const (
	sourceName     = "subfinder"
	defaultTimeout = 240 * time.Second // subfinder with free sources
)

// SubfinderSource implements ports.SubdomainProvider.
type SubfinderSource struct {
	*common.BaseCLISource
}

// New creates a SubfinderSource that runs "subfinder" from PATH.
func New(runner ports.CommandRunner, logger logx.Logger) *SubfinderSource {
	return NewWithConfig(runner, logger, sourceName, defaultTimeout)
}

// NewWithConfig creates SubfinderSource with a custom binary and timeout.
func NewWithConfig(runner ports.CommandRunner, logger logx.Logger, execPath string, timeout time.Duration) *SubfinderSource {
	return &SubfinderSource{
		BaseCLISource: common.NewBaseCLISource(runner, logger, common.BaseCLIConfig{
			SourceName: sourceName,
			ExecPath:   execPath,
			Timeout:    timeout,
		}),
	}
}

// Name returns the source name.
func (s *SubfinderSource) Name() string {
	return sourceName
}

// Enumerate runs `subfinder -d <domain> -silent`; one host per stdout line.
func (s *SubfinderSource) Enumerate(ctx context.Context, target domain.Target) ([]string, error) {
	return s.RunLines(ctx, s.buildArgs(target)...)
}

func (s *SubfinderSource) buildArgs(target domain.Target) []string {
	return []string{"-d", target.Root, "-silent"}
}
