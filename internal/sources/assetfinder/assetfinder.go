// Package assetfinder wraps tomnomnom's assetfinder CLI as a subdomain provider.
package assetfinder

import (
	"context"
	"time"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/sources/common"
)

const (
	sourceName     = "assetfinder"
	defaultTimeout = 120 * time.Second
)

// AssetfinderSource implements ports.SubdomainProvider.
// assetfinder no tiene flag de silencio: ya imprime solo hosts.
type AssetfinderSource struct {
	*common.BaseCLISource
}

// New creates an AssetfinderSource that runs "assetfinder" from PATH.
func New(runner ports.CommandRunner, logger logx.Logger) *AssetfinderSource {
	return NewWithConfig(runner, logger, sourceName, defaultTimeout)
}

// NewWithConfig creates AssetfinderSource with a custom binary and timeout.
func NewWithConfig(runner ports.CommandRunner, logger logx.Logger, execPath string, timeout time.Duration) *AssetfinderSource {
	return &AssetfinderSource{
		BaseCLISource: common.NewBaseCLISource(runner, logger, common.BaseCLIConfig{
			SourceName: sourceName,
			ExecPath:   execPath,
			Timeout:    timeout,
		}),
	}
}

// Name returns the source name.
func (s *AssetfinderSource) Name() string {
	return sourceName
}

// Enumerate runs `assetfinder <domain>`.
func (s *AssetfinderSource) Enumerate(ctx context.Context, target domain.Target) ([]string, error) {
	return s.RunLines(ctx, target.Root)
}
