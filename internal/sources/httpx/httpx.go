// Package httpx wraps Project Discovery's httpx CLI as the liveness prober.
package httpx

import (
	"context"
	"time"

	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/sources/common"
)

const (
	sourceName     = "httpx"
	defaultTimeout = 15 * time.Minute // large lists take a while
)

// Prober implements ports.LivenessProber with a single batched invocation.
type Prober struct {
	*common.BaseCLISource
}

// New creates a Prober that runs "httpx" from PATH.
func New(runner ports.CommandRunner, logger logx.Logger) *Prober {
	return NewWithConfig(runner, logger, sourceName, defaultTimeout)
}

// NewWithConfig creates a Prober with a custom binary and timeout.
func NewWithConfig(runner ports.CommandRunner, logger logx.Logger, execPath string, timeout time.Duration) *Prober {
	return &Prober{
		BaseCLISource: common.NewBaseCLISource(runner, logger, common.BaseCLIConfig{
			SourceName: sourceName,
			ExecPath:   execPath,
			Timeout:    timeout,
		}),
	}
}

// Probe writes hosts to a temp file and runs `httpx -silent -l <file>`.
// The live hosts come back in tool order; the temp file is always removed.
func (p *Prober) Probe(ctx context.Context, hosts []string) ([]string, error) {
	if len(hosts) == 0 {
		return []string{}, nil
	}

	path, cleanup, err := common.WriteTempList("byakugan-hosts-*.txt", hosts)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	p.GetLogger().Debug("probing hosts", "count", len(hosts), "list", path)
	return p.RunLines(ctx, "-silent", "-l", path)
}
