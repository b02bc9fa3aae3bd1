// Package gowitness wraps sensepost's gowitness CLI for screenshot capture.
package gowitness

import (
	"context"
	"time"

	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/platform/validator"
	"byakugan/internal/sources/common"
)

const (
	sourceName     = "gowitness"
	defaultTimeout = 30 * time.Minute
)

// Screenshotter implements ports.ScreenshotTaker.
type Screenshotter struct {
	*common.BaseCLISource
}

// New creates a Screenshotter that runs "gowitness" from PATH.
func New(runner ports.CommandRunner, logger logx.Logger) *Screenshotter {
	return NewWithConfig(runner, logger, sourceName, defaultTimeout)
}

// NewWithConfig creates a Screenshotter with a custom binary and timeout.
func NewWithConfig(runner ports.CommandRunner, logger logx.Logger, execPath string, timeout time.Duration) *Screenshotter {
	return &Screenshotter{
		BaseCLISource: common.NewBaseCLISource(runner, logger, common.BaseCLIConfig{
			SourceName: sourceName,
			ExecPath:   execPath,
			Timeout:    timeout,
		}),
	}
}

// Capture runs `gowitness scan file -f <file> -s <dir>` over the hosts.
// Hosts without scheme get https://; file naming is left to gowitness.
func (s *Screenshotter) Capture(ctx context.Context, hosts []string, dir string) error {
	if len(hosts) == 0 {
		return nil
	}

	urls := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if u := validator.WithScheme(h); u != "" {
			urls = append(urls, u)
		}
	}

	path, cleanup, err := common.WriteTempList("byakugan-urls-*.txt", urls)
	if err != nil {
		return err
	}
	defer cleanup()

	s.GetLogger().Debug("capturing screenshots", "count", len(urls), "dir", dir)
	_, err = s.RunLines(ctx, "scan", "file", "-f", path, "-s", dir)
	return err
}
