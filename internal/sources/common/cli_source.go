// Package common provides shared abstractions for source implementations.
package common

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/errors"
	"byakugan/internal/platform/logx"
)

// ExecRunner implements ports.CommandRunner on top of os/exec.
// Stdout is captured whole; stderr is drained in the background so a
// chatty tool never blocks on a full pipe.
type ExecRunner struct {
	logger logx.Logger
}

// NewExecRunner creates the process-backed CommandRunner.
func NewExecRunner(logger logx.Logger) *ExecRunner {
	return &ExecRunner{logger: logger.With("component", "exec")}
}

// Run executes name with args and waits for it to finish.
//
// Returns:
//   - ErrToolMissing (wrapped) when the binary is not in PATH
//   - the full result plus ErrToolFailed (wrapped) on non-zero exit
//   - the context error when ctx expired before the tool finished
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (ports.CommandResult, error) {
	var res ports.CommandResult
	startTime := time.Now()

	r.logger.Debug("executing CLI command", "exec_path", name, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return res, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return res, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return res, errors.Mark(err, domain.ErrToolMissing)
		}
		return res, fmt.Errorf("failed to start %s: %w", name, err)
	}

	r.logger.Debug("subprocess started", "pid", cmd.Process.Pid)

	// Read stderr in background to prevent blocking
	var stderrBuf bytes.Buffer
	var stderrWg sync.WaitGroup
	stderrWg.Add(1)
	go func() {
		defer stderrWg.Done()
		if _, readErr := io.Copy(&stderrBuf, stderr); readErr != nil {
			r.logger.Warn("error reading stderr", "error", readErr.Error())
		}
	}()

	out, readErr := io.ReadAll(stdout)
	if readErr != nil {
		r.logger.Warn("error reading stdout", "error", readErr.Error())
	}

	// stderr debe drenarse antes de Wait, que cierra los pipes
	stderrWg.Wait()
	waitErr := cmd.Wait()

	res.Stdout = out
	res.Stderr = stderrBuf.Bytes()
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	duration := time.Since(startTime)

	if ctx.Err() != nil {
		return res, errors.Wrapf(ctx.Err(), "%s interrupted after %s", name, duration.Round(time.Millisecond))
	}

	if waitErr != nil {
		r.logger.Debug("subprocess exited with error",
			"exec_path", name,
			"exit_code", res.ExitCode,
			"duration", duration.String(),
		)
		return res, errors.Mark(fmt.Errorf("%s exited with code %d: %w", name, res.ExitCode, waitErr), domain.ErrToolFailed)
	}

	r.logger.Debug("CLI command completed", "exec_path", name, "duration", duration.String())
	return res, nil
}

// BaseCLISource provides the common plumbing for CLI-backed subdomain providers.
//
// Usage:
//  1. Embed BaseCLISource in your source struct
//  2. Build it with NewBaseCLISource
//  3. Call RunLines() with the tool arguments in Enumerate()
type BaseCLISource struct {
	runner   ports.CommandRunner
	logger   logx.Logger
	execPath string
	timeout  time.Duration
}

// BaseCLIConfig contains configuration for BaseCLISource.
type BaseCLIConfig struct {
	SourceName string        // Source name for logging
	ExecPath   string        // Binary name or path
	Timeout    time.Duration // Per-invocation timeout (0 = only the parent ctx)
}

// NewBaseCLISource creates a new BaseCLISource with the given configuration.
func NewBaseCLISource(runner ports.CommandRunner, logger logx.Logger, cfg BaseCLIConfig) *BaseCLISource {
	if cfg.ExecPath == "" {
		cfg.ExecPath = cfg.SourceName
	}
	return &BaseCLISource{
		runner:   runner,
		logger:   logger.With("source", cfg.SourceName),
		execPath: cfg.ExecPath,
		timeout:  cfg.Timeout,
	}
}

// RunLines invokes the tool and returns its stdout split into trimmed,
// non-empty lines. Any failure returns nil lines and the classified error.
func (b *BaseCLISource) RunLines(ctx context.Context, args ...string) ([]string, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	res, err := b.runner.Run(ctx, b.execPath, args...)
	if err != nil {
		if stderr := strings.TrimSpace(string(res.Stderr)); stderr != "" {
			b.logger.Debug("subprocess stderr", "output", stderr)
		}
		return nil, err
	}

	return ParseLines(res.Stdout), nil
}

// GetExecPath returns the configured executable.
func (b *BaseCLISource) GetExecPath() string {
	return b.execPath
}

// GetLogger returns the logger instance.
func (b *BaseCLISource) GetLogger() logx.Logger {
	return b.logger
}

// ParseLines splits tool output into trimmed lines, dropping blanks.
// Order is preserved.
func ParseLines(data []byte) []string {
	lines := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))

	// Increase buffer size for large output lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max token size

	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// WriteTempList writes one entry per line to a fresh temp file and returns
// its path plus a cleanup func that removes it.
func WriteTempList(pattern string, entries []string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", func() {}, errors.Wrap(err, "create temp list")
	}
	cleanup := func() { _ = os.Remove(f.Name()) }

	w := bufio.NewWriter(f)
	for _, e := range entries {
		if _, err := w.WriteString(e + "\n"); err != nil {
			f.Close()
			cleanup()
			return "", func() {}, errors.Wrap(err, "write temp list")
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		cleanup()
		return "", func() {}, errors.Wrap(err, "flush temp list")
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, errors.Wrap(err, "close temp list")
	}
	return f.Name(), cleanup, nil
}
