package toolcheck

import (
	"context"
	_ "embed"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/errors"
	"byakugan/internal/platform/logx"

	"gopkg.in/yaml.v3"
)

//go:embed deps.yaml
var defaultDeps []byte

// DefaultConfig retorna la lista embebida de herramientas.
func DefaultConfig() (Config, error) {
	return ParseConfig(defaultDeps)
}

// ParseConfig parsea un deps.yaml.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse deps.yaml")
	}
	for i, t := range cfg.Tools {
		if strings.TrimSpace(t.Name) == "" {
			return Config{}, errors.Errorf("tool #%d has no name", i+1)
		}
	}
	return cfg, nil
}

// Checker verifica e instala herramientas externas.
type Checker struct {
	tools     []Tool
	paths     map[string]string
	runner    ports.CommandRunner
	logger    logx.Logger
	lookPath  func(string) (string, error)
	pathDirs  func() []string
	onInstall func(tool Tool)
}

// Options configura el Checker.
type Options struct {
	Config Config

	// Paths sobreescribe el ejecutable por herramienta (config tools.*.path)
	Paths map[string]string

	// Runner ejecuta `go install`; nil deshabilita la instalación
	Runner ports.CommandRunner

	Logger logx.Logger

	// OnInstall se llama antes de instalar cada herramienta
	OnInstall func(tool Tool)
}

// New crea un Checker.
func New(opts Options) *Checker {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	return &Checker{
		tools:     opts.Config.Tools,
		paths:     opts.Paths,
		runner:    opts.Runner,
		logger:    opts.Logger.With("component", "toolcheck"),
		lookPath:  exec.LookPath,
		pathDirs:  pathEntries,
		onInstall: opts.OnInstall,
	}
}

// Tools retorna las herramientas configuradas.
func (c *Checker) Tools() []Tool {
	return c.tools
}

// Check reporta si cada herramienta está instalada, sin instalar nada.
func (c *Checker) Check(ctx context.Context) []Result {
	results := make([]Result, 0, len(c.tools))
	for _, tool := range c.tools {
		results = append(results, c.check(tool))
	}
	return results
}

func (c *Checker) check(tool Tool) Result {
	exe := c.executable(tool)
	path, err := c.lookPath(exe)
	if err != nil {
		c.logger.Debug("tool not found", "tool", tool.Name, "exec", exe)
		return Result{Tool: tool, Status: StatusMissing, Message: "not found in PATH"}
	}
	return Result{Tool: tool, Status: StatusInstalled, Path: path, Message: "installed"}
}

// EnsureInstalled instala con `go install -v` las herramientas que faltan.
// Las de instalación manual solo se reportan. Nunca es fatal: los fallos
// quedan en el Result de cada herramienta.
func (c *Checker) EnsureInstalled(ctx context.Context) []Result {
	results := make([]Result, 0, len(c.tools))
	installed := 0

	for _, tool := range c.tools {
		res := c.check(tool)
		if res.Status == StatusInstalled {
			results = append(results, res)
			continue
		}

		if ctx.Err() != nil {
			res.Error = ctx.Err()
			results = append(results, res)
			continue
		}

		if !tool.GoInstallable() {
			res.Status = StatusManual
			res.Message = "install manually from " + tool.Install.Manual
			c.logger.Warn("tool requires manual install", "tool", tool.Name, "url", tool.Install.Manual)
			results = append(results, res)
			continue
		}

		res = c.install(ctx, tool)
		if res.Status == StatusSuccess {
			installed++
		}
		results = append(results, res)
	}

	if installed > 0 {
		if dir := goBinDir(ctx, c.runner); dir != "" && !IsInPath(dir, c.pathDirs()) {
			c.logger.Warn("go install directory is not in PATH", "dir", dir)
		}
	}
	return results
}

func (c *Checker) install(ctx context.Context, tool Tool) Result {
	res := Result{Tool: tool}
	if c.runner == nil {
		res.Status = StatusFailed
		res.Error = errors.New("installation disabled")
		res.Message = "installation disabled"
		return res
	}

	if c.onInstall != nil {
		c.onInstall(tool)
	}
	c.logger.Info("installing tool", "tool", tool.Name, "package", tool.Install.Go)

	start := time.Now()
	out, err := c.runner.Run(ctx, "go", "install", "-v", tool.Install.Go)
	res.Duration = time.Since(start)

	if err != nil {
		res.Status = StatusFailed
		res.Error = err
		switch {
		case errors.Is(err, domain.ErrToolMissing):
			res.Message = fmt.Sprintf("Go not found. Please install Go first to install %s", tool.Name)
		default:
			res.Message = "failed to install: " + firstLine(string(out.Stderr), err.Error())
		}
		c.logger.Warn("tool install failed", "tool", tool.Name, "error", err.Error())
		return res
	}

	res.Status = StatusSuccess
	res.Message = "installed successfully"
	if path, err := c.lookPath(c.executable(tool)); err == nil {
		res.Path = path
	}
	c.logger.Info("tool installed", "tool", tool.Name, "duration", res.Duration.String())
	return res
}

func (c *Checker) executable(tool Tool) string {
	if p := strings.TrimSpace(c.paths[tool.Name]); p != "" {
		return p
	}
	return tool.Name
}

func firstLine(s, fallback string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return fallback
}
