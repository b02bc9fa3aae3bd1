// Package main implements the Byakugan external tool installer CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"byakugan/internal/platform/logx"
	"byakugan/internal/sources/common"
	"byakugan/internal/toolcheck"

	"github.com/spf13/pflag"
)

const (
	version = "1.0.0"
	appName = "Byakugan Dependency Installer"
)

// Config holds CLI configuration.
type Config struct {
	CheckOnly   bool
	Verbose     bool
	ShowVersion bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("%s v%s\n", appName, version)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logLevel := logx.LevelWarn
	if cfg.Verbose {
		logLevel = logx.LevelDebug
	}
	logger := logx.NewWithLevel(logLevel)

	if err := run(ctx, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "\n❌ %v\n\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command-line flags.
func parseFlags() Config {
	var cfg Config

	pflag.BoolVar(&cfg.CheckOnly, "check", false, "Only check tools, do not install")
	pflag.BoolVar(&cfg.Verbose, "verbose", false, "Verbose mode (detailed logging)")
	pflag.BoolVarP(&cfg.ShowVersion, "version", "v", false, "Show version and exit")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", appName, version)
		fmt.Fprintf(os.Stderr, "USAGE:\n")
		fmt.Fprintf(os.Stderr, "  install-deps [flags]\n\n")
		fmt.Fprintf(os.Stderr, "FLAGS:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEXAMPLES:\n")
		fmt.Fprintf(os.Stderr, "  # Install every missing go-installable tool\n")
		fmt.Fprintf(os.Stderr, "  install-deps\n\n")
		fmt.Fprintf(os.Stderr, "  # Check tools only\n")
		fmt.Fprintf(os.Stderr, "  install-deps --check\n\n")
	}

	pflag.Parse()

	return cfg
}

// run executes the check or install flow.
func run(ctx context.Context, cfg Config, logger logx.Logger) error {
	deps, err := toolcheck.DefaultConfig()
	if err != nil {
		return err
	}

	checker := toolcheck.New(toolcheck.Options{
		Config: deps,
		Runner: common.NewExecRunner(logger),
		Logger: logger,
		OnInstall: func(tool toolcheck.Tool) {
			fmt.Printf("   Installing %s...\n", tool.Name)
		},
	})

	fmt.Printf("\n%s\n\n", appName)

	var results []toolcheck.Result
	if cfg.CheckOnly {
		results = checker.Check(ctx)
	} else {
		results = checker.EnsureInstalled(ctx)
	}
	toolcheck.WriteReport(os.Stdout, results)

	ready, missing := toolcheck.Summary(results)
	fmt.Printf("\n%d/%d tools ready\n", ready, ready+missing)

	if cfg.CheckOnly || missing == 0 {
		return nil
	}
	for _, r := range results {
		if r.Status == toolcheck.StatusFailed {
			return fmt.Errorf("%d tools could not be installed", missing)
		}
	}
	return nil
}
