// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

// Usage es la línea corta impresa ante errores de argumentos.
const Usage = "Usage: byakugan -d <domain> [options]"

const helpText = `
Byakugan - Resumable Subdomain Recon Pipeline

USAGE:
  byakugan -d <domain> [options]

STAGES (each one is skipped when its artifact already exists):
  1. enumerate    subfinder, assetfinder, amass, crt.sh   -> subdomains.txt
  2. probe        httpx                                    -> live.txt
  3. screenshot   gowitness                                -> screenshots/
  4. analyze      gork, openai (fallback chain)            -> analysis.json

OPTIONS:
  -d, --domain string      Target domain (required, e.g., example.com)
  -c, --config string      YAML configuration file (or BYAKUGAN_CONFIG)
  -o, --output string      Output root directory (default: "output")
      --format string      Console output: pretty, table, json (default: pretty)
      --log-level string   debug, info, warn, error (default: info)
      --skip-tool-check    Do not check or install external tools

INFO:
  -v, --version            Print version information and exit
  -h, --help               Show this help message

ENVIRONMENT VARIABLES:
  A .env file in the working directory is loaded first (existing variables win).

  GORK_API_KEY                   Gork AI credential
  OPENAI_API_KEY                 OpenAI credential
  GEMINI_API_KEY                 Gemini credential (only used when listed in providers)
  BYAKUGAN_CONFIG=/path.yaml     Configuration file
  BYAKUGAN_OUTPUT_DIR=/path      Output root directory
  BYAKUGAN_OUTPUT_FORMAT=table   Console output format
  BYAKUGAN_PACING_DELAY=1s       Delay after each analyzed host
  BYAKUGAN_ANALYSIS_PROVIDERS    Comma-separated chain order (default: gork,openai)
  BYAKUGAN_SKIP_TOOL_CHECK=true  Skip the external tool check
  BYAKUGAN_METRICS_FILE=/path    Write Prometheus metrics there at exit
  BYAKUGAN_LOG_LEVEL=debug       Log level

  Note: CLI flags override environment variables, which override the file.

OUTPUT LAYOUT:
  output/<domain>/subdomains.txt
  output/<domain>/live.txt
  output/<domain>/screenshots/
  output/<domain>/analysis.json

  Delete a file to force its stage to run again.

EXAMPLES:
  byakugan -d example.com
  byakugan -d example.com --format table -o /data/recon
  BYAKUGAN_ANALYSIS_PROVIDERS=openai,gemini byakugan -d example.com
`

// WriteHelp escribe la ayuda completa en w.
func WriteHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintHelp prints the custom help message and exits.
func PrintHelp() {
	WriteHelp(os.Stdout)
	os.Exit(0)
}

// PrintVersion prints version information and exits.
func PrintVersion(version, commit, date string) {
	fmt.Printf("Byakugan %s\n", version)
	fmt.Printf("  Commit:  %s\n", commit)
	fmt.Printf("  Built:   %s\n", date)
	fmt.Printf("  Go:      %s\n", getGoVersion())
	os.Exit(0)
}

func getGoVersion() string {
	return runtime.Version()
}
