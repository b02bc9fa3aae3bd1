// internal/platform/config/config.go
package config

import (
	"bytes"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"byakugan/internal/core/ports"
	"byakugan/internal/platform/errors"
	"byakugan/internal/platform/validator"
)

// Variables de entorno reconocidas.
const (
	EnvConfigFile    = "BYAKUGAN_CONFIG"
	EnvDomain        = "BYAKUGAN_DOMAIN"
	EnvOutputDir     = "BYAKUGAN_OUTPUT_DIR"
	EnvOutputFormat  = "BYAKUGAN_OUTPUT_FORMAT"
	EnvPacingDelay   = "BYAKUGAN_PACING_DELAY"
	EnvProviders     = "BYAKUGAN_ANALYSIS_PROVIDERS"
	EnvSkipToolCheck = "BYAKUGAN_SKIP_TOOL_CHECK"
	EnvMetricsFile   = "BYAKUGAN_METRICS_FILE"
	EnvLogLevel      = "BYAKUGAN_LOG_LEVEL"

	EnvGorkKey   = "GORK_API_KEY"
	EnvOpenAIKey = "OPENAI_API_KEY"
	EnvGeminiKey = "GEMINI_API_KEY"
)

// Formatos de salida de consola.
const (
	FormatPretty = "pretty"
	FormatTable  = "table"
	FormatJSON   = "json"
)

// DotEnvFile se carga del directorio de trabajo si existe.
const DotEnvFile = ".env"

// ErrMissingDomain indica que no se pasó -d/--domain.
var ErrMissingDomain = errors.New("target domain is required")

// Config agrupa toda la configuración de una corrida.
type Config struct {
	Core     CoreConfig     `yaml:"core"`
	Output   OutputConfig   `yaml:"output"`
	Tools    ToolsConfig    `yaml:"tools"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CoreConfig: target y comportamiento general.
type CoreConfig struct {
	Target        string `yaml:"domain"`
	LogLevel      string `yaml:"log_level"`
	SkipToolCheck bool   `yaml:"skip_tool_check"`

	// solo por flags
	PrintVersion bool   `yaml:"-"`
	PrintHelp    bool   `yaml:"-"`
	ConfigFile   string `yaml:"-"`
}

// OutputConfig: dónde y cómo se presenta el resultado.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// ToolConfig describe un binario externo. Timeout 0 = sin límite.
type ToolConfig struct {
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

// CrtshConfig configura el proveedor HTTP de certificados.
type CrtshConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ToolsConfig contiene los colaboradores externos.
type ToolsConfig struct {
	Subfinder   ToolConfig  `yaml:"subfinder"`
	Assetfinder ToolConfig  `yaml:"assetfinder"`
	Amass       ToolConfig  `yaml:"amass"`
	Httpx       ToolConfig  `yaml:"httpx"`
	Gowitness   ToolConfig  `yaml:"gowitness"`
	Crtsh       CrtshConfig `yaml:"crtsh"`
}

// ProviderConfig es la configuración de un analizador.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// AnalysisConfig controla la cadena de fallback.
type AnalysisConfig struct {
	// Providers es el orden de la cadena (gork, openai, gemini)
	Providers   []string      `yaml:"providers"`
	PacingDelay time.Duration `yaml:"pacing_delay"`
	Timeout     time.Duration `yaml:"timeout"`

	Gork   ProviderConfig `yaml:"gork"`
	OpenAI ProviderConfig `yaml:"openai"`
	Gemini ProviderConfig `yaml:"gemini"`
}

// MetricsConfig: volcado opcional de métricas Prometheus.
type MetricsConfig struct {
	File string `yaml:"file"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Core: CoreConfig{
			LogLevel: "info",
		},
		Output: OutputConfig{
			Dir:    "output",
			Format: FormatPretty,
		},
		Tools: ToolsConfig{
			Subfinder:   ToolConfig{Path: "subfinder"},
			Assetfinder: ToolConfig{Path: "assetfinder"},
			Amass:       ToolConfig{Path: "amass"},
			Httpx:       ToolConfig{Path: "httpx"},
			Gowitness:   ToolConfig{Path: "gowitness"},
			Crtsh: CrtshConfig{
				BaseURL: "https://crt.sh/",
				Timeout: 10 * time.Second,
			},
		},
		Analysis: AnalysisConfig{
			Providers:   []string{"gork", "openai"},
			PacingDelay: time.Second,
			Timeout:     15 * time.Second,
		},
	}
}

// Load inicializa la configuración.
// Precedencia: defaults -> archivo YAML -> ENV -> flags.
// .env se carga antes de leer ENV; las variables ya definidas ganan.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	if err := LoadDotEnv(DotEnvFile); err != nil {
		return cfg, err
	}

	fs, fv := newFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return cfg, errors.Wrap(err, "parse flags")
	}

	path := cfg.Core.ConfigFile
	if path == "" {
		path = getenv(EnvConfigFile, "")
	}
	if path != "" {
		if err := loadFromFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	loadFromEnv(&cfg)

	// las flags se re-aplican encima de archivo y ENV
	applyFlags(fs, fv, &cfg)

	normalize(&cfg)
	return cfg, nil
}

// Validate verifica lo mínimo para ejecutar el pipeline.
func (c Config) Validate() error {
	if c.Core.Target == "" {
		return ErrMissingDomain
	}
	return nil
}

// AnalyzerConfigs arma la configuración por nombre para el registry.
func (c Config) AnalyzerConfigs() map[string]ports.AnalyzerConfig {
	build := func(p ProviderConfig) ports.AnalyzerConfig {
		return ports.AnalyzerConfig{
			APIKey:  p.APIKey,
			BaseURL: p.BaseURL,
			Model:   p.Model,
			Timeout: c.Analysis.Timeout,
		}
	}
	return map[string]ports.AnalyzerConfig{
		"gork":   build(c.Analysis.Gork),
		"openai": build(c.Analysis.OpenAI),
		"gemini": build(c.Analysis.Gemini),
	}
}

// LoadDotEnv carga path si existe. Un archivo ausente no es error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "stat %s", path)
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	return nil
}

// flagValues guarda lo parseado para re-aplicarlo tras ENV.
type flagValues struct {
	domain, output, format, logLevel string
	skipToolCheck                    bool
}

func newFlagSet(cfg *Config) (*pflag.FlagSet, *flagValues) {
	fs := pflag.NewFlagSet("byakugan", pflag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(new(bytes.Buffer))

	fv := &flagValues{}
	fs.StringVarP(&fv.domain, "domain", "d", "", "Target domain (e.g., example.com)")
	fs.StringVarP(&cfg.Core.ConfigFile, "config", "c", "", "YAML configuration file")
	fs.StringVarP(&fv.output, "output", "o", "", "Output root directory")
	fs.StringVar(&fv.format, "format", "", "Console output: pretty, table or json")
	fs.StringVar(&fv.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&fv.skipToolCheck, "skip-tool-check", false, "Do not check or install external tools")
	fs.BoolVarP(&cfg.Core.PrintVersion, "version", "v", false, "Print version information and exit")
	fs.BoolVarP(&cfg.Core.PrintHelp, "help", "h", false, "Show this help message")
	return fs, fv
}

func applyFlags(fs *pflag.FlagSet, fv *flagValues, cfg *Config) {
	if fs.Changed("domain") {
		cfg.Core.Target = fv.domain
	}
	if fs.Changed("output") {
		cfg.Output.Dir = fv.output
	}
	if fs.Changed("format") {
		cfg.Output.Format = fv.format
	}
	if fs.Changed("log-level") {
		cfg.Core.LogLevel = fv.logLevel
	}
	if fs.Changed("skip-tool-check") {
		cfg.Core.SkipToolCheck = fv.skipToolCheck
	}
}

// loadFromFile aplica un YAML sobre los valores actuales; los campos
// ausentes conservan el default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config file %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv(EnvDomain, ""); v != "" {
		cfg.Core.Target = v
	}
	if v := getenv(EnvLogLevel, ""); v != "" {
		cfg.Core.LogLevel = v
	}
	if v := getenv(EnvSkipToolCheck, ""); v != "" {
		cfg.Core.SkipToolCheck = parseBool(v)
	}
	if v := getenv(EnvOutputDir, ""); v != "" {
		cfg.Output.Dir = v
	}
	if v := getenv(EnvOutputFormat, ""); v != "" {
		cfg.Output.Format = v
	}
	if v := getenv(EnvPacingDelay, ""); v != "" {
		cfg.Analysis.PacingDelay = parseDuration(v, cfg.Analysis.PacingDelay)
	}
	if v := getenv(EnvProviders, ""); v != "" {
		cfg.Analysis.Providers = splitList(v)
	}
	if v := getenv(EnvMetricsFile, ""); v != "" {
		cfg.Metrics.File = v
	}

	// Credenciales: ENV gana sobre el archivo
	if v := getenv(EnvGorkKey, ""); v != "" {
		cfg.Analysis.Gork.APIKey = v
	}
	if v := getenv(EnvOpenAIKey, ""); v != "" {
		cfg.Analysis.OpenAI.APIKey = v
	}
	if v := getenv(EnvGeminiKey, ""); v != "" {
		cfg.Analysis.Gemini.APIKey = v
	}
}

func normalize(c *Config) {
	c.Core.Target = validator.NormalizeDomain(c.Core.Target)
	c.Core.LogLevel = strings.ToLower(strings.TrimSpace(c.Core.LogLevel))

	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = "output"
	}
	switch f := strings.ToLower(strings.TrimSpace(c.Output.Format)); f {
	case FormatPretty, FormatTable, FormatJSON:
		c.Output.Format = f
	default:
		c.Output.Format = FormatPretty
	}

	if c.Analysis.PacingDelay < 0 {
		c.Analysis.PacingDelay = 0
	}
	if c.Analysis.Timeout <= 0 {
		c.Analysis.Timeout = 15 * time.Second
	}
	c.Analysis.Providers = dedupLower(c.Analysis.Providers)

	for _, t := range []*ToolConfig{
		&c.Tools.Subfinder, &c.Tools.Assetfinder, &c.Tools.Amass, &c.Tools.Httpx, &c.Tools.Gowitness,
	} {
		if t.Timeout < 0 {
			t.Timeout = 0
		}
	}
	if c.Tools.Crtsh.Timeout <= 0 {
		c.Tools.Crtsh.Timeout = 10 * time.Second
	}
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

// parseDuration acepta "1500ms", "2s" o un número de segundos ("0.5", "2").
func parseDuration(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(f * float64(time.Second))
	}
	return def
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dedupLower(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
