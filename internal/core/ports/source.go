// internal/core/ports/source.go
package ports

import (
	"context"
	"time"

	"byakugan/internal/core/domain"
)

// CommandResult es la salida de una herramienta externa.
type CommandResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// CommandRunner es el colaborador invoke(tool, args) -> (stdout, exitcode).
// Toda ejecución de procesos pasa por aquí para que los tests puedan
// sustituirla sin lanzar binarios reales.
//
// Contrato: binario ausente -> error que envuelve domain.ErrToolMissing;
// exit != 0 -> resultado completo más error que envuelve domain.ErrToolFailed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (CommandResult, error)
}

// SubdomainProvider es una fuente independiente de descubrimiento de subdominios
// (subfinder, assetfinder, amass, crt.sh).
type SubdomainProvider interface {
	// Name retorna el nombre único del proveedor (ej: "subfinder", "crtsh")
	Name() string

	// Enumerate retorna los hosts encontrados para el target.
	// Un error significa que el proveedor no contribuye nada.
	Enumerate(ctx context.Context, target domain.Target) ([]string, error)
}

// LivenessProber delega el chequeo de alcanzabilidad a una herramienta externa
// con una sola invocación sobre todos los candidatos.
type LivenessProber interface {
	Probe(ctx context.Context, hosts []string) ([]string, error)
}

// ScreenshotTaker captura evidencia visual de los hosts vivos en dir.
type ScreenshotTaker interface {
	Capture(ctx context.Context, hosts []string, dir string) error
}

// Analyzer es un proveedor de análisis de riesgo (gork, openai, gemini).
type Analyzer interface {
	// Name identifica al proveedor en el campo source del registro
	Name() domain.AnalysisSource

	// Analyze retorna un análisis parcial; error o nil significan "falló".
	Analyze(ctx context.Context, host string) (*domain.PartialAnalysis, error)
}

// AnalyzerConfig contiene la configuración de un analizador.
type AnalyzerConfig struct {
	// APIKey vacío deshabilita el analizador (ErrProviderDisabled)
	APIKey string

	// BaseURL sobreescribe el endpoint (tests, proxies)
	BaseURL string

	// Model para proveedores basados en LLM
	Model string

	// Timeout por llamada
	Timeout time.Duration
}

// AnalyzerMetadata describe un analizador registrado.
type AnalyzerMetadata struct {
	Name        string
	Description string
	Source      domain.AnalysisSource
	EnvKey      string // variable de entorno con la credencial
}
