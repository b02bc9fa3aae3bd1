// internal/core/domain/enums.go
package domain

// ArtifactKind identifica cada artefacto persistido por dominio.
type ArtifactKind string

const (
	ArtifactSubdomains  ArtifactKind = "subdomains"
	ArtifactLive        ArtifactKind = "live"
	ArtifactScreenshots ArtifactKind = "screenshots"
	ArtifactAnalysis    ArtifactKind = "analysis"
)

// IsValid verifica si el tipo de artefacto es conocido.
func (k ArtifactKind) IsValid() bool {
	switch k {
	case ArtifactSubdomains, ArtifactLive, ArtifactScreenshots, ArtifactAnalysis:
		return true
	default:
		return false
	}
}

// FileName retorna el nombre fijo del artefacto dentro del directorio del dominio.
func (k ArtifactKind) FileName() string {
	switch k {
	case ArtifactSubdomains:
		return "subdomains.txt"
	case ArtifactLive:
		return "live.txt"
	case ArtifactScreenshots:
		return "screenshots"
	case ArtifactAnalysis:
		return "analysis.json"
	default:
		return ""
	}
}

func (k ArtifactKind) String() string {
	return string(k)
}

// Stage es una fase del pipeline.
type Stage string

const (
	StageEnumerate  Stage = "enumerate"
	StageProbe      Stage = "probe"
	StageScreenshot Stage = "screenshot"
	StageAnalyze    Stage = "analyze"
)

// Stages en el orden fijo de ejecución.
var Stages = []Stage{StageEnumerate, StageProbe, StageScreenshot, StageAnalyze}

// Artifact retorna el artefacto que produce la fase.
func (s Stage) Artifact() ArtifactKind {
	switch s {
	case StageEnumerate:
		return ArtifactSubdomains
	case StageProbe:
		return ArtifactLive
	case StageScreenshot:
		return ArtifactScreenshots
	case StageAnalyze:
		return ArtifactAnalysis
	default:
		return ""
	}
}

func (s Stage) String() string {
	return string(s)
}

// StageState es el estado de reanudación de una fase, calculado una vez
// al inicio de la corrida.
type StageState int

const (
	// StatePending: no hay artefacto, la fase debe ejecutarse
	StatePending StageState = iota
	// StateLoaded: el artefacto ya existía y se reutiliza
	StateLoaded
	// StateCompleted: la fase se ejecutó en esta corrida
	StateCompleted
)

func (s StageState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLoaded:
		return "loaded"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// RiskLevel es el nivel de riesgo normalizado de un host.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// IsValid verifica si el nivel de riesgo es uno de los tres aceptados.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// AnalysisSource registra qué proveedor produjo un AnalysisRecord.
type AnalysisSource string

const (
	SourceGork     AnalysisSource = "gork_ai"
	SourceOpenAI   AnalysisSource = "openai"
	SourceGemini   AnalysisSource = "gemini"
	SourceUnscored AnalysisSource = "unscored"
)

func (s AnalysisSource) String() string {
	return string(s)
}
