// internal/platform/ui/presenter.go
package ui

import (
	"time"
)

// Presenter define la interfaz para presentar el progreso de una corrida
// del pipeline de reconocimiento en la consola.
type Presenter interface {
	// Start muestra el header de la corrida
	Start(info RunInfo)

	// StartStage notifica el inicio de un stage que se va a ejecutar
	StartStage(stage StageInfo)

	// SkipStage notifica un stage reanudado desde disco (loaded = items cargados)
	SkipStage(stage StageInfo, loaded int)

	// FinishStage notifica la finalización de un stage ejecutado
	FinishStage(stage StageInfo, duration time.Duration, produced int)

	// ProviderResult reporta la contribución de un proveedor de subdominios
	ProviderResult(name string, status Status, count int)

	// HostList muestra una lista de hosts con título
	HostList(title string, hosts []string)

	// Alert destaca un host vivo que contiene una keyword de alto valor
	Alert(host, keyword string)

	// HighRisk muestra los hosts con riesgo alto al final del análisis
	HighRisk(rows []RiskRow)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish finaliza la presentación con estadísticas finales
	Finish(stats RunStats)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene información inicial de la corrida
type RunInfo struct {
	Target    string
	RunID     string
	OutputDir string
	Stages    []string
	Analyzers []string
}

// StageInfo identifica un stage
type StageInfo struct {
	Number      int
	TotalStages int
	Name        string
	Tools       []string
}

// RiskRow es una fila de la tabla de hosts de alto riesgo
type RiskRow struct {
	Host    string
	Summary string
	Source  string
	Bounty  bool
}

// StageOutcome resume el estado final de un stage
type StageOutcome struct {
	Name  string
	State string
	Count int
}

// RunStats contiene estadísticas finales de la corrida
type RunStats struct {
	Duration   time.Duration
	Subdomains int
	Live       int
	Alerts     int
	Analyzed   int
	HighRisk   int
	OutputDir  string
	Stages     []StageOutcome
}
