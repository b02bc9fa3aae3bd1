// internal/core/domain/summary.go
package domain

import "time"

// StageReport es el estado final de un stage en una corrida.
type StageReport struct {
	Stage    Stage         `json:"stage"`
	State    string        `json:"state"`
	Count    int           `json:"count"`
	Duration time.Duration `json:"duration_ns"`
}

// RunSummary describe lo que hizo una corrida del pipeline.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Target     string    `json:"target"`
	OutputDir  string    `json:"output_dir"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Stages []StageReport `json:"stages"`

	Subdomains int     `json:"subdomains"`
	Live       int     `json:"live"`
	Alerts     []Alert `json:"alerts"`

	Analyzed int                    `json:"analyzed"`
	BySource map[AnalysisSource]int `json:"by_source"`
	HighRisk []AnalysisRecord       `json:"high_risk"`

	// Errors no fatales (persistencia, carga de artefactos)
	Errors []string `json:"errors,omitempty"`
}

// NewRunSummary crea un resumen vacío con todos los slices inicializados.
func NewRunSummary(runID, target, outputDir string, started time.Time) *RunSummary {
	return &RunSummary{
		RunID:     runID,
		Target:    target,
		OutputDir: outputDir,
		StartedAt: started,
		Stages:    make([]StageReport, 0, len(Stages)),
		Alerts:    make([]Alert, 0),
		BySource:  make(map[AnalysisSource]int),
		HighRisk:  make([]AnalysisRecord, 0),
	}
}

// Duration retorna la duración total de la corrida.
func (s *RunSummary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// StageState retorna el estado reportado de un stage ("" si no corrió).
func (s *RunSummary) StageState(stage Stage) string {
	for _, r := range s.Stages {
		if r.Stage == stage {
			return r.State
		}
	}
	return ""
}

// ApplyReport copia los conteos de un reporte de análisis.
func (s *RunSummary) ApplyReport(report AnalysisReport) {
	s.Analyzed = len(report)
	s.BySource = report.CountBySource()
	s.HighRisk = report.HighRisk()
}
