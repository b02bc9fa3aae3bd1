// internal/core/domain/analysis.go
package domain

import "strings"

// Resúmenes fijos usados al completar o sintetizar registros.
const (
	DefaultSummary  = "No analysis available"
	UnscoredSummary = "Analysis failed - manual review needed"
)

// AnalysisRecord es el esquema fijo de análisis de un host.
// Tras Normalize todos los campos están presentes.
type AnalysisRecord struct {
	Subdomain          string         `json:"subdomain"`
	TechStack          []string       `json:"tech_stack"`
	LikelyIssues       []string       `json:"likely_issues"`
	RiskLevel          RiskLevel      `json:"risk_level"`
	BugBountyPotential bool           `json:"bug_bounty_potential"`
	Summary            string         `json:"summary"`
	Source             AnalysisSource `json:"source"`
}

// IsHighRisk indica si el registro entra en la lista de destacados.
func (r AnalysisRecord) IsHighRisk() bool {
	return r.RiskLevel == RiskHigh
}

// AnalysisReport es la lista ordenada de registros, uno por host vivo,
// en el orden de entrada.
type AnalysisReport []AnalysisRecord

// HighRisk retorna los registros con risk_level high, en orden.
func (r AnalysisReport) HighRisk() []AnalysisRecord {
	out := make([]AnalysisRecord, 0)
	for _, rec := range r {
		if rec.IsHighRisk() {
			out = append(out, rec)
		}
	}
	return out
}

// CountBySource agrupa los registros por proveedor.
func (r AnalysisReport) CountBySource() map[AnalysisSource]int {
	out := make(map[AnalysisSource]int)
	for _, rec := range r {
		out[rec.Source]++
	}
	return out
}

// PartialAnalysis es lo que devuelve un proveedor: cualquier subconjunto
// de los campos. nil significa "ausente".
type PartialAnalysis struct {
	TechStack          *[]string `json:"tech_stack,omitempty"`
	LikelyIssues       *[]string `json:"likely_issues,omitempty"`
	RiskLevel          *string   `json:"risk_level,omitempty"`
	BugBountyPotential *bool     `json:"bug_bounty_potential,omitempty"`
	Summary            *string   `json:"summary,omitempty"`
}

// Normalize completa un PartialAnalysis con los defaults y lo convierte en
// un AnalysisRecord. Es la única función de normalización; todos los
// analizadores pasan por aquí.
func Normalize(host string, source AnalysisSource, p *PartialAnalysis) AnalysisRecord {
	rec := AnalysisRecord{
		Subdomain:    host,
		TechStack:    []string{},
		LikelyIssues: []string{},
		RiskLevel:    RiskLow,
		Summary:      DefaultSummary,
		Source:       source,
	}
	if p == nil {
		return rec
	}

	if p.TechStack != nil {
		rec.TechStack = uniqueNonEmpty(*p.TechStack)
	}
	if p.LikelyIssues != nil {
		rec.LikelyIssues = nonEmpty(*p.LikelyIssues)
	}
	if p.RiskLevel != nil {
		rec.RiskLevel = ParseRiskLevel(*p.RiskLevel)
	}
	if p.BugBountyPotential != nil {
		rec.BugBountyPotential = *p.BugBountyPotential
	}
	if p.Summary != nil && strings.TrimSpace(*p.Summary) != "" {
		rec.Summary = *p.Summary
	}
	return rec
}

// UnscoredRecord es el registro sintetizado cuando ningún proveedor respondió.
func UnscoredRecord(host string) AnalysisRecord {
	rec := Normalize(host, SourceUnscored, nil)
	rec.Summary = UnscoredSummary
	return rec
}

// ParseRiskLevel mapea un string de proveedor a RiskLevel; lo desconocido es low.
func ParseRiskLevel(s string) RiskLevel {
	r := RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	if r.IsValid() {
		return r
	}
	return RiskLow
}

// RiskFromScore convierte un score 0-10 en nivel: >7 high, >4 medium.
func RiskFromScore(score float64) RiskLevel {
	switch {
	case score > 7:
		return RiskHigh
	case score > 4:
		return RiskMedium
	default:
		return RiskLow
	}
}

// tech_stack es un conjunto: se deduplica conservando el primer orden.
func uniqueNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
