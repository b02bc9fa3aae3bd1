// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"byakugan/internal/core/domain"
)

// WriteSummaryJSON exporta el resumen de la corrida en JSON.
func WriteSummaryJSON(out io.Writer, summary *domain.RunSummary, pretty bool) error {
	if summary == nil {
		return fmt.Errorf("nil summary")
	}

	enc := json.NewEncoder(out)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(summaryView(summary)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// SummaryJSON es la forma serializada del resumen; agrega la duración
// legible y los estados por stage.
type SummaryJSON struct {
	*domain.RunSummary
	Duration    string            `json:"duration"`
	StageStates map[string]string `json:"stage_states"`
}

func summaryView(summary *domain.RunSummary) SummaryJSON {
	states := make(map[string]string, len(summary.Stages))
	for _, s := range summary.Stages {
		states[s.Stage.String()] = s.State
	}
	return SummaryJSON{
		RunSummary:  summary,
		Duration:    summary.Duration().String(),
		StageStates: states,
	}
}
