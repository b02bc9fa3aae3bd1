// internal/core/usecases/stage.go
package usecases

import (
	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
)

// StagePlan es el estado de reanudación de cada stage, calculado una sola
// vez al inicio de la corrida consultando el Result Store.
type StagePlan struct {
	states map[domain.Stage]domain.StageState
}

// Plan consulta Exists una vez por stage.
func Plan(store ports.ResultStore, domainName string) *StagePlan {
	p := &StagePlan{states: make(map[domain.Stage]domain.StageState, len(domain.Stages))}
	for _, stage := range domain.Stages {
		state := domain.StatePending
		if store.Exists(domainName, stage.Artifact()) {
			state = domain.StateLoaded
		}
		p.states[stage] = state
	}
	return p
}

// State retorna el estado actual del stage.
func (p *StagePlan) State(stage domain.Stage) domain.StageState {
	return p.states[stage]
}

// Loaded indica si el artefacto del stage ya existía al iniciar.
func (p *StagePlan) Loaded(stage domain.Stage) bool {
	return p.states[stage] == domain.StateLoaded
}

// Complete marca un stage ejecutado en esta corrida.
func (p *StagePlan) Complete(stage domain.Stage) {
	p.states[stage] = domain.StateCompleted
}

// Demote vuelve un stage Loaded a Pending (artefacto ilegible).
func (p *StagePlan) Demote(stage domain.Stage) {
	if p.states[stage] == domain.StateLoaded {
		p.states[stage] = domain.StatePending
	}
}

// AllLoaded indica una reanudación completa.
func (p *StagePlan) AllLoaded() bool {
	for _, stage := range domain.Stages {
		if !p.Loaded(stage) {
			return false
		}
	}
	return true
}

// stageNumber retorna la posición 1-based del stage.
func stageNumber(stage domain.Stage) int {
	for i, s := range domain.Stages {
		if s == stage {
			return i + 1
		}
	}
	return 0
}
