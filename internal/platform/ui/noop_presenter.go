// internal/platform/ui/noop_presenter.go
package ui

import "time"

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para tests o modo headless.
type NoopPresenter struct{}

var _ Presenter = (*NoopPresenter)(nil)

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

func (n *NoopPresenter) Start(RunInfo) {}
func (n *NoopPresenter) StartStage(StageInfo) {}
func (n *NoopPresenter) SkipStage(StageInfo, int) {}
func (n *NoopPresenter) FinishStage(StageInfo, time.Duration, int) {}
func (n *NoopPresenter) ProviderResult(string, Status, int) {}
func (n *NoopPresenter) HostList(string, []string) {}
func (n *NoopPresenter) Alert(string, string) {}
func (n *NoopPresenter) HighRisk([]RiskRow) {}
func (n *NoopPresenter) Info(string) {}
func (n *NoopPresenter) Warning(string) {}
func (n *NoopPresenter) Error(string) {}
func (n *NoopPresenter) Finish(RunStats) {}

// Close no hace nada
func (n *NoopPresenter) Close() error {
	return nil
}
