// Package toolcheck verifica que las herramientas externas del pipeline
// estén en el PATH e instala las que se pueden instalar con `go install`.
package toolcheck

import "time"

// Status es el resultado de verificar o instalar una herramienta.
type Status string

const (
	StatusInstalled Status = "installed"
	StatusMissing   Status = "missing"
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusManual    Status = "manual"
)

// Config es el contenido de deps.yaml.
type Config struct {
	Tools []Tool `yaml:"tools"`
}

// Tool describe una herramienta externa.
type Tool struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Stage       string `yaml:"stage"`
	Install     struct {
		Go     string `yaml:"go"`
		Manual string `yaml:"manual"`
	} `yaml:"install"`
}

// GoInstallable indica si la herramienta se instala con `go install`.
func (t Tool) GoInstallable() bool {
	return t.Install.Go != ""
}

// Result es el estado de una herramienta tras Check o EnsureInstalled.
type Result struct {
	Tool     Tool
	Status   Status
	Path     string
	Error    error
	Duration time.Duration
	Message  string
}

// Ready indica si la herramienta queda disponible para el pipeline.
func (r Result) Ready() bool {
	return r.Status == StatusInstalled || r.Status == StatusSuccess
}
