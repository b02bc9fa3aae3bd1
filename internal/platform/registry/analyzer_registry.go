// internal/platform/registry/analyzer_registry.go
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
)

// AnalyzerRegistry gestiona el registro y construcción de analizadores.
// Implementa el patrón Registry + Factory: cada paquete de analizador se
// registra en init() y la cadena se arma por nombre desde la configuración.
type AnalyzerRegistry struct {
	mu        sync.RWMutex
	factories map[string]AnalyzerFactory
	metadata  map[string]ports.AnalyzerMetadata
	logger    logx.Logger
}

// AnalyzerFactory es una función que crea una instancia de Analyzer.
type AnalyzerFactory func(cfg ports.AnalyzerConfig, logger logx.Logger) (ports.Analyzer, error)

// globalRegistry es la instancia global del registry.
var globalRegistry *AnalyzerRegistry
var once sync.Once

// Global retorna la instancia global del registry.
func Global() *AnalyzerRegistry {
	once.Do(func() {
		globalRegistry = NewAnalyzerRegistry(logx.NewSilent())
	})
	return globalRegistry
}

// NewAnalyzerRegistry crea un nuevo registry de analizadores.
func NewAnalyzerRegistry(logger logx.Logger) *AnalyzerRegistry {
	return &AnalyzerRegistry{
		factories: make(map[string]AnalyzerFactory),
		metadata:  make(map[string]ports.AnalyzerMetadata),
		logger:    logger.With("component", "analyzer-registry"),
	}
}

// Register registra una factory con su metadata.
// Típicamente llamado desde init() de cada paquete de analizador.
func (r *AnalyzerRegistry) Register(name string, factory AnalyzerFactory, meta ports.AnalyzerMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("analyzer name cannot be empty")
	}

	if factory == nil {
		return fmt.Errorf("factory cannot be nil for analyzer %s", name)
	}

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("analyzer %s is already registered", name)
	}

	r.factories[name] = factory
	r.metadata[name] = meta
	r.logger.Debug("analyzer registered", "name", name, "source", meta.Source)

	return nil
}

// Build construye los analizadores en el orden exacto de names.
// Los nombres desconocidos o duplicados se omiten con un warning; un fallo
// de factory tampoco detiene la construcción del resto.
func (r *AnalyzerRegistry) Build(names []string, configs map[string]ports.AnalyzerConfig, logger logx.Logger) ([]ports.Analyzer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	analyzers := make([]ports.Analyzer, 0, len(names))
	seen := make(map[string]bool, len(names))
	errs := make([]error, 0)

	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		factory, exists := r.factories[name]
		if !exists {
			errs = append(errs, fmt.Errorf("analyzer %s not registered in registry", name))
			continue
		}

		analyzer, err := factory(configs[name], logger)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to build analyzer %s: %w", name, err))
			continue
		}

		analyzers = append(analyzers, analyzer)
		logger.Debug("analyzer built", "name", name, "position", len(analyzers))
	}

	for _, err := range errs {
		logger.Warn("analyzer build error", "error", err.Error())
	}

	return analyzers, nil
}

// List retorna los nombres de todos los analizadores registrados.
func (r *AnalyzerRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetMetadata retorna el metadata de un analizador.
func (r *AnalyzerRegistry) GetMetadata(name string) (ports.AnalyzerMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, exists := r.metadata[name]
	return meta, exists
}

// IsRegistered verifica si un analizador está registrado.
func (r *AnalyzerRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}
