// internal/core/ports/repository.go
package ports

import "byakugan/internal/core/domain"

// ResultStore es el dueño exclusivo de los artefactos persistidos por dominio.
// Asume un solo proceso por dominio; no hay locking.
type ResultStore interface {
	// Exists indica si el artefacto está presente y no vacío
	Exists(domainName string, kind domain.ArtifactKind) bool

	// LoadHosts lee una lista de hosts (subdomains o live)
	LoadHosts(domainName string, kind domain.ArtifactKind) ([]string, error)

	// SaveHosts escribe una lista de hosts, una por línea
	SaveHosts(domainName string, kind domain.ArtifactKind, hosts []string) error

	// LoadReport lee el reporte de análisis
	LoadReport(domainName string) (domain.AnalysisReport, error)

	// SaveReport escribe el reporte de análisis completo en una sola escritura
	SaveReport(domainName string, report domain.AnalysisReport) error

	// ScreenshotDir retorna (y crea) el directorio de capturas del dominio
	ScreenshotDir(domainName string) (string, error)
}
