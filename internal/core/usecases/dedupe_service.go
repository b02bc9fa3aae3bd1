// internal/core/usecases/dedupe_service.go
package usecases

import (
	"sort"
)

// DedupeService maneja la unión y deduplicación de listas de hosts.
// La igualdad es exacta: no se normaliza mayúsculas ni wildcards.
type DedupeService struct{}

// NewDedupeService crea una nueva instancia del servicio.
func NewDedupeService() *DedupeService {
	return &DedupeService{}
}

// Union combina las listas, elimina duplicados y vacíos, y ordena ascendente.
func (d *DedupeService) Union(groups ...[]string) []string {
	seen := make(map[string]struct{})
	for _, g := range groups {
		for _, h := range g {
			if h == "" {
				continue
			}
			seen[h] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for h := range seen {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Unique elimina duplicados conservando el orden de primera aparición.
func (d *DedupeService) Unique(hosts []string) []string {
	seen := make(map[string]struct{}, len(hosts))
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if _, ok := seen[h]; ok || h == "" {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
