// internal/core/domain/target.go
package domain

import (
	"fmt"
	"strings"

	"byakugan/internal/platform/validator"
)

// Target representa el dominio objetivo del reconocimiento.
// Es la clave de todos los artefactos y no cambia durante la corrida.
type Target struct {
	// Root es el dominio raíz objetivo
	Root string
}

// NewTarget crea un target sin validar.
func NewTarget(root string) *Target {
	return &Target{Root: root}
}

// Validate normaliza Root y verifica que sea un dominio registrable.
func (t *Target) Validate() error {
	if strings.TrimSpace(t.Root) == "" {
		return ErrEmptyTarget
	}

	t.Root = validator.NormalizeDomain(t.Root)

	if !validator.IsDomain(t.Root) {
		return fmt.Errorf("%w: %s", ErrInvalidDomain, t.Root)
	}
	if !validator.IsRegistrable(t.Root) {
		return fmt.Errorf("%w: %s is a public suffix", ErrInvalidDomain, t.Root)
	}

	return nil
}

// Mentions indica si name contiene el dominio raíz como substring.
// Es el filtro de relevancia de crt.sh: a propósito no exige sufijo.
func (t *Target) Mentions(name string) bool {
	return strings.Contains(name, t.Root)
}

// String retorna una representación legible del target.
func (t *Target) String() string {
	return fmt.Sprintf("Target{root=%s}", t.Root)
}
