// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Target errors
	ErrEmptyTarget   = errors.New("target cannot be empty")
	ErrInvalidDomain = errors.New("invalid domain format")

	// Provider/tool errors. Los adapters los envuelven con contexto y los
	// casos de uso los clasifican con errors.Is; ninguno aborta la corrida.
	ErrToolMissing      = errors.New("external tool not found in PATH")
	ErrToolFailed       = errors.New("external tool failed")
	ErrNetwork          = errors.New("network request failed")
	ErrSchemaMismatch   = errors.New("response does not match expected schema")
	ErrProviderDisabled = errors.New("provider disabled: missing credential")

	// Store errors
	ErrUnknownArtifact = errors.New("unknown artifact kind")
)
