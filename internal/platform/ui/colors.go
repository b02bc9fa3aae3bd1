// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta "Byakugan": blancos pálidos y violetas, con rojo reservado
// para alertas y riesgo alto.
var (
	// PaleLavender - elementos principales, headers
	PaleLavender = pterm.NewRGB(200, 182, 255)

	// VeinViolet - acentos, stage activo
	VeinViolet = pterm.NewRGB(123, 97, 255)

	// AlertRed - alertas de keyword y riesgo alto
	AlertRed = pterm.NewRGB(215, 38, 56)

	// AmberWarning - warnings, proveedores sin resultados
	AmberWarning = pterm.NewRGB(255, 182, 39)

	// AshGray - texto secundario, stages reanudados
	AshGray = pterm.NewRGB(110, 110, 120)

	// JadeGreen - éxito
	JadeGreen = pterm.NewRGB(46, 204, 113)
)

// Estilos preconfigurados para diferentes contextos
var (
	StylePrimary   = PaleLavender.ToRGBStyle()
	StyleAccent    = VeinViolet.ToRGBStyle()
	StyleError     = AlertRed.ToRGBStyle()
	StyleWarning   = AmberWarning.ToRGBStyle()
	StyleSecondary = AshGray.ToRGBStyle()
	StyleSuccess   = JadeGreen.ToRGBStyle()
)
