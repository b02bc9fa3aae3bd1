// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"time"
)

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// bountyMark convierte el flag de bounty a un símbolo visual
func bountyMark(b bool) string {
	if b {
		return IconBounty
	}
	return IconError
}

// stageTitle arma "Stage n/N: name"
func stageTitle(stage StageInfo) string {
	return fmt.Sprintf("Stage %d/%d: %s", stage.Number, stage.TotalStages, stage.Name)
}
