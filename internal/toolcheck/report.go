package toolcheck

import (
	"fmt"
	"io"
)

// WriteReport imprime una línea por herramienta con su estado.
func WriteReport(w io.Writer, results []Result) {
	for _, r := range results {
		switch r.Status {
		case StatusInstalled:
			fmt.Fprintf(w, "✅ %s is installed\n", r.Tool.Name)
		case StatusSuccess:
			fmt.Fprintf(w, "✅ %s installed successfully\n", r.Tool.Name)
		case StatusMissing:
			fmt.Fprintf(w, "❌ %s not found\n", r.Tool.Name)
			if r.Tool.GoInstallable() {
				fmt.Fprintf(w, "   Install with: go install -v %s\n", r.Tool.Install.Go)
			} else if r.Tool.Install.Manual != "" {
				fmt.Fprintf(w, "   Install manually from %s\n", r.Tool.Install.Manual)
			}
		case StatusManual:
			fmt.Fprintf(w, "❌ %s not found\n", r.Tool.Name)
			fmt.Fprintf(w, "   Install manually from %s\n", r.Tool.Install.Manual)
		case StatusFailed:
			fmt.Fprintf(w, "❌ Failed to install %s: %s\n", r.Tool.Name, r.Message)
		}
	}
}

// Summary cuenta herramientas listas y faltantes.
func Summary(results []Result) (ready, missing int) {
	for _, r := range results {
		if r.Ready() {
			ready++
		} else {
			missing++
		}
	}
	return ready, missing
}
