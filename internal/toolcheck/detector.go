package toolcheck

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"byakugan/internal/core/ports"
)

// goBinDir retorna el directorio donde `go install` deja los binarios:
// GOBIN si está definido, si no GOPATH/bin.
func goBinDir(ctx context.Context, runner ports.CommandRunner) string {
	if runner == nil {
		return ""
	}
	for _, key := range []string{"GOBIN", "GOPATH"} {
		res, err := runner.Run(ctx, "go", "env", key)
		if err != nil {
			continue
		}
		dir := strings.TrimSpace(string(res.Stdout))
		if dir == "" {
			continue
		}
		if key == "GOPATH" {
			// GOPATH puede ser una lista; go install usa la primera entrada
			dir = filepath.Join(filepath.SplitList(dir)[0], "bin")
		}
		return dir
	}
	return ""
}

// IsInPath verifica si dir está en la lista de entradas del PATH.
func IsInPath(dir string, pathEntries []string) bool {
	if dir == "" {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}

	for _, entry := range pathEntries {
		absEntry, err := filepath.Abs(entry)
		if err != nil {
			continue
		}
		if absEntry == absDir {
			return true
		}
	}
	return false
}

// pathEntries retorna el PATH actual separado.
func pathEntries() []string {
	return filepath.SplitList(os.Getenv("PATH"))
}
