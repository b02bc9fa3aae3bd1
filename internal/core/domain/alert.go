// internal/core/domain/alert.go
package domain

import "strings"

// DefaultKeywords son las palabras que marcan un host vivo como de alto valor.
var DefaultKeywords = []string{"admin", "login", "staging", "test", "dev"}

// Alert es una coincidencia de keyword sobre un host vivo.
type Alert struct {
	Host    string `json:"host"`
	Keyword string `json:"keyword"`
}

// MatchKeyword retorna la primera keyword (en orden) contenida en host,
// sin distinguir mayúsculas. Un host produce como máximo una alerta.
func MatchKeyword(host string, keywords []string) (string, bool) {
	lower := strings.ToLower(host)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}
