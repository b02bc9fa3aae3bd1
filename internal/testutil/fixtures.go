// internal/testutil/fixtures.go
package testutil

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixtureDomain es el dominio objetivo por defecto de los tests.
const FixtureDomain = "example.com"

// FixtureDomains contiene dominios de prueba válidos.
var FixtureDomains = []string{
	"example.com",
	"test.example.com",
	"subdomain.example.com",
	"another.test.example.com",
}

// FixtureInvalidDomains contiene dominios inválidos.
var FixtureInvalidDomains = []string{
	"",
	"not a domain",
	"192.168.1.1",
	"2001:db8::1",
	"-invalid.com",
	"invalid-.com",
	".example.com",
	"example..com",
}

// FixtureHosts es una lista de subdominios tal como la devolverían las herramientas.
var FixtureHosts = []string{
	"admin.example.com",
	"api.example.com",
	"staging.example.com",
	"www.example.com",
}

// FixtureCrtshJSON es una respuesta de crt.sh con un name_value multilínea
// que mezcla un host relevante con uno ajeno.
const FixtureCrtshJSON = `[
  {"issuer_name":"C=US, O=Let's Encrypt","name_value":"a.example.com\nb.other.com"},
  {"issuer_name":"C=US, O=Let's Encrypt","name_value":"  mail.example.com  "},
  {"issuer_name":"C=US, O=Let's Encrypt","name_value":""}
]`

// FixtureGorkJSON es una respuesta válida de gork con risk_score alto.
const FixtureGorkJSON = `{
  "analysis": {
    "risk_score": 8,
    "technologies": ["nginx", "php"],
    "vulnerabilities": ["exposed admin panel"],
    "summary": "Admin panel reachable without auth"
  }
}`

// FixtureAnalysisJSON es el JSON que devuelve un modelo de chat.
const FixtureAnalysisJSON = `{"tech_stack":["nginx"],"likely_issues":["default credentials"],"risk_level":"high","bug_bounty_potential":true,"summary":"Login portal on staging"}`
