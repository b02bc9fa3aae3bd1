// internal/platform/validator/validator_test.go
package validator

import (
	"testing"

	"byakugan/internal/testutil"
)

func TestIsDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid domain", "example.com", true},
		{"valid subdomain", "test.example.com", true},
		{"valid multi-level", "api.test.example.com", true},
		{"empty string", "", false},
		{"too long", string(make([]byte, 300)), false},
		{"ip address", "192.168.1.1", false},
		{"invalid chars", "exam ple.com", false},
		{"underscore", "invalid_domain.com", false},
		{"starts with hyphen", "-example.com", false},
		{"ends with hyphen", "example-.com", false},
		{"single label", "localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsDomain(tt.input), tt.expected, "domain validation")
		})
	}
}

func TestIsDomain_Fixtures(t *testing.T) {
	for _, d := range testutil.FixtureDomains {
		testutil.AssertTrue(t, IsDomain(d), d)
	}
	for _, d := range testutil.FixtureInvalidDomains {
		testutil.AssertFalse(t, IsDomain(d), d)
	}
}

func TestIsRegistrable(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"example.com", true},
		{"api.example.com", true},
		{"example.co.uk", true},
		{"com", false},
		{"co.uk", false},
		{"localhost", false},
		{"", false},
		{"10.0.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testutil.AssertEqual(t, IsRegistrable(tt.input), tt.expected, "registrable check")
		})
	}
}

func TestIsSubdomain(t *testing.T) {
	tests := []struct {
		name       string
		subdomain  string
		baseDomain string
		expected   bool
	}{
		{"valid subdomain", "test.example.com", "example.com", true},
		{"multi-level subdomain", "api.test.example.com", "example.com", true},
		{"same domain", "example.com", "example.com", false},
		{"not a subdomain", "other.com", "example.com", false},
		{"partial match", "example.com.test", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsSubdomain(tt.subdomain, tt.baseDomain), tt.expected, "subdomain check")
		})
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "EXAMPLE.COM", "example.com"},
		{"remove trailing dot", "example.com.", "example.com"},
		{"keeps www", "www.example.com", "www.example.com"},
		{"trim spaces", "  example.com  ", "example.com"},
		{"strip scheme", "https://Example.com", "example.com"},
		{"strip path", "http://example.com/login?x=1", "example.com"},
		{"strip port", "example.com:8443", "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, NormalizeDomain(tt.input), tt.expected, "normalized domain")
		})
	}
}

func TestWithScheme(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"admin.example.com", "https://admin.example.com"},
		{"https://admin.example.com", "https://admin.example.com"},
		{"http://admin.example.com", "http://admin.example.com"},
		{"HTTP://admin.example.com", "HTTP://admin.example.com"},
		{"  api.example.com ", "https://api.example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testutil.AssertEqual(t, WithScheme(tt.input), tt.expected, "scheme prefix")
		})
	}
}

func TestIsEmpty(t *testing.T) {
	testutil.AssertTrue(t, IsEmpty("   "), "whitespace is empty")
	testutil.AssertFalse(t, IsEmpty(" a "), "text is not empty")
}
