package analyzer

import (
	"testing"

	"github.com/CypherHippie/HeaderHunter/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Severities(t *testing.T) {
	e := NewEvaluator(rules.Default())

	tests := []struct {
		name     string
		header   string
		value    string
		severity uint
	}{
		{name: "vulnerable apache", header: "Server", value: "Apache/2.4.49 (Unix)", severity: 13},
		{name: "vulnerable nginx", header: "Server", value: "nginx/1.18.0", severity: 13},
		{name: "vulnerable iis", header: "Server", value: "Microsoft-IIS/10.0", severity: 13},
		{name: "unlisted server", header: "Server", value: "Caddy", severity: 3},
		{name: "powered by php", header: "X-Powered-By", value: "PHP/7.4", severity: 10},
		{name: "powered by empty", header: "X-Powered-By", value: "", severity: 10},
		{name: "html without charset", header: "Content-Type", value: "text/html", severity: 4},
		{name: "html with charset", header: "Content-Type", value: "text/html; charset=UTF-8", severity: 2},
		{name: "json", header: "Content-Type", value: "application/json", severity: 2},
		{name: "bare cookie", header: "Set-Cookie", value: "id=1", severity: 9},
		{name: "hardened cookie", header: "Set-Cookie", value: "id=1; HttpOnly; Secure; SameSite=Strict", severity: 4},
		{name: "cookie missing samesite", header: "Set-Cookie", value: "id=1; HttpOnly; Secure", severity: 5},
		{name: "cookie missing secure", header: "Set-Cookie", value: "id=1; HttpOnly; SameSite=Lax", severity: 6},
		{name: "aspnet version", header: "X-AspNet-Version", value: "4.0.30319", severity: 5},
		{name: "hsts", header: "Strict-Transport-Security", value: "max-age=31536000", severity: 3},
		{name: "lower-case name", header: "server", value: "nginx/1.18.0", severity: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := e.Evaluate(tt.header, tt.value)
			require.True(t, ok)
			assert.Equal(t, tt.severity, f.Severity)
			assert.Equal(t, tt.header+": "+tt.value, f.Label)
		})
	}
}

func TestEvaluate_Suggestion(t *testing.T) {
	e := NewEvaluator(rules.Default())

	f, ok := e.Evaluate("Server", "nginx/1.18.0")
	require.True(t, ok)
	assert.Equal(t, "Consider hiding the server version to avoid revealing potential vulnerabilities.", f.Suggestion)
}

func TestEvaluate_Whitelisted(t *testing.T) {
	e := NewEvaluator(rules.Default())

	for _, name := range []string{"User-Agent", "Accept", "user-agent"} {
		for _, value := range []string{"", "curl/8.0", "nginx/1.18.0"} {
			_, ok := e.Evaluate(name, value)
			assert.False(t, ok, "whitelisted %s=%q must not be reported", name, value)
		}
	}
}

func TestEvaluate_WhitelistOverridesRule(t *testing.T) {
	table := rules.New([]rules.HeaderRule{{Name: "Accept", BaseSeverity: 9}}, []string{"Accept"})
	e := NewEvaluator(table)

	_, ok := e.Evaluate("Accept", "*/*")
	assert.False(t, ok)
	assert.Equal(t, uint(9), e.Score("Accept", "*/*"))
}

func TestEvaluate_UnknownHeader(t *testing.T) {
	e := NewEvaluator(rules.Default())

	_, ok := e.Evaluate("Unknown-Header", "x")
	assert.False(t, ok)
}

func TestEvaluate_Idempotent(t *testing.T) {
	e := NewEvaluator(nil)

	first, ok1 := e.Evaluate("Set-Cookie", "id=1; Secure")
	second, ok2 := e.Evaluate("Set-Cookie", "id=1; Secure")
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestEvaluate_UsesTableVulnerableValues(t *testing.T) {
	table := rules.New([]rules.HeaderRule{
		{Name: "Server", BaseSeverity: 1, VulnerableValues: []string{"lighttpd/1.4"}},
	}, nil)
	e := NewEvaluator(table)

	f, ok := e.Evaluate("Server", "lighttpd/1.4.59")
	require.True(t, ok)
	assert.Equal(t, uint(11), f.Severity)

	f, ok = e.Evaluate("Server", "nginx/1.18.0")
	require.True(t, ok)
	assert.Equal(t, uint(1), f.Severity)
}
