// Package analyzer turns response headers into scored findings.
//
// An Evaluator scores a single header against the rule table. An
// Aggregator runs the evaluator over a whole response, falling back to
// exploit-indicator patterns for headers without a rule.
package analyzer

import (
	"net/textproto"
	"strings"

	"github.com/CypherHippie/HeaderHunter/internal/rules"
	"github.com/CypherHippie/HeaderHunter/pkg/types"
)

// Evaluator scores individual headers. It holds no mutable state and is
// safe for concurrent use.
type Evaluator struct {
	table *rules.Table
}

// NewEvaluator creates an evaluator backed by table. A nil table selects
// rules.Default().
func NewEvaluator(table *rules.Table) *Evaluator {
	if table == nil {
		table = rules.Default()
	}
	return &Evaluator{table: table}
}

// Table returns the rule table the evaluator scores against.
func (e *Evaluator) Table() *rules.Table {
	return e.table
}

// Evaluate scores one header. It reports false when the header is
// whitelisted or scores zero.
func (e *Evaluator) Evaluate(name, value string) (types.Finding, bool) {
	if e.table.IsWhitelisted(name) {
		return types.Finding{}, false
	}

	score := e.Score(name, value)
	if score == 0 {
		return types.Finding{}, false
	}

	return types.Finding{
		Label:      name + ": " + value,
		Severity:   score,
		Suggestion: e.table.Suggestion(name),
	}, true
}

// Score returns base severity plus the contextual adjustment for the
// header, ignoring the whitelist.
func (e *Evaluator) Score(name, value string) uint {
	return e.table.BaseSeverity(name) + e.contextual(name, value)
}

func (e *Evaluator) contextual(name, value string) uint {
	switch textproto.CanonicalMIMEHeaderKey(name) {
	case "Server":
		return e.checkServerVersion(value)
	case "X-Powered-By":
		// Always interesting: it discloses the stack whatever the value.
		return 5
	case "Content-Type":
		return checkContentType(value)
	case "Set-Cookie":
		return checkSetCookie(value)
	default:
		return 0
	}
}

func (e *Evaluator) checkServerVersion(value string) uint {
	for _, v := range e.table.VulnerableValues("Server") {
		if strings.Contains(value, v) {
			return 10
		}
	}
	return 0
}

func checkContentType(value string) uint {
	if strings.Contains(value, "text/html") && !strings.Contains(value, "charset=UTF-8") {
		return 2
	}
	return 0
}

func checkSetCookie(value string) uint {
	var score uint
	if !strings.Contains(value, "HttpOnly") {
		score += 2
	}
	if !strings.Contains(value, "Secure") {
		score += 2
	}
	if !strings.Contains(value, "SameSite") {
		score++
	}
	return score
}
