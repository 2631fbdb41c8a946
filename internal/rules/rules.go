// Package rules holds the static registry of security-relevant response
// headers: base severities, known-vulnerable value signatures and
// remediation suggestions, plus the whitelist of headers never reported.
//
// Header names are matched case-insensitively, keyed by their canonical
// MIME form ("x-powered-by" and "X-Powered-By" are the same rule).
package rules

import (
	"net/textproto"
)

// DefaultSuggestion is returned for headers that have no rule.
const DefaultSuggestion = "No suggestion available."

// HeaderRule describes one known header.
type HeaderRule struct {
	Name             string   `json:"name"`
	BaseSeverity     uint     `json:"base_severity"`
	VulnerableValues []string `json:"vulnerable_values,omitempty"`
	Suggestion       string   `json:"suggestion"`
}

// Table is an immutable rule registry. It is safe for concurrent use.
type Table struct {
	rules     map[string]HeaderRule
	order     []string
	whitelist map[string]struct{}
	allowed   []string
}

// New builds a Table from rules and whitelist. A later rule with the same
// canonical name replaces an earlier one.
func New(rules []HeaderRule, whitelist []string) *Table {
	t := &Table{
		rules:     make(map[string]HeaderRule, len(rules)),
		whitelist: make(map[string]struct{}, len(whitelist)),
	}
	for _, r := range rules {
		key := canonical(r.Name)
		if _, exists := t.rules[key]; !exists {
			t.order = append(t.order, key)
		}
		r.VulnerableValues = append([]string(nil), r.VulnerableValues...)
		t.rules[key] = r
	}
	for _, name := range whitelist {
		key := canonical(name)
		if _, exists := t.whitelist[key]; !exists {
			t.allowed = append(t.allowed, name)
		}
		t.whitelist[key] = struct{}{}
	}
	return t
}

// Default returns the built-in rule table.
func Default() *Table {
	return New(defaultRules(), []string{"User-Agent", "Accept"})
}

// Rule returns the rule for name, if any.
func (t *Table) Rule(name string) (HeaderRule, bool) {
	r, ok := t.rules[canonical(name)]
	if !ok {
		return HeaderRule{}, false
	}
	r.VulnerableValues = append([]string(nil), r.VulnerableValues...)
	return r, true
}

// Rules returns all rules in declaration order.
func (t *Table) Rules() []HeaderRule {
	out := make([]HeaderRule, 0, len(t.order))
	for _, key := range t.order {
		r, _ := t.Rule(key)
		out = append(out, r)
	}
	return out
}

// BaseSeverity returns the static score for name, or 0 if it has no rule.
func (t *Table) BaseSeverity(name string) uint {
	return t.rules[canonical(name)].BaseSeverity
}

// VulnerableValues returns the known-vulnerable value substrings for name.
// The returned slice is shared and must not be modified.
func (t *Table) VulnerableValues(name string) []string {
	return t.rules[canonical(name)].VulnerableValues
}

// Suggestion returns the remediation text for name.
func (t *Table) Suggestion(name string) string {
	r, ok := t.rules[canonical(name)]
	if !ok || r.Suggestion == "" {
		return DefaultSuggestion
	}
	return r.Suggestion
}

// IsWhitelisted reports whether name is exempt from all scoring.
func (t *Table) IsWhitelisted(name string) bool {
	_, ok := t.whitelist[canonical(name)]
	return ok
}

// Whitelist returns the whitelisted names as given to New.
func (t *Table) Whitelist() []string {
	return append([]string(nil), t.allowed...)
}

func canonical(name string) string {
	return textproto.CanonicalMIMEHeaderKey(name)
}
