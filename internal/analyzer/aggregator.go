package analyzer

import (
	"net/textproto"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
)

const (
	patternLabelPrefix = "Pattern match - "
	patternSeverity    = 1
	patternSuggestion  = "Matched a known exploit pattern."
)

// Options configures an Aggregator. Both lists are optional; an empty
// list disables the corresponding pass.
type Options struct {
	PriorityNames []string
	Patterns      []Pattern
	// Dedupe drops full-pass findings already reported by the priority
	// pass. Off by default, so a priority header is reported twice.
	Dedupe bool
}

// Aggregator produces the ordered findings for one response.
type Aggregator struct {
	evaluator *Evaluator
	opts      Options
}

// NewAggregator creates an aggregator using evaluator and opts.
func NewAggregator(evaluator *Evaluator, opts Options) *Aggregator {
	if evaluator == nil {
		evaluator = NewEvaluator(nil)
	}
	return &Aggregator{
		evaluator: evaluator,
		opts: Options{
			PriorityNames: append([]string(nil), opts.PriorityNames...),
			Patterns:      append([]Pattern(nil), opts.Patterns...),
			Dedupe:        opts.Dedupe,
		},
	}
}

// Evaluator returns the evaluator used for rule scoring.
func (a *Aggregator) Evaluator() *Evaluator {
	return a.evaluator
}

// ScanOne returns the findings for headers: priority headers first, then
// every header in set order, with pattern matches for headers no rule
// scored. The result may be empty.
func (a *Aggregator) ScanOne(headers types.HeaderSet) []types.Finding {
	var findings []types.Finding
	var seen map[string]struct{}
	if a.opts.Dedupe {
		seen = make(map[string]struct{})
	}

	for _, name := range a.opts.PriorityNames {
		value, ok := headers.Get(name)
		if !ok {
			continue
		}
		if f, ok := a.evaluator.Evaluate(name, value); ok {
			findings = append(findings, f)
			if seen != nil {
				seen[dedupeKey(name, value)] = struct{}{}
			}
		}
	}

	for _, h := range headers {
		if f, ok := a.evaluator.Evaluate(h.Name, h.Value); ok {
			if seen != nil {
				if _, dup := seen[dedupeKey(h.Name, h.Value)]; dup {
					continue
				}
			}
			findings = append(findings, f)
			continue
		}

		if a.evaluator.table.IsWhitelisted(h.Name) {
			continue
		}
		if f, ok := a.matchPattern(h); ok {
			findings = append(findings, f)
		}
	}

	return findings
}

// matchPattern tests name then value against each pattern in order and
// stops at the first match.
func (a *Aggregator) matchPattern(h types.Header) (types.Finding, bool) {
	for _, p := range a.opts.Patterns {
		if p.MatchString(h.Name) || p.MatchString(h.Value) {
			return types.Finding{
				Label:      patternLabelPrefix + h.Name + ": " + h.Value,
				Severity:   patternSeverity,
				Suggestion: patternSuggestion,
			}, true
		}
	}
	return types.Finding{}, false
}

func dedupeKey(name, value string) string {
	return textproto.CanonicalMIMEHeaderKey(name) + "\x00" + value
}
