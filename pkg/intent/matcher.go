// Package intent routes free-text utterances to paid capabilities using an
// ordered, first-match-wins rule list. Routing is deterministic and cheap:
// no scoring, no model. Rule order is part of the contract — more specific
// phrasings are listed before generic ones, and reordering rules is a
// behavior change, not a refactor.
package intent

import (
	"fmt"
	"log/slog"
	"strings"
)

// Rule is one ordered (predicate, extractor, target) triple.
type Rule struct {
	// Target is the capability id (or alias) selected on match.
	Target string
	// Source describes the predicate for vetting and debug output, e.g.
	// the regexp it was built from.
	Source string
	// Match is a pure predicate over normalized (lowercased, trimmed) text.
	Match func(text string) bool
	// Extract derives parameters from normalized text. Nil means the rule
	// carries no parameters.
	Extract func(text string) map[string]string
}

// Selection is the outcome of a successful match.
type Selection struct {
	CapabilityID string            `json:"capability_id"`
	Params       map[string]string `json:"params,omitempty"`
}

// Registry is the subset of the capability catalog consulted during
// matching. *catalog.Registry satisfies it.
type Registry interface {
	ResolveID(candidate string) string
	Exists(id string) bool
}

// Matcher walks an ordered rule list and returns the first hit.
type Matcher struct {
	rules []Rule
	reg   Registry
}

// NewMatcher builds a Matcher and fails fast on any rule whose target does
// not resolve against the registry — a dangling target is a configuration
// defect, not a runtime condition.
func NewMatcher(reg Registry, rules []Rule) (*Matcher, error) {
	for i, r := range rules {
		if r.Match == nil {
			return nil, fmt.Errorf("intent: rule %d (%s) has no predicate", i, r.Target)
		}
		if !reg.Exists(reg.ResolveID(r.Target)) {
			return nil, fmt.Errorf("intent: rule %d targets unknown capability %q", i, r.Target)
		}
	}
	return &Matcher{rules: rules, reg: reg}, nil
}

// NewLenientMatcher builds a Matcher from config-authored rules, logging
// dangling targets instead of rejecting them; such rules are skipped at
// match time.
func NewLenientMatcher(reg Registry, rules []Rule) *Matcher {
	for i, r := range rules {
		if !reg.Exists(reg.ResolveID(r.Target)) {
			slog.Warn("intent: rule targets unknown capability, it will never match",
				"index", i, "target", r.Target)
		}
	}
	return &Matcher{rules: rules, reg: reg}
}

// Match evaluates the rules in order against the normalized text and
// returns the first selection. The false return is the expected outcome for
// most conversation; it is never an error.
func (m *Matcher) Match(text string) (Selection, bool) {
	normalized := Normalize(text)
	if normalized == "" {
		return Selection{}, false
	}

	for _, r := range m.rules {
		if !r.Match(normalized) {
			continue
		}
		id := m.reg.ResolveID(r.Target)
		if !m.reg.Exists(id) {
			// Dangling target: skip to the next rule, never abort the walk.
			continue
		}

		var params map[string]string
		if r.Extract != nil {
			params = pruneSentinels(r.Extract(normalized))
		}
		return Selection{CapabilityID: id, Params: params}, true
	}
	return Selection{}, false
}

// Rules returns the matcher's rule list in evaluation order.
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Normalize lowercases and trims an utterance. All predicates and
// extractors operate on this form.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// pruneSentinels drops params carrying the "no specific subject" sentinel
// and collapses empty maps to nil, so the sentinel is never passed through
// to a wire call.
func pruneSentinels(params map[string]string) map[string]string {
	for k, v := range params {
		if v == noSubject {
			delete(params, k)
		}
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// Finding is one result of vetting a rule list.
type Finding struct {
	Index   int
	Target  string
	Problem string
}

// Vet reports rules that can never fire: targets that do not resolve, and
// later rules whose predicate source duplicates an earlier one (the earlier
// rule always wins, making the later one provably unreachable). Findings
// are reported, never auto-fixed — rule order is authored, not derived.
func Vet(reg Registry, rules []Rule) []Finding {
	var findings []Finding
	seen := make(map[string]int)
	for i, r := range rules {
		if !reg.Exists(reg.ResolveID(r.Target)) {
			findings = append(findings, Finding{
				Index:   i,
				Target:  r.Target,
				Problem: "target does not resolve to a capability",
			})
		}
		if r.Source == "" {
			continue
		}
		if first, dup := seen[r.Source]; dup {
			findings = append(findings, Finding{
				Index:   i,
				Target:  r.Target,
				Problem: fmt.Sprintf("predicate duplicates rule %d, unreachable", first),
			})
			continue
		}
		seen[r.Source] = i
	}
	return findings
}
