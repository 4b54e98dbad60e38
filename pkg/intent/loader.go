package intent

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// namedExtractors are the extractor implementations a config-authored rule
// may reference. Config rules cannot define new extraction logic, only
// reuse the built-in ones.
var namedExtractors = map[string]func(string) map[string]string{
	"ticker": ExtractTicker,
	"token":  ExtractToken,
	"swap":   ExtractSwap,
}

type fileRule struct {
	Target  string `yaml:"target"`
	Match   string `yaml:"match"`   // CEL expression over `text`
	Extract string `yaml:"extract"` // ticker | token | swap | empty
}

type rulesFile struct {
	Rules []fileRule `yaml:"rules"`
}

// LoadRules parses a YAML rule table whose predicates are CEL expressions
// and builds a lenient matcher over the given registry. File order is
// evaluation order, exactly as with the shipped table.
func LoadRules(r io.Reader, reg Registry) (*Matcher, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("intent: read rules: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("intent: parse rules: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("intent: rule file defines no rules")
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, fr := range file.Rules {
		if fr.Target == "" {
			return nil, fmt.Errorf("intent: rule %d has no target", i)
		}
		pred, err := CompilePredicate(fr.Match)
		if err != nil {
			return nil, fmt.Errorf("intent: rule %d: %w", i, err)
		}

		var extract func(string) map[string]string
		if fr.Extract != "" {
			var ok bool
			if extract, ok = namedExtractors[fr.Extract]; !ok {
				return nil, fmt.Errorf("intent: rule %d references unknown extractor %q", i, fr.Extract)
			}
		}

		rules = append(rules, Rule{
			Target:  fr.Target,
			Source:  fr.Match,
			Match:   pred,
			Extract: extract,
		})
	}

	return NewLenientMatcher(reg, rules), nil
}
