package intent

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// celEnv is the shared environment for rule predicates: a single string
// variable holding the normalized utterance.
var celEnv = mustCELEnv()

func mustCELEnv() *cel.Env {
	env, err := cel.NewEnv(
		cel.Variable("text", cel.StringType),
	)
	if err != nil {
		panic(fmt.Sprintf("intent: cel environment: %v", err))
	}
	return env
}

// CompilePredicate compiles a CEL expression over `text` into a rule
// predicate. Expressions must evaluate to bool, e.g.
//
//	text.contains("news") || text.matches("\\bheadlines?\\b")
//
// Used by config-authored rule tables; the shipped table uses compiled
// regexps directly.
func CompilePredicate(expr string) (func(string) bool, error) {
	ast, issues := celEnv.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("intent: cel compile %q: %w", expr, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("intent: cel expression %q yields %s, want bool", expr, ast.OutputType())
	}
	prg, err := celEnv.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("intent: cel program %q: %w", expr, err)
	}

	return func(text string) bool {
		out, _, err := prg.Eval(map[string]interface{}{"text": text})
		if err != nil {
			// Evaluation errors count as non-matches; predicates are total.
			return false
		}
		b, ok := out.Value().(bool)
		return ok && b
	}, nil
}
