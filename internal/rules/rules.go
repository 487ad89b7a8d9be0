// Package rules compiles validator expressions for declarative state schemas.
//
// An expression sees the candidate as `value` and the key name as `key`, and
// must evaluate to a boolean:
//
//	value >= 0 && value <= 100
//	len(value) > 0
package rules

import (
	"fmt"
	"strings"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// Rule is a compiled validator expression.
type Rule struct {
	source  string
	program *exprvm.Program
}

// Compile parses expression into a Rule.
func Compile(expression string) (*Rule, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("rules: expression must not be empty")
	}

	program, err := exprlang.Compile(expression,
		exprlang.Env(map[string]any{"value": nil, "key": ""}),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("rules: compile %q: %w", expression, err)
	}

	return &Rule{source: expression, program: program}, nil
}

// Source returns the expression the rule was compiled from.
func (r *Rule) Source() string {
	return r.source
}

// Eval runs the rule against a candidate value. Runtime errors count as a
// rejection.
func (r *Rule) Eval(key string, value any) bool {
	out, err := exprlang.Run(r.program, map[string]any{"value": value, "key": key})
	if err != nil {
		return false
	}

	ok, _ := out.(bool)
	return ok
}
