// Package rules holds the fixed set of diagnostic rules that run over a
// parsed Python AST. Rules are independent pure functions of the tree:
// they share no state and may run in any order without changing the
// resulting diagnostic multiset.
package rules

import (
	"fmt"

	"bughound/internal/diagnostic"
	"bughound/internal/pyast"
)

// Category splits rules into behavioral defects and maintainability
// concerns. The orchestrator routes each rule's output into the matching
// report category.
type Category int

const (
	CategoryLogicalBug Category = iota
	CategoryAntipattern
)

// Rule is one structural check over an immutable AST.
type Rule interface {
	// Name identifies the rule in logs and analysis-error diagnostics.
	Name() string
	// Category tells the orchestrator which report bucket to fill.
	Category() Category
	// Check returns zero or more diagnostics for the tree rooted at root.
	// Check must not retain root or any accumulator across calls.
	Check(root *pyast.Node) []diagnostic.Diagnostic
}

// All returns the full registry in execution order: logical-bug rules
// first, then antipattern rules. The slice is freshly allocated so
// callers can never mutate a shared registry.
func All() []Rule {
	return []Rule{
		MutableDefault{},
		DivisionByZero{},
		BareReturn{},
		UnusedVariable{},
		UnreachableCode{},
		EmptyExcept{},
	}
}

// Run executes one rule with a fault boundary. A panic inside the rule is
// recovered and surfaced as a medium-severity analysis-error diagnostic
// instead of aborting the remaining rules; the failure is observable,
// never a silent no-op.
func Run(rule Rule, root *pyast.Node) (diags []diagnostic.Diagnostic, fault *diagnostic.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			diags = nil
			fault = &diagnostic.Diagnostic{
				Line:     1,
				Message:  fmt.Sprintf("Analysis Error: rule %s failed: %v", rule.Name(), r),
				Severity: diagnostic.SeverityMedium,
			}
		}
	}()
	return rule.Check(root), nil
}
