package rules

import (
	"fmt"
	"strings"

	"bughound/internal/diagnostic"
	"bughound/internal/pyast"
)

// UnusedVariable flags names that are bound but never referenced anywhere
// in the tree. Resolution is whole-AST and unscoped: a reference inside
// one function suppresses the warning for a same-named binding in another.
// That produces false negatives across scopes; the behavior is preserved
// because narrowing it changes observable diagnostics.
type UnusedVariable struct{}

func (UnusedVariable) Name() string       { return "unused-variable" }
func (UnusedVariable) Category() Category { return CategoryAntipattern }

type binding struct {
	name string
	line int
}

func (UnusedVariable) Check(root *pyast.Node) []diagnostic.Diagnostic {
	var defined []binding
	seen := make(map[binding]bool)
	used := make(map[string]bool)

	pyast.Walk(root, func(n *pyast.Node) {
		switch n.Kind {
		case pyast.KindAssign:
			if strings.HasPrefix(n.Name, "_") {
				return
			}
			b := binding{name: n.Name, line: n.Line}
			if !seen[b] {
				seen[b] = true
				defined = append(defined, b)
			}
		case pyast.KindName:
			used[n.Name] = true
		}
	})

	var diags []diagnostic.Diagnostic
	for _, b := range defined {
		if used[b.name] {
			continue
		}
		diags = append(diags, diagnostic.Diagnostic{
			Line:     b.line,
			Message:  fmt.Sprintf("Unused variable: '%s'", b.name),
			Severity: diagnostic.SeverityLow,
		})
	}
	return diags
}
