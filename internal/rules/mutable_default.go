package rules

import (
	"fmt"

	"bughound/internal/diagnostic"
	"bughound/internal/pyast"
)

// MutableDefault flags function parameters whose default value is a
// literal list or dictionary. Such defaults are evaluated once and shared
// across calls, so state written into them leaks between invocations.
type MutableDefault struct{}

func (MutableDefault) Name() string       { return "mutable-default" }
func (MutableDefault) Category() Category { return CategoryLogicalBug }

func (MutableDefault) Check(root *pyast.Node) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	for _, fn := range pyast.Functions(root) {
		for _, def := range fn.Defaults {
			if def.Kind == pyast.KindList || def.Kind == pyast.KindDict {
				diags = append(diags, diagnostic.Diagnostic{
					Line:     fn.Line,
					Message:  fmt.Sprintf("Mutable default argument in '%s' - can cause bugs", fn.Name),
					Severity: diagnostic.SeverityHigh,
				})
			}
		}
	}
	return diags
}
