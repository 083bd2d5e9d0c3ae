package rules

import (
	"fmt"
	"strings"

	"bughound/internal/diagnostic"
	"bughound/internal/pyast"
)

// BareReturn flags public functions with a multi-statement body whose
// return statements all carry no value. Functions mixing bare and valued
// returns are deliberately not flagged; widening this to general
// return-consistency checking changes observable diagnostics and needs a
// product decision first.
type BareReturn struct{}

func (BareReturn) Name() string       { return "bare-return" }
func (BareReturn) Category() Category { return CategoryLogicalBug }

func (BareReturn) Check(root *pyast.Node) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	for _, fn := range pyast.Functions(root) {
		if strings.HasPrefix(fn.Name, "_") {
			continue
		}
		if len(fn.Body) <= 1 {
			continue
		}
		hasReturn := false
		hasValued := false
		pyast.Walk(fn, func(n *pyast.Node) {
			if n.Kind != pyast.KindReturn {
				return
			}
			hasReturn = true
			if len(n.Children) > 0 {
				hasValued = true
			}
		})
		if hasReturn && !hasValued {
			diags = append(diags, diagnostic.Diagnostic{
				Line:     fn.Line,
				Message:  fmt.Sprintf("Function '%s' has return without value", fn.Name),
				Severity: diagnostic.SeverityMedium,
			})
		}
	}
	return diags
}
