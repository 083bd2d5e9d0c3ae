package rules

import (
	"bughound/internal/diagnostic"
	"bughound/internal/pyast"
)

// EmptyExcept flags exception handlers whose body is empty or a lone
// pass statement. Such handlers discard exceptions silently.
type EmptyExcept struct{}

func (EmptyExcept) Name() string       { return "empty-except" }
func (EmptyExcept) Category() Category { return CategoryAntipattern }

func (EmptyExcept) Check(root *pyast.Node) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	pyast.Walk(root, func(n *pyast.Node) {
		if n.Kind != pyast.KindExceptHandler {
			return
		}
		if len(n.Body) == 0 || (len(n.Body) == 1 && n.Body[0].Kind == pyast.KindPass) {
			diags = append(diags, diagnostic.Diagnostic{
				Line:     n.Line,
				Message:  "Empty except block - exceptions silently ignored",
				Severity: diagnostic.SeverityMedium,
			})
		}
	})
	return diags
}
