package rules

import (
	"bughound/internal/diagnostic"
	"bughound/internal/pyast"
)

// DivisionByZero flags division, floor-division and modulo operations
// whose right operand is a literal zero. Only literal operands are
// detected; values reaching the divisor through names or expressions are
// out of scope by design.
type DivisionByZero struct{}

func (DivisionByZero) Name() string       { return "division-by-zero" }
func (DivisionByZero) Category() Category { return CategoryLogicalBug }

func (DivisionByZero) Check(root *pyast.Node) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	pyast.Walk(root, func(n *pyast.Node) {
		if n.Kind != pyast.KindBinaryOp {
			return
		}
		switch n.Op {
		case "/", "//", "%":
		default:
			return
		}
		if n.Right.IsZeroLiteral() {
			diags = append(diags, diagnostic.Diagnostic{
				Line:     n.Line,
				Message:  "Division by zero detected",
				Severity: diagnostic.SeverityCritical,
			})
		}
	})
	return diags
}
