package rules

import (
	"bughound/internal/diagnostic"
	"bughound/internal/pyast"
)

// UnreachableCode flags statements that follow a return in a function's
// direct statement sequence. Only the first occurrence per function is
// reported; everything after it is implied by the same return.
type UnreachableCode struct{}

func (UnreachableCode) Name() string       { return "unreachable-code" }
func (UnreachableCode) Category() Category { return CategoryAntipattern }

func (UnreachableCode) Check(root *pyast.Node) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	for _, fn := range pyast.Functions(root) {
		for i, stmt := range fn.Body {
			if stmt.Kind != pyast.KindReturn {
				continue
			}
			if i < len(fn.Body)-1 {
				diags = append(diags, diagnostic.Diagnostic{
					Line:     fn.Body[i+1].Line,
					Message:  "Unreachable code after return",
					Severity: diagnostic.SeverityMedium,
				})
			}
			break
		}
	}
	return diags
}
