// Package pyast builds a simplified Python AST from Tree-sitter parse
// trees. The node model is a closed discriminated union: rules switch on
// Kind instead of inspecting concrete types, so adding a kind forces every
// consumer through the compiler.
//
// Scope is deliberately flat: a node's scope is the whole parsed unit.
// Nested-scope boundaries (function locals, comprehension scopes) are not
// modeled. This is a known limitation of the analysis, not an oversight.
package pyast

import (
	"strconv"
	"strings"
)

// Kind discriminates the structural role of a Node.
type Kind int

const (
	// KindModule is the root of a parsed source unit.
	KindModule Kind = iota
	// KindFunction is a function or method definition.
	KindFunction
	// KindAssign is a binding occurrence of a name: assignment targets,
	// loop targets, with/except aliases, and function parameters.
	KindAssign
	// KindName is a referencing occurrence of a name.
	KindName
	// KindBinaryOp is a binary arithmetic operation.
	KindBinaryOp
	// KindReturn is a return statement; bare when Children is empty.
	KindReturn
	// KindExceptHandler is one except clause of a try statement.
	KindExceptHandler
	// KindConstant is a literal constant (number, string, bool, None).
	KindConstant
	// KindList is a literal list display.
	KindList
	// KindDict is a literal dictionary display.
	KindDict
	// KindPass is a pass statement.
	KindPass
	// KindOther wraps any construct the rules do not inspect directly;
	// its children remain reachable for name collection.
	KindOther
)

// Node is one unit of the simplified AST. Only the fields relevant to the
// node's Kind are populated; everything else is zero.
type Node struct {
	Kind Kind
	Line int // 1-based source line

	// Name is set for KindFunction, KindAssign and KindName.
	Name string
	// Op is the operator token for KindBinaryOp ("/", "//", "%", "+", ...).
	Op string
	// Text is the literal source text for KindConstant.
	Text string

	// Left and Right are the operands of KindBinaryOp.
	Left  *Node
	Right *Node
	// Defaults are the default parameter values of KindFunction.
	Defaults []*Node
	// Body is the direct statement sequence of KindFunction and
	// KindExceptHandler, in source order.
	Body []*Node
	// Children holds all remaining nested nodes.
	Children []*Node
}

// Walk visits n and every node reachable from it in preorder. Traversal
// order is deterministic: operands, defaults, body, then children.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	Walk(n.Left, visit)
	Walk(n.Right, visit)
	for _, d := range n.Defaults {
		Walk(d, visit)
	}
	for _, s := range n.Body {
		Walk(s, visit)
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// IsZeroLiteral reports whether n is a literal constant equal to zero.
// Python compares False == 0 as true, so False counts as zero here. Only
// literal operands are considered; there is no folding across names or
// nested expressions.
func (n *Node) IsZeroLiteral() bool {
	if n == nil || n.Kind != KindConstant {
		return false
	}
	text := strings.ReplaceAll(n.Text, "_", "")
	if text == "False" {
		return true
	}
	// imaginary literals compare numerically too: 0j == 0 in Python
	if trimmed := strings.TrimRight(text, "jJ"); trimmed != text {
		text = trimmed
		if text == "" {
			return false
		}
	}
	if v, err := strconv.ParseInt(text, 0, 64); err == nil {
		return v == 0
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return v == 0
	}
	return false
}

// Functions returns every function definition in the tree rooted at n,
// including nested definitions and methods, in preorder.
func Functions(root *Node) []*Node {
	var fns []*Node
	Walk(root, func(n *Node) {
		if n.Kind == KindFunction {
			fns = append(fns, n)
		}
	})
	return fns
}
