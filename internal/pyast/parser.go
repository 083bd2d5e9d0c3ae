package pyast

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ParseFailure reports that source text could not be parsed into an AST.
// Line is the best-available 1-based location of the failure. Message is
// descriptive and never carries parser internals.
type ParseFailure struct {
	Line    int
	Message string
}

// Parse builds the simplified AST for Python source text. On malformed
// syntax it returns a ParseFailure instead; the returned AST is nil in
// that case and callers must not continue structural analysis.
//
// A fresh Tree-sitter parser is created per call. Sitter parsers carry
// internal state and are unsafe to share across goroutines; per-call
// construction keeps Parse usable by concurrent callers without locks.
func Parse(source string) (*Node, *ParseFailure) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil {
		return nil, &ParseFailure{Line: 1, Message: "Syntax Error: invalid syntax"}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &ParseFailure{
			Line:    firstErrorLine(root),
			Message: "Syntax Error: invalid syntax",
		}
	}

	c := converter{src: []byte(source)}
	return c.convert(root, false), nil
}

// firstErrorLine locates the first ERROR or missing node in the raw parse
// tree and returns its 1-based line, defaulting to line 1.
func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if line := firstErrorLine(n.Child(i)); line > 0 {
			return line
		}
	}
	return 0
}

// converter lowers a Tree-sitter CST into the closed Node union.
type converter struct {
	src []byte
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// convert lowers one CST node. binding marks store contexts: identifiers
// seen while binding become KindAssign, all others KindName. The split
// mirrors Python's own store/load distinction, so attribute and subscript
// targets fall back to load context for their inner names.
func (c *converter) convert(n *sitter.Node, binding bool) *Node {
	switch n.Type() {
	case "module":
		return &Node{Kind: KindModule, Line: line(n), Children: c.convertNamedChildren(n, false)}

	case "function_definition":
		return c.convertFunction(n)

	case "identifier":
		if binding {
			return &Node{Kind: KindAssign, Line: line(n), Name: c.text(n)}
		}
		return &Node{Kind: KindName, Line: line(n), Name: c.text(n)}

	case "assignment":
		out := &Node{Kind: KindOther, Line: line(n)}
		if left := n.ChildByFieldName("left"); left != nil {
			out.Children = append(out.Children, c.convert(left, true))
		}
		if typ := n.ChildByFieldName("type"); typ != nil {
			out.Children = append(out.Children, c.convert(typ, false))
		}
		if right := n.ChildByFieldName("right"); right != nil {
			out.Children = append(out.Children, c.convert(right, false))
		}
		return out

	case "augmented_assignment":
		out := &Node{Kind: KindOther, Line: line(n)}
		if left := n.ChildByFieldName("left"); left != nil {
			out.Children = append(out.Children, c.convert(left, true))
		}
		if right := n.ChildByFieldName("right"); right != nil {
			out.Children = append(out.Children, c.convert(right, false))
		}
		return out

	case "named_expression":
		out := &Node{Kind: KindOther, Line: line(n)}
		if name := n.ChildByFieldName("name"); name != nil {
			out.Children = append(out.Children, c.convert(name, true))
		}
		if value := n.ChildByFieldName("value"); value != nil {
			out.Children = append(out.Children, c.convert(value, false))
		}
		return out

	case "pattern_list", "tuple_pattern", "list_pattern":
		return &Node{Kind: KindOther, Line: line(n), Children: c.convertNamedChildren(n, binding)}

	case "for_statement", "for_in_clause":
		out := &Node{Kind: KindOther, Line: line(n)}
		if left := n.ChildByFieldName("left"); left != nil {
			out.Children = append(out.Children, c.convert(left, true))
		}
		if right := n.ChildByFieldName("right"); right != nil {
			out.Children = append(out.Children, c.convert(right, false))
		}
		if body := n.ChildByFieldName("body"); body != nil {
			out.Children = append(out.Children, c.convertNamedChildren(body, false)...)
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			out.Children = append(out.Children, c.convert(alt, false))
		}
		return out

	case "as_pattern":
		out := &Node{Kind: KindOther, Line: line(n)}
		if value := n.NamedChild(0); value != nil {
			out.Children = append(out.Children, c.convert(value, false))
		}
		if alias := n.ChildByFieldName("alias"); alias != nil {
			// as_pattern_target wraps a single identifier
			out.Children = append(out.Children, c.convertNamedChildren(alias, true)...)
		}
		return out

	case "except_clause":
		return c.convertExcept(n)

	case "binary_operator":
		out := &Node{Kind: KindBinaryOp, Line: line(n)}
		if op := n.ChildByFieldName("operator"); op != nil {
			out.Op = c.text(op)
		}
		if left := n.ChildByFieldName("left"); left != nil {
			out.Left = c.convert(left, false)
		}
		if right := n.ChildByFieldName("right"); right != nil {
			out.Right = c.convert(right, false)
		}
		return out

	case "return_statement":
		return &Node{Kind: KindReturn, Line: line(n), Children: c.convertNamedChildren(n, false)}

	case "pass_statement":
		return &Node{Kind: KindPass, Line: line(n)}

	case "integer", "float", "true", "false", "none":
		return &Node{Kind: KindConstant, Line: line(n), Text: c.text(n)}

	case "string":
		// f-string interpolations hold real name references
		return &Node{Kind: KindConstant, Line: line(n), Text: c.text(n), Children: c.convertNamedChildren(n, false)}

	case "list":
		return &Node{Kind: KindList, Line: line(n), Children: c.convertNamedChildren(n, false)}

	case "dictionary":
		return &Node{Kind: KindDict, Line: line(n), Children: c.convertNamedChildren(n, false)}

	case "attribute":
		// only the object position references a name; the attribute
		// identifier itself is a field selector, not a Name
		out := &Node{Kind: KindOther, Line: line(n)}
		if obj := n.ChildByFieldName("object"); obj != nil {
			out.Children = append(out.Children, c.convert(obj, false))
		}
		return out

	case "subscript":
		out := &Node{Kind: KindOther, Line: line(n)}
		if value := n.ChildByFieldName("value"); value != nil {
			out.Children = append(out.Children, c.convert(value, false))
		}
		if sub := n.ChildByFieldName("subscript"); sub != nil {
			out.Children = append(out.Children, c.convert(sub, false))
		}
		return out

	case "keyword_argument":
		// the keyword name is not a name reference
		out := &Node{Kind: KindOther, Line: line(n)}
		if value := n.ChildByFieldName("value"); value != nil {
			out.Children = append(out.Children, c.convert(value, false))
		}
		return out

	case "lambda":
		out := &Node{Kind: KindOther, Line: line(n)}
		if params := n.ChildByFieldName("parameters"); params != nil {
			out.Children = append(out.Children, c.convertParams(params, nil)...)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			out.Children = append(out.Children, c.convert(body, false))
		}
		return out

	case "import_statement", "import_from_statement", "global_statement", "nonlocal_statement":
		// imported and declared names are neither bindings nor references
		// for the purposes of the unused-variable analysis
		return &Node{Kind: KindOther, Line: line(n)}

	default:
		return &Node{Kind: KindOther, Line: line(n), Children: c.convertNamedChildren(n, false)}
	}
}

func (c *converter) convertNamedChildren(n *sitter.Node, binding bool) []*Node {
	var out []*Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, c.convert(n.NamedChild(i), binding))
	}
	return out
}

func (c *converter) convertFunction(n *sitter.Node) *Node {
	fn := &Node{Kind: KindFunction, Line: line(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		fn.Name = c.text(name)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		fn.Children = append(fn.Children, c.convertParams(params, &fn.Defaults)...)
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		fn.Children = append(fn.Children, c.convert(ret, false))
	}
	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			fn.Body = append(fn.Body, c.convert(body.NamedChild(i), false))
		}
	}
	return fn
}

// convertParams lowers a parameter list. Parameter names are bindings;
// default values are collected into defaults (when non-nil) and their
// contents are ordinary references.
func (c *converter) convertParams(params *sitter.Node, defaults *[]*Node) []*Node {
	var out []*Node
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			out = append(out, c.convert(p, true))
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				out = append(out, c.convert(name, true))
			}
			if typ := p.ChildByFieldName("type"); typ != nil {
				out = append(out, c.convert(typ, false))
			}
			if value := p.ChildByFieldName("value"); value != nil {
				v := c.convert(value, false)
				if defaults != nil {
					*defaults = append(*defaults, v)
				} else {
					out = append(out, v)
				}
			}
		case "typed_parameter":
			// identifier ':' type — the identifier binds, the type refers
			out = append(out, c.typedParam(p)...)
		case "list_splat_pattern", "dictionary_splat_pattern":
			out = append(out, c.convertNamedChildren(p, true)...)
		default:
			out = append(out, c.convert(p, false))
		}
	}
	return out
}

func (c *converter) typedParam(p *sitter.Node) []*Node {
	var out []*Node
	for i := 0; i < int(p.NamedChildCount()); i++ {
		child := p.NamedChild(i)
		if child.Type() == "identifier" && i == 0 {
			out = append(out, c.convert(child, true))
			continue
		}
		out = append(out, c.convert(child, false))
	}
	return out
}

func (c *converter) convertExcept(n *sitter.Node) *Node {
	h := &Node{Kind: KindExceptHandler, Line: line(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "block" {
			for j := 0; j < int(child.NamedChildCount()); j++ {
				h.Body = append(h.Body, c.convert(child.NamedChild(j), false))
			}
			continue
		}
		h.Children = append(h.Children, c.convert(child, false))
	}
	return h
}
