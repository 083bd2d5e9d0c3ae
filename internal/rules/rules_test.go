package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bughound/internal/diagnostic"
	"bughound/internal/pyast"
)

func parse(t *testing.T, source string) *pyast.Node {
	t.Helper()
	root, failure := pyast.Parse(source)
	require.Nil(t, failure, "test source must parse")
	return root
}

func TestMutableDefault(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
		line   int
	}{
		{"list default", "def foo(x=[]):\n    return x", 1, 1},
		{"dict default", "def foo(x={}):\n    return x", 1, 1},
		{"both defaults", "def foo(a=[], b={}):\n    return a", 2, 1},
		{"none default", "def foo(x=None):\n    return x", 0, 0},
		{"no defaults", "def foo(x):\n    return x", 0, 0},
		{"nested function", "def outer():\n    def inner(x=[]):\n        return x\n    return inner", 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := MutableDefault{}.Check(parse(t, tt.source))
			require.Len(t, diags, tt.want)
			if tt.want > 0 {
				assert.Equal(t, tt.line, diags[0].Line)
				assert.Equal(t, diagnostic.SeverityHigh, diags[0].Severity)
				assert.Contains(t, diags[0].Message, "Mutable default argument")
			}
		})
	}
}

func TestMutableDefaultNamesFunction(t *testing.T) {
	diags := MutableDefault{}.Check(parse(t, "def collect(items=[]):\n    return items"))
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "'collect'")
}

func TestDivisionByZero(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"division", "x = 10 / 0", 1},
		{"floor division", "x = 10 // 0", 1},
		{"modulo", "x = 10 % 0", 1},
		{"float zero", "x = 10 / 0.0", 1},
		{"imaginary zero", "x = 1 % 0j", 1},
		{"nonzero", "x = 10 / 2", 0},
		{"variable divisor", "x = 10 / y", 0},
		{"zero on left", "x = 0 / 10", 0},
		{"multiplication", "x = 10 * 0", 0},
		{"string zero", "x = 'a' % '0'", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := DivisionByZero{}.Check(parse(t, tt.source))
			require.Len(t, diags, tt.want)
			if tt.want > 0 {
				assert.Equal(t, 1, diags[0].Line)
				assert.Equal(t, diagnostic.SeverityCritical, diags[0].Severity)
				assert.Equal(t, "Division by zero detected", diags[0].Message)
			}
		})
	}
}

func TestBareReturn(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{
			"all bare returns",
			"def process(x):\n    do(x)\n    return",
			1,
		},
		{
			"valued return",
			"def process(x):\n    do(x)\n    return x",
			0,
		},
		{
			"mixed returns are not flagged",
			"def process(x):\n    if x:\n        return\n    return x",
			0,
		},
		{
			"private function skipped",
			"def _process(x):\n    do(x)\n    return",
			0,
		},
		{
			"single statement body skipped",
			"def process(x):\n    return",
			0,
		},
		{
			"no returns",
			"def process(x):\n    do(x)\n    log(x)",
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := BareReturn{}.Check(parse(t, tt.source))
			require.Len(t, diags, tt.want)
			if tt.want > 0 {
				assert.Equal(t, 1, diags[0].Line)
				assert.Equal(t, diagnostic.SeverityMedium, diags[0].Severity)
				assert.Contains(t, diags[0].Message, "'process'")
			}
		})
	}
}

func TestUnusedVariable(t *testing.T) {
	t.Run("unused local", func(t *testing.T) {
		diags := UnusedVariable{}.Check(parse(t, "def f():\n    y = 5\n    return 1"))
		require.Len(t, diags, 1)
		assert.Equal(t, 2, diags[0].Line)
		assert.Equal(t, diagnostic.SeverityLow, diags[0].Severity)
		assert.Equal(t, "Unused variable: 'y'", diags[0].Message)
	})

	t.Run("used variable", func(t *testing.T) {
		diags := UnusedVariable{}.Check(parse(t, "y = 5\nprint(y)"))
		assert.Empty(t, diags)
	})

	t.Run("underscore prefix skipped", func(t *testing.T) {
		diags := UnusedVariable{}.Check(parse(t, "_internal = 5"))
		assert.Empty(t, diags)
	})

	t.Run("cross function use suppresses", func(t *testing.T) {
		// resolution is whole-AST: a use in g suppresses the unused
		// warning for the binding in f even though the scopes differ
		source := "def f():\n    shared = 1\ndef g(shared):\n    return shared"
		diags := UnusedVariable{}.Check(parse(t, source))
		assert.Empty(t, diags)
	})

	t.Run("deterministic order", func(t *testing.T) {
		source := "a = 1\nb = 2\nc = 3"
		first := UnusedVariable{}.Check(parse(t, source))
		require.Len(t, first, 3)
		assert.Equal(t, "Unused variable: 'a'", first[0].Message)
		assert.Equal(t, "Unused variable: 'b'", first[1].Message)
		assert.Equal(t, "Unused variable: 'c'", first[2].Message)
	})
}

func TestUnreachableCode(t *testing.T) {
	t.Run("code after return", func(t *testing.T) {
		source := "def f():\n    return 1\n    x = 2"
		diags := UnreachableCode{}.Check(parse(t, source))
		require.Len(t, diags, 1)
		assert.Equal(t, 3, diags[0].Line)
		assert.Equal(t, diagnostic.SeverityMedium, diags[0].Severity)
		assert.Equal(t, "Unreachable code after return", diags[0].Message)
	})

	t.Run("only first occurrence per function", func(t *testing.T) {
		source := "def f():\n    return 1\n    a = 1\n    b = 2\n    c = 3"
		diags := UnreachableCode{}.Check(parse(t, source))
		require.Len(t, diags, 1)
		assert.Equal(t, 3, diags[0].Line)
	})

	t.Run("return as last statement", func(t *testing.T) {
		source := "def f():\n    x = 1\n    return x"
		diags := UnreachableCode{}.Check(parse(t, source))
		assert.Empty(t, diags)
	})

	t.Run("nested return does not count", func(t *testing.T) {
		// the return sits inside the if block, not the direct body
		source := "def f():\n    if cond:\n        return 1\n    x = 2\n    return x"
		diags := UnreachableCode{}.Check(parse(t, source))
		assert.Empty(t, diags)
	})

	t.Run("reported per function", func(t *testing.T) {
		source := "def f():\n    return 1\n    a = 1\ndef g():\n    return 2\n    b = 2"
		diags := UnreachableCode{}.Check(parse(t, source))
		require.Len(t, diags, 2)
		assert.Equal(t, 3, diags[0].Line)
		assert.Equal(t, 6, diags[1].Line)
	})
}

func TestEmptyExcept(t *testing.T) {
	t.Run("pass only handler", func(t *testing.T) {
		source := "try:\n    x = 1\nexcept Exception:\n    pass"
		diags := EmptyExcept{}.Check(parse(t, source))
		require.Len(t, diags, 1)
		assert.Equal(t, 3, diags[0].Line)
		assert.Equal(t, diagnostic.SeverityMedium, diags[0].Severity)
		assert.Contains(t, diags[0].Message, "Empty except")
	})

	t.Run("handler with real body", func(t *testing.T) {
		source := "try:\n    x = 1\nexcept Exception as e:\n    log(e)"
		diags := EmptyExcept{}.Check(parse(t, source))
		assert.Empty(t, diags)
	})

	t.Run("multiple handlers", func(t *testing.T) {
		source := "try:\n    x = 1\nexcept ValueError:\n    pass\nexcept KeyError:\n    pass"
		diags := EmptyExcept{}.Check(parse(t, source))
		require.Len(t, diags, 2)
		assert.Equal(t, 3, diags[0].Line)
		assert.Equal(t, 5, diags[1].Line)
	})
}

// panicRule simulates a rule hitting a malformed node shape.
type panicRule struct{}

func (panicRule) Name() string       { return "panic-rule" }
func (panicRule) Category() Category { return CategoryLogicalBug }
func (panicRule) Check(*pyast.Node) []diagnostic.Diagnostic {
	panic("malformed node")
}

func TestRunRecoversRuleFault(t *testing.T) {
	diags, fault := Run(panicRule{}, parse(t, "x = 1"))
	assert.Empty(t, diags)
	require.NotNil(t, fault)
	assert.Equal(t, 1, fault.Line)
	assert.Equal(t, diagnostic.SeverityMedium, fault.Severity)
	assert.Contains(t, fault.Message, "Analysis Error")
	assert.Contains(t, fault.Message, "panic-rule")
}

func TestRunPassesThroughHealthyRule(t *testing.T) {
	diags, fault := Run(DivisionByZero{}, parse(t, "x = 1 / 0"))
	assert.Nil(t, fault)
	assert.Len(t, diags, 1)
}

func TestAllRegistryOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 6)
	// logical-bug rules precede antipattern rules
	for i, rule := range all {
		if i < 3 {
			assert.Equal(t, CategoryLogicalBug, rule.Category(), rule.Name())
		} else {
			assert.Equal(t, CategoryAntipattern, rule.Category(), rule.Name())
		}
	}
}
