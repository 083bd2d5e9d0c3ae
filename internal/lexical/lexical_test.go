package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bughound/internal/diagnostic"
)

func TestAnalyzeJavaScript(t *testing.T) {
	t.Run("loose equality and var on one line", func(t *testing.T) {
		report := diagnostic.NewReport()
		AnalyzeJavaScript("if (a == b) { var c = 1; }", report)

		require.Len(t, report.Antipatterns, 2)
		assert.Equal(t, "Use '===' instead of '=='", report.Antipatterns[0].Message)
		assert.Equal(t, "Use 'let' or 'const' instead of 'var'", report.Antipatterns[1].Message)
		for _, d := range report.Antipatterns {
			assert.Equal(t, 1, d.Line)
			assert.Equal(t, diagnostic.SeverityLow, d.Severity)
		}
		assert.Equal(t, diagnostic.SeverityMedium, report.Severity())
	})

	t.Run("strict equality suppresses the warning", func(t *testing.T) {
		report := diagnostic.NewReport()
		AnalyzeJavaScript("if (a === b) { let c = 1; }", report)
		assert.Empty(t, report.Antipatterns)
	})

	t.Run("var requires a word boundary", func(t *testing.T) {
		report := diagnostic.NewReport()
		AnalyzeJavaScript("let variable = 1;\nconst evar = 2;", report)
		assert.Empty(t, report.Antipatterns)
	})

	t.Run("line numbers are 1-based", func(t *testing.T) {
		report := diagnostic.NewReport()
		AnalyzeJavaScript("let a = 1;\nvar b = 2;\nlet c = a == b;", report)
		require.Len(t, report.Antipatterns, 2)
		assert.Equal(t, 2, report.Antipatterns[0].Line)
		assert.Equal(t, 3, report.Antipatterns[1].Line)
	})

	t.Run("no logical bugs without a parser", func(t *testing.T) {
		report := diagnostic.NewReport()
		AnalyzeJavaScript("let x = 10 / 0;", report)
		assert.Empty(t, report.LogicalBugs)
		assert.Empty(t, report.SyntaxErrors)
	})
}

func TestAnalyzeGeneric(t *testing.T) {
	t.Run("marker tokens", func(t *testing.T) {
		report := diagnostic.NewReport()
		AnalyzeGeneric("int main() {\n  // TODO: handle errors\n  return 0; // FIXME\n}", report)

		require.Len(t, report.Antipatterns, 2)
		assert.Equal(t, 2, report.Antipatterns[0].Line)
		assert.Equal(t, 3, report.Antipatterns[1].Line)
		assert.Equal(t, "Unresolved TODO/FIXME comment", report.Antipatterns[0].Message)
	})

	t.Run("clean source", func(t *testing.T) {
		report := diagnostic.NewReport()
		AnalyzeGeneric("int main() { return 0; }", report)
		assert.Empty(t, report.Antipatterns)
		assert.Equal(t, diagnostic.SeverityLow, report.Severity())
	})
}
