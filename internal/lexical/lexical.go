// Package lexical implements line-oriented heuristic checks for source
// languages without a structural parser. No AST is built and no
// logical-bug detection is attempted here; that boundary is intentional,
// not a gap to fill later.
package lexical

import (
	"regexp"
	"strings"

	"bughound/internal/diagnostic"
)

var varKeyword = regexp.MustCompile(`\bvar\b`)

// AnalyzeJavaScript scans JavaScript source line by line and appends
// antipattern diagnostics to report: loose equality on a line with no
// strict form, and legacy var bindings.
func AnalyzeJavaScript(source string, report *diagnostic.Report) {
	for i, line := range strings.Split(source, "\n") {
		lineno := i + 1
		if strings.Contains(line, "==") && !strings.Contains(line, "===") {
			report.Antipatterns = append(report.Antipatterns, diagnostic.Diagnostic{
				Line:     lineno,
				Message:  "Use '===' instead of '=='",
				Severity: diagnostic.SeverityLow,
			})
		}
		if varKeyword.MatchString(line) {
			report.Antipatterns = append(report.Antipatterns, diagnostic.Diagnostic{
				Line:     lineno,
				Message:  "Use 'let' or 'const' instead of 'var'",
				Severity: diagnostic.SeverityLow,
			})
		}
	}
}

// AnalyzeGeneric scans source in an unknown language for unresolved
// TODO/FIXME markers.
func AnalyzeGeneric(source string, report *diagnostic.Report) {
	for i, line := range strings.Split(source, "\n") {
		if strings.Contains(line, "TODO") || strings.Contains(line, "FIXME") {
			report.Antipatterns = append(report.Antipatterns, diagnostic.Diagnostic{
				Line:     i + 1,
				Message:  "Unresolved TODO/FIXME comment",
				Severity: diagnostic.SeverityLow,
			})
		}
	}
}
