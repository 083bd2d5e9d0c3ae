// Package analyzer orchestrates a single analysis call: language
// dispatch, parse-failure short-circuiting, rule execution, and severity
// aggregation into the final report.
package analyzer

import (
	"strings"

	"bughound/internal/diagnostic"
	"bughound/internal/lexical"
	"bughound/internal/pyast"
	"bughound/internal/rules"
)

// Strategy is the closed set of analysis modes. The mode is selected once
// at entry from the language tag, never re-derived mid-call.
type Strategy int

const (
	// StructuralAnalysis parses the source into an AST and runs the full
	// rule registry over it.
	StructuralAnalysis Strategy = iota
	// LexicalAnalysis runs line-oriented JavaScript heuristics.
	LexicalAnalysis
	// GenericFallback runs the marker-token scan for unknown languages.
	GenericFallback
)

// StrategyFor maps a case-insensitive language tag to its analysis mode.
// Unrecognized tags fall back to the generic scan rather than failing.
func StrategyFor(language string) Strategy {
	switch strings.ToLower(language) {
	case "python":
		return StructuralAnalysis
	case "javascript", "js":
		return LexicalAnalysis
	default:
		return GenericFallback
	}
}

// Engine runs analyses. It holds no mutable state: every call allocates a
// fresh report and a fresh parser, so one Engine value is safe for any
// number of concurrent callers without locking.
type Engine struct{}

// New returns an analysis engine.
func New() *Engine {
	return &Engine{}
}

// Analyze runs the applicable checks over source and returns a fresh
// report. It is a pure function of (source, language): repeated calls
// with the same inputs yield identical reports, and no failure inside
// the engine escapes as a panic or error.
func (e *Engine) Analyze(source, language string) *diagnostic.Report {
	report := diagnostic.NewReport()

	switch StrategyFor(language) {
	case StructuralAnalysis:
		e.analyzePython(source, report, rules.All())
	case LexicalAnalysis:
		lexical.AnalyzeJavaScript(source, report)
	case GenericFallback:
		lexical.AnalyzeGeneric(source, report)
	}
	return report
}

// analyzePython parses the source and runs each rule in ruleSet over the
// resulting AST. A parse failure yields exactly one critical syntax
// diagnostic and skips rule execution entirely: a tree recovered from a
// failed parse is not safe for the rules to traverse.
func (e *Engine) analyzePython(source string, report *diagnostic.Report, ruleSet []rules.Rule) {
	root, failure := pyast.Parse(source)
	if failure != nil {
		report.SyntaxErrors = append(report.SyntaxErrors, diagnostic.Diagnostic{
			Line:     failure.Line,
			Message:  failure.Message,
			Severity: diagnostic.SeverityCritical,
		})
		return
	}

	for _, rule := range ruleSet {
		diags, fault := rules.Run(rule, root)
		if fault != nil {
			report.SyntaxErrors = append(report.SyntaxErrors, *fault)
			continue
		}
		switch rule.Category() {
		case rules.CategoryLogicalBug:
			report.LogicalBugs = append(report.LogicalBugs, diags...)
		case rules.CategoryAntipattern:
			report.Antipatterns = append(report.Antipatterns, diags...)
		}
	}
}
