// Package diagnostic defines the shared data model for analysis findings:
// severity levels, individual diagnostics, and the per-call report that
// groups them by category with a derived overall severity.
package diagnostic

import "encoding/json"

// Severity ranks a diagnostic by risk. Values are totally ordered:
// critical > high > medium > low.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the lowercase wire name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the severity as its lowercase string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Diagnostic is one reported finding. Line is 1-based (or the declared
// parse-failure line). Values are immutable once created.
type Diagnostic struct {
	Line     int      `json:"line"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Report groups the diagnostics of a single analysis call. A fresh Report
// is created per call and never shared between calls; rules append into it
// through the orchestrator and no long-lived accumulator exists.
type Report struct {
	SyntaxErrors []Diagnostic
	LogicalBugs  []Diagnostic
	Antipatterns []Diagnostic
}

// NewReport returns an empty report with non-nil category slices so the
// JSON encoding always carries arrays, never null.
func NewReport() *Report {
	return &Report{
		SyntaxErrors: []Diagnostic{},
		LogicalBugs:  []Diagnostic{},
		Antipatterns: []Diagnostic{},
	}
}

// Severity derives the overall severity from the category contents. It is
// recomputed on every access and is never stored independently:
// any syntax error is critical, any logical bug is high, any antipattern
// is medium, otherwise low.
func (r *Report) Severity() Severity {
	switch {
	case len(r.SyntaxErrors) > 0:
		return SeverityCritical
	case len(r.LogicalBugs) > 0:
		return SeverityHigh
	case len(r.Antipatterns) > 0:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// TotalIssues is the sum of the three category lengths.
func (r *Report) TotalIssues() int {
	return len(r.SyntaxErrors) + len(r.LogicalBugs) + len(r.Antipatterns)
}

// MarshalJSON emits the wire form of the report. The severity field is the
// derived value, so serialized reports can never disagree with their
// category contents.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SyntaxErrors []Diagnostic `json:"syntax_errors"`
		LogicalBugs  []Diagnostic `json:"logical_bugs"`
		Antipatterns []Diagnostic `json:"antipatterns"`
		Severity     Severity     `json:"severity"`
	}{
		SyntaxErrors: r.SyntaxErrors,
		LogicalBugs:  r.LogicalBugs,
		Antipatterns: r.Antipatterns,
		Severity:     r.Severity(),
	})
}
