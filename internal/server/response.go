package server

import (
	"strings"

	"bughound/internal/diagnostic"
	"bughound/internal/insight"
)

// AnalyzeResponse is the wire envelope for one analysis: the report
// categories plus presentation-level aggregates the shell owns. The
// severity field carries the report's derived value; the envelope never
// computes its own.
type AnalyzeResponse struct {
	SyntaxErrors  []diagnostic.Diagnostic `json:"syntax_errors"`
	LogicalBugs   []diagnostic.Diagnostic `json:"logical_bugs"`
	Antipatterns  []diagnostic.Diagnostic `json:"antipatterns"`
	Severity      diagnostic.Severity     `json:"severity"`
	TotalIssues   int                     `json:"total_issues"`
	LinesAnalyzed int                     `json:"lines_analyzed"`

	// Populated only when the caller asked for model insights.
	MLInsights      []insight.Insight `json:"ml_insights,omitempty"`
	ConfidenceScore *float64          `json:"confidence_score,omitempty"`
}

// NewAnalyzeResponse builds the envelope around a finished report.
func NewAnalyzeResponse(report *diagnostic.Report, source string) *AnalyzeResponse {
	return &AnalyzeResponse{
		SyntaxErrors:  report.SyntaxErrors,
		LogicalBugs:   report.LogicalBugs,
		Antipatterns:  report.Antipatterns,
		Severity:      report.Severity(),
		TotalIssues:   report.TotalIssues(),
		LinesAnalyzed: LineCount(source),
	}
}

// AttachInsights merges the model collaborator's result into the envelope.
func (r *AnalyzeResponse) AttachInsights(res insight.Result) {
	r.MLInsights = res.Insights
	score := res.ConfidenceScore
	r.ConfidenceScore = &score
}

// LineCount counts newline-delimited segments of the raw input, including
// a trailing empty segment when the input ends with a newline.
func LineCount(source string) int {
	return len(strings.Split(source, "\n"))
}
