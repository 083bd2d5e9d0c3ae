// Package insight is the external model collaborator. It receives raw
// source text and returns an opaque list of insights with a confidence
// score. It never fails: when the model is unreachable or unconfigured
// the result degrades to the local heuristic or to an empty result, so
// callers can merge it without an error path.
package insight

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Insight is one model-provided observation about the source.
type Insight struct {
	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}

// Result is the collaborator's full output for one source text.
type Result struct {
	Insights        []Insight `json:"ml_insights"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// complexity keywords counted by the local heuristic, matching branch and
// boolean constructs that raise cyclomatic complexity.
var complexityKeywords = []string{
	"if", "elif", "else", "for", "while", "and", "or", "try", "except",
}

// Scorer produces insight results. A zero-configured Scorer (no API key)
// runs the local heuristic only.
type Scorer struct {
	client *genai.Client
	model  string
}

// NewScorer builds a scorer. With an empty apiKey the Gemini client is
// skipped and only the local complexity heuristic runs; that is the
// supported degraded mode, not an error.
func NewScorer(ctx context.Context, apiKey, model string) (*Scorer, error) {
	s := &Scorer{model: model}
	if s.model == "" {
		s.model = "gemini-2.0-flash"
	}
	if apiKey == "" {
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	s.client = client
	return s, nil
}

// Score analyzes source out-of-band from the rule engine. The context
// bounds the optional remote call; the heuristic part cannot block.
func (s *Scorer) Score(ctx context.Context, source string) Result {
	result := Result{
		Insights: []Insight{{
			Message:    fmt.Sprintf("Code complexity: %s", complexityBucket(Complexity(source))),
			Confidence: 0.85,
		}},
		ConfidenceScore: 0.85,
	}

	if s.client == nil {
		return result
	}
	if msg := s.modelAssessment(ctx, source); msg != "" {
		result.Insights = append(result.Insights, Insight{Message: msg, Confidence: 0.75})
	}
	return result
}

// modelAssessment asks Gemini for a one-line risk assessment. Any failure
// returns an empty string; unavailability must never propagate upstream.
func (s *Scorer) modelAssessment(ctx context.Context, source string) string {
	prompt := "In one short sentence, name the most likely defect risk in this code:\n\n" + source
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return ""
	}
	text := strings.TrimSpace(resp.Text())
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return text
}

// Complexity estimates cyclomatic complexity by counting branch keywords.
// The count starts at 1 for the single entry path.
func Complexity(source string) int {
	complexity := 1
	for _, kw := range complexityKeywords {
		complexity += strings.Count(source, " "+kw+" ")
		complexity += strings.Count(source, "\n"+kw+" ")
	}
	return complexity
}

func complexityBucket(complexity int) string {
	switch {
	case complexity > 10:
		return "High"
	case complexity > 5:
		return "Medium"
	default:
		return "Low"
	}
}
