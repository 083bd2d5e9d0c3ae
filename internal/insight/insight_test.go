package insight

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexity(t *testing.T) {
	assert.Equal(t, 1, Complexity(""))
	assert.Equal(t, 1, Complexity("x = 1"))

	// one leading-newline keyword occurrence
	assert.Equal(t, 2, Complexity("x = 1\nif x:\n    pass"))

	// keywords must be delimited; substrings do not count
	assert.Equal(t, 1, Complexity("modifier = 1\nelifant = 2"))
}

func TestComplexityBuckets(t *testing.T) {
	assert.Equal(t, "Low", complexityBucket(1))
	assert.Equal(t, "Low", complexityBucket(5))
	assert.Equal(t, "Medium", complexityBucket(6))
	assert.Equal(t, "Medium", complexityBucket(10))
	assert.Equal(t, "High", complexityBucket(11))
}

func TestScoreWithoutClient(t *testing.T) {
	scorer, err := NewScorer(context.Background(), "", "")
	require.NoError(t, err)

	result := scorer.Score(context.Background(), "x = 1")

	require.Len(t, result.Insights, 1)
	assert.Equal(t, "Code complexity: Low", result.Insights[0].Message)
	assert.Equal(t, 0.85, result.Insights[0].Confidence)
	assert.Equal(t, 0.85, result.ConfidenceScore)
}

func TestScoreBucketsComplexSource(t *testing.T) {
	scorer, err := NewScorer(context.Background(), "", "")
	require.NoError(t, err)

	source := strings.Repeat("\nif x:\n    pass", 12)
	result := scorer.Score(context.Background(), source)

	require.Len(t, result.Insights, 1)
	assert.Equal(t, "Code complexity: High", result.Insights[0].Message)
}

func TestScoreIsDeterministicWithoutClient(t *testing.T) {
	scorer, err := NewScorer(context.Background(), "", "")
	require.NoError(t, err)

	source := "def f():\n    if a and b:\n        return 1"
	first := scorer.Score(context.Background(), source)
	second := scorer.Score(context.Background(), source)
	assert.Equal(t, first, second)
}
