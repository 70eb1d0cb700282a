package llm

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseCompletionLabelledLines(t *testing.T) {
	completion := "Reasoning: the home team is favored.\nPROBABILITY: 0.62\nCONFIDENCE: 0.70\n"
	est := ParseCompletion(completion, decimal.NewFromFloat(0.5))

	assert.True(t, est.Probability.Equal(decimal.NewFromFloat(0.62)))
	assert.True(t, est.Confidence.Equal(decimal.NewFromFloat(0.70)))
}

func TestParseCompletionLabelledLinesScansFromEnd(t *testing.T) {
	// An earlier, unlabelled mention of "confidence" in the reasoning body
	// must not be picked up ahead of the real trailing label.
	completion := "I am fairly confident: 0.99 is too high.\nPROBABILITY: 0.40\nCONFIDENCE: 0.55\n"
	est := ParseCompletion(completion, decimal.NewFromFloat(0.5))

	assert.True(t, est.Probability.Equal(decimal.NewFromFloat(0.40)))
	assert.True(t, est.Confidence.Equal(decimal.NewFromFloat(0.55)))
}

func TestParseCompletionFallsBackToLastFiveLinesFloatScan(t *testing.T) {
	completion := "The model did not use the expected labels.\nFinal answer: 73%\n"
	est := ParseCompletion(completion, decimal.NewFromFloat(0.5))

	assert.True(t, est.Probability.Equal(decimal.NewFromFloat(0.73)))
}

func TestParseCompletionDefaultsConfidenceWhenProbabilityFoundAlone(t *testing.T) {
	// CONFIDENCE is missing, and the only float on the last five lines is
	// the PROBABILITY value itself: confidence must not be set to 0.62.
	completion := "Reasoning: the home team is favored.\nPROBABILITY: 0.62\n"
	est := ParseCompletion(completion, decimal.NewFromFloat(0.5))

	assert.True(t, est.Probability.Equal(decimal.NewFromFloat(0.62)))
	assert.True(t, est.Confidence.Equal(decimal.NewFromFloat(0.5)))
}

func TestParseCompletionClampsOutOfBoundValues(t *testing.T) {
	completion := "PROBABILITY: 1.50\nCONFIDENCE: 0.02\n"
	est := ParseCompletion(completion, decimal.NewFromFloat(0.5))

	assert.True(t, est.Probability.Equal(decimal.NewFromFloat(0.99)))
	assert.True(t, est.Confidence.Equal(decimal.NewFromFloat(0.1)))
}

func TestParseCompletionEchoFallbackOnUnparsable(t *testing.T) {
	completion := "I cannot provide a numeric estimate for this question."
	marketPrice := decimal.NewFromFloat(0.37)
	est := ParseCompletion(completion, marketPrice)

	assert.True(t, est.Probability.Equal(marketPrice))
	assert.True(t, est.Confidence.Equal(decimal.NewFromFloat(0.1)))
	assert.Contains(t, est.Reasoning, "echo fallback")
}
