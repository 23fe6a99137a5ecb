package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecision(t *testing.T) {
	for input, want := range map[string]Decision{
		"like":      DecisionLike,
		"dislike":   DecisionDislike,
		"superlike": DecisionSuperLike,
	} {
		got, err := ParseDecision(input)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, input, got.String())
	}

	_, err := ParseDecision("maybe")
	assert.True(t, errors.Is(err, ErrInvalidDecision))
}

func TestDecisionPositive(t *testing.T) {
	assert.True(t, DecisionLike.Positive())
	assert.True(t, DecisionSuperLike.Positive())
	assert.False(t, DecisionDislike.Positive())
}
