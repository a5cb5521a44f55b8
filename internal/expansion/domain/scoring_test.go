package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverallScore(t *testing.T) {
	t.Run("nil criteria score zero", func(t *testing.T) {
		assert.Zero(t, OverallScore(nil))
	})

	t.Run("weights sum to the exact composite", func(t *testing.T) {
		c := &EvaluationCriteria{
			Location:    8,
			Traffic:     7,
			Competition: 6,
			Cost:        9,
			Potential:   8,
		}
		// 8*0.30 + 7*0.20 + 6*0.20 + 9*0.15 + 8*0.15 = 7.55
		assert.InDelta(t, 7.55, OverallScore(c), 1e-9)
	})

	t.Run("perfect sub-scores compose to ten", func(t *testing.T) {
		c := &EvaluationCriteria{Location: 10, Traffic: 10, Competition: 10, Cost: 10, Potential: 10}
		assert.InDelta(t, 10.0, OverallScore(c), 1e-9)
	})

	t.Run("composite keeps full precision", func(t *testing.T) {
		c := &EvaluationCriteria{Location: 7, Traffic: 7, Competition: 7, Cost: 6, Potential: 7}
		// 2.1 + 1.4 + 1.4 + 0.9 + 1.05 = 6.85, no rounding applied here
		assert.InDelta(t, 6.85, OverallScore(c), 1e-9)
	})

	t.Run("zero sub-scores stay zero", func(t *testing.T) {
		assert.Zero(t, OverallScore(&EvaluationCriteria{}))
	})

	t.Run("out of range sub-scores pass through unclamped", func(t *testing.T) {
		c := &EvaluationCriteria{Location: 12, Traffic: -2}
		assert.InDelta(t, 12*0.30+(-2)*0.20, OverallScore(c), 1e-9)
	})
}
