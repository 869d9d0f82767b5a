package inference

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		budget int
		want   string
	}{
		{"under budget", "Stocks rallied today", 10, "Stocks rallied today"},
		{"exact budget", "one two three", 3, "one two three"},
		{"over budget", "one two three four five", 2, "one two"},
		{"collapses whitespace", "  one\n\ttwo   three  ", 10, "one two three"},
		{"empty", "", 5, ""},
		{"whitespace only", " \n\t ", 5, ""},
		{"zero budget", "one two", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateWords(tt.text, tt.budget))
		})
	}
}

func TestTruncateWords_LongArticle(t *testing.T) {
	words := make([]string, 1500)
	for i := range words {
		words[i] = "word"
	}
	words[999] = "last"
	words[1000] = "dropped"

	got := TruncateWords(strings.Join(words, " "), DefaultWordBudget)

	fields := strings.Fields(got)
	require.Len(t, fields, 1000)
	assert.Equal(t, "last", fields[999])
	assert.NotContains(t, got, "dropped")
}

func TestArgmax(t *testing.T) {
	assert.Equal(t, 1, Argmax([]float32{0.1, 2.0, -3, 1.9}))
	assert.Equal(t, 3, Argmax([]float32{-5, -4, -3, -2}))
	assert.Equal(t, 0, Argmax([]float32{1, 1, 1, 1}))
	assert.Equal(t, 1, Argmax([]float32{0, 2, 2, 1}))
}

func TestSoftmax(t *testing.T) {
	t.Run("sums to one", func(t *testing.T) {
		probs := Softmax([]float32{1.5, -0.2, 3.1, 0})

		var sum float64
		for _, p := range probs {
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("uniform logits", func(t *testing.T) {
		probs := Softmax([]float32{2, 2, 2, 2})
		for _, p := range probs {
			assert.InDelta(t, 0.25, p, 1e-9)
		}
	})

	t.Run("large logits do not overflow", func(t *testing.T) {
		probs := Softmax([]float32{1000, 0, 0, 0})

		assert.False(t, math.IsNaN(probs[0]))
		assert.InDelta(t, 1.0, probs[0], 1e-9)
	})

	t.Run("known values", func(t *testing.T) {
		probs := Softmax([]float32{0, float32(math.Log(3))})

		assert.InDelta(t, 0.25, probs[0], 1e-6)
		assert.InDelta(t, 0.75, probs[1], 1e-6)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, Softmax(nil))
	})
}

func TestValidateLogits(t *testing.T) {
	assert.NoError(t, validateLogits([]float32{1, 2, 3, 4}, 4))

	err := validateLogits([]float32{1, 2, 3}, 4)
	assert.ErrorIs(t, err, ErrInvalidLogits)

	err = validateLogits([]float32{1, float32(math.NaN()), 3, 4}, 4)
	assert.ErrorIs(t, err, ErrInvalidLogits)

	err = validateLogits([]float32{1, float32(math.Inf(1)), 3, 4}, 4)
	assert.ErrorIs(t, err, ErrInvalidLogits)
}
