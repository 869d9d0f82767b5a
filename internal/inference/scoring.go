package inference

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidLogits is returned when a model produces unusable output
var ErrInvalidLogits = errors.New("invalid logits")

// TruncateWords keeps the first budget whitespace-delimited words of text,
// re-joined with single spaces.
func TruncateWords(text string, budget int) string {
	words := strings.Fields(text)
	if budget >= 0 && len(words) > budget {
		words = words[:budget]
	}
	return strings.Join(words, " ")
}

// Argmax returns the index of the largest logit. The first maximum wins on ties.
func Argmax(logits []float32) int {
	best := 0
	for i := 1; i < len(logits); i++ {
		if logits[i] > logits[best] {
			best = i
		}
	}
	return best
}

// Softmax converts logits to probabilities. The maximum is subtracted before
// exponentiation so large logits cannot overflow.
func Softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}

	maxLogit := float64(logits[Argmax(logits)])
	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(float64(l) - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func validateLogits(logits []float32, want int) error {
	if len(logits) != want {
		return fmt.Errorf("%w: expected %d logits, got %d", ErrInvalidLogits, want, len(logits))
	}
	for i, l := range logits {
		f := float64(l)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: logit %d is %v", ErrInvalidLogits, i, l)
		}
	}
	return nil
}
