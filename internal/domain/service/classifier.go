package service

import (
	"context"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/entity"
)

// Classifier defines the interface for article topic classification
type Classifier interface {
	// Classify scores text and returns the predicted topic with its confidence
	Classify(ctx context.Context, text string) (*entity.Prediction, error)

	// ModelVersion identifies the loaded checkpoint
	ModelVersion() string

	// WordBudget is the number of leading words that are scored
	WordBudget() int
}

// Encoding is a tokenized input ready for a forward pass
type Encoding struct {
	IDs           []int64 `json:"input_ids"`
	AttentionMask []int64 `json:"attention_mask"`
}

// Len returns the number of tokens
func (e *Encoding) Len() int {
	return len(e.IDs)
}

// Tokenizer turns text into model input ids
type Tokenizer interface {
	Encode(text string) (*Encoding, error)
}

// Model runs one forward pass and returns one logit per class
type Model interface {
	Logits(ctx context.Context, enc *Encoding) ([]float32, error)
	Version() string
	Close() error
}
