package inference

import (
	"context"
	"fmt"
	"sync"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/entity"
	"github.com/Wajihx/News-Article-Classifier/internal/domain/service"
)

// DefaultWordBudget is the number of leading words scored when no budget is configured
const DefaultWordBudget = 1000

// Predictor classifies text with a loaded tokenizer and model.
// Forward passes are serialized; the tokenizer and model are never mutated.
type Predictor struct {
	tokenizer  service.Tokenizer
	model      service.Model
	wordBudget int

	mu sync.Mutex
}

// NewPredictor creates a Predictor. A non-positive wordBudget selects DefaultWordBudget.
func NewPredictor(tokenizer service.Tokenizer, model service.Model, wordBudget int) *Predictor {
	if wordBudget <= 0 {
		wordBudget = DefaultWordBudget
	}
	return &Predictor{
		tokenizer:  tokenizer,
		model:      model,
		wordBudget: wordBudget,
	}
}

var _ service.Classifier = (*Predictor)(nil)

// WordBudget returns the number of leading words that are scored
func (p *Predictor) WordBudget() int {
	return p.wordBudget
}

// ModelVersion identifies the loaded checkpoint
func (p *Predictor) ModelVersion() string {
	return p.model.Version()
}

// Classify truncates text to the word budget, runs one forward pass and returns
// the arg-max class with its softmax probability.
func (p *Predictor) Classify(ctx context.Context, text string) (*entity.Prediction, error) {
	snippet := TruncateWords(text, p.wordBudget)

	p.mu.Lock()
	defer p.mu.Unlock()

	enc, err := p.tokenizer.Encode(snippet)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize text: %w", err)
	}

	logits, err := p.model.Logits(ctx, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to run model: %w", err)
	}
	if err := validateLogits(logits, entity.NumLabels); err != nil {
		return nil, err
	}

	index := Argmax(logits)
	confidence := Softmax(logits)[index]

	return entity.NewPrediction(index, confidence, snippet)
}

// Close releases the model
func (p *Predictor) Close() error {
	return p.model.Close()
}
