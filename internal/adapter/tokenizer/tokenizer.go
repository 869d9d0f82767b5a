// Package tokenizer loads a Hugging Face fast-tokenizer definition (tokenizer.json)
// and encodes text into model input ids.
package tokenizer

import (
	"errors"
	"fmt"

	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/service"
)

// DefaultMaxTokens matches the positional embedding size of DistilBERT
const DefaultMaxTokens = 512

// Tokenizer wraps a loaded tokenizer.json
type Tokenizer struct {
	tk        *hf.Tokenizer
	maxTokens int
}

var _ service.Tokenizer = (*Tokenizer)(nil)

// Load reads tokenizer.json from path and configures truncation to maxTokens
// (special tokens included). Padding is disabled since inputs are scored one at a time.
func Load(path string, maxTokens int) (*Tokenizer, error) {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer %s: %w", path, err)
	}

	tk.WithTruncation(&hf.TruncationParams{
		MaxLength: maxTokens,
		Strategy:  hf.LongestFirst,
		Stride:    0,
	})
	tk.WithPadding(nil)

	return &Tokenizer{tk: tk, maxTokens: maxTokens}, nil
}

// MaxTokens returns the truncation length
func (t *Tokenizer) MaxTokens() int {
	return t.maxTokens
}

// Encode tokenizes text with special tokens added
func (t *Tokenizer) Encode(text string) (*service.Encoding, error) {
	en, err := t.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("failed to encode text: %w", err)
	}
	if len(en.Ids) == 0 {
		return nil, errors.New("tokenizer produced no tokens")
	}

	return toEncoding(en.Ids, en.AttentionMask, t.maxTokens), nil
}

func toEncoding(ids, mask []int, maxTokens int) *service.Encoding {
	if len(ids) > maxTokens {
		ids = ids[:maxTokens]
	}
	enc := &service.Encoding{
		IDs:           make([]int64, len(ids)),
		AttentionMask: make([]int64, len(ids)),
	}
	for i, id := range ids {
		enc.IDs[i] = int64(id)
		enc.AttentionMask[i] = 1
		if i < len(mask) {
			enc.AttentionMask[i] = int64(mask[i])
		}
	}
	return enc
}
