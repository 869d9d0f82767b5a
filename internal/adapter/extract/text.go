package extract

import (
	"context"
	"strings"
	"unicode/utf8"
)

// TextExtractor decodes plain text files
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract decodes data as UTF-8. Invalid sequences are replaced and a byte order mark is dropped.
func (e *TextExtractor) Extract(_ context.Context, data []byte) (string, error) {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "\uFFFD")
	}
	return strings.TrimPrefix(text, "\uFEFF"), nil
}
