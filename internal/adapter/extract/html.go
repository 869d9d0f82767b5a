package extract

import (
	"context"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// HTMLExtractor converts saved web pages to markdown text
type HTMLExtractor struct {
	converter *md.Converter
}

// NewHTMLExtractor creates a new HTMLExtractor
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{converter: md.NewConverter("", true, nil)}
}

// Extract converts the page to markdown and cleans it
func (e *HTMLExtractor) Extract(_ context.Context, data []byte) (string, error) {
	markdown, err := e.converter.ConvertString(string(data))
	if err != nil {
		return "", fmt.Errorf("%w: converting HTML to markdown: %v", ErrUnreadableDocument, err)
	}
	return CleanText(markdown), nil
}
