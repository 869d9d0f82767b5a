package service

import (
	"context"
	"errors"
)

var (
	// ErrUnreadableDocument is returned when a document cannot be parsed
	ErrUnreadableDocument = errors.New("unreadable document")
	// ErrUnsupportedFormat is returned when no extractor handles a document type
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Extractor turns document bytes into article text
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorRegistry picks the extractor for an uploaded file
type ExtractorRegistry interface {
	For(filename, contentType string) (Extractor, error)
}
