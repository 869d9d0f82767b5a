// Package extract turns uploaded documents into plain article text.
package extract

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/service"
)

var (
	ErrUnreadableDocument = service.ErrUnreadableDocument
	ErrUnsupportedFormat  = service.ErrUnsupportedFormat
)

// Registry selects an Extractor by file extension or MIME type
type Registry struct {
	byExt  map[string]service.Extractor
	byMIME map[string]service.Extractor
}

var _ service.ExtractorRegistry = (*Registry)(nil)

// NewRegistry creates a registry with the PDF, plain text and HTML extractors
func NewRegistry() *Registry {
	r := &Registry{
		byExt:  make(map[string]service.Extractor),
		byMIME: make(map[string]service.Extractor),
	}

	pdf := NewPDFExtractor()
	text := NewTextExtractor()
	html := NewHTMLExtractor()

	r.Register(pdf, []string{".pdf"}, []string{"application/pdf"})
	r.Register(text, []string{".txt"}, []string{"text/plain"})
	r.Register(html, []string{".html", ".htm"}, []string{"text/html"})

	return r
}

// Register maps extensions and MIME types to an extractor
func (r *Registry) Register(e service.Extractor, exts, mimeTypes []string) {
	for _, ext := range exts {
		r.byExt[strings.ToLower(ext)] = e
	}
	for _, mt := range mimeTypes {
		r.byMIME[strings.ToLower(mt)] = e
	}
}

// Supports reports whether filename has a registered extension
func (r *Registry) Supports(filename string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extensions lists the registered extensions
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

// For returns the extractor for a file. The extension wins over the content type,
// since browsers often send application/octet-stream.
func (r *Registry) For(filename, contentType string) (service.Extractor, error) {
	if e, ok := r.byExt[strings.ToLower(filepath.Ext(filename))]; ok {
		return e, nil
	}

	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			if e, ok := r.byMIME[strings.ToLower(mt)]; ok {
				return e, nil
			}
		}
	}

	return nil, ErrUnsupportedFormat
}
