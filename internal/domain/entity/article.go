package entity

import (
	"strings"
	"unicode/utf8"
)

// PreviewLength is the number of characters shown in an article preview
const PreviewLength = 1000

// Source identifies where article text came from
type Source string

const (
	SourcePaste  Source = "paste"
	SourceUpload Source = "upload"
	SourceSample Source = "sample"
	SourceFeed   Source = "feed"
)

// IsValid reports whether s is a known source
func (s Source) IsValid() bool {
	switch s {
	case SourcePaste, SourceUpload, SourceSample, SourceFeed:
		return true
	}
	return false
}

// Article is raw article text together with its provenance
type Article struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
	// Name is the file name, sample name or feed item link, empty for pasted text
	Name string `json:"name,omitempty"`
}

// NewArticle creates an Article
func NewArticle(text string, source Source, name string) *Article {
	return &Article{Text: text, Source: source, Name: name}
}

// IsBlank reports whether the article has no non-whitespace content
func (a *Article) IsBlank() bool {
	return strings.TrimSpace(a.Text) == ""
}

// WordCount returns the number of whitespace-delimited words
func (a *Article) WordCount() int {
	return len(strings.Fields(a.Text))
}

// CharCount returns the number of characters
func (a *Article) CharCount() int {
	return utf8.RuneCountInString(a.Text)
}

// Preview returns the first PreviewLength characters, with "..." appended when truncated
func (a *Article) Preview() string {
	if a.CharCount() <= PreviewLength {
		return a.Text
	}
	runes := []rune(a.Text)
	return string(runes[:PreviewLength]) + "..."
}
