// Package feed fetches RSS, Atom and JSON feeds and turns their items into article text.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/service"
)

const userAgent = "news-classifier/1.0"

// Reader fetches feeds over HTTP
type Reader struct {
	client *http.Client
	html   service.Extractor
}

var _ service.FeedFetcher = (*Reader)(nil)

// NewReader creates a feed reader. html converts item bodies, which feeds usually ship as markup.
func NewReader(timeout time.Duration, html service.Extractor) *Reader {
	return &Reader{
		client: &http.Client{Timeout: timeout},
		html:   html,
	}
}

// Fetch downloads feedURL and returns up to limit items with non-empty text.
// A non-positive limit returns every item.
func (r *Reader) Fetch(ctx context.Context, feedURL string, limit int) ([]service.FeedItem, error) {
	// gofeed parsers keep state between calls
	parser := gofeed.NewParser()
	parser.Client = r.client
	parser.UserAgent = userAgent

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
	}

	if limit <= 0 || limit > len(feed.Items) {
		limit = len(feed.Items)
	}

	items := make([]service.FeedItem, 0, limit)
	for _, it := range feed.Items {
		if len(items) >= limit {
			break
		}

		text, err := r.itemText(ctx, it)
		if err != nil {
			return nil, err
		}
		if text == "" {
			continue
		}

		items = append(items, service.FeedItem{
			Title:     strings.TrimSpace(it.Title),
			Link:      it.Link,
			Published: it.PublishedParsed,
			Text:      text,
		})
	}

	return items, nil
}

// itemText joins the title with the longer of content and description
func (r *Reader) itemText(ctx context.Context, it *gofeed.Item) (string, error) {
	body := it.Description
	if len(it.Content) > len(body) {
		body = it.Content
	}

	var parts []string
	if title := strings.TrimSpace(it.Title); title != "" {
		parts = append(parts, title)
	}
	if strings.TrimSpace(body) != "" {
		text, err := r.html.Extract(ctx, []byte(body))
		if err != nil {
			return "", fmt.Errorf("failed to convert item %q: %w", it.Title, err)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
