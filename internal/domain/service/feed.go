package service

import (
	"context"
	"time"
)

// FeedItem is one feed entry reduced to classifiable text
type FeedItem struct {
	Title     string
	Link      string
	Published *time.Time
	Text      string
}

// FeedFetcher downloads a syndication feed
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string, limit int) ([]FeedItem, error)
}
