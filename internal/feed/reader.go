// Package feed fetches and normalizes RSS/Atom source feeds.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// Item is one normalized feed entry. Only fields the creation pipeline
// consumes are carried.
type Item struct {
	Title    string
	Link     string
	Summary  string
	ImageURL string
}

// Reader fetches RSS and Atom feeds.
type Reader struct {
	parser    *gofeed.Parser
	timeout   time.Duration
	itemLimit int
	log       *slog.Logger
}

// NewReader creates a Reader. itemLimit caps how many entries a single feed
// contributes per fetch.
func NewReader(timeout time.Duration, itemLimit int, logger *slog.Logger) *Reader {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = "pollboard-autopilot/1.0"

	return &Reader{
		parser:    parser,
		timeout:   timeout,
		itemLimit: itemLimit,
		log:       logger.With("adapter", "feed"),
	}
}

// Fetch downloads and parses one feed URL. Items missing a link are dropped;
// the rest are returned in feed order, capped at the configured limit.
func (r *Reader) Fetch(ctx context.Context, feedURL string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	parsed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch %q: %w", feedURL, err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it.Link == "" {
			continue
		}
		items = append(items, Item{
			Title:    it.Title,
			Link:     it.Link,
			Summary:  it.Description,
			ImageURL: itemImage(it),
		})
		if len(items) >= r.itemLimit {
			break
		}
	}

	r.log.DebugContext(ctx, "feed fetched",
		slog.String("url", feedURL),
		slog.Int("items", len(items)),
	)

	return items, nil
}

// itemImage picks the best available image reference from a feed item.
func itemImage(it *gofeed.Item) string {
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}
	for _, enc := range it.Enclosures {
		if enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}
