// Package pagemeta extracts Open Graph metadata from article pages.
package pagemeta

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"
)

// Enrichment failures never block post creation, so callers treat every
// error from Scrape as advisory.

// Meta holds the subset of Open Graph tags the creation pipeline uses.
type Meta struct {
	Image       string
	Description string
}

// maxBodyBytes caps how much of an article page is read. OG tags live in
// the document head.
const maxBodyBytes = 512 * 1024

var (
	ogImageRe = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']+)["']`)
	ogDescRe  = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`)

	// Some pages emit content before property.
	ogImageRevRe = regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']og:image["']`)
	ogDescRevRe  = regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']og:description["']`)
)

// Scraper fetches article pages and pulls og:image / og:description.
type Scraper struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewScraper creates a Scraper with the given per-page timeout.
func NewScraper(timeout time.Duration, logger *slog.Logger) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "pagemeta"),
	}
}

// Scrape fetches pageURL and extracts OG metadata. Missing tags leave the
// corresponding Meta fields empty without an error.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (Meta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Meta{}, fmt.Errorf("pagemeta: create request: %w", err)
	}
	req.Header.Set("User-Agent", "pollboard-autopilot/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Meta{}, fmt.Errorf("pagemeta: fetch %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Meta{}, fmt.Errorf("pagemeta: unexpected status %d for %q", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Meta{}, fmt.Errorf("pagemeta: read body: %w", err)
	}

	meta := extract(string(body))

	s.log.DebugContext(ctx, "page metadata scraped",
		slog.String("url", pageURL),
		slog.Bool("has_image", meta.Image != ""),
		slog.Bool("has_description", meta.Description != ""),
	)

	return meta, nil
}

func extract(html string) Meta {
	var meta Meta
	if m := ogImageRe.FindStringSubmatch(html); m != nil {
		meta.Image = m[1]
	} else if m := ogImageRevRe.FindStringSubmatch(html); m != nil {
		meta.Image = m[1]
	}
	if m := ogDescRe.FindStringSubmatch(html); m != nil {
		meta.Description = m[1]
	} else if m := ogDescRevRe.FindStringSubmatch(html); m != nil {
		meta.Description = m[1]
	}
	return meta
}
