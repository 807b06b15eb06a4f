package feed

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Example News</title>
  <item>
    <title>First headline</title>
    <link>https://news.example.com/1</link>
    <description>First summary</description>
  </item>
  <item>
    <title>No link item</title>
    <description>Should be dropped</description>
  </item>
  <item>
    <title>Second headline</title>
    <link>https://news.example.com/2</link>
    <description>Second summary</description>
    <enclosure url="https://news.example.com/2.jpg" type="image/jpeg" length="1"/>
  </item>
  <item>
    <title>Third headline</title>
    <link>https://news.example.com/3</link>
  </item>
</channel>
</rss>`

func newTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestReader_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	reader := NewReader(5*time.Second, 20, newTestLogger())

	items, err := reader.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "First headline", items[0].Title)
	assert.Equal(t, "https://news.example.com/1", items[0].Link)
	assert.Equal(t, "First summary", items[0].Summary)
	assert.Equal(t, "https://news.example.com/2.jpg", items[1].ImageURL)
}

func TestReader_Fetch_ItemLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	reader := NewReader(5*time.Second, 2, newTestLogger())

	items, err := reader.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestReader_Fetch_BadFeed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	reader := NewReader(5*time.Second, 20, newTestLogger())

	_, err := reader.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
