// Package feeds harvests French news text from a list of RSS endpoints.
package feeds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
)

// DefaultFeeds lists the French-language news feeds harvested by default.
var DefaultFeeds = []string{
	"https://www.france24.com/fr/rss",
	"https://www.lemonde.fr/rss/une.xml",
	"https://www.francetvinfo.fr/titres.rss",
	"https://www.radiofrance.fr/rss/arts-et-culture",
	"https://www.courrierinternational.com/feed/all/rss.xml",
	"https://www.rfi.fr/fr/rss",
	"https://www.sciencesetavenir.fr/rss.xml",
}

// maxBodySize caps full-article downloads so an untrusted page cannot
// exhaust memory.
const maxBodySize = 10 * 1024 * 1024

// Fetcher collects plain-text snippets from an ordered feed list. Errors
// on one endpoint are logged and the remaining endpoints still run.
type Fetcher struct {
	Feeds  []string
	Client *http.Client

	// FullText fetches each item's linked article and extracts its
	// readable text, falling back to the summary on failure.
	FullText bool

	// Delay paces successive article fetches in full-text mode so
	// third-party servers aren't hammered.
	Delay time.Duration

	Log *slog.Logger

	parser *gofeed.Parser
}

// NewFetcher builds a Fetcher over the given endpoints (nil means
// DefaultFeeds) with a browser-friendly HTTP client.
func NewFetcher(feedURLs []string, logger *slog.Logger) *Fetcher {
	if len(feedURLs) == 0 {
		feedURLs = DefaultFeeds
	}
	client := &http.Client{Timeout: 30 * time.Second}
	parser := gofeed.NewParser()
	parser.Client = client
	return &Fetcher{
		Feeds:  feedURLs,
		Client: client,
		Log:    logger,
		parser: parser,
	}
}

// Fetch walks the feed list in order and returns up to maxItems text
// snippets (item summaries, or full article text in full-text mode).
// A maxItems of zero or less yields nothing.
func (f *Fetcher) Fetch(ctx context.Context, maxItems int) []string {
	if maxItems <= 0 {
		return nil
	}
	var docs []string
	for _, feedURL := range f.Feeds {
		feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			if f.Log != nil {
				f.Log.Warn("feed fetch failed",
					slog.String("feed", feedURL), slog.String("error", err.Error()))
			}
			continue
		}
		for _, item := range feed.Items {
			text := f.itemText(ctx, item)
			if text == "" {
				continue
			}
			docs = append(docs, text)
			if len(docs) >= maxItems {
				return docs
			}
		}
	}
	return docs
}

// itemText prefers the item summary/description; in full-text mode it
// first tries the linked article. Every article fetch, successful or not,
// is followed by the configured pause before the next item proceeds.
func (f *Fetcher) itemText(ctx context.Context, item *gofeed.Item) string {
	if f.FullText && item.Link != "" {
		text, err := f.fetchArticle(ctx, item.Link)
		if err != nil && f.Log != nil {
			f.Log.Warn("article fetch failed, falling back to summary",
				slog.String("url", item.Link), slog.String("error", err.Error()))
		}
		if f.Delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(f.Delay):
			}
		}
		if err == nil && text != "" {
			return text
		}
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}
	return stripHTML(summary)
}

// fetchArticle downloads the linked page and extracts its readable text.
func (f *Fetcher) fetchArticle(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	// Some news sites reject the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) >= maxBodySize {
		return "", fmt.Errorf("body exceeds %d bytes", maxBodySize)
	}

	pageURL, _ := url.Parse(link)
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("extract article: %w", err)
	}
	return strings.TrimSpace(article.TextContent), nil
}

// stripHTML flattens an HTML fragment (RSS descriptions routinely carry
// markup) to its text content.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}
