package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rssDocument(items ...string) string {
	body := ""
	for i, desc := range items {
		body += fmt.Sprintf(`<item><title>Article %d</title><description>%s</description></item>`, i+1, desc)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test</title>` + body + `</channel></rss>`
}

func serveRSS(t *testing.T, doc string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchCollectsSummariesInOrder(t *testing.T) {
	srv := serveRSS(t, rssDocument("Première dépêche.", "Deuxième dépêche."))

	f := NewFetcher([]string{srv.URL}, nil)
	docs := f.Fetch(context.Background(), 10)

	require.Len(t, docs, 2)
	assert.Equal(t, "Première dépêche.", docs[0])
	assert.Equal(t, "Deuxième dépêche.", docs[1])
}

func TestFetchStripsHTMLFromDescriptions(t *testing.T) {
	srv := serveRSS(t, rssDocument("&lt;p&gt;Une &lt;b&gt;annonce&lt;/b&gt; importante.&lt;/p&gt;"))

	f := NewFetcher([]string{srv.URL}, nil)
	docs := f.Fetch(context.Background(), 10)

	require.Len(t, docs, 1)
	assert.Equal(t, "Une annonce importante.", docs[0])
}

func TestFetchStopsAtMaxItems(t *testing.T) {
	srv := serveRSS(t, rssDocument("un.", "deux.", "trois.", "quatre."))

	f := NewFetcher([]string{srv.URL}, nil)
	docs := f.Fetch(context.Background(), 2)

	assert.Len(t, docs, 2)
}

func TestFailingEndpointDoesNotAbortRemaining(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := serveRSS(t, rssDocument("Toujours debout."))

	f := NewFetcher([]string{bad.URL, good.URL}, nil)
	docs := f.Fetch(context.Background(), 10)

	require.Len(t, docs, 1)
	assert.Equal(t, "Toujours debout.", docs[0])
}

func TestAllEndpointsFailingReturnsNoDocuments(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer bad.Close()

	f := NewFetcher([]string{bad.URL}, nil)

	assert.Empty(t, f.Fetch(context.Background(), 10))
}

func TestZeroMaxItemsYieldsNothing(t *testing.T) {
	srv := serveRSS(t, rssDocument("une.", "deux."))
	f := NewFetcher([]string{srv.URL}, nil)

	assert.Empty(t, f.Fetch(context.Background(), 0))
	assert.Empty(t, f.Fetch(context.Background(), -1))
}

func TestFullTextFetchesArePaced(t *testing.T) {
	const delay = 200 * time.Millisecond

	var (
		mu           sync.Mutex
		articleTimes []time.Time
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/article/") {
			mu.Lock()
			articleTimes = append(articleTimes, time.Now())
			mu.Unlock()
			fmt.Fprint(w, `<html><body><article><p>Un long texte d'article qui occupe
				plusieurs phrases pour que l'extraction ait de la matière. Encore une
				phrase ici, et une autre pour faire bonne mesure.</p></article></body></html>`)
			return
		}
		base := "http://" + r.Host
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test</title>
<item><title>Un</title><link>%s/article/1</link><description>résumé un.</description></item>
<item><title>Deux</title><link>%s/article/2</link><description>résumé deux.</description></item>
</channel></rss>`, base, base)
	}))
	defer srv.Close()

	f := NewFetcher([]string{srv.URL}, nil)
	f.FullText = true
	f.Delay = delay

	docs := f.Fetch(context.Background(), 10)

	require.Len(t, docs, 2)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, articleTimes, 2)
	gap := articleTimes[1].Sub(articleTimes[0])
	assert.GreaterOrEqual(t, gap, delay,
		"successive article downloads must be separated by the configured pause")
}

func TestNilFeedListUsesDefaults(t *testing.T) {
	f := NewFetcher(nil, nil)
	assert.Equal(t, DefaultFeeds, f.Feeds)
}
