package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// WiktionaryAPIURL is the MediaWiki API endpoint for plain-text extracts.
const WiktionaryAPIURL = "https://fr.wiktionary.org/w/api.php"

// ExampleResolver finds a usage sentence for a word. Locally harvested
// corpus sentences take priority over the remote extract lookup, and a
// synthetic default guarantees the resolver always produces something.
type ExampleResolver struct {
	APIURL string
	Client *http.Client
	Log    *slog.Logger
}

func NewExampleResolver(apiURL string, timeout time.Duration, logger *slog.Logger) *ExampleResolver {
	if apiURL == "" {
		apiURL = WiktionaryAPIURL
	}
	return &ExampleResolver{APIURL: apiURL, Client: newHTTPClient(timeout), Log: logger}
}

// Resolve returns the first corpus sentence containing word as a
// case-insensitive substring, then the first sentence of the word's wiki
// extract, then a synthetic default naming the word. It never fails.
func (r *ExampleResolver) Resolve(ctx context.Context, word string, sentences []string) string {
	lower := strings.ToLower(word)
	for _, s := range sentences {
		if strings.Contains(strings.ToLower(s), lower) {
			return strings.TrimSpace(s)
		}
	}

	if ext, err := r.fetchExtract(ctx, word); err != nil {
		if r.Log != nil {
			r.Log.Debug("wiki extract lookup failed",
				slog.String("word", word), slog.String("error", err.Error()))
		}
	} else if ext != "" {
		return ext
	}

	return fmt.Sprintf("Exemple par défaut : '%s' est un mot avancé à connaître.", word)
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// fetchExtract asks the wiki API for a one-sentence plain-text extract and
// returns its text up to the first period, with the period restored.
func (r *ExampleResolver) fetchExtract(ctx context.Context, word string) (string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("titles", word)
	q.Set("prop", "extracts")
	q.Set("exsentences", "1")
	q.Set("explaintext", "1")
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.APIURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("extract: create request: %w", err)
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("extract: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extract: unexpected status %d", resp.StatusCode)
	}

	var parsed extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("extract: decode json: %w", err)
	}
	for _, page := range parsed.Query.Pages {
		first, _, _ := strings.Cut(page.Extract, ".")
		if first = strings.TrimSpace(first); first != "" {
			return first + ".", nil
		}
	}
	return "", nil
}
