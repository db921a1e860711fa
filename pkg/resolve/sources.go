package resolve

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DictAPIBaseURL is the structured dictionary API (source A).
	DictAPIBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/fr"
	// WiktionaryBaseURL serves raw wiki markup per page (source B).
	WiktionaryBaseURL = "https://fr.wiktionary.org/wiki"
	// TatoebaBaseURL is the example-sentence search service (source C).
	TatoebaBaseURL = "https://tatoeba.org/en/api_v0"
)

// DictAPISource queries a dictionaryapi.dev-style endpoint. Meanings are
// walked in order and only each meaning's leading definition counts; a
// meaning whose leading definition is blank is passed over entirely.
type DictAPISource struct {
	BaseURL string
	Client  *http.Client
}

// NewDictAPISource creates the source with a custom base URL (tests point
// it at a stub server) and the shared per-call timeout.
func NewDictAPISource(baseURL string, timeout time.Duration) *DictAPISource {
	if baseURL == "" {
		baseURL = DictAPIBaseURL
	}
	return &DictAPISource{BaseURL: baseURL, Client: newHTTPClient(timeout)}
}

func (s *DictAPISource) Name() string { return "dictapi" }

// apiEntry mirrors the dictionary API response shape. The API returns an
// array of entries, each holding meanings grouped by part of speech.
type apiEntry struct {
	Meanings []apiMeaning `json:"meanings"`
}

type apiMeaning struct {
	Definitions []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string `json:"definition"`
}

func (s *DictAPISource) Lookup(ctx context.Context, word string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/"+url.PathEscape(word), nil)
	if err != nil {
		return "", fmt.Errorf("dictapi: create request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("dictapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dictapi: unexpected status %d", resp.StatusCode)
	}

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", fmt.Errorf("dictapi: decode json: %w", err)
	}
	if len(entries) == 0 {
		return "", nil
	}
	for _, meaning := range entries[0].Meanings {
		if len(meaning.Definitions) == 0 {
			continue
		}
		if d := strings.TrimSpace(meaning.Definitions[0].Definition); d != "" {
			return d, nil
		}
	}
	return "", nil
}

// WiktionarySource fetches a page's raw wiki markup and scans it for
// definition lines: a single leading definition marker, sub-points and
// etymology lines excluded.
type WiktionarySource struct {
	BaseURL string
	Client  *http.Client
}

func NewWiktionarySource(baseURL string, timeout time.Duration) *WiktionarySource {
	if baseURL == "" {
		baseURL = WiktionaryBaseURL
	}
	return &WiktionarySource{BaseURL: baseURL, Client: newHTTPClient(timeout)}
}

func (s *WiktionarySource) Name() string { return "wiktionary" }

func (s *WiktionarySource) Lookup(ctx context.Context, word string) (string, error) {
	reqURL := s.BaseURL + "/" + url.PathEscape(word) + "?action=raw&lang=fr"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("wiktionary: create request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wiktionary: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wiktionary: unexpected status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") || strings.HasPrefix(line, "##") {
			continue
		}
		if strings.Contains(strings.ToLower(line), "étymologie") {
			continue
		}
		clean := cleanWikiMarkup(strings.TrimLeft(line, "#"))
		if clean == "" {
			continue
		}
		if def := firstClause(clean); def != "" {
			return def, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("wiktionary: read body: %w", err)
	}
	return "", nil
}

// TatoebaSource queries a sentence-search service and returns the first
// hit's text. A sentence is a weak definition, which is why this sits
// late in the chain.
type TatoebaSource struct {
	BaseURL string
	Client  *http.Client
}

func NewTatoebaSource(baseURL string, timeout time.Duration) *TatoebaSource {
	if baseURL == "" {
		baseURL = TatoebaBaseURL
	}
	return &TatoebaSource{BaseURL: baseURL, Client: newHTTPClient(timeout)}
}

func (s *TatoebaSource) Name() string { return "tatoeba" }

type tatoebaResponse struct {
	Results []struct {
		Text string `json:"text"`
	} `json:"results"`
}

func (s *TatoebaSource) Lookup(ctx context.Context, word string) (string, error) {
	reqURL := s.BaseURL + "/search?from=fra&query=" + url.QueryEscape(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("tatoeba: create request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tatoeba: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tatoeba: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("tatoeba: read body: %w", err)
	}
	var parsed tatoebaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("tatoeba: decode json: %w", err)
	}
	if len(parsed.Results) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parsed.Results[0].Text), nil
}

// LocalGlossary is the in-process fallback at the end of the chain. It
// never errors; an absent word is simply an empty definition.
type LocalGlossary map[string]string

func (LocalGlossary) Name() string { return "local" }

func (g LocalGlossary) Lookup(_ context.Context, word string) (string, error) {
	return g[strings.ToLower(word)], nil
}
