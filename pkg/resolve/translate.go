package resolve

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TranslateURL is the default LibreTranslate-style endpoint.
const TranslateURL = "https://libretranslate.com/translate"

// Translator turns a resolved French definition into English. Translation
// is strictly optional enrichment: every failure mode collapses to the
// empty string.
type Translator struct {
	Endpoint string
	Client   *http.Client
	Log      *slog.Logger
}

func NewTranslator(endpoint string, timeout time.Duration, logger *slog.Logger) *Translator {
	if endpoint == "" {
		endpoint = TranslateURL
	}
	return &Translator{Endpoint: endpoint, Client: newHTTPClient(timeout), Log: logger}
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate posts {q, source=fr, target=en} as form data and returns the
// translatedText field, or "" on any failure.
func (t *Translator) Translate(ctx context.Context, text string) string {
	form := url.Values{}
	form.Set("q", text)
	form.Set("source", "fr")
	form.Set("target", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.Client.Do(req)
	if err != nil {
		t.debug("translate request failed", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.debug("translate non-OK status", nil)
		return ""
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.debug("translate decode failed", err)
		return ""
	}
	return parsed.TranslatedText
}

func (t *Translator) debug(msg string, err error) {
	if t.Log == nil {
		return
	}
	if err != nil {
		t.Log.Debug(msg, slog.String("error", err.Error()))
		return
	}
	t.Log.Debug(msg)
}
