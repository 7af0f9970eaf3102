package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoogleTranslator calls the public Google translate endpoint, one text per
// request. No API key is needed, which also means the endpoint is
// rate-limited and occasionally flaky; callers must expect errors.
type GoogleTranslator struct {
	baseURL    string
	httpClient *http.Client
}

// NewGoogleTranslator creates a client for the given translate endpoint.
func NewGoogleTranslator(baseURL string) *GoogleTranslator {
	return &GoogleTranslator{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *GoogleTranslator) Name() string {
	return "google"
}

// Translate translates a single text into the target language.
func (g *GoogleTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", targetLanguage)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate API error (status %d): %s", resp.StatusCode, string(body))
	}

	translated, err := parseGoogleResponse(body)
	if err != nil {
		return "", fmt.Errorf("parse translate response: %w", err)
	}
	return translated, nil
}

// parseGoogleResponse extracts the translated text from the positional JSON
// the gtx endpoint returns: [[["translated","source",...],...],...]
func parseGoogleResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty response")
	}

	var chunks []json.RawMessage
	if err := json.Unmarshal(payload[0], &chunks); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, chunk := range chunks {
		var fields []json.RawMessage
		if err := json.Unmarshal(chunk, &fields); err != nil || len(fields) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(fields[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no translation in response")
	}
	return sb.String(), nil
}
