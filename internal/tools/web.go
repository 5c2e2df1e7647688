package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

const webUserAgent = "Mozilla/5.0 (compatible; parlance/0.1)"

var reHTMLTag = regexp.MustCompile(`<[^>]*>`)

// WebFetchTool fetches a URL and extracts readable text content.
// Tool-level problems (bad URL, HTTP failure) are reported as result text so
// the model can react; the error return is reserved for infrastructure
// faults.
type WebFetchTool struct {
	maxChars   int
	httpClient *http.Client
}

// NewWebFetchTool creates a WebFetchTool. maxChars defaults to 50000.
func NewWebFetchTool(maxChars int) *WebFetchTool {
	if maxChars <= 0 {
		maxChars = 50000
	}
	return &WebFetchTool{
		maxChars:   maxChars,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (t *WebFetchTool) Name() string { return "web_fetch" }

func (t *WebFetchTool) Description() string {
	return "Fetch a URL and return its readable text content."
}

func (t *WebFetchTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"url": {
				"type": "string",
				"description": "URL to fetch (http or https)"
			},
			"maxChars": {
				"type": "integer",
				"description": "Truncate the extracted text to this many characters",
				"minimum": 100
			}
		},
		"required": ["url"]
	}`)
}

func (t *WebFetchTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	rawURL, _ := params["url"].(string)
	if rawURL == "" {
		return "Error: url is required", nil
	}
	if err := validateURL(rawURL); err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	maxChars := t.maxChars
	if mc, ok := params["maxChars"].(float64); ok && int(mc) > 0 {
		maxChars = int(mc)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	req.Header.Set("User-Agent", webUserAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	text := extractText(rawURL, resp.Header.Get("Content-Type"), body)
	if len(text) > maxChars {
		text = text[:maxChars] + "\n[truncated]"
	}
	return text, nil
}

// extractText picks an extraction strategy by content type: readability for
// HTML, pretty-printing for JSON, raw passthrough otherwise.
func extractText(rawURL, contentType string, body []byte) string {
	switch {
	case strings.Contains(contentType, "text/html"):
		parsed, _ := url.Parse(rawURL)
		article, err := readability.FromReader(bytes.NewReader(body), parsed)
		if err == nil {
			text := strings.TrimSpace(reHTMLTag.ReplaceAllString(article.Content, ""))
			if article.Title != "" {
				return article.Title + "\n\n" + text
			}
			return text
		}
		return strings.TrimSpace(reHTMLTag.ReplaceAllString(string(body), ""))
	case strings.Contains(contentType, "application/json"):
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			pretty, _ := json.MarshalIndent(v, "", "  ")
			return string(pretty)
		}
		return string(body)
	default:
		return string(body)
	}
}

// validateURL checks that rawURL is http(s) with a host.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("only http/https allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in URL")
	}
	return nil
}
