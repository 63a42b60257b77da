package fetch

import (
	"context"
	"fmt"
	"net/http"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/matthewmueller/splitmd"
)

// Markdown fetches url and converts the response body from HTML to markdown,
// returning it as the document to split.
func Markdown(ctx context.Context, hc *http.Client, url string) (splitmd.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: failed to create request: %w", err)
	}

	res, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("fetch: unexpected status %d fetching %s", res.StatusCode, url)
	}

	markdown, err := htmltomarkdown.ConvertReader(res.Body)
	if err != nil {
		return "", fmt.Errorf("fetch: failed to convert HTML to markdown: %w", err)
	}

	return splitmd.Document(markdown), nil
}
