package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// maxDocumentSize bounds side documents read over HTTP.
const maxDocumentSize = 1 << 20

// DocumentLoader reads the optional JSON side documents. A location is
// either a local path or an http(s) URL.
type DocumentLoader struct {
	httpClient *http.Client
}

func NewDocumentLoader(httpClient *http.Client) *DocumentLoader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DocumentLoader{
		httpClient: httpClient,
	}
}

// Read returns the raw bytes at location.
func (l *DocumentLoader) Read(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, fmt.Errorf("document location is empty")
	}

	if !isRemote(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", location, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", location, err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s returned status: %d", location, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// loadDocument decodes the JSON document at location. It always returns a
// usable value: fallback whenever the document cannot be read or parsed,
// together with the reason.
func loadDocument[T any](ctx context.Context, loader *DocumentLoader, location string, fallback T) (T, error) {
	data, err := loader.Read(ctx, location)
	if err != nil {
		return fallback, err
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return fallback, fmt.Errorf("failed to parse %s: %w", location, err)
	}
	return doc, nil
}
