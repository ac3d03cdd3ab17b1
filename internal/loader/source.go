package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source yields the raw bytes of the daily temperature file.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// NewSource returns an HTTPSource for http(s) URLs and a FileSource otherwise.
func NewSource(location string, timeout time.Duration) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, timeout)
	}
	return FileSource{Path: location}
}

// FileSource reads from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}

func (s FileSource) Name() string { return s.Path }

// HTTPSource fetches the file with a single GET. There is no retry.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource creates a source with a bounded HTTP client.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *HTTPSource) Name() string { return s.url }
