package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Source delivers the raw feed text. Implementations must be safe to
// call once; nothing retries a failed fetch. The context is accepted
// for forward compatibility even though no current caller cancels.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// HTTPSource fetches the feed from a spreadsheet-export style endpoint.
// Every fetch appends a fresh Unix-millisecond "ts" query parameter so
// no browser, proxy, or CDN layer can serve a stale export. The client
// carries no timeout: a hung feed is tolerated, not raced.
type HTTPSource struct {
	client *http.Client
	rawURL string
	now    func() time.Time
}

// NewHTTPSource returns a source for the given feed URL. The URL may
// already carry query parameters; the cache-buster is merged in.
func NewHTTPSource(rawURL string) *HTTPSource {
	return &HTTPSource{
		client: &http.Client{},
		rawURL: rawURL,
		now:    time.Now,
	}
}

// Fetch performs one GET and returns the response body as text.
// Any transport problem or a non-2xx status is reported as an error;
// the caller decides how to degrade.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	u, err := url.Parse(s.rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid feed URL %q: %w", s.rawURL, err)
	}
	q := u.Query()
	q.Set("ts", strconv.FormatInt(s.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("feed responded %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read feed body: %w", err)
	}
	return string(body), nil
}

// FileSource reads the feed from a local CSV file. It exists for feed
// authoring: point the gallery at a file, edit, reload.
type FileSource struct {
	Path string
}

// Fetch reads the whole file.
func (s FileSource) Fetch(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read feed file: %w", err)
	}
	return string(b), nil
}
