package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/i474232898/balloon-playback/internal/common"
)

// DefaultURLTemplate is the public treasure feed, one document per hour label.
const DefaultURLTemplate = "https://a.windbornesystems.com/treasure/%s.json"

// maxDocumentBytes caps a single hourly document.
const maxDocumentBytes = 32 << 20

// HTTPSource fetches hourly documents over HTTP.
type HTTPSource struct {
	urlTemplate string
	httpCfg     common.HTTPClientConfig
}

// NewHTTPSource creates a source that formats the hour label into urlTemplate.
// Documents are requested once; there is no retry and no circuit breaker.
func NewHTTPSource(client *http.Client, urlTemplate string) *HTTPSource {
	if urlTemplate == "" {
		urlTemplate = DefaultURLTemplate
	}
	return &HTTPSource{
		urlTemplate: urlTemplate,
		httpCfg: common.HTTPClientConfig{
			Client: client,
		},
	}
}

// URL returns the document location for an hour label.
func (s *HTTPSource) URL(hour string) string {
	if strings.Contains(s.urlTemplate, "%s") {
		return fmt.Sprintf(s.urlTemplate, hour)
	}
	return strings.TrimRight(s.urlTemplate, "/") + "/" + hour + ".json"
}

// Fetch implements balloon.Source. The body is returned whatever its
// Content-Type; deciding whether it is a snapshot is left to the parser.
func (s *HTTPSource) Fetch(ctx context.Context, hour string) ([]byte, error) {
	u := s.URL(hour)

	resp, err := common.DoRequest(ctx, s.httpCfg, nil, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}
	return body, nil
}
