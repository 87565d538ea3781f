package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"pedidos_directos/internal/models"
)

// ErrBusinessNotFound means no catalog document exists for the slug.
var ErrBusinessNotFound = errors.New("catalog: business not found")

// DefaultSlug is used when the visitor did not select a business.
const DefaultSlug = "demo"

// NormalizeSlug lower-cases and trims a raw business selector,
// falling back to DefaultSlug when nothing is left.
func NormalizeSlug(raw string) string {
	slug := strings.ToLower(strings.TrimSpace(strings.Trim(raw, "/")))
	if slug == "" {
		return DefaultSlug
	}
	return slug
}

// Loader fetches the catalog document for a business slug.
type Loader interface {
	Load(ctx context.Context, slug string) (models.Business, error)
}

// HTTPLoader fetches <base>/<slug>.json with a per-request
// cache-buster so edits to the document show up on the next load.
type HTTPLoader struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewHTTPLoader builds a loader rooted at baseURL.
func NewHTTPLoader(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPLoader{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Load fetches and decodes the business document for the slug.
func (l *HTTPLoader) Load(ctx context.Context, slug string) (models.Business, error) {
	slug = NormalizeSlug(slug)

	docURL := fmt.Sprintf("%s/%s.json?v=%d", l.BaseURL, url.PathEscape(slug), l.now().UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return models.Business{}, fmt.Errorf("failed to create catalog request: %w", err)
	}

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return models.Business{}, fmt.Errorf("failed to fetch catalog for %q: %w", slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.Business{}, fmt.Errorf("%w: %s", ErrBusinessNotFound, slug)
	}
	if resp.StatusCode != http.StatusOK {
		return models.Business{}, fmt.Errorf("catalog fetch for %q returned status %d", slug, resp.StatusCode)
	}

	biz, err := Decode(resp.Body)
	if err != nil {
		return models.Business{}, fmt.Errorf("failed to decode catalog for %q: %w", slug, err)
	}

	l.logger.Debug("catalog loaded",
		zap.String("slug", slug),
		zap.String("business", biz.Name),
		zap.Int("items", len(biz.Items)))

	return biz, nil
}

// Decode parses a business document and applies catalog defaults.
func Decode(r io.Reader) (models.Business, error) {
	var biz models.Business
	if err := json.NewDecoder(r).Decode(&biz); err != nil {
		return models.Business{}, err
	}
	biz.Normalize()
	return biz, nil
}
