// Package openopus implements the catalog provider on top of the Open Opus
// public API (https://openopus.org).
package openopus

import (
	"context"
	"expvar"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
	"github.com/oksasatya/opus-favorites/internal/domain/repository"
)

const (
	defaultBaseURL = "https://api.openopus.org"
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 4 << 20
)

var (
	requestsTotal = expvar.NewInt("catalog_requests_total")
	failuresTotal = expvar.NewInt("catalog_failures_total")
)

// Client performs one network round trip per call; there is no retry and no
// caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SearchComposers returns an empty slice when the catalog reports no match.
func (c *Client) SearchComposers(ctx context.Context, query string) ([]entity.Composer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.Composer{}, nil
	}
	var resp composerListResponse
	if err := c.get(ctx, "/composer/list/search/"+url.PathEscape(query)+".json", &resp); err != nil {
		return nil, err
	}
	if !resp.Status.Success {
		return []entity.Composer{}, nil
	}
	return composersToEntities(resp.Composers), nil
}

func (c *Client) ListWorks(ctx context.Context, composerID int64) (*entity.Composer, []entity.Work, error) {
	var resp workListResponse
	if err := c.get(ctx, fmt.Sprintf("/work/list/composer/%d/genre/all.json", composerID), &resp); err != nil {
		return nil, nil, err
	}
	if !resp.Status.Success || resp.Composer == nil {
		return nil, nil, repository.ErrNotFound
	}
	composer := resp.Composer.toEntity()
	works := make([]entity.Work, 0, len(resp.Works))
	for _, w := range resp.Works {
		works = append(works, w.toEntity())
	}
	return &composer, works, nil
}

func (c *Client) GetWorkDetail(ctx context.Context, workID int64) (*entity.WorkDetail, error) {
	var resp workDetailResponse
	if err := c.get(ctx, fmt.Sprintf("/work/detail/%d.json", workID), &resp); err != nil {
		return nil, err
	}
	if !resp.Status.Success || resp.Composer == nil || resp.Work == nil {
		return nil, repository.ErrNotFound
	}
	return &entity.WorkDetail{
		Composer: resp.Composer.toEntity(),
		Work:     resp.Work.toEntity(),
	}, nil
}

func (c *Client) ListComposersByEpoch(ctx context.Context, epoch string) ([]entity.Composer, error) {
	epoch = strings.TrimSpace(epoch)
	if epoch == "" {
		return []entity.Composer{}, nil
	}
	var resp composerListResponse
	if err := c.get(ctx, "/composer/list/epoch/"+url.PathEscape(epoch)+".json", &resp); err != nil {
		return nil, err
	}
	if !resp.Status.Success {
		return []entity.Composer{}, nil
	}
	return composersToEntities(resp.Composers), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	requestsTotal.Add(1)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return c.unavailable(path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.unavailable(path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.unavailable(path, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.unavailable(path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return c.unavailable(path, fmt.Errorf("decode: %w", err))
	}
	return nil
}

func (c *Client) unavailable(path string, err error) error {
	failuresTotal.Add(1)
	if c.logger != nil {
		c.logger.WithError(err).WithField("path", path).Warn("catalog request failed")
	}
	return fmt.Errorf("%w: %v", repository.ErrCatalogUnavailable, err)
}

var _ repository.CatalogProvider = (*Client)(nil)
