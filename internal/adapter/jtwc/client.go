package jtwc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/storm-data-cyclone-service/internal/domain"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/observability"
	"github.com/mmcdole/gofeed"
)

// maxBodyBytes bounds feed and bulletin downloads; real documents are a few KB.
const maxBodyBytes = 4 << 20

// Client reads the JTWC RSS feed and warning bulletins over HTTP.
// It implements domain.FeedSource and domain.BulletinFetcher.
type Client struct {
	feedURL    string
	httpClient *http.Client
	parser     *gofeed.Parser
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a JTWC client for the given feed endpoint.
func NewClient(feedURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		parser:  gofeed.NewParser(),
		metrics: metrics,
		logger:  logger,
	}
}

// Items returns the description of every feed item. An empty or
// unrecognizable feed document yields no items rather than an error.
func (c *Client) Items(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, c.feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		c.logger.Warn("feed document is empty", "url", c.feedURL)
		return nil, nil
	}

	feed, err := c.parser.ParseString(body)
	if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
		c.logger.Warn("feed document is not RSS or Atom", "url", c.feedURL)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		desc := item.Description
		if desc == "" {
			desc = item.Content
		}
		items = append(items, desc)
	}
	return items, nil
}

// FetchBulletin downloads the warning bulletin linked by the header.
func (c *Client) FetchBulletin(ctx context.Context, header domain.CycloneHeader) (string, error) {
	start := time.Now()
	text, err := c.get(ctx, header.BulletinLink)
	c.metrics.BulletinFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.BulletinFetches.WithLabelValues("error").Inc()
		return "", fmt.Errorf("fetch bulletin for %s: %w", header.Code, err)
	}
	c.metrics.BulletinFetches.WithLabelValues("success").Inc()
	return text, nil
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("get %s: status %d: %s", url, resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(data), nil
}
