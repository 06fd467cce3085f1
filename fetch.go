package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bluesky-social/indigo/pkg/robusthttp"
	lru "github.com/hashicorp/golang-lru/v2"
)

const maxPageSize = 16 << 20

var ErrPageTooLarge = errors.New("page too large")

// PageClient fetches comment pages over HTTP, keeping recently fetched
// pages in memory.
type PageClient struct {
	httpc     *http.Client
	logger    *slog.Logger
	userAgent string
	cache     *lru.Cache[string, []byte]
	maxBytes  int64
}

func NewPageClient(userAgent string, cacheSize int, logger *slog.Logger) (*PageClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "fetch")

	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("error creating page cache: %w", err)
	}

	return &PageClient{
		httpc:     robusthttp.NewClient(),
		logger:    logger,
		userAgent: userAgent,
		cache:     cache,
		maxBytes:  maxPageSize,
	}, nil
}

func (c *PageClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	if b, ok := c.cache.Get(url); ok {
		c.logger.Debug("page cache hit", "url", url)
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("accept", "text/html")
	if c.userAgent != "" {
		req.Header.Set("user-agent", c.userAgent)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrPageTooLarge, url, c.maxBytes)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	c.logger.Info("fetched page", "url", url, "bytes", len(body))
	c.cache.Add(url, body)
	return body, nil
}
