// Package registry fetches repository tag listings from Docker Hub.
//
// The public Docker Hub tags API requires no authentication for public
// repositories but is paginated and occasionally slow or unreachable on a
// given edge, so every page request is raced across multiple base routes
// and later pages are fetched concurrently in bounded batches.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/gamecrate/gamecrate/internal/models"
)

const (
	// DefaultCacheTTL is the default TTL for cached tag listings.
	DefaultCacheTTL = time.Hour

	// DefaultPageSize is the Docker Hub maximum page size.
	DefaultPageSize = 100

	// DefaultRateLimit is requests per minute against the tags API.
	DefaultRateLimit = 30

	// RouteTimeout bounds a single attempt against one base route.
	RouteTimeout = 8 * time.Second

	// MaxPageConcurrency limits parallel page fetches after page one.
	MaxPageConcurrency = 5
)

// DefaultRoutes are the Docker Hub endpoints raced for every page. Both
// serve the same v2 repository API.
var DefaultRoutes = []string{
	"https://hub.docker.com",
	"https://registry.hub.docker.com",
}

// tagsPage is the wire shape of one Docker Hub tags response page.
type tagsPage struct {
	Count   int    `json:"count"`
	Next    string `json:"next"`
	Results []struct {
		Name        string     `json:"name"`
		FullSize    int64      `json:"full_size"`
		LastUpdated *time.Time `json:"last_updated"`
		Images      []struct {
			Size int64 `json:"size"`
		} `json:"images"`
	} `json:"results"`
}

// FetchResult contains the outcome of a full tag listing fetch. Failed
// pages after the first are recorded rather than failing the fetch.
type FetchResult struct {
	Tags        []models.RemoteTag
	TotalCount  int
	Pages       int
	FailedPages []int
	Errors      []error
	Duration    time.Duration
}

// Partial reports whether some pages could not be fetched.
func (r *FetchResult) Partial() bool {
	return len(r.FailedPages) > 0
}

// ClientConfig holds configuration for the registry client.
type ClientConfig struct {
	Owner     string
	Repo      string
	Routes    []string
	PageSize  int
	RateLimit int // requests per minute
	CacheTTL  time.Duration
}

// DefaultClientConfig returns sensible defaults for the given repository.
func DefaultClientConfig(owner, repo string) ClientConfig {
	return ClientConfig{
		Owner:     owner,
		Repo:      repo,
		Routes:    DefaultRoutes,
		PageSize:  DefaultPageSize,
		RateLimit: DefaultRateLimit,
		CacheTTL:  DefaultCacheTTL,
	}
}

// Client fetches tag listings from Docker Hub with rate limiting, route
// racing, and response caching.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	cache   *ResponseCache
	cfg     ClientConfig
	mu      sync.RWMutex

	requestCount int
	cacheHits    int
	cacheMisses  int
}

// NewClient creates a registry client for the configured repository.
func NewClient(cfg ClientConfig) *Client {
	if len(cfg.Routes) == 0 {
		cfg.Routes = DefaultRoutes
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}

	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimit)), cfg.RateLimit)

	return &Client{
		http:    &http.Client{},
		limiter: limiter,
		cache:   NewResponseCache(cfg.CacheTTL),
		cfg:     cfg,
	}
}

// Repository returns the owner/repo string this client is bound to.
func (c *Client) Repository() string {
	return fmt.Sprintf("%s/%s", c.cfg.Owner, c.cfg.Repo)
}

// FetchAllTags fetches the complete tag listing. Page one is fetched
// first to learn the total count, then the remaining pages are fetched
// concurrently in batches. An error is returned only when page one is
// unreachable on every route; later page failures are recorded in the
// result so the caller can distinguish a partial listing from an empty
// repository.
func (c *Client) FetchAllTags(ctx context.Context) (*FetchResult, error) {
	start := time.Now()

	cacheKey := fmt.Sprintf("tags:%s/%s", c.cfg.Owner, c.cfg.Repo)
	if cached, ok := c.cache.Get(cacheKey); ok {
		c.mu.Lock()
		c.cacheHits++
		c.mu.Unlock()
		return cached.(*FetchResult), nil
	}
	c.mu.Lock()
	c.cacheMisses++
	c.mu.Unlock()

	result := &FetchResult{}

	first, err := c.fetchPage(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch tags page 1: %w", err)
	}

	result.TotalCount = first.Count
	result.Tags = append(result.Tags, pageTags(first)...)

	totalPages := 1
	if c.cfg.PageSize > 0 && first.Count > 0 {
		totalPages = (first.Count + c.cfg.PageSize - 1) / c.cfg.PageSize
	}
	result.Pages = totalPages

	if totalPages > 1 {
		c.fetchRemainingPages(ctx, totalPages, result)
	}

	// Keep the listing deterministic regardless of page arrival order.
	sort.Slice(result.Tags, func(i, j int) bool {
		return result.Tags[i].Name < result.Tags[j].Name
	})

	result.Duration = time.Since(start)

	if !result.Partial() {
		c.cache.Set(cacheKey, result)
	}

	return result, nil
}

// fetchRemainingPages fetches pages 2..totalPages with bounded
// concurrency and appends their tags to result.
func (c *Client) fetchRemainingPages(ctx context.Context, totalPages int, result *FetchResult) {
	type pageResult struct {
		page int
		data *tagsPage
		err  error
	}

	sem := make(chan struct{}, MaxPageConcurrency)
	results := make(chan pageResult, totalPages-1)

	var wg sync.WaitGroup
	for page := 2; page <= totalPages; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results <- pageResult{page: page, err: ctx.Err()}
				return
			case sem <- struct{}{}:
				defer func() { <-sem }()
			}

			data, err := c.fetchPage(ctx, page)
			results <- pageResult{page: page, data: data, err: err}
		}(page)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.err != nil {
			result.FailedPages = append(result.FailedPages, res.page)
			result.Errors = append(result.Errors, fmt.Errorf("page %d: %w", res.page, res.err))
			continue
		}
		result.Tags = append(result.Tags, pageTags(res.data)...)
	}

	sort.Ints(result.FailedPages)
}

// fetchPage fetches one page, racing all configured routes. The first
// successful response wins and cancels the rest. Each route attempt is
// bounded by RouteTimeout independently of the parent context.
func (c *Client) fetchPage(ctx context.Context, page int) (*tagsPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.requestCount++
	c.mu.Unlock()

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type routeResult struct {
		data *tagsPage
		err  error
	}
	results := make(chan routeResult, len(c.cfg.Routes))

	for _, route := range c.cfg.Routes {
		go func(route string) {
			data, err := c.fetchPageFromRoute(raceCtx, route, page)
			if err != nil {
				results <- routeResult{err: fmt.Errorf("%s: %w", route, err)}
				return
			}
			results <- routeResult{data: data}
		}(route)
	}

	var errs []error
	for range c.cfg.Routes {
		res := <-results
		if res.err == nil {
			return res.data, nil
		}
		errs = append(errs, res.err)
	}

	return nil, errors.Join(errs...)
}

// fetchPageFromRoute performs one HTTP request against a single route.
func (c *Client) fetchPageFromRoute(ctx context.Context, route string, page int) (*tagsPage, error) {
	reqCtx, cancel := context.WithTimeout(ctx, RouteTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/v2/repositories/%s/%s/tags?page=%d&page_size=%d",
		route, c.cfg.Owner, c.cfg.Repo, page, c.cfg.PageSize)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var data tagsPage
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &data, nil
}

// pageTags converts one wire page into RemoteTags. A zero full_size
// falls back to the sum of the per-image sizes.
func pageTags(page *tagsPage) []models.RemoteTag {
	tags := make([]models.RemoteTag, 0, len(page.Results))
	for _, r := range page.Results {
		size := r.FullSize
		if size == 0 {
			for _, img := range r.Images {
				size += img.Size
			}
		}
		tags = append(tags, models.RemoteTag{
			Name:        r.Name,
			FullSize:    size,
			LastUpdated: r.LastUpdated,
		})
	}
	return tags
}

// ClearCache empties the response cache, forcing the next fetch to hit
// the network.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// Stats returns request and cache statistics.
func (c *Client) Stats() (requests, cacheHits, cacheMisses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requestCount, c.cacheHits, c.cacheMisses
}
