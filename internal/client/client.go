// Package client implements the fpbase.Client interface: facade
// orchestration, the memoizing query path, and the family clients built
// on the name resolver.
package client

import (
	"context"
	"strings"

	"github.com/tlambert03/fpbase-go/internal/constants"
	"github.com/tlambert03/fpbase-go/internal/http"
	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// Client implements the fpbase.Client interface.
type Client struct {
	transport *http.Client
	cache     *fpbase.CacheManager
	logger    fpbase.Logger
	endpoint  string
	resolver  *Resolver

	fluorophores *FluorophoresClient
	filters      *FiltersClient
	cameras      *CamerasClient
	lights       *LightsClient
	microscopes  *MicroscopesClient
}

// New creates a client from configuration. The configuration is not
// retained; a nil configuration selects all defaults.
func New(config *fpbase.Config) (*Client, error) {
	if config == nil {
		config = &fpbase.Config{}
	}

	endpoint := normalizeEndpoint(config.BaseURL)

	logger := config.Logger
	if logger == nil {
		logger = fpbase.NoopLogger{}
	}

	cache, err := fpbase.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, err
	}

	var cacheOptions *fpbase.CacheOptions
	if config.Cache != nil {
		cacheOptions = config.Cache.Options
	}

	transportOpts := []http.Option{
		http.WithLogger(logger),
		http.WithDebug(config.Debug),
		http.WithUserAgent(config.UserAgent),
		http.WithHTTPTimeout(config.HTTPTimeout),
	}
	if config.RetryMax > 0 {
		transportOpts = append(transportOpts,
			http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	client := &Client{
		transport: http.NewClient(endpoint, transportOpts...),
		cache:     fpbase.NewCacheManager(cache, cacheOptions),
		logger:    logger,
		endpoint:  endpoint,
	}

	client.resolver = NewResolver(client.doQuery)
	client.fluorophores = &FluorophoresClient{client: client}
	client.filters = &FiltersClient{client: client}
	client.cameras = &CamerasClient{client: client}
	client.lights = &LightsClient{client: client}
	client.microscopes = &MicroscopesClient{client: client}

	return client, nil
}

// normalizeEndpoint fills in the default endpoint and the https scheme.
func normalizeEndpoint(baseURL string) string {
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// Fluorophores implements fpbase.Client.Fluorophores.
func (c *Client) Fluorophores() fpbase.FluorophoresClient {
	return c.fluorophores
}

// Filters implements fpbase.Client.Filters.
func (c *Client) Filters() fpbase.FiltersClient {
	return c.filters
}

// Cameras implements fpbase.Client.Cameras.
func (c *Client) Cameras() fpbase.CamerasClient {
	return c.cameras
}

// Lights implements fpbase.Client.Lights.
func (c *Client) Lights() fpbase.LightsClient {
	return c.lights
}

// Microscopes implements fpbase.Client.Microscopes.
func (c *Client) Microscopes() fpbase.MicroscopesClient {
	return c.microscopes
}

// Query implements fpbase.Client.Query: the raw escape hatch through the
// cache and transport, with the envelope unwrapped but no entity
// validation.
func (c *Client) Query(ctx context.Context, query string, variables map[string]interface{}) (map[string]interface{}, error) {
	body, err := c.doQuery(ctx, query, variables)
	if err != nil {
		return nil, err
	}

	return fpbase.ParseDataResponse(body)
}

// CacheStats implements fpbase.Client.CacheStats.
func (c *Client) CacheStats() fpbase.CacheStats {
	return c.cache.GetStats()
}

// ClearCache implements fpbase.Client.ClearCache. Resolver tables are
// dropped along with the memoized bodies so the next resolution rebuilds
// them from the network.
func (c *Client) ClearCache(ctx context.Context) error {
	c.resolver.Reset()

	return c.cache.Clear(ctx)
}

// doQuery is the single memoizing query path: cache hit, or one
// transport attempt whose successful body is stored before returning.
// Failures are never stored.
func (c *Client) doQuery(ctx context.Context, query string, variables map[string]interface{}) ([]byte, error) {
	key := c.cache.GetCacheKey(c.endpoint, query, variables)
	cacheable := c.cache.ShouldCache(operationName(query))

	if cacheable {
		if body, err := c.cache.Get(ctx, key); err == nil {
			return body, nil
		}
	}

	resp, err := c.transport.Do(ctx, &http.Request{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := c.cache.Set(ctx, key, resp.Body, 0); err != nil {
			// A write failure only costs a refetch next time.
			c.logger.Warn("storing response in cache failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return resp.Body, nil
}

// operationName extracts the operation name of a query document, or
// empty for anonymous queries.
func operationName(query string) string {
	trimmed := strings.TrimSpace(query)
	if !strings.HasPrefix(trimmed, "query") {
		return ""
	}

	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "query"))
	end := strings.IndexAny(rest, "({ \t\r\n")
	if end <= 0 {
		return ""
	}

	return rest[:end]
}
