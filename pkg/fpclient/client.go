// Package fpclient provides the main entry point for creating FPbase API
// clients.
package fpclient

import (
	"fmt"
	"strings"

	"github.com/tlambert03/fpbase-go/internal/client"
	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// New creates a new FPbase API client. A nil config selects all
// defaults: the public endpoint, an unbounded in-process response cache,
// and exactly one transport attempt per request.
func New(config *fpbase.Config) (fpbase.Client, error) {
	if config == nil {
		config = &fpbase.Config{}
	}

	// Normalize the endpoint: default scheme, collapse trailing slashes
	// to the single one the remote route expects.
	if config.BaseURL != "" {
		baseURL := strings.TrimRight(config.BaseURL, "/") + "/"
		if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
			baseURL = "https://" + baseURL
		}

		config.BaseURL = baseURL
	}

	impl, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return impl, nil
}

// NewWithEndpoint creates a new client for a specific GraphQL endpoint.
func NewWithEndpoint(endpoint string) (fpbase.Client, error) {
	return New(&fpbase.Config{BaseURL: endpoint})
}
