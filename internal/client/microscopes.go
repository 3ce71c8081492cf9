package client

import (
	"context"
	"fmt"
	"sort"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// MicroscopesClient implements fpbase.MicroscopesClient. Microscope
// identifiers are the opaque keys users already hold, so Get goes
// straight to the detail query with no resolver step.
type MicroscopesClient struct {
	client *Client
}

// Get implements fpbase.MicroscopesClient.Get.
func (c *MicroscopesClient) Get(ctx context.Context, id string) (*fpbase.Microscope, error) {
	body, err := c.client.doQuery(ctx, microscopeQuery, map[string]interface{}{"id": id})
	if err != nil {
		return nil, fmt.Errorf("getting microscope: %w", err)
	}

	return fpbase.ParseMicroscopeResponse(body)
}

// List implements fpbase.MicroscopesClient.List, sorted by name.
func (c *MicroscopesClient) List(ctx context.Context) ([]fpbase.MicroscopeSummary, error) {
	body, err := c.client.doQuery(ctx, microscopeListQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("listing microscopes: %w", err)
	}

	var listing struct {
		Microscopes []fpbase.MicroscopeSummary `json:"microscopes"`
	}

	if err := fpbase.UnmarshalData(body, &listing); err != nil {
		return nil, fmt.Errorf("decoding microscope listing: %w", err)
	}

	summaries := listing.Microscopes
	if summaries == nil {
		summaries = []fpbase.MicroscopeSummary{}
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})

	return summaries, nil
}
