package client

import (
	"context"
	"fmt"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// FluorophoresClient implements fpbase.FluorophoresClient over the
// combined dye/protein lookup table.
type FluorophoresClient struct {
	client *Client
}

// Get implements fpbase.FluorophoresClient.Get.
func (c *FluorophoresClient) Get(ctx context.Context, name string) (*fpbase.Fluorophore, error) {
	entry, err := c.client.resolver.ResolveFluorophore(ctx, name)
	if err != nil {
		return nil, err
	}

	switch entry.Kind {
	case KindDye:
		return c.getDyeByID(ctx, entry.ID)
	case KindProtein:
		protein, err := c.getProteinByID(ctx, entry.ID)
		if err != nil {
			return nil, err
		}

		return &protein.Fluorophore, nil
	default:
		return nil, fmt.Errorf("%w: %q", fpbase.ErrUnknownFluorophoreKind, entry.Kind)
	}
}

// GetProtein implements fpbase.FluorophoresClient.GetProtein.
func (c *FluorophoresClient) GetProtein(ctx context.Context, name string) (*fpbase.Protein, error) {
	entry, err := c.client.resolver.ResolveFluorophore(ctx, name)
	if err != nil {
		return nil, err
	}

	if entry.Kind != KindProtein {
		return nil, fmt.Errorf("%q: %w", name, fpbase.ErrNotAProtein)
	}

	return c.getProteinByID(ctx, entry.ID)
}

// GetDye implements fpbase.FluorophoresClient.GetDye.
func (c *FluorophoresClient) GetDye(ctx context.Context, name string) (*fpbase.Fluorophore, error) {
	entry, err := c.client.resolver.ResolveFluorophore(ctx, name)
	if err != nil {
		return nil, err
	}

	if entry.Kind != KindDye {
		return nil, fmt.Errorf("%q: %w", name, fpbase.ErrNotADye)
	}

	return c.getDyeByID(ctx, entry.ID)
}

// List implements fpbase.FluorophoresClient.List.
func (c *FluorophoresClient) List(ctx context.Context) ([]string, error) {
	return c.client.resolver.FluorophoreNames(ctx)
}

// getDyeByID fetches and validates one dye record. The wire type of the
// dye query's id is Int, so the opaque identifier is coerced here.
func (c *FluorophoresClient) getDyeByID(ctx context.Context, id fpbase.ID) (*fpbase.Fluorophore, error) {
	numericID, err := id.Int()
	if err != nil {
		return nil, fmt.Errorf("dye identifier: %w", err)
	}

	body, err := c.client.doQuery(ctx, dyeQuery, map[string]interface{}{"id": numericID})
	if err != nil {
		return nil, fmt.Errorf("getting dye: %w", err)
	}

	return fpbase.ParseDyeResponse(body)
}

// getProteinByID fetches and validates one protein record.
func (c *FluorophoresClient) getProteinByID(ctx context.Context, id fpbase.ID) (*fpbase.Protein, error) {
	body, err := c.client.doQuery(ctx, proteinQuery, map[string]interface{}{"id": id.String()})
	if err != nil {
		return nil, fmt.Errorf("getting protein: %w", err)
	}

	return fpbase.ParseProteinResponse(body)
}
