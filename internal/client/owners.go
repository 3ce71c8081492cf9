package client

import (
	"context"
	"fmt"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// The hardware families share one retrieval flow: resolve the name to
// the identifier of the spectrum the record owns, fetch the spectrum
// detail record, and extract the family's owner back-reference.

// getOwnerSpectrum resolves name within category and fetches the
// spectrum record carrying the owner.
func getOwnerSpectrum(ctx context.Context, c *Client, category OwnerCategory, name string) (*fpbase.Spectrum, error) {
	entry, err := c.resolver.ResolveOwner(ctx, category, name)
	if err != nil {
		return nil, err
	}

	numericID, err := entry.SpectrumID.Int()
	if err != nil {
		return nil, fmt.Errorf("spectrum identifier: %w", err)
	}

	body, err := c.doQuery(ctx, spectrumQuery, map[string]interface{}{"id": numericID})
	if err != nil {
		return nil, fmt.Errorf("getting %s spectrum: %w", category.familyName(), err)
	}

	return fpbase.ParseSpectrumResponse(body)
}

// FiltersClient implements fpbase.FiltersClient.
type FiltersClient struct {
	client *Client
}

// Get implements fpbase.FiltersClient.Get.
func (c *FiltersClient) Get(ctx context.Context, name string) (*fpbase.Filter, error) {
	spectrum, err := getOwnerSpectrum(ctx, c.client, CategoryFilter, name)
	if err != nil {
		return nil, err
	}

	if spectrum.OwnerFilter == nil {
		return nil, fmt.Errorf("filter %q: %w", name, fpbase.ErrOwnerFieldMissing)
	}

	return spectrum.OwnerFilter, nil
}

// List implements fpbase.FiltersClient.List.
func (c *FiltersClient) List(ctx context.Context) ([]string, error) {
	return c.client.resolver.OwnerNames(ctx, CategoryFilter)
}

// CamerasClient implements fpbase.CamerasClient.
type CamerasClient struct {
	client *Client
}

// Get implements fpbase.CamerasClient.Get.
func (c *CamerasClient) Get(ctx context.Context, name string) (*fpbase.Camera, error) {
	spectrum, err := getOwnerSpectrum(ctx, c.client, CategoryCamera, name)
	if err != nil {
		return nil, err
	}

	if spectrum.OwnerCamera == nil {
		return nil, fmt.Errorf("camera %q: %w", name, fpbase.ErrOwnerFieldMissing)
	}

	return spectrum.OwnerCamera, nil
}

// List implements fpbase.CamerasClient.List.
func (c *CamerasClient) List(ctx context.Context) ([]string, error) {
	return c.client.resolver.OwnerNames(ctx, CategoryCamera)
}

// LightsClient implements fpbase.LightsClient.
type LightsClient struct {
	client *Client
}

// Get implements fpbase.LightsClient.Get.
func (c *LightsClient) Get(ctx context.Context, name string) (*fpbase.LightSource, error) {
	spectrum, err := getOwnerSpectrum(ctx, c.client, CategoryLight, name)
	if err != nil {
		return nil, err
	}

	if spectrum.OwnerLight == nil {
		return nil, fmt.Errorf("light source %q: %w", name, fpbase.ErrOwnerFieldMissing)
	}

	return spectrum.OwnerLight, nil
}

// List implements fpbase.LightsClient.List.
func (c *LightsClient) List(ctx context.Context) ([]string, error) {
	return c.client.resolver.OwnerNames(ctx, CategoryLight)
}
