package fpclient

import (
	"context"
	"sync"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// The package-level client is constructed lazily on first use and shared
// by every caller, so all convenience functions share one response cache
// and one set of resolver tables. Callers wanting isolated cache or
// session state should construct their own client with New.
var (
	defaultMu     sync.Mutex
	defaultClient fpbase.Client
	defaultErr    error
)

// Default returns the shared process-wide client, constructing it with
// default configuration on first call. Concurrent first callers observe
// exactly one instance. Construction failures are sticky until
// ResetDefault.
func Default() (fpbase.Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultClient == nil && defaultErr == nil {
		defaultClient, defaultErr = New(nil)
	}

	return defaultClient, defaultErr
}

// ResetDefault discards the shared client so the next Default call
// constructs a fresh one. Intended for tests.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultClient = nil
	defaultErr = nil
}

// GetFluorophore fetches a dye or protein by name through the shared
// client.
func GetFluorophore(ctx context.Context, name string) (*fpbase.Fluorophore, error) {
	client, err := Default()
	if err != nil {
		return nil, err
	}

	return client.Fluorophores().Get(ctx, name)
}

// GetProtein fetches a protein by name through the shared client.
func GetProtein(ctx context.Context, name string) (*fpbase.Protein, error) {
	client, err := Default()
	if err != nil {
		return nil, err
	}

	return client.Fluorophores().GetProtein(ctx, name)
}

// GetDye fetches a dye by name through the shared client.
func GetDye(ctx context.Context, name string) (*fpbase.Fluorophore, error) {
	client, err := Default()
	if err != nil {
		return nil, err
	}

	return client.Fluorophores().GetDye(ctx, name)
}

// GetFilter fetches an optical filter by name through the shared client.
func GetFilter(ctx context.Context, name string) (*fpbase.Filter, error) {
	client, err := Default()
	if err != nil {
		return nil, err
	}

	return client.Filters().Get(ctx, name)
}

// GetCamera fetches a camera by name through the shared client.
func GetCamera(ctx context.Context, name string) (*fpbase.Camera, error) {
	client, err := Default()
	if err != nil {
		return nil, err
	}

	return client.Cameras().Get(ctx, name)
}

// GetLightSource fetches a light source by name through the shared
// client.
func GetLightSource(ctx context.Context, name string) (*fpbase.LightSource, error) {
	client, err := Default()
	if err != nil {
		return nil, err
	}

	return client.Lights().Get(ctx, name)
}

// GetMicroscope fetches a microscope by id through the shared client.
func GetMicroscope(ctx context.Context, id string) (*fpbase.Microscope, error) {
	client, err := Default()
	if err != nil {
		return nil, err
	}

	return client.Microscopes().Get(ctx, id)
}
