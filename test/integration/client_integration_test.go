//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

func TestLiveFluorophores(t *testing.T) {
	client := newLiveClient(t)
	ctx := context.Background()

	t.Run("protein by name", func(t *testing.T) {
		protein, err := client.Fluorophores().GetProtein(ctx, "EGFP")
		require.NoError(t, err)
		assert.Equal(t, "EGFP", protein.Name)
		require.NotNil(t, protein.DefaultState)
		require.NotNil(t, protein.DefaultState.ExMax)
		assert.InDelta(t, 488, *protein.DefaultState.ExMax, 2)
	})

	t.Run("case-insensitive dye lookup", func(t *testing.T) {
		dye, err := client.Fluorophores().GetDye(ctx, "alexa fluor 488")
		require.NoError(t, err)
		assert.Equal(t, "Alexa Fluor 488", dye.Name)
		require.NotNil(t, dye.DefaultState)

		// Dyes typically serve an absorption curve rather than an
		// excitation curve; the accessor falls back.
		assert.NotNil(t, dye.DefaultState.ExcitationSpectrum())
	})

	t.Run("misspelling yields suggestion", func(t *testing.T) {
		_, err := client.Fluorophores().Get(ctx, "mScarlte")
		require.Error(t, err)
		assert.True(t, fpbase.IsNotFound(err))
		assert.Contains(t, err.Error(), "did you mean")
	})

	t.Run("list feeds back into get", func(t *testing.T) {
		names, err := client.Fluorophores().List(ctx)
		require.NoError(t, err)
		assert.Greater(t, len(names), 100)

		_, err = client.Fluorophores().Get(ctx, names[0])
		require.NoError(t, err)
	})
}

func TestLiveSpectrumOwners(t *testing.T) {
	client := newLiveClient(t)
	ctx := context.Background()

	t.Run("filter", func(t *testing.T) {
		filter, err := client.Filters().Get(ctx, "Chroma ET525/50m")
		require.NoError(t, err)
		assert.Equal(t, "Chroma ET525/50m", filter.Name)
		assert.NotEmpty(t, filter.Spectrum.Data)
	})

	t.Run("camera", func(t *testing.T) {
		camera, err := client.Cameras().Get(ctx, "Andor Zyla 4.2")
		require.NoError(t, err)
		assert.Equal(t, fpbase.SpectrumTypeQE, camera.Spectrum.Subtype)
	})

	t.Run("light source", func(t *testing.T) {
		light, err := client.Lights().Get(ctx, "Lumencor SOLA")
		require.NoError(t, err)
		assert.NotEmpty(t, light.Spectrum.Data)
	})
}

func TestLiveMicroscopes(t *testing.T) {
	client := newLiveClient(t)
	ctx := context.Background()

	scope, err := client.Microscopes().Get(ctx, exampleMicroscopeID)
	require.NoError(t, err)
	assert.Equal(t, exampleMicroscopeName, scope.Name)
	assert.NotEmpty(t, scope.OpticalConfigs)

	scopes, err := client.Microscopes().List(ctx)
	require.NoError(t, err)

	var found bool

	for _, summary := range scopes {
		if summary.ID == fpbase.ID(exampleMicroscopeID) {
			found = true

			break
		}
	}

	assert.True(t, found, "example microscope should appear in the listing")
}

func TestLiveCaching(t *testing.T) {
	client := newLiveClient(t)
	ctx := context.Background()

	_, err := client.Fluorophores().GetProtein(ctx, "EGFP")
	require.NoError(t, err)

	before := client.CacheStats()

	_, err = client.Fluorophores().GetProtein(ctx, "EGFP")
	require.NoError(t, err)

	after := client.CacheStats()
	assert.Greater(t, after.Hits, before.Hits)
}

func TestLiveRawQuery(t *testing.T) {
	client := newLiveClient(t)
	ctx := context.Background()

	data, err := client.Query(ctx, "{ proteins { name slug } }", nil)
	require.NoError(t, err)

	proteins, ok := data["proteins"].([]interface{})
	require.True(t, ok, "proteins should decode as a list")
	assert.Greater(t, len(proteins), 100)

	first, ok := proteins[0].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, first["name"])
	assert.NotEmpty(t, first["slug"])
}
