package fpclient_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
	"github.com/tlambert03/fpbase-go/pkg/fpclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()

		client, err := fpclient.New(nil)
		require.NoError(t, err)
		assert.NotNil(t, client.Fluorophores())
		assert.NotNil(t, client.Filters())
		assert.NotNil(t, client.Cameras())
		assert.NotNil(t, client.Lights())
		assert.NotNil(t, client.Microscopes())
	})

	t.Run("endpoint without scheme gets https", func(t *testing.T) {
		t.Parallel()

		client, err := fpclient.NewWithEndpoint("example.org/graphql")
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("unknown cache backend fails", func(t *testing.T) {
		t.Parallel()

		_, err := fpclient.New(&fpbase.Config{
			Cache: &fpbase.CacheConfig{Type: "redis"},
		})
		require.Error(t, err)
		require.ErrorIs(t, err, fpbase.ErrUnknownCacheType)
	})
}

func TestDefault_SingleInstance(t *testing.T) {
	fpclient.ResetDefault()
	t.Cleanup(fpclient.ResetDefault)

	const callers = 16

	var (
		waitGroup sync.WaitGroup
		clients   [callers]fpbase.Client
	)

	for i := 0; i < callers; i++ {
		i := i

		waitGroup.Add(1)

		go func() {
			defer waitGroup.Done()

			client, err := fpclient.Default()
			assert.NoError(t, err)
			clients[i] = client
		}()
	}

	waitGroup.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, clients[0], clients[i])
	}
}

func TestResetDefault(t *testing.T) {
	fpclient.ResetDefault()
	t.Cleanup(fpclient.ResetDefault)

	first, err := fpclient.Default()
	require.NoError(t, err)

	fpclient.ResetDefault()

	second, err := fpclient.Default()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}
