//go:build integration

// Package integration exercises the client against the live FPbase API.
// These tests are opt-in: build with the integration tag and set
// FPBASE_INTEGRATION_TESTS=true to run them.
package integration

import (
	"os"
	"testing"
	"time"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
	"github.com/tlambert03/fpbase-go/pkg/fpclient"
)

// Live records pinned in these tests are long-standing public FPbase
// entries that are unlikely to change or disappear.
const (
	exampleMicroscopeID   = "wKqWbgApvguSNDSRZNSfpN"
	exampleMicroscopeName = "Example Simple Widefield"
)

// newLiveClient skips the test unless live testing is enabled, then
// builds a client against the public endpoint.
func newLiveClient(t *testing.T) fpbase.Client {
	t.Helper()

	if os.Getenv("FPBASE_INTEGRATION_TESTS") != "true" {
		t.Skip("FPBASE_INTEGRATION_TESTS not set to true, skipping integration test")
	}

	config := &fpbase.Config{
		HTTPTimeout: 60 * time.Second,
	}

	if endpoint := os.Getenv("FPBASE_ENDPOINT"); endpoint != "" {
		config.BaseURL = endpoint
	}

	client, err := fpclient.New(config)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return client
}
