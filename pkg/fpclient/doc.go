// Package fpclient provides the primary entry point for constructing an
// FPbase client that implements the fpbase.Client interface.
//
// It layers configuration, the GraphQL transport, the response cache, and
// name resolution on top of the family interfaces and types defined in the
// fpbase package. Most applications should import fpclient to build a
// client, then use the returned fpbase.Client to access family clients,
// for example Fluorophores(), Filters(), Microscopes().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/tlambert03/fpbase-go/pkg/fpbase"
//	  "github.com/tlambert03/fpbase-go/pkg/fpclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: the public FPbase endpoint with default caching.
//	  cli, err := fpclient.New(nil)
//	  if err != nil { log.Fatal(err) }
//
//	  egfp, err := cli.Fluorophores().Get(ctx, "EGFP")
//	  if err != nil { log.Fatal(err) }
//	  _ = egfp
//
//	  // Or a different endpoint, e.g. a staging deployment:
//	  cli, err = fpclient.NewWithEndpoint("https://staging.example.org/graphql/")
//	  if err != nil { log.Fatal(err) }
//	}
//
// # The shared client
//
// Default returns a lazily constructed process-wide client; the
// package-level helpers (GetFluorophore, GetProtein, GetFilter,
// GetCamera, GetLightSource, GetMicroscope) delegate to it, so casual
// callers share one response cache without passing a client around:
//
//	egfp, err := fpclient.GetFluorophore(ctx, "EGFP")
//
// Tests and callers needing isolated cache state should construct their
// own instance with New and, when they have touched the shared one, call
// ResetDefault.
package fpclient
