// Package fpbase provides types, interfaces, and helpers for working with
// the FPbase GraphQL API of fluorescent proteins, dyes, optical filters,
// cameras, light sources, and microscope configurations.
//
// # Overview
//
// The fpbase package defines the domain types (Fluorophore, Protein, State,
// Spectrum, Filter, Camera, LightSource, Microscope) and the interfaces for
// the family-oriented clients (FluorophoresClient, FiltersClient, and so
// on). A concrete implementation is provided by the fpclient package, which
// wires configuration, transport, the response cache, and name resolution.
// Most consumers should import fpclient to construct a client and then
// interact with the family client interfaces exposed here.
//
// Getting a client
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
//	  cli, err := fpclient.New(&fpbase.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  egfp, err := cli.Fluorophores().Get(ctx, "EGFP")
//	  if err != nil { log.Fatal(err) }
//	  _ = egfp.DefaultState.ExcitationSpectrum()
//	}
//
// # Name resolution
//
// Get calls accept loosely formatted names: arbitrary case, slugs, and (for
// proteins) identifiers all resolve to the same record. A miss fails with a
// *NotFoundError carrying the closest known name as a suggestion when one
// is similar enough.
//
// # Caching
//
// Every query is memoized by a deterministic digest of the endpoint, query
// text, and variables, so repeated logical queries within a client lifetime
// incur no network cost. The cache is pluggable: the default unbounded
// in-process map can be replaced by a NATS JetStream key-value bucket
// shared across processes, or disabled entirely. See CacheConfig.
//
// # Errors
//
// Failures are typed: *HTTPError for transport problems, *GraphQLError for
// response envelopes carrying errors, *ValidationError for payloads that do
// not match the declared entity shape, and *NotFoundError for resolver
// misses. Helpers IsTransport, IsGraphQL, IsValidation, IsNotFound, and
// IsInvalidArgument make it easy to branch on the taxonomy.
package fpbase
