package fpbase

import (
	"context"
	"time"
)

// FluorophoresClient retrieves dyes and fluorescent proteins by name.
type FluorophoresClient interface {
	// Get resolves name against the combined dye/protein table and fetches
	// whichever record the name denotes. A protein comes back wrapped in
	// its embedded Fluorophore.
	Get(ctx context.Context, name string) (*Fluorophore, error)

	// GetProtein is like Get but fails with ErrNotAProtein when the name
	// resolves to a dye.
	GetProtein(ctx context.Context, name string) (*Protein, error)

	// GetDye is like Get but fails with ErrNotADye when the name resolves
	// to a protein.
	GetDye(ctx context.Context, name string) (*Fluorophore, error)

	// List returns the sorted distinct display names of all known dyes
	// and proteins.
	List(ctx context.Context) ([]string, error)
}

// SpectrumOwnersClient retrieves one family of spectrum-owning hardware
// (filters, cameras, or light sources) by name.
type SpectrumOwnersClient[T any] interface {
	Get(ctx context.Context, name string) (*T, error)
	List(ctx context.Context) ([]string, error)
}

// FiltersClient retrieves optical filters by name.
type FiltersClient = SpectrumOwnersClient[Filter]

// CamerasClient retrieves cameras by name.
type CamerasClient = SpectrumOwnersClient[Camera]

// LightsClient retrieves light sources by name.
type LightsClient = SpectrumOwnersClient[LightSource]

// MicroscopesClient retrieves microscope configurations. Microscope
// identifiers are already the opaque keys users hold, so Get takes an id
// directly with no name resolution.
type MicroscopesClient interface {
	Get(ctx context.Context, id string) (*Microscope, error)
	List(ctx context.Context) ([]MicroscopeSummary, error)
}

// Client is the typed FPbase client, grouped by entity family.
type Client interface {
	Fluorophores() FluorophoresClient
	Filters() FiltersClient
	Cameras() CamerasClient
	Lights() LightsClient
	Microscopes() MicroscopesClient

	// Query issues an arbitrary GraphQL query through the response cache
	// and returns the decoded data mapping without entity validation, for
	// callers needing fields outside the typed model.
	Query(ctx context.Context, query string, variables map[string]interface{}) (map[string]interface{}, error)

	// CacheStats reports response-cache effectiveness counters.
	CacheStats() CacheStats

	// ClearCache drops all memoized responses and resolver tables.
	ClearCache(ctx context.Context) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NoopLogger discards all log output. It is the default when no Logger
// is configured.
type NoopLogger struct{}

// Debug implements Logger.
func (NoopLogger) Debug(msg string, fields map[string]interface{}) {}

// Info implements Logger.
func (NoopLogger) Info(msg string, fields map[string]interface{}) {}

// Warn implements Logger.
func (NoopLogger) Warn(msg string, fields map[string]interface{}) {}

// Error implements Logger.
func (NoopLogger) Error(msg string, fields map[string]interface{}) {}

// Config represents client configuration for building an fpbase.Client.
//
// # Endpoint
//
// BaseURL defaults to the public FPbase GraphQL endpoint. fpclient.New
// normalizes the value by trimming a trailing slash's duplicates and
// adding "https://" when no scheme is present.
//
// # Caching
//
// Cache selects the response cache backend. The default is an unbounded
// in-process cache whose entries never expire: the remote catalog is a
// few thousand records and static within a session, so growth is bounded
// in practice. Set Cache.Type to CacheTypeNone to disable memoization,
// or CacheTypeNATS to share the cache across processes.
//
// # Retries
//
// The client performs exactly one attempt per request; resilience
// belongs to the caller. RetryMax > 0 opts in to retrying 5xx and 429
// responses through the underlying transport.
type Config struct {
	// BaseURL is the GraphQL endpoint. Empty selects the public FPbase
	// endpoint.
	BaseURL string

	// Cache selects and configures the response cache backend. Nil
	// selects DefaultCacheConfig().
	Cache *CacheConfig

	// HTTPTimeout bounds each request. Zero selects the default timeout.
	// Per-call deadlines should generally use the request context.
	HTTPTimeout time.Duration

	// RetryMax is the maximum number of opt-in retries for 5xx and 429
	// responses. Zero, the default, disables retries entirely.
	RetryMax int

	// RetryWaitMin is the minimum backoff between opt-in retries.
	RetryWaitMin time.Duration

	// RetryWaitMax is the maximum backoff between opt-in retries.
	RetryWaitMax time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables request/response logging through Logger.
	Debug bool

	// Logger is the structured logger used by the transport and facade.
	// Nil discards all output.
	Logger Logger
}
