package constants

import "time"

// Remote service defaults.
const (
	// DefaultBaseURL is the public FPbase GraphQL endpoint.
	DefaultBaseURL = "https://www.fpbase.org/graphql/"

	// ClientName identifies this library in the User-Agent header.
	ClientName = "fpbase-go"

	// ClientVersion is the library version reported in the User-Agent
	// header.
	ClientVersion = "0.1.0"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits. The client performs exactly one attempt unless a caller
// opts in to retries through the transport options.
const (
	// DefaultRetryMax disables retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between opt-in retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between opt-in retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Cache sizing and lifetimes.
const (
	// DefaultCacheSize is the default entry limit for the memory cache.
	// Zero means unbounded: the FPbase catalog is a few thousand records
	// and static within a session, so growth is bounded in practice.
	DefaultCacheSize = 0

	// DefaultCacheTTL is the default entry lifetime. Zero means entries
	// never expire.
	DefaultCacheTTL time.Duration = 0

	// NATSCacheBucket is the JetStream key-value bucket used when the
	// response cache is shared across processes.
	NATSCacheBucket = "fpbase-cache"
)

// Name resolution tunables.
const (
	// SuggestionCutoff is the minimum similarity ratio a near-miss must
	// reach to be offered as a "did you mean" candidate.
	SuggestionCutoff = 0.5
)

// Output format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// PercentageMultiplier converts decimals to percentages.
	PercentageMultiplier = 100

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// NanometerFormat renders wavelength values for display.
	NanometerFormat = "%.0f nm"
)
