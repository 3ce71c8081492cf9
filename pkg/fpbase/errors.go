package fpbase

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// maxErrorBodyLen bounds how much of a response body an error message carries.
const maxErrorBodyLen = 200

// HTTPError represents a non-success HTTP status from the remote service.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > maxErrorBodyLen {
		body = body[:maxErrorBodyLen] + "..."
	}

	if body == "" {
		return fmt.Sprintf("unexpected HTTP status %s", e.Status)
	}

	return fmt.Sprintf("unexpected HTTP status %s: %s", e.Status, body)
}

// GraphQLErrorDetail is one element of a GraphQL response's errors array.
// Path elements are strings or indices, per the GraphQL-over-HTTP
// convention.
type GraphQLErrorDetail struct {
	Message string        `json:"message"        yaml:"message"`
	Path    []interface{} `json:"path,omitempty" yaml:"path,omitempty"`
}

// GraphQLError represents a response envelope that carried errors.
type GraphQLError struct {
	Errors []GraphQLErrorDetail
}

// Error implements the error interface.
func (e *GraphQLError) Error() string {
	if len(e.Errors) == 0 {
		return "graphql error"
	}

	msgs := make([]string, 0, len(e.Errors))
	for _, detail := range e.Errors {
		msgs = append(msgs, detail.Message)
	}

	return "graphql error: " + strings.Join(msgs, "; ")
}

// FirstMessage returns the first error message, or empty.
func (e *GraphQLError) FirstMessage() string {
	if len(e.Errors) > 0 {
		return e.Errors[0].Message
	}

	return ""
}

// ValidationError represents a response payload that does not match the
// declared entity shape.
type ValidationError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payload at %s: %s", e.Path, e.Message)
}

// NotFoundError represents a name that did not resolve within its entity
// family. Suggestion, when set, is the closest known key.
type NotFoundError struct {
	Family     string
	Query      string
	Suggestion string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Family, e.Query)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", e.Suggestion)
	}

	return msg
}

// Common static errors that can be wrapped with context.
var (
	ErrInvalidID              = errors.New("identifier must be a string or a number")
	ErrNonNumericID           = errors.New("identifier is not numeric")
	ErrNotAProtein            = errors.New("name resolves to a dye, not a protein")
	ErrNotADye                = errors.New("name resolves to a protein, not a dye")
	ErrUnknownFluorophoreKind = errors.New("unknown fluorophore kind")
	ErrOwnerFieldMissing      = errors.New("spectrum record is missing the expected owner field")
	ErrCacheDisabled          = errors.New("cache is disabled")
	ErrCacheKeyNotFound       = errors.New("key not found")
	ErrCacheEntryExpired      = errors.New("entry expired")
	ErrCacheValueTooLarge     = errors.New("value exceeds maximum cache entry size")
	ErrNATSURLRequired        = errors.New("NATS cache requires a server URL")
	ErrNATSConfigRequired     = errors.New("NATS configuration required for NATS cache")
	ErrUnknownCacheType       = errors.New("unknown cache type")
)

// IsNotFound checks if the error is a resolver miss.
func IsNotFound(err error) bool {
	notFound := &NotFoundError{}

	return errors.As(err, &notFound)
}

// IsValidation checks if the error is a payload validation failure.
func IsValidation(err error) bool {
	validation := &ValidationError{}

	return errors.As(err, &validation)
}

// IsGraphQL checks if the error came from a GraphQL response envelope.
func IsGraphQL(err error) bool {
	gqlErr := &GraphQLError{}

	return errors.As(err, &gqlErr)
}

// IsTransport checks if the error originated in the HTTP transport,
// either a non-success status or a connectivity failure.
func IsTransport(err error) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return true
	}

	urlErr := &url.Error{}

	return errors.As(err, &urlErr)
}

// IsInvalidArgument checks if the error came from a caller-supplied
// argument that cannot be used, such as a name that resolved to the
// wrong entity family or a non-numeric identifier.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrNotAProtein) ||
		errors.Is(err, ErrNotADye) ||
		errors.Is(err, ErrUnknownFluorophoreKind) ||
		errors.Is(err, ErrNonNumericID)
}
