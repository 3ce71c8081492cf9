package fpbase_test

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

func TestHTTPError_Error(t *testing.T) {
	t.Parallel()

	err := &fpbase.HTTPError{StatusCode: 503, Status: "503 Service Unavailable", Body: []byte("upstream down")}
	assert.Equal(t, "unexpected HTTP status 503 Service Unavailable: upstream down", err.Error())

	empty := &fpbase.HTTPError{StatusCode: 502, Status: "502 Bad Gateway"}
	assert.Equal(t, "unexpected HTTP status 502 Bad Gateway", empty.Error())

	long := &fpbase.HTTPError{
		StatusCode: 500,
		Status:     "500 Internal Server Error",
		Body:       []byte(strings.Repeat("x", 400)),
	}
	assert.Contains(t, long.Error(), "...")
	assert.Less(t, len(long.Error()), 300)
}

func TestGraphQLError_Error(t *testing.T) {
	t.Parallel()

	err := &fpbase.GraphQLError{Errors: []fpbase.GraphQLErrorDetail{
		{Message: "Cannot query field"},
		{Message: "Variable $id is required"},
	}}
	assert.Equal(t, "graphql error: Cannot query field; Variable $id is required", err.Error())
	assert.Equal(t, "Cannot query field", err.FirstMessage())

	empty := &fpbase.GraphQLError{}
	assert.Equal(t, "graphql error", empty.Error())
	assert.Empty(t, empty.FirstMessage())
}

func TestNotFoundError_Error(t *testing.T) {
	t.Parallel()

	withSuggestion := &fpbase.NotFoundError{Family: "fluorophore", Query: "mScarlte", Suggestion: "mscarlet"}
	assert.Equal(t, `fluorophore "mScarlte" not found (did you mean 'mscarlet'?)`, withSuggestion.Error())

	noSuggestion := &fpbase.NotFoundError{Family: "filter", Query: "zzzz"}
	assert.Equal(t, `filter "zzzz" not found`, noSuggestion.Error())
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &fpbase.ValidationError{Path: "data.protein.states[0].id", Message: "missing required field"}
	assert.Equal(t, "invalid payload at data.protein.states[0].id: missing required field", err.Error())
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	httpErr := fmt.Errorf("request failed: %w", &fpbase.HTTPError{StatusCode: 500})
	urlErr := &url.Error{Op: "Post", URL: "https://example.test", Err: errors.New("dial refused")}
	gqlErr := fmt.Errorf("query: %w", &fpbase.GraphQLError{Errors: []fpbase.GraphQLErrorDetail{{Message: "x"}}})
	validationErr := fmt.Errorf("parse: %w", &fpbase.ValidationError{Path: "data", Message: "x"})
	notFoundErr := fmt.Errorf("lookup: %w", &fpbase.NotFoundError{Family: "camera", Query: "x"})

	assert.True(t, fpbase.IsTransport(httpErr))
	assert.True(t, fpbase.IsTransport(urlErr))
	assert.False(t, fpbase.IsTransport(gqlErr))

	assert.True(t, fpbase.IsGraphQL(gqlErr))
	assert.False(t, fpbase.IsGraphQL(httpErr))

	assert.True(t, fpbase.IsValidation(validationErr))
	assert.False(t, fpbase.IsValidation(notFoundErr))

	assert.True(t, fpbase.IsNotFound(notFoundErr))
	assert.False(t, fpbase.IsNotFound(validationErr))

	assert.True(t, fpbase.IsInvalidArgument(fmt.Errorf("get: %w", fpbase.ErrNotAProtein)))
	assert.True(t, fpbase.IsInvalidArgument(fpbase.ErrNotADye))
	assert.True(t, fpbase.IsInvalidArgument(fpbase.ErrUnknownFluorophoreKind))
	assert.False(t, fpbase.IsInvalidArgument(notFoundErr))
}
