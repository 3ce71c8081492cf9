package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fphttp "github.com/tlambert03/fpbase-go/internal/http"
	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// mockLogger records debug entries for assertions.
type mockLogger struct {
	mu      sync.Mutex
	entries []string
}

func (m *mockLogger) record(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, msg)
}

func (m *mockLogger) messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.entries...)
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.record(msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.record(msg) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.record(msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.record(msg) }

func TestClient_Do(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Contains(t, r.Header.Get("User-Agent"), "fpbase-go/")

		var payload struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}

		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "{ proteins { id } }", payload.Query)
		assert.Equal(t, "egfp", payload.Variables["name"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"proteins": []}}`))
	}))
	defer server.Close()

	client := fphttp.NewClient(server.URL)
	assert.Equal(t, server.URL, client.Endpoint())

	resp, err := client.Do(context.Background(), &fphttp.Request{
		Query:     "{ proteins { id } }",
		Variables: map[string]interface{}{"name": "egfp"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data": {"proteins": []}}`, string(resp.Body))
}

func TestClient_Do_NilVariables(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]json.RawMessage

		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		// Variables always serialize as an object, never null.
		assert.JSONEq(t, `{}`, string(payload["variables"]))
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	client := fphttp.NewClient(server.URL)

	_, err := client.Do(context.Background(), &fphttp.Request{Query: "{ dyes { id } }"})
	require.NoError(t, err)
}

func TestClient_Do_ExtraHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "value", r.Header.Get("X-Extra"))
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	client := fphttp.NewClient(server.URL)

	_, err := client.Do(context.Background(), &fphttp.Request{
		Query:   "{ dyes { id } }",
		Headers: map[string]string{"X-Extra": "value"},
	})
	require.NoError(t, err)
}

func TestClient_Do_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	client := fphttp.NewClient(server.URL)

	resp, err := client.Do(context.Background(), &fphttp.Request{Query: "{ dyes { id } }"})
	require.Error(t, err)

	httpErr := &fpbase.HTTPError{}
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Contains(t, string(httpErr.Body), "upstream unavailable")

	// The response is still handed back alongside the error.
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestClient_Do_SingleAttemptByDefault(t *testing.T) {
	t.Parallel()

	var attempts int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++

		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := fphttp.NewClient(server.URL)

	_, err := client.Do(context.Background(), &fphttp.Request{Query: "{ dyes { id } }"})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestClient_Do_RetriesWhenConfigured(t *testing.T) {
	t.Parallel()

	t.Run("retries 5xx until success", func(t *testing.T) {
		t.Parallel()

		var attempts int

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			_, _ = w.Write([]byte(`{"data": {}}`))
		}))
		defer server.Close()

		client := fphttp.NewClient(server.URL,
			fphttp.WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

		resp, err := client.Do(context.Background(), &fphttp.Request{Query: "{ dyes { id } }"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 3, attempts)
	})

	t.Run("does not retry 4xx", func(t *testing.T) {
		t.Parallel()

		var attempts int

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++

			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := fphttp.NewClient(server.URL,
			fphttp.WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

		_, err := client.Do(context.Background(), &fphttp.Request{Query: "{ dyes { id } }"})
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})
}

func TestClient_Do_ConnectivityFailure(t *testing.T) {
	t.Parallel()

	client := fphttp.NewClient("http://127.0.0.1:1",
		fphttp.WithHTTPTimeout(500*time.Millisecond))

	_, err := client.Do(context.Background(), &fphttp.Request{Query: "{ dyes { id } }"})
	require.Error(t, err)
	assert.True(t, fpbase.IsTransport(err))
}

func TestClient_Do_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := fphttp.NewClient(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Do(ctx, &fphttp.Request{Query: "{ dyes { id } }"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Do_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	logger := &mockLogger{}
	client := fphttp.NewClient(server.URL,
		fphttp.WithDebug(true),
		fphttp.WithLogger(logger))

	_, err := client.Do(context.Background(), &fphttp.Request{Query: "{ dyes { id } }"})
	require.NoError(t, err)

	messages := logger.messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "GraphQL request", messages[0])
	assert.Equal(t, "GraphQL response", messages[1])
}

func TestClient_UserAgentOverride(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "my-app/2.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	client := fphttp.NewClient(server.URL, fphttp.WithUserAgent("my-app/2.0"))

	_, err := client.Do(context.Background(), &fphttp.Request{Query: "{ dyes { id } }"})
	require.NoError(t, err)
}
