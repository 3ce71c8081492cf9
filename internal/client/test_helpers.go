package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// NewTestClient creates a client against the given endpoint with default
// configuration.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(&fpbase.Config{BaseURL: baseURL})
	require.NoError(t, err)

	return client
}

// fakeServer serves a small fixed catalog over the GraphQL wire protocol
// and counts the requests it receives, so tests can assert that repeated
// logical queries are served from the cache.
type fakeServer struct {
	server *httptest.Server

	mu       sync.Mutex
	requests int
}

// newFakeServer starts a fake FPbase endpoint. The server is shut down
// when the test finishes.
func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	fake := &fakeServer{}
	fake.server = httptest.NewServer(http.HandlerFunc(fake.handle))
	t.Cleanup(fake.server.Close)

	return fake
}

// URL returns the fake endpoint URL.
func (f *fakeServer) URL() string {
	return f.server.URL
}

// Requests returns how many requests the server has handled.
func (f *fakeServer) Requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.requests
}

func (f *fakeServer) handle(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	f.requests++
	f.mu.Unlock()

	var payload struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}

	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)

		return
	}

	writer.Header().Set("Content-Type", "application/json")

	body, ok := f.respond(payload.Query, payload.Variables)
	if !ok {
		_, _ = writer.Write([]byte(`{"data": null, "errors": [{"message": "unknown query"}]}`))

		return
	}

	_, _ = writer.Write([]byte(body))
}

//nolint:cyclop // One dispatch point for every canned query keeps fixtures readable.
func (f *fakeServer) respond(query string, variables map[string]interface{}) (string, bool) {
	switch {
	case strings.Contains(query, "dyes { id name slug }"):
		return fluorophoreListingFixture, true
	case strings.Contains(query, `spectra(category: "F")`):
		return filterListingFixture, true
	case strings.Contains(query, `spectra(category: "C")`):
		return cameraListingFixture, true
	case strings.Contains(query, `spectra(category: "L")`):
		return lightListingFixture, true
	case strings.Contains(query, "microscopes { id name }"):
		return microscopeListingFixture, true
	case strings.Contains(query, "getMicroscope"):
		if variables["id"] == "wKqWbgApvguSNDSRZNSfpN" {
			return microscopeFixture, true
		}

		return `{"data": {"microscope": null}}`, true
	case strings.Contains(query, "getDye"):
		return dyeFixture, true
	case strings.Contains(query, "getProtein"):
		switch variables["id"] {
		case "R9NL8":
			return egfpFixture, true
		case "6QXNR":
			return mScarletFixture, true
		}

		return `{"data": {"protein": null}}`, true
	case strings.Contains(query, "getSpectrum"):
		switch variables["id"] {
		case float64(5859):
			return filterSpectrumFixture, true
		case float64(412):
			return cameraSpectrumFixture, true
		case float64(501):
			return lightSpectrumFixture, true
		}

		return `{"data": {"spectrum": null}}`, true
	default:
		return "", false
	}
}

// Catalog fixtures, shaped like real FPbase responses.
const (
	fluorophoreListingFixture = `{"data": {
		"dyes": [
			{"id": 169, "name": "Alexa Fluor 488", "slug": "alexa-fluor-488"}
		],
		"proteins": [
			{"id": "R9NL8", "name": "EGFP", "slug": "egfp"},
			{"id": "6QXNR", "name": "mScarlet", "slug": "mscarlet"}
		]
	}}`

	filterListingFixture = `{"data": {"spectra": [
		{"id": 5859, "owner": {"name": "Chroma ET525/50m"}},
		{"id": 5860, "owner": {"name": "Semrock FF01-520/35"}}
	]}}`

	cameraListingFixture = `{"data": {"spectra": [
		{"id": 412, "owner": {"name": "Andor Zyla 4.2"}}
	]}}`

	lightListingFixture = `{"data": {"spectra": [
		{"id": 501, "owner": {"name": "Lumencor SOLA"}}
	]}}`

	microscopeListingFixture = `{"data": {"microscopes": [
		{"id": "i6WL2W", "name": "Example Widefield"},
		{"id": "wKqWbgApvguSNDSRZNSfpN", "name": "Example Simple Widefield"}
	]}}`

	microscopeFixture = `{"data": {"microscope": {
		"id": "wKqWbgApvguSNDSRZNSfpN",
		"name": "Example Simple Widefield",
		"opticalConfigs": [
			{
				"name": "Green",
				"filters": [
					{
						"path": "EX",
						"reflects": false,
						"filter": {
							"id": 120,
							"name": "Chroma ET470/40x",
							"manufacturer": "Chroma",
							"bandcenter": 470.0,
							"bandwidth": 40.0,
							"edge": null,
							"spectrum": {"id": 5770, "subtype": "BX", "data": [[450.0, 0.01], [470.0, 0.95]]}
						}
					},
					{
						"path": "BS",
						"reflects": true,
						"filter": {
							"id": 121,
							"name": "Chroma T495lpxr",
							"manufacturer": "Chroma",
							"bandcenter": null,
							"bandwidth": null,
							"edge": 495.0,
							"spectrum": {"id": 5771, "subtype": "BS", "data": [[480.0, 0.05], [510.0, 0.97]]}
						}
					}
				],
				"camera": {
					"id": 41,
					"name": "Andor Zyla 4.2",
					"manufacturer": "Andor",
					"spectrum": {"id": 412, "subtype": "QE", "data": [[500.0, 0.72]]}
				},
				"light": {
					"id": 51,
					"name": "Lumencor SOLA",
					"manufacturer": "Lumencor",
					"spectrum": {"id": 501, "subtype": "PD", "data": [[480.0, 0.8]]}
				},
				"laser": null
			}
		]
	}}}`

	dyeFixture = `{"data": {"dye": {
		"name": "Alexa Fluor 488",
		"id": 169,
		"exMax": 491.0,
		"emMax": 516.0,
		"extCoeff": 71000.0,
		"qy": 0.92,
		"spectra": [
			{"id": 2100, "subtype": "AB", "data": [[480.0, 0.85], [491.0, 1.0]]},
			{"id": 2101, "subtype": "EM", "data": [[516.0, 1.0], [540.0, 0.55]]}
		]
	}}}`

	egfpFixture = `{"data": {"protein": {
		"name": "EGFP",
		"id": "R9NL8",
		"seq": "MVSKGEELFTGVVPILVELDGDVNGHKFSVSGEGEGDAT",
		"pdb": ["2Y0G"],
		"genbank": "U55762",
		"uniprot": "C5MKY7",
		"mw": 26.9,
		"agg": "M",
		"switchType": "B",
		"primaryReference": {"doi": "10.1016/0378-1119(95)00685-0"},
		"references": [{"doi": "10.1038/373663b0"}],
		"states": [
			{
				"id": 336,
				"name": "default",
				"exMax": 488.0,
				"emMax": 507.0,
				"exhex": "#00f7ff",
				"emhex": "#67ff00",
				"extCoeff": 55900.0,
				"qy": 0.6,
				"lifetime": 2.6,
				"spectra": [
					{"id": 40, "subtype": "EX", "data": [[400.0, 0.114], [488.0, 1.0]]},
					{"id": 41, "subtype": "EM", "data": [[507.0, 1.0], [550.0, 0.38]]}
				]
			}
		],
		"defaultState": {"id": 336}
	}}}`

	mScarletFixture = `{"data": {"protein": {
		"name": "mScarlet",
		"id": "6QXNR",
		"seq": "MVSKGEAVIKEFMRFKVHMEGSMNGHEFEIEGEGEGRPYEG",
		"pdb": ["5LK4"],
		"genbank": "KY021423",
		"uniprot": null,
		"mw": 26.4,
		"agg": "M",
		"switchType": "B",
		"primaryReference": {"doi": "10.1038/nmeth.4074"},
		"references": null,
		"states": [
			{
				"id": 821,
				"name": "default",
				"exMax": 569.0,
				"emMax": 594.0,
				"exhex": "#beff00",
				"emhex": "#ffbe00",
				"extCoeff": 100000.0,
				"qy": 0.7,
				"lifetime": 3.9,
				"spectra": [
					{"id": 90, "subtype": "EX", "data": [[500.0, 0.2], [569.0, 1.0]]},
					{"id": 91, "subtype": "EM", "data": [[594.0, 1.0], [640.0, 0.35]]}
				]
			}
		],
		"defaultState": {"id": 821}
	}}}`

	filterSpectrumFixture = `{"data": {"spectrum": {
		"id": 5859,
		"subtype": "BM",
		"data": [[500.0, 0.02], [525.0, 0.96], [550.0, 0.03]],
		"ownerFilter": {
			"id": 130,
			"name": "Chroma ET525/50m",
			"manufacturer": "Chroma",
			"bandcenter": 525.0,
			"bandwidth": 50.0,
			"edge": null,
			"spectrum": {"id": 5859, "subtype": "BM", "data": [[500.0, 0.02], [525.0, 0.96], [550.0, 0.03]]}
		},
		"ownerCamera": null,
		"ownerLight": null
	}}}`

	cameraSpectrumFixture = `{"data": {"spectrum": {
		"id": 412,
		"subtype": "QE",
		"data": [[500.0, 0.72], [600.0, 0.68]],
		"ownerFilter": null,
		"ownerCamera": {
			"id": 41,
			"name": "Andor Zyla 4.2",
			"manufacturer": "Andor",
			"spectrum": {"id": 412, "subtype": "QE", "data": [[500.0, 0.72], [600.0, 0.68]]}
		},
		"ownerLight": null
	}}}`

	lightSpectrumFixture = `{"data": {"spectrum": {
		"id": 501,
		"subtype": "PD",
		"data": [[480.0, 0.8], [560.0, 0.75]],
		"ownerFilter": null,
		"ownerCamera": null,
		"ownerLight": {
			"id": 51,
			"name": "Lumencor SOLA",
			"manufacturer": "Lumencor",
			"spectrum": {"id": 501, "subtype": "PD", "data": [[480.0, 0.8], [560.0, 0.75]]}
		}
	}}}`
)
