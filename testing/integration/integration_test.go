// testing/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reddit-search-mcp/internal/app"
	"reddit-search-mcp/internal/config"
	"reddit-search-mcp/internal/models"
	"reddit-search-mcp/testing/fixtures"
)

// newUpstream serves page1 for the first request and page2 when after=t3_def456.
func newUpstream(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	page1 := fixtures.MustLoadFixture("search_page1.json")
	page2 := fixtures.MustLoadFixture("search_page2.json")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.Header.Get("x-api-key") != "integration-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("after") {
		case "":
			_, _ = w.Write(page1)
		case "t3_def456":
			_, _ = w.Write(page2)
		default:
			_, _ = w.Write([]byte(`{"success":true,"posts":[]}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newApp(t *testing.T, baseURL, apiKey string) *app.App {
	t.Helper()
	cfg := &config.Config{
		APIKey:         apiKey,
		BaseURL:        baseURL,
		MaxRetries:     1,
		RequestTimeout: 5 * time.Second,
		OutputDir:      t.TempDir(),
	}
	a, err := app.Initialize(cfg, nil)
	require.NoError(t, err)
	return a
}

func get(t *testing.T, a *app.App, target string) (*httptest.ResponseRecorder, models.SearchResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var resp models.SearchResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestSearchEndpointIntegration(t *testing.T) {
	var calls int32
	upstream := newUpstream(t, &calls)
	a := newApp(t, upstream.URL, "integration-key")

	rec, resp := get(t, a, "/search?query=golang&sort=top&timeframe=week")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "t3_def456", resp.After)
	assert.Empty(t, resp.FilePath)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "abc123", resp.Posts[0].ID)
	assert.Equal(t, "news", resp.Posts[0].Flair)
	assert.Equal(t, "2025-08-12T12:00:00Z", resp.Posts[0].CreatedAtISO)
	assert.Equal(t, "2025-08-12T13:00:00Z", resp.Posts[1].CreatedAtISO)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPaginatedEndpointIntegration(t *testing.T) {
	var calls int32
	upstream := newUpstream(t, &calls)
	a := newApp(t, upstream.URL, "integration-key")

	rec, resp := get(t, a, "/search/paginated?query=golang&limit=10")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, 3, resp.Count)
	assert.Empty(t, resp.After)
	require.Len(t, resp.Posts, 3)
	assert.Equal(t, "ghi789", resp.Posts[2].ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	rec, resp = get(t, a, "/search/paginated?query=golang&limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Posts, 2)
}

func TestFileModeIntegration(t *testing.T) {
	var calls int32
	upstream := newUpstream(t, &calls)
	a := newApp(t, upstream.URL, "integration-key")

	rec, resp := get(t, a, "/search/paginated?query=golang&limit=10&return_mode=file")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, resp.Posts)
	assert.Equal(t, 3, resp.Count)
	require.NotEmpty(t, resp.FilePath)
	assert.Equal(t, a.Config.OutputDir, filepath.Dir(resp.FilePath))

	data, err := os.ReadFile(resp.FilePath)
	require.NoError(t, err)

	var file models.SearchFile
	require.NoError(t, json.Unmarshal(data, &file))
	assert.Equal(t, "golang", file.Query)
	assert.Equal(t, 3, file.Count)
	assert.Len(t, file.Posts, 3)
}

func TestErrorMappingIntegration(t *testing.T) {
	var calls int32
	upstream := newUpstream(t, &calls)

	a := newApp(t, upstream.URL, "wrong-key")
	rec, _ := get(t, a, "/search?query=golang")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = get(t, a, "/search?query=golang&sort=hot")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "validation must not reach the upstream")

	a = newApp(t, "http://127.0.0.1:1", "integration-key")
	rec, _ = get(t, a, "/search?query=golang")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body models.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "connection", body.Kind)
}

// mcpPost sends one JSON-RPC message to the streamable MCP endpoint.
func mcpPost(t *testing.T, a *app.App, sessionID string, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if sessionID != "" {
		req.Header.Set("Mcp-Session-Id", sessionID)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestMCPOverHTTPIntegration(t *testing.T) {
	var calls int32
	upstream := newUpstream(t, &calls)
	a := newApp(t, upstream.URL, "integration-key")

	rec := mcpPost(t, a, "", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"integration","version":"1.0"}}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sessionID := rec.Header().Get("Mcp-Session-Id")
	require.NotEmpty(t, sessionID)
	assert.Contains(t, rec.Body.String(), "reddit-search-mcp")

	rec = mcpPost(t, a, sessionID, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	assert.Less(t, rec.Code, 300)

	rec = mcpPost(t, a, sessionID, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"reddit_search","arguments":{"query":"golang","max_results":1}}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rpc struct {
		Result struct {
			IsError bool `json:"isError"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(rec.Body.Bytes()), &rpc))
	require.False(t, rpc.Result.IsError)
	require.NotEmpty(t, rpc.Result.Content)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(rpc.Result.Content[0].Text), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "abc123", resp.Posts[0].ID)

	rec = mcpPost(t, a, sessionID, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"reddit_search","arguments":{"query":"golang","sort":"hot"}}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"isError":true`))
	assert.Contains(t, rec.Body.String(), "validation error")
}
