// testing/integration/proxy_test.go
package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reddit-search-mcp/internal/client"
	"reddit-search-mcp/internal/config"
	"reddit-search-mcp/internal/parser"
	"reddit-search-mcp/testing/fixtures"
)

// newForwardProxy answers absolute-form requests itself and counts them.
func newForwardProxy(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	page := fixtures.MustLoadFixture("search_listing.json")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.True(t, r.URL.IsAbs(), "proxy should receive an absolute request URI, got %s", r.URL)
		assert.Equal(t, "proxied-key", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(page)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProxyRotation(t *testing.T) {
	var hitsA, hitsB int32
	proxyA := newForwardProxy(t, &hitsA)
	proxyB := newForwardProxy(t, &hitsB)

	cfg := &config.Config{
		APIKey:         "proxied-key",
		BaseURL:        "http://scrapecreators.invalid/v1/reddit/search",
		ProxyURLs:      []string{proxyA.URL, proxyB.URL},
		MaxRetries:     1,
		RequestTimeout: 5 * time.Second,
	}
	c, err := client.NewSearchClient(cfg, nil)
	require.NoError(t, err)

	p := parser.NewRedditParser()
	for i := 0; i < 4; i++ {
		raw, err := c.Search(context.Background(), client.SearchParams{Query: "test"})
		require.NoError(t, err)

		posts, after, err := p.ParseSearch(context.Background(), raw)
		require.NoError(t, err)
		require.Len(t, posts, 1, "t1 children are skipped")
		assert.Equal(t, "t3_next123", after)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&hitsA))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hitsB))
}

// TestLiveSearch hits the real ScrapeCreators API. It runs only when
// LIVE_SEARCH_TEST=1 and an API key is configured.
func TestLiveSearch(t *testing.T) {
	if os.Getenv("LIVE_SEARCH_TEST") != "1" {
		t.Skip("set LIVE_SEARCH_TEST=1 to run against the live API")
	}

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	if cfg.APIKey == "" {
		t.Skip("REDDIT_API_KEY is not set")
	}

	for _, fingerprint := range []bool{false, true} {
		name := "standard_tls"
		if fingerprint {
			name = "fingerprinted_tls"
		}
		t.Run(name, func(t *testing.T) {
			cfg.TLSFingerprint = fingerprint
			c, err := client.NewSearchClient(cfg, nil)
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			raw, err := c.Search(ctx, client.SearchParams{Query: "golang", Sort: "new", Timeframe: "week"})
			require.NoError(t, err)

			posts, _, err := parser.NewRedditParser().ParseSearch(ctx, raw)
			require.NoError(t, err)
			t.Logf("%s: %d posts", name, len(posts))
		})
	}
}
