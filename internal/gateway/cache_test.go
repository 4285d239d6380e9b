package gateway

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTransport answers every request with the configured status and
// records how many requests reached it.
type countingTransport struct {
	status int
	calls  int
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls++
	return &http.Response{
		StatusCode: c.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"url":"` + req.URL.String() + `"}`)),
		Request:    req,
	}, nil
}

func doGet(t *testing.T, rt http.RoundTripper, method, rawURL string) string {
	t.Helper()
	req, err := http.NewRequest(method, rawURL, nil)
	require.NoError(t, err)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCachingTransport(t *testing.T) {
	t.Run("replays a cached GET with the same body", func(t *testing.T) {
		base := &countingTransport{status: http.StatusOK}
		cache := NewCachingTransport(base, 8, time.Minute, discardLogger())

		first := doGet(t, cache, http.MethodGet, "https://api.github.com/users/alice")
		second := doGet(t, cache, http.MethodGet, "https://api.github.com/users/alice")

		assert.Equal(t, first, second)
		assert.Equal(t, 1, base.calls)
	})

	t.Run("keys by full URL", func(t *testing.T) {
		base := &countingTransport{status: http.StatusOK}
		cache := NewCachingTransport(base, 8, time.Minute, discardLogger())

		doGet(t, cache, http.MethodGet, "https://api.github.com/users/alice")
		doGet(t, cache, http.MethodGet, "https://api.github.com/users/alice/repos?per_page=100")

		assert.Equal(t, 2, base.calls)
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("does not cache failures", func(t *testing.T) {
		base := &countingTransport{status: http.StatusNotFound}
		cache := NewCachingTransport(base, 8, time.Minute, discardLogger())

		doGet(t, cache, http.MethodGet, "https://api.github.com/users/ghost")
		doGet(t, cache, http.MethodGet, "https://api.github.com/users/ghost")

		assert.Equal(t, 2, base.calls)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("does not cache non-GET requests", func(t *testing.T) {
		base := &countingTransport{status: http.StatusOK}
		cache := NewCachingTransport(base, 8, time.Minute, discardLogger())

		doGet(t, cache, http.MethodPost, "https://api.github.com/markdown")
		doGet(t, cache, http.MethodPost, "https://api.github.com/markdown")

		assert.Equal(t, 2, base.calls)
	})

	t.Run("expires entries after the TTL", func(t *testing.T) {
		base := &countingTransport{status: http.StatusOK}
		cache := NewCachingTransport(base, 8, 20*time.Millisecond, discardLogger())

		doGet(t, cache, http.MethodGet, "https://api.github.com/users/alice")
		time.Sleep(50 * time.Millisecond)
		doGet(t, cache, http.MethodGet, "https://api.github.com/users/alice")

		assert.Equal(t, 2, base.calls)
	})

	t.Run("evicts the least recently used entry at capacity", func(t *testing.T) {
		base := &countingTransport{status: http.StatusOK}
		cache := NewCachingTransport(base, 2, time.Minute, discardLogger())

		doGet(t, cache, http.MethodGet, "https://api.github.com/users/a")
		doGet(t, cache, http.MethodGet, "https://api.github.com/users/b")
		doGet(t, cache, http.MethodGet, "https://api.github.com/users/a") // a is now most recent
		doGet(t, cache, http.MethodGet, "https://api.github.com/users/c") // evicts b
		assert.Equal(t, 3, base.calls)

		doGet(t, cache, http.MethodGet, "https://api.github.com/users/a")
		assert.Equal(t, 3, base.calls)
		doGet(t, cache, http.MethodGet, "https://api.github.com/users/b")
		assert.Equal(t, 4, base.calls)
	})

	t.Run("purge empties the cache", func(t *testing.T) {
		base := &countingTransport{status: http.StatusOK}
		cache := NewCachingTransport(base, 8, time.Minute, discardLogger())

		doGet(t, cache, http.MethodGet, "https://api.github.com/users/alice")
		cache.Purge()
		doGet(t, cache, http.MethodGet, "https://api.github.com/users/alice")

		assert.Equal(t, 2, base.calls)
	})
}
