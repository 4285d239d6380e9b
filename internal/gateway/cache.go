package gateway

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

// cachedResponse is the part of an HTTP response needed to replay it.
type cachedResponse struct {
	status     string
	statusCode int
	header     http.Header
	body       []byte
}

// CachingTransport is an http.RoundTripper that keeps successful GET responses
// in memory, keyed by request URL. Entries expire after the configured TTL and
// the least recently used entry is evicted once the size limit is reached.
type CachingTransport struct {
	base   http.RoundTripper
	cache  *expirable.LRU[string, cachedResponse]
	logger *logrus.Logger
}

// NewCachingTransport wraps base (http.DefaultTransport when nil).
func NewCachingTransport(base http.RoundTripper, size int, ttl time.Duration, logger *logrus.Logger) *CachingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &CachingTransport{
		base:   base,
		cache:  expirable.NewLRU[string, cachedResponse](size, nil, ttl),
		logger: logger,
	}
}

func (t *CachingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.base.RoundTrip(req)
	}
	key := req.URL.String()
	if entry, ok := t.cache.Get(key); ok {
		t.logger.WithField("url", key).Debug("cache hit")
		return entry.response(req), nil
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	entry := cachedResponse{
		status:     resp.Status,
		statusCode: resp.StatusCode,
		header:     resp.Header.Clone(),
		body:       body,
	}
	t.cache.Add(key, entry)
	t.logger.WithField("url", key).Debug("cached response")

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

// Len returns the number of entries held, including expired ones not yet swept.
func (t *CachingTransport) Len() int {
	return t.cache.Len()
}

// Purge drops every cached response.
func (t *CachingTransport) Purge() {
	t.cache.Purge()
}

func (c cachedResponse) response(req *http.Request) *http.Response {
	return &http.Response{
		Status:        c.status,
		StatusCode:    c.statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        c.header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(c.body)),
		ContentLength: int64(len(c.body)),
		Request:       req,
	}
}
