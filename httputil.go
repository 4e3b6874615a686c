package rebalance

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// contains http utils to deal with remote price services

// diskCache implements a simple disk cache for HTTP responses.
//
// Entries are keyed by time bucket of length ttl, so they expire when the
// bucket changes.
type diskCache struct {
	base http.RoundTripper
	ttl  time.Duration
	dir  string // os.TempDir() if empty
	now  func() time.Time
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	bucket := c.now().Truncate(c.ttl).Unix()
	key := fmt.Sprintf("%d %s %s", bucket, req.Method, req.URL.String())
	key = fmt.Sprintf("rbl-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		log.Debug().Str("url", req.URL.Redacted()).Msg("cache hit")
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Warn().Err(err).Msg("cache write error (ignored)")
	}
	return resp, nil
}

func (c *diskCache) file(key string) string {
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(c.file(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache. The response body is restored so that
// the caller can still read it.
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(c.file(key), content, 0o600)
}

// newCachingClient returns an http.Client that caches responses on disk for ttl.
func newCachingClient(ttl time.Duration) *http.Client {
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: &diskCache{base: http.DefaultTransport, ttl: ttl, now: time.Now},
	}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
