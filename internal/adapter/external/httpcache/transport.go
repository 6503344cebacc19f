package httpcache

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// DefaultTTL is how long upstream responses are reused
const DefaultTTL = time.Hour

const cleanupInterval = 5 * time.Minute

// Transport is an http.RoundTripper that keeps successful GET responses
// (and 404s, which upstreams use for "no data") in memory for a fixed TTL.
type Transport struct {
	next   http.RoundTripper
	ttl    time.Duration
	data   map[string]*cacheEntry
	mu     sync.RWMutex
	hits   int64
	misses int64
	now    func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

type cacheEntry struct {
	status    int
	header    http.Header
	body      []byte
	expiresAt time.Time
}

// Stats contains cache statistics
type Stats struct {
	Size    int     `json:"size"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
	TTL     string  `json:"ttl"`
}

// NewTransport wraps next. A non-positive ttl disables caching.
func NewTransport(next http.RoundTripper, ttl time.Duration) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	t := &Transport{
		next: next,
		ttl:  ttl,
		data: make(map[string]*cacheEntry),
		now:  time.Now,
		stop: make(chan struct{}),
	}

	if ttl > 0 {
		go t.cleanup()
	}

	return t
}

// RoundTrip serves from cache when possible, otherwise forwards to the
// wrapped transport and stores cacheable responses.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.ttl <= 0 || req.Method != http.MethodGet {
		return t.next.RoundTrip(req)
	}

	key := req.URL.String()
	if entry, ok := t.get(key); ok {
		return entry.response(req), nil
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if !cacheable(resp.StatusCode) {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	entry := &cacheEntry{
		status:    resp.StatusCode,
		header:    resp.Header.Clone(),
		body:      body,
		expiresAt: t.now().Add(t.ttl),
	}
	t.set(key, entry)

	return entry.response(req), nil
}

func cacheable(status int) bool {
	return (status >= 200 && status < 300) || status == http.StatusNotFound
}

func (e *cacheEntry) response(req *http.Request) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", e.status, http.StatusText(e.status)),
		StatusCode:    e.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        e.header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(e.body)),
		ContentLength: int64(len(e.body)),
		Request:       req,
	}
}

func (t *Transport) get(key string) (*cacheEntry, bool) {
	t.mu.RLock()
	entry, exists := t.data[key]
	t.mu.RUnlock()

	if !exists {
		t.mu.Lock()
		t.misses++
		t.mu.Unlock()
		return nil, false
	}

	if t.now().After(entry.expiresAt) {
		t.mu.Lock()
		delete(t.data, key)
		t.misses++
		t.mu.Unlock()
		return nil, false
	}

	t.mu.Lock()
	t.hits++
	t.mu.Unlock()

	return entry, true
}

func (t *Transport) set(key string, entry *cacheEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data[key] = entry
}

// Clear removes all entries and resets the counters
func (t *Transport) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data = make(map[string]*cacheEntry)
	t.hits = 0
	t.misses = 0
}

// Stats returns cache statistics
func (t *Transport) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := t.hits + t.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(t.hits) / float64(total)
	}

	return Stats{
		Size:    len(t.data),
		Hits:    t.hits,
		Misses:  t.misses,
		HitRate: hitRate,
		TTL:     t.ttl.String(),
	}
}

// Close stops the background cleanup
func (t *Transport) Close() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// cleanup periodically removes expired entries
func (t *Transport) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.removeExpired()
		case <-t.stop:
			return
		}
	}
}

func (t *Transport) removeExpired() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for key, entry := range t.data {
		if now.After(entry.expiresAt) {
			delete(t.data, key)
		}
	}
}
