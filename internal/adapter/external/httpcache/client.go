// Package httpcache provides the shared outbound HTTP client used for every
// upstream provider, with an in-memory response cache in front of the
// connection pool.
package httpcache

import (
	"net"
	"net/http"
	"time"
)

// NewPooledTransport returns a transport that reuses TCP connections.
func NewPooledTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   10,
	}
}

// NewClient builds a client with a request timeout and a response cache of
// the given ttl. The returned Transport exposes cache stats and Close.
func NewClient(timeout, ttl time.Duration) (*http.Client, *Transport) {
	cache := NewTransport(NewPooledTransport(), ttl)
	return &http.Client{
		Timeout:   timeout,
		Transport: cache,
	}, cache
}
