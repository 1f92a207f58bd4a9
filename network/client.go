// Package network provides the HTTP clients used to talk to ad servers.
package network

import (
	"net/http"
	"time"
)

// Client is the shared HTTP client.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// newTransport clones the default transport with pool limits suited to
// fetching a VMAP playlist and its VAST documents in parallel.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 32
	t.MaxIdleConnsPerHost = 8
	t.MaxConnsPerHost = 16
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 15 * time.Second
	t.ExpectContinueTimeout = time.Second
	return t
}

// ForAds returns the client for ad requests. timeout bounds a single
// request; browserTLS presents a Chrome TLS fingerprint to ad servers that
// refuse Go's.
func ForAds(timeout time.Duration, browserTLS bool) *http.Client {
	if timeout <= 0 {
		timeout = Client.Timeout
	}

	var transport http.RoundTripper = Client.Transport
	if browserTLS {
		transport = NewBrowserTransport(Client.Transport)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
