// Package qr holds the single mutable upload-URL value encoded into the QR
// code guests scan. The value lives in process memory only and resets to the
// configured default on restart.
package qr

import (
	"errors"
	"net/url"
	"sync"
)

// ErrInvalidURL is returned by Set for values that are not absolute http(s) URLs.
var ErrInvalidURL = errors.New("invalid URL format")

// Registry is a concurrency-safe single-slot holder for the QR target URL.
type Registry struct {
	mu  sync.RWMutex
	url string
}

// NewRegistry creates a registry initialized to defaultURL, typically derived
// from the server's host and port at startup.
func NewRegistry(defaultURL string) *Registry {
	return &Registry{url: defaultURL}
}

// Get returns the current QR target URL.
func (r *Registry) Get() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.url
}

// Set validates and atomically replaces the QR target URL. On a validation
// failure the previous value is kept.
func (r *Registry) Set(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return "", ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", ErrInvalidURL
	}

	r.mu.Lock()
	r.url = rawURL
	r.mu.Unlock()
	return rawURL, nil
}
