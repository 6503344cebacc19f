// Package threatintel holds the reputation and exposure providers: ipapi.is
// for threat flags and ASN data, Shodan InternetDB for exposed services and
// AbuseIPDB for abuse reports.
package threatintel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// DefaultTimeout applies when a client is built without an http.Client
const DefaultTimeout = 10 * time.Second

// ErrNotConfigured is returned by providers that need credentials they do
// not have. It marks a disabled feature, not a failed lookup.
var ErrNotConfigured = errors.New("provider not configured")

// StatusError reports a non-2xx upstream response
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status code: %d", e.Provider, e.StatusCode)
}

// IsNotFound reports whether err is an upstream 404
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

func defaultClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: DefaultTimeout}
}

// getJSON issues a GET and decodes a 2xx body into out
func getJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", provider, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Provider: provider, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", provider, err)
	}
	return nil
}

// orDefault returns v unless it is empty
func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
