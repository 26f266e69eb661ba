// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds outbound service calls when no explicit timeout
// is configured.
const DefaultTimeout = 10 * time.Second

// NewHTTPClient builds the client used for outbound service calls. A
// zero or negative timeout falls back to DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
	}
}
