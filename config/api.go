package config

import (
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPITimeout       = 15 * time.Second
	defaultErrorMessagePath = "message"
)

// APIConfig contains configuration for the backend API client.
type APIConfig struct {
	// BaseURL is the backend origin the sign-up and sign-in endpoints hang off.
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5231"`

	// Timeout bounds a single request including reading the body.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// ErrorMessagePath is a JMESPath expression selecting the human-readable
	// message from an error response body.
	ErrorMessagePath string `env:"API_ERROR_MESSAGE_PATH" envDefault:"message"`

	// RequestIDHeader names the header carrying a per-request correlation ID.
	// Empty disables the header.
	RequestIDHeader string `env:"API_REQUEST_ID_HEADER" envDefault:"X-Request-ID"`

	// CookieJar keeps cookies set by the backend across requests of one process.
	CookieJar bool `env:"API_COOKIE_JAR" envDefault:"true"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
	a.ErrorMessagePath = strings.TrimSpace(a.ErrorMessagePath)
	if a.ErrorMessagePath == "" {
		a.ErrorMessagePath = defaultErrorMessagePath
	}
	a.RequestIDHeader = http.CanonicalHeaderKey(strings.TrimSpace(a.RequestIDHeader))
}
