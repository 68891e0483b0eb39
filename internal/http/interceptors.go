package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/target/storefront-client/internal/ports"
)

// Interceptor wraps a RoundTripper with extra request or response handling.
type Interceptor func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain wraps base with interceptors. The first interceptor is the outermost:
// it sees the request first and the response last.
func Chain(base http.RoundTripper, interceptors ...Interceptor) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	rt := base
	for i := len(interceptors) - 1; i >= 0; i-- {
		rt = interceptors[i](rt)
	}
	return rt
}

// TokenSource supplies the current bearer token; "" means none.
type TokenSource interface {
	Token() string
}

// BearerToken attaches "Authorization: Bearer <token>" when a token is available.
// The outgoing request is a clone; the caller's request is never modified.
func BearerToken(src TokenSource) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if token := src.Token(); token != "" {
				r = r.Clone(r.Context())
				r.Header.Set("Authorization", "Bearer "+token)
			}
			return next.RoundTrip(r)
		})
	}
}

// RequestID sets header to a random UUID unless the request already has one.
func RequestID(header string) Interceptor {
	if header == "" {
		header = "X-Request-ID"
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(header) == "" {
				r = r.Clone(r.Context())
				r.Header.Set(header, uuid.NewString())
			}
			return next.RoundTrip(r)
		})
	}
}

// SessionClearer drops the client's authentication state.
type SessionClearer interface {
	ClearAuth(ctx context.Context)
}

// UnauthorizedConfig configures ClearOnUnauthorized.
type UnauthorizedConfig struct {
	Session   SessionClearer  // Required
	Navigator ports.Navigator // Optional: no redirect when nil
	LoginPath string
	// OnlyAuthenticated limits clearing to 401s answering a request that carried credentials.
	OnlyAuthenticated bool
	Logger            *slog.Logger
}

// ClearOnUnauthorized clears the session when the backend answers 401 and sends
// the user to the login page unless they are already there. The response and
// error are passed through unchanged.
func ClearOnUnauthorized(cfg UnauthorizedConfig) Interceptor {
	if cfg.Session == nil {
		panic("ClearOnUnauthorized requires Session")
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(r)
			if resp == nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}
			if cfg.OnlyAuthenticated && r.Header.Get("Authorization") == "" {
				return resp, err
			}

			ctx := r.Context()
			logger.InfoContext(ctx, "backend rejected credentials, clearing session",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			cfg.Session.ClearAuth(ctx)
			if cfg.Navigator != nil && cfg.Navigator.CurrentPath() != loginPath {
				cfg.Navigator.Redirect(ctx, loginPath)
			}
			return resp, err
		})
	}
}

// Logging logs every round trip at debug level.
func Logging(logger *slog.Logger) Interceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)
			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Duration("duration", time.Since(start)),
			}
			if resp != nil {
				attrs = append(attrs, slog.Int("status", resp.StatusCode))
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			logger.DebugContext(r.Context(), "http", attrs...)
			return resp, err
		})
	}
}
