package httpx

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/storefront-client/internal/mocks"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type countingClearer struct {
	mu    sync.Mutex
	calls int
}

func (c *countingClearer) ClearAuth(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
}

func (c *countingClearer) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// respond returns a terminal RoundTripper that records the request it saw.
func respond(status int, seen **http.Request) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if seen != nil {
			*seen = r
		}
		rec := httptest.NewRecorder()
		rec.WriteHeader(status)
		resp := rec.Result()
		resp.Request = r
		return resp, nil
	})
}

func newRequest(t *testing.T, header map[string]string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://api.test/api/user/me", nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	return req
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Interceptor {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name+">")
				resp, err := next.RoundTrip(r)
				order = append(order, "<"+name)
				return resp, err
			})
		}
	}

	rt := Chain(respond(http.StatusOK, nil), mark("a"), mark("b"))
	_, err := rt.RoundTrip(newRequest(t, nil))

	require.NoError(t, err)
	assert.Equal(t, []string{"a>", "b>", "<b", "<a"}, order)
}

func TestBearerToken(t *testing.T) {
	t.Run("attaches token", func(t *testing.T) {
		var seen *http.Request
		req := newRequest(t, nil)

		_, err := BearerToken(staticToken("T1"))(respond(http.StatusOK, &seen)).RoundTrip(req)

		require.NoError(t, err)
		assert.Equal(t, "Bearer T1", seen.Header.Get("Authorization"))
		assert.Empty(t, req.Header.Get("Authorization"), "caller request must not be mutated")
	})

	t.Run("no token leaves header absent", func(t *testing.T) {
		var seen *http.Request
		_, err := BearerToken(staticToken(""))(respond(http.StatusOK, &seen)).RoundTrip(newRequest(t, nil))

		require.NoError(t, err)
		assert.Empty(t, seen.Header.Get("Authorization"))
	})

	t.Run("replaces stale header", func(t *testing.T) {
		var seen *http.Request
		req := newRequest(t, map[string]string{"Authorization": "Bearer OLD"})
		_, err := BearerToken(staticToken("T2"))(respond(http.StatusOK, &seen)).RoundTrip(req)

		require.NoError(t, err)
		assert.Equal(t, "Bearer T2", seen.Header.Get("Authorization"))
	})
}

func TestRequestID(t *testing.T) {
	t.Run("generates uuid", func(t *testing.T) {
		var seen *http.Request
		_, err := RequestID("X-Request-ID")(respond(http.StatusOK, &seen)).RoundTrip(newRequest(t, nil))

		require.NoError(t, err)
		_, parseErr := uuid.Parse(seen.Header.Get("X-Request-ID"))
		assert.NoError(t, parseErr)
	})

	t.Run("keeps caller id", func(t *testing.T) {
		var seen *http.Request
		req := newRequest(t, map[string]string{"X-Correlation-ID": "abc"})
		_, err := RequestID("X-Correlation-ID")(respond(http.StatusOK, &seen)).RoundTrip(req)

		require.NoError(t, err)
		assert.Equal(t, "abc", seen.Header.Get("X-Correlation-ID"))
	})

	t.Run("attached once across nested interceptors", func(t *testing.T) {
		var seen *http.Request
		rt := Chain(respond(http.StatusOK, &seen), RequestID(""), RequestID(""))
		_, err := rt.RoundTrip(newRequest(t, nil))

		require.NoError(t, err)
		assert.Len(t, seen.Header.Values("X-Request-ID"), 1)
	})
}

func TestClearOnUnauthorized(t *testing.T) {
	tests := []struct {
		name              string
		status            int
		currentPath       string
		onlyAuthenticated bool
		authorization     string
		wantClear         bool
		wantRedirect      bool
	}{
		{name: "401 away from login", status: 401, currentPath: "/profile", wantClear: true, wantRedirect: true},
		{name: "401 on login page", status: 401, currentPath: "/login", wantClear: true},
		{name: "403 is not 401", status: 403, currentPath: "/profile"},
		{name: "500", status: 500, currentPath: "/profile"},
		{name: "200", status: 200, currentPath: "/profile"},
		{name: "anonymous 401 under authenticated policy", status: 401, currentPath: "/profile", onlyAuthenticated: true},
		{
			name: "authenticated 401 under authenticated policy", status: 401, currentPath: "/profile",
			onlyAuthenticated: true, authorization: "Bearer T1", wantClear: true, wantRedirect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			nav := mocks.NewMockNavigator(ctrl)
			clearer := &countingClearer{}

			if tt.wantClear {
				nav.EXPECT().CurrentPath().Return(tt.currentPath)
			}
			if tt.wantRedirect {
				nav.EXPECT().Redirect(gomock.Any(), "/login")
			}

			rt := ClearOnUnauthorized(UnauthorizedConfig{
				Session:           clearer,
				Navigator:         nav,
				LoginPath:         "/login",
				OnlyAuthenticated: tt.onlyAuthenticated,
			})(respond(tt.status, nil))

			header := map[string]string{}
			if tt.authorization != "" {
				header["Authorization"] = tt.authorization
			}
			resp, err := rt.RoundTrip(newRequest(t, header))

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode, "response passes through unchanged")
			if tt.wantClear {
				assert.Equal(t, 1, clearer.Calls())
			} else {
				assert.Zero(t, clearer.Calls())
			}
		})
	}
}

func TestClearOnUnauthorized_PassesErrorsThrough(t *testing.T) {
	clearer := &countingClearer{}
	boom := errors.New("connection reset")
	rt := ClearOnUnauthorized(UnauthorizedConfig{Session: clearer})(RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	}))

	resp, err := rt.RoundTrip(newRequest(t, nil))

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, clearer.Calls())
}

func TestClearOnUnauthorized_RequiresSession(t *testing.T) {
	assert.Panics(t, func() { ClearOnUnauthorized(UnauthorizedConfig{}) })
}

func TestClient_UnauthorizedThroughChain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Token expired"}`))
	}))
	t.Cleanup(srv.Close)

	clearer := &countingClearer{}
	c, err := NewClient(ClientConfig{
		BaseURL: srv.URL,
		Transport: Chain(http.DefaultTransport,
			BearerToken(staticToken("T1")),
			ClearOnUnauthorized(UnauthorizedConfig{Session: clearer, OnlyAuthenticated: true}),
		),
	})
	require.NoError(t, err)

	err = c.GetJSON(context.Background(), "/api/user/me", nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr, "the 401 still reaches the caller")
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, 1, clearer.Calls())
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Logging(logger)(respond(http.StatusTeapot, nil)).RoundTrip(newRequest(t, nil))

	require.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.Contains(out, "status=418"), out)
	assert.Contains(t, out, "path=/api/user/me")
	assert.Contains(t, out, "method=GET")
}
