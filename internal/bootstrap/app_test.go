package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/storefront-client/config"
	"github.com/target/storefront-client/internal/adapters/memory"
	domainauth "github.com/target/storefront-client/internal/domain/auth"
	apperrors "github.com/target/storefront-client/internal/errors"
	"github.com/target/storefront-client/internal/service"
	"github.com/target/storefront-client/internal/testutil"
)

func testConfig(t *testing.T, baseURL string, vars map[string]string) config.AppConfig {
	t.Helper()
	all := map[string]string{
		"API_BASE_URL":    baseURL,
		"API_TIMEOUT":     "2s",
		"STORAGE_BACKEND": "memory",
	}
	for k, v := range vars {
		all[k] = v
	}
	cfg, err := LoadConfigFrom(all)
	require.NoError(t, err)
	return cfg
}

func newTestApp(t *testing.T, cfg config.AppConfig, storage *memory.Storage) *App {
	t.Helper()
	opts := AppOptions{Config: cfg}
	if storage != nil {
		opts.Storage = storage
	}
	app, err := NewApp(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestApp_LoginThenVisitProtectedPage(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddAccount("a@b.com", "secret", testutil.TestAuthResponse())
	app := newTestApp(t, testConfig(t, backend.URL(), nil), nil)
	ctx := context.Background()

	loc, err := app.Router.Push(ctx, "/profile")
	require.NoError(t, err)
	assert.Equal(t, "/login?redirect=%2Fprofile", loc.FullPath())

	_, err = app.Auth.Login(ctx, service.LoginInput{
		Email:    "a@b.com",
		Password: "secret",
		Redirect: loc.Query.Get("redirect"),
	})
	require.NoError(t, err)

	assert.Equal(t, "/profile", app.Router.CurrentPath())
	assert.Equal(t, "Ana Diaz", app.Session.FullName())

	// every call carries a request id; the profile call carries the token
	var profile map[string]any
	require.NoError(t, app.Client.GetJSON(ctx, testutil.ProfilePath, &profile))
	last := backend.LastRequest()
	assert.Equal(t, "Bearer T1", last.Authorization)
	for _, req := range backend.Requests() {
		assert.NotEmpty(t, req.RequestID, req.Path)
	}
	assert.Equal(t, "a@b.com", profile["email"])
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddAccount("a@b.com", "secret", testutil.NewAuthResponse().WithRole(domainauth.RoleSeller).Build())
	cfg := testConfig(t, backend.URL(), map[string]string{
		"STORAGE_BACKEND": "bolt",
		"STORAGE_PATH":    filepath.Join(t.TempDir(), "session.db"),
	})
	ctx := context.Background()

	first, err := NewApp(ctx, AppOptions{Config: cfg})
	require.NoError(t, err)
	_, err = first.Auth.Login(ctx, service.LoginInput{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := newTestApp(t, cfg, nil)
	require.True(t, second.Session.RestoreSession(ctx))
	assert.Equal(t, domainauth.RoleSeller, second.Session.Role())

	loc, err := second.Router.Push(ctx, "/seller")
	require.NoError(t, err)
	assert.Equal(t, "/seller", loc.Path)

	loc, err = second.Router.Push(ctx, "/admin")
	require.NoError(t, err)
	assert.Equal(t, "/", loc.Path, "seller is sent home from the admin page")
}

func TestApp_ExpiredTokenClearsSessionAndRedirects(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddAccount("a@b.com", "secret", testutil.TestAuthResponse())
	storage := memory.NewStorage()
	app := newTestApp(t, testConfig(t, backend.URL(), nil), storage)
	ctx := context.Background()

	_, err := app.Auth.Login(ctx, service.LoginInput{Email: "a@b.com", Password: "secret", Redirect: "/profile"})
	require.NoError(t, err)
	require.Equal(t, "/profile", app.Router.CurrentPath())

	backend.RevokeTokens()
	err = app.Client.GetJSON(ctx, testutil.ProfilePath, nil)

	require.Error(t, err, "the 401 still reaches the caller")
	assert.False(t, app.Session.IsLoggedIn())
	assert.Equal(t, 0, storage.Len())
	assert.Equal(t, "/login", app.Router.CurrentPath())
}

func TestApp_UnauthorizedPolicy(t *testing.T) {
	tests := []struct {
		policy   string
		wantPath string
	}{
		{policy: "all", wantPath: "/login"},
		{policy: "authenticated", wantPath: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			backend := testutil.NewFakeBackend(t)
			app := newTestApp(t, testConfig(t, backend.URL(), map[string]string{"AUTH_UNAUTHORIZED_POLICY": tt.policy}), nil)
			ctx := context.Background()
			require.Equal(t, "/", app.Router.CurrentPath())

			// anonymous sign-in with bad credentials answers 401
			_, err := app.Users.SignIn(ctx, "a@b.com", "wrong")

			require.True(t, apperrors.IsUnauthorizedStatus(err))
			assert.Equal(t, tt.wantPath, app.Router.CurrentPath())
		})
	}
}

func TestApp_RegisterThenLogin(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	app := newTestApp(t, testConfig(t, backend.URL(), map[string]string{"VALIDATION_MIN_AGE": "18"}), nil)
	ctx := context.Background()

	in := testutil.TestSignUpInput()
	_, err := app.Auth.Register(ctx, service.RegisterInput{SignUpInput: in, ConfirmPassword: in.Password})
	require.NoError(t, err)
	assert.False(t, app.Session.IsLoggedIn())
	assert.Equal(t, "/login", app.Router.CurrentPath())

	young := in
	young.Email = "kid@b.com"
	young.DateOfBirth = time.Now().AddDate(-15, 0, 0).Format("2006-01-02")
	_, err = app.Auth.Register(ctx, service.RegisterInput{SignUpInput: young, ConfirmPassword: young.Password})
	require.True(t, apperrors.IsValidation(err))
	assert.True(t, strings.Contains(err.Error(), "18"), err.Error())
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := testConfig(t, "not a url", nil)

	_, err := NewApp(context.Background(), AppOptions{Config: cfg})

	assert.Error(t, err)
}
