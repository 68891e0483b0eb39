package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/storefront-client/config"
	httpx "github.com/target/storefront-client/internal/http"
	"github.com/target/storefront-client/internal/ports"
	"github.com/target/storefront-client/internal/router"
	"github.com/target/storefront-client/internal/service"
	"github.com/target/storefront-client/internal/validation"
)

// AppOptions contains the inputs for NewApp.
type AppOptions struct {
	Config config.AppConfig
	Logger *slog.Logger
	// Storage overrides the configured backend. The caller keeps ownership.
	Storage ports.Storage
}

// App is the wired client: session, router, API client and auth flows.
type App struct {
	Config  config.AppConfig
	Logger  *slog.Logger
	Session *service.SessionStore
	Router  *router.Router
	Client  *httpx.Client
	Users   *service.UserService
	Auth    *service.AuthService

	closeStorage func() error
}

// NewApp builds the application graph from configuration.
func NewApp(ctx context.Context, opts AppOptions) (*App, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	storage := opts.Storage
	closeStorage := func() error { return nil }
	if storage == nil {
		var err error
		storage, closeStorage, err = BuildStorage(ctx, StorageConfig{
			Storage: cfg.Storage,
			Redis:   cfg.Redis,
			Logger:  logger,
		})
		if err != nil {
			return nil, err
		}
	}

	app, err := wireApp(cfg, logger, storage)
	if err != nil {
		if cerr := closeStorage(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close storage: %w", cerr))
		}
		return nil, err
	}
	app.closeStorage = closeStorage
	return app, nil
}

func wireApp(cfg config.AppConfig, logger *slog.Logger, storage ports.Storage) (*App, error) {
	session := service.NewSessionStore(service.SessionStoreOptions{
		Storage: storage,
		Keys: service.SessionKeys{
			Token:     cfg.Auth.TokenKey,
			User:      cfg.Auth.UserKey,
			RoleClaim: cfg.Auth.RoleClaim,
		},
		Logger: logger,
	})

	paths := router.Paths{
		Login:         cfg.Auth.LoginPath,
		Home:          cfg.Auth.HomePath,
		RedirectParam: cfg.Auth.RedirectParam,
	}
	guards := router.NewGuards(session, paths, logger)
	rt := router.NewRouter(router.RouterOptions{
		Routes: router.DefaultRoutes(guards),
		Start:  guards.Paths().Home,
		Logger: logger,
	})

	client, err := newAPIClient(cfg, logger, session, rt)
	if err != nil {
		return nil, err
	}

	users, err := service.NewUserService(service.UserServiceOptions{
		Client:       client,
		ErrorMessage: service.ErrorMessageConfig{Path: cfg.API.ErrorMessagePath},
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}

	auth := service.NewAuthService(service.AuthServiceOptions{
		API:     users,
		Session: session,
		Flow: service.AuthFlowConfig{
			Rules: validation.Rules{
				PasswordMinLength: cfg.Validation.PasswordMinLength,
				MinAge:            cfg.Validation.MinAge,
				MaxAge:            cfg.Validation.MaxAge,
				Now:               time.Now,
			},
			Paths:     guards.Paths(),
			Navigator: rt,
		},
		Logger: logger,
	})

	return &App{
		Config:  cfg,
		Logger:  logger,
		Session: session,
		Router:  rt,
		Client:  client,
		Users:   users,
		Auth:    auth,
	}, nil
}

// newAPIClient builds the backend client with its interceptor chain, outermost first.
func newAPIClient(cfg config.AppConfig, logger *slog.Logger, session *service.SessionStore, nav ports.Navigator) (*httpx.Client, error) {
	transport := httpx.Chain(http.DefaultTransport,
		httpx.Logging(logger),
		httpx.RequestID(cfg.API.RequestIDHeader),
		httpx.BearerToken(session),
		httpx.ClearOnUnauthorized(httpx.UnauthorizedConfig{
			Session:           session,
			Navigator:         nav,
			LoginPath:         cfg.Auth.LoginPath,
			OnlyAuthenticated: cfg.Auth.UnauthorizedPolicy == config.UnauthorizedPolicyAuthenticated,
			Logger:            logger,
		}),
	)

	clientCfg := httpx.ClientConfig{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		Transport: transport,
	}
	if cfg.API.CookieJar {
		jar, err := httpx.NewCookieJar()
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		clientCfg.Jar = jar
	}

	client, err := httpx.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	return client, nil
}

// Close releases storage opened by NewApp.
func (a *App) Close() error {
	if a == nil || a.closeStorage == nil {
		return nil
	}
	return a.closeStorage()
}
