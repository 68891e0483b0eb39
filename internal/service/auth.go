package service

import (
	"context"
	"log/slog"

	domainauth "github.com/target/storefront-client/internal/domain/auth"
	apperrors "github.com/target/storefront-client/internal/errors"
	"github.com/target/storefront-client/internal/ports"
	"github.com/target/storefront-client/internal/router"
	"github.com/target/storefront-client/internal/validation"
)

// AuthFlowConfig holds the form rules and navigation used by AuthService.
type AuthFlowConfig struct {
	Rules     validation.Rules
	Paths     router.Paths
	Navigator ports.Navigator // Optional: no navigation when nil
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API     ports.UserAPI // Required
	Session *SessionStore // Required
	Flow    AuthFlowConfig
	Logger  *slog.Logger
}

// AuthService runs the login, registration and logout flows: validate the
// form, call the backend, update the session and move the user on.
type AuthService struct {
	api     ports.UserAPI
	session *SessionStore
	rules   validation.Rules
	paths   router.Paths
	nav     ports.Navigator
	logger  *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.API == nil {
		panic("AuthService requires API")
	}
	if opts.Session == nil {
		panic("AuthService requires Session")
	}
	rules := opts.Flow.Rules.WithDefaults()
	paths := opts.Flow.Paths.WithDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		api:     opts.API,
		session: opts.Session,
		rules:   rules,
		paths:   paths,
		nav:     opts.Flow.Navigator,
		logger:  logger.With("component", "auth_service"),
	}
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string
	Password string
	// Redirect is where to go after login; unsafe values fall back to home.
	Redirect string
}

// Login signs in and, on success, stores the session and navigates to the
// requested page. Form errors are returned as validation AppErrors naming the
// field; backend failures as *apperrors.APIError. A 401 answer is additionally
// wrapped in an unauthorized AppError.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (domainauth.AuthResponse, error) {
	fv := s.rules.SignIn(in.Email, in.Password)
	if !fv.Valid() {
		field, msg := fv.First(validation.FieldEmail, validation.FieldPassword)
		return domainauth.AuthResponse{}, apperrors.ValidationField(field, msg)
	}

	resp, err := s.api.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		if apiErr, ok := apperrors.AsAPIError(err); ok && apperrors.IsUnauthorizedStatus(err) {
			return domainauth.AuthResponse{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, apiErr.Message)
		}
		return domainauth.AuthResponse{}, err
	}
	if resp.Token == "" {
		return domainauth.AuthResponse{}, apperrors.Internalf("sign in for %s returned no token", in.Email)
	}

	s.session.SetUser(ctx, resp)
	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", string(resp.ID)))

	s.navigate(ctx, router.SafeRedirectPath(in.Redirect, s.paths.Home))
	return resp, nil
}

// RegisterInput is the registration form.
type RegisterInput struct {
	domainauth.SignUpInput
	ConfirmPassword string
}

// Register creates an account. When the backend answers with a token the
// new user is logged in and sent home; otherwise they are sent to the login page.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domainauth.AuthResponse, error) {
	fv := s.rules.SignUp(in.SignUpInput, in.ConfirmPassword)
	if !fv.Valid() {
		field, msg := fv.First(validation.SignUpFieldOrder...)
		return domainauth.AuthResponse{}, apperrors.ValidationField(field, msg)
	}

	resp, err := s.api.SignUp(ctx, in.SignUpInput)
	if err != nil {
		return domainauth.AuthResponse{}, err
	}
	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", string(resp.ID)))

	if resp.Token == "" {
		s.navigate(ctx, s.paths.Login)
		return resp, nil
	}

	if resp.Email == "" {
		// sign-up answers may omit identity fields the form already has
		resp.FirstName, resp.LastName, resp.Email = in.FirstName, in.LastName, in.Email
		if resp.Type == "" {
			resp.Type = in.Type
		}
	}
	s.session.SetUser(ctx, resp)
	s.navigate(ctx, s.paths.Home)
	return resp, nil
}

// Logout ends the session and returns to the login page.
func (s *AuthService) Logout(ctx context.Context) {
	s.session.Logout(ctx)
	s.navigate(ctx, s.paths.Login)
}

func (s *AuthService) navigate(ctx context.Context, path string) {
	if s.nav == nil {
		return
	}
	s.nav.Redirect(ctx, path)
}
