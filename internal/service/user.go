package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/target/storefront-client/internal/domain/auth"
	apperrors "github.com/target/storefront-client/internal/errors"
	httpx "github.com/target/storefront-client/internal/http"
	"github.com/target/storefront-client/internal/ports"
)

// Backend account endpoints.
const (
	SignUpPath = "/api/user/signup"
	SignInPath = "/api/user/signin"
)

// DefaultErrorMessagePath is where the backend puts the human-readable error.
const DefaultErrorMessagePath = "message"

var _ ports.UserAPI = (*UserService)(nil)

// JSONPoster sends a JSON body and decodes a JSON answer.
type JSONPoster interface {
	PostJSON(ctx context.Context, path string, body, out any) error
}

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// ErrorMessageConfig selects the message inside an error payload.
type ErrorMessageConfig struct {
	Path      string            // JMESPath expression, default "message"
	Evaluator JMESPathEvaluator // Optional
}

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Client       JSONPoster // Required
	ErrorMessage ErrorMessageConfig
	Logger       *slog.Logger
}

// UserService calls the backend's sign-up and sign-in endpoints and turns every
// failure into an *apperrors.APIError.
type UserService struct {
	client  JSONPoster
	msgPath string
	jems    JMESPathEvaluator
	logger  *slog.Logger
}

// NewUserService constructs a UserService. It fails when the error message
// path is not a valid JMESPath expression.
func NewUserService(opts UserServiceOptions) (*UserService, error) {
	if opts.Client == nil {
		return nil, errors.New("user service requires a client")
	}
	jems := opts.ErrorMessage.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	path := strings.TrimSpace(opts.ErrorMessage.Path)
	if path == "" {
		path = DefaultErrorMessagePath
	}
	if err := jems.Validate(path); err != nil {
		return nil, fmt.Errorf("invalid error message JMESPath: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		client:  opts.Client,
		msgPath: path,
		jems:    jems,
		logger:  logger.With("component", "user_service"),
	}, nil
}

// signUpRequest is the registration body. Empty fields are sent as null.
type signUpRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	DateOfBirth *string `json:"dateOfBirth"`
	Country     *string `json:"country"`
	Address     *string `json:"address"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Type        *string `json:"type"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// SignUp registers an account. The answer carries a token only when the
// backend logs the new account in.
func (s *UserService) SignUp(ctx context.Context, in domainauth.SignUpInput) (domainauth.AuthResponse, error) {
	body := signUpRequest{
		FirstName:   nullable(in.FirstName),
		LastName:    nullable(in.LastName),
		DateOfBirth: nullable(in.DateOfBirth),
		Country:     nullable(in.Country),
		Address:     nullable(in.Address),
		Email:       nullable(in.Email),
		Password:    nullable(in.Password),
		Type:        nullable(string(in.Type)),
	}

	var resp domainauth.AuthResponse
	if err := s.client.PostJSON(ctx, SignUpPath, body, &resp); err != nil {
		apiErr := s.normalizeError(ctx, err)
		s.logger.WarnContext(ctx, "sign up failed", slog.Int("status", apiErr.Status), slog.String("message", apiErr.Message))
		return domainauth.AuthResponse{}, apiErr
	}
	return resp, nil
}

// SignIn exchanges credentials for a token and the user's identity.
func (s *UserService) SignIn(ctx context.Context, email, password string) (domainauth.AuthResponse, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp domainauth.AuthResponse
	if err := s.client.PostJSON(ctx, SignInPath, body, &resp); err != nil {
		apiErr := s.normalizeError(ctx, err)
		s.logger.WarnContext(ctx, "sign in failed", slog.Int("status", apiErr.Status), slog.String("message", apiErr.Message))
		return domainauth.AuthResponse{}, apiErr
	}
	return resp, nil
}

// normalizeError maps client failures onto the three APIError shapes:
// the server answered, nothing answered, or the request never went out.
func (s *UserService) normalizeError(ctx context.Context, err error) *apperrors.APIError {
	var (
		statusErr    *httpx.StatusError
		transportErr *httpx.TransportError
		requestErr   *httpx.RequestError
	)
	switch {
	case errors.As(err, &statusErr):
		data := decodePayload(statusErr.Body)
		msg := s.messageFrom(ctx, data)
		if msg == "" {
			msg = domainauth.MsgServerError
		}
		return &apperrors.APIError{Message: msg, Status: statusErr.StatusCode, Data: data, Cause: err}
	case errors.As(err, &transportErr):
		return &apperrors.APIError{Message: domainauth.MsgNetworkError, Status: apperrors.StatusNoResponse, Cause: err}
	case errors.As(err, &requestErr):
		return &apperrors.APIError{Message: messageOr(requestErr.Err), Status: apperrors.StatusRequestFailed, Cause: err}
	default:
		return &apperrors.APIError{Message: messageOr(err), Status: apperrors.StatusRequestFailed, Cause: err}
	}
}

func messageOr(err error) string {
	if err == nil || err.Error() == "" {
		return domainauth.MsgUnknownError
	}
	return err.Error()
}

// decodePayload returns the JSON body, the raw text when it is not JSON, or nil when empty.
func decodePayload(body []byte) any {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}
	var data any
	if err := json.Unmarshal([]byte(trimmed), &data); err != nil {
		return trimmed
	}
	return data
}

func (s *UserService) messageFrom(ctx context.Context, data any) string {
	if data == nil {
		return ""
	}
	if _, isText := data.(string); isText {
		return ""
	}
	v, err := s.jems.Evaluate(s.msgPath, data)
	if err != nil {
		s.logger.DebugContext(ctx, "error message path did not evaluate", slog.String("path", s.msgPath), slog.Any("error", err))
		return ""
	}
	msg, _ := v.(string)
	return strings.TrimSpace(msg)
}
