package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"strings"
	"sync"

	domainauth "github.com/target/storefront-client/internal/domain/auth"
	apperrors "github.com/target/storefront-client/internal/errors"
	"github.com/target/storefront-client/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.UserAPI   = (*FakeUserAPI)(nil)
	_ ports.Navigator = (*RecordingNavigator)(nil)
)

// FakeUserAPI answers sign-in from a fixed credential table.
type FakeUserAPI struct {
	SignUpFunc func(ctx context.Context, in domainauth.SignUpInput) (domainauth.AuthResponse, error)
	SignInFunc func(ctx context.Context, email, password string) (domainauth.AuthResponse, error)

	// Accounts maps lower-cased email to the password and the sign-in body.
	Accounts map[string]FakeAccount

	mu          sync.Mutex
	signInCalls int
	signUps     []domainauth.SignUpInput
}

// FakeAccount is one entry in FakeUserAPI.Accounts.
type FakeAccount struct {
	Password string
	Response domainauth.AuthResponse
}

// NewFakeUserAPI creates a FakeUserAPI with no accounts.
func NewFakeUserAPI() *FakeUserAPI {
	return &FakeUserAPI{Accounts: make(map[string]FakeAccount)}
}

// SignIn returns the account body or a 401 APIError.
func (f *FakeUserAPI) SignIn(ctx context.Context, email, password string) (domainauth.AuthResponse, error) {
	f.mu.Lock()
	f.signInCalls++
	f.mu.Unlock()

	if f.SignInFunc != nil {
		return f.SignInFunc(ctx, email, password)
	}

	acc, ok := f.Accounts[strings.ToLower(email)]
	if !ok || acc.Password != password {
		return domainauth.AuthResponse{}, &apperrors.APIError{
			Message: "Invalid email or password",
			Status:  401,
			Data:    map[string]any{"message": "Invalid email or password"},
		}
	}
	return acc.Response, nil
}

// SignUp records the input and registers the account without a token.
func (f *FakeUserAPI) SignUp(ctx context.Context, in domainauth.SignUpInput) (domainauth.AuthResponse, error) {
	f.mu.Lock()
	f.signUps = append(f.signUps, in)
	f.mu.Unlock()

	if f.SignUpFunc != nil {
		return f.SignUpFunc(ctx, in)
	}

	key := strings.ToLower(in.Email)
	if _, exists := f.Accounts[key]; exists {
		return domainauth.AuthResponse{}, &apperrors.APIError{Message: "Email already registered", Status: 409}
	}
	resp := domainauth.AuthResponse{User: domainauth.User{
		ID:        "100",
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Type:      in.Type,
	}}
	f.Accounts[key] = FakeAccount{Password: in.Password, Response: resp}
	return resp, nil
}

// SignInCalls reports how many times SignIn ran.
func (f *FakeUserAPI) SignInCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signInCalls
}

// SignUps returns the recorded registration inputs.
func (f *FakeUserAPI) SignUps() []domainauth.SignUpInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domainauth.SignUpInput, len(f.signUps))
	copy(out, f.signUps)
	return out
}

// RecordingNavigator keeps a current path and records every redirect.
type RecordingNavigator struct {
	mu        sync.Mutex
	path      string
	redirects []string
}

// NewRecordingNavigator starts at path.
func NewRecordingNavigator(path string) *RecordingNavigator {
	return &RecordingNavigator{path: path}
}

func (n *RecordingNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *RecordingNavigator) Redirect(_ context.Context, path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
	n.redirects = append(n.redirects, path)
}

// Redirects returns the recorded redirect targets in order.
func (n *RecordingNavigator) Redirects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.redirects))
	copy(out, n.redirects)
	return out
}
