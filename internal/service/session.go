package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	domainauth "github.com/target/storefront-client/internal/domain/auth"
	apperrors "github.com/target/storefront-client/internal/errors"
	"github.com/target/storefront-client/internal/ports"
)

// Default storage keys and token claim for the session.
const (
	DefaultTokenKey  = "auth_token"
	DefaultUserKey   = "auth_user"
	DefaultRoleClaim = "role"

	// aspNetRoleClaim is where ASP.NET Core identity puts roles in issued tokens.
	aspNetRoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

// SessionKeys names the persisted keys and the token's role claim.
type SessionKeys struct {
	Token     string
	User      string
	RoleClaim string
}

func (k SessionKeys) withDefaults() SessionKeys {
	if k.Token == "" {
		k.Token = DefaultTokenKey
	}
	if k.User == "" {
		k.User = DefaultUserKey
	}
	if k.RoleClaim == "" {
		k.RoleClaim = DefaultRoleClaim
	}
	return k
}

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	Storage ports.Storage // Required
	Keys    SessionKeys   // Optional: zero values use the defaults
	Logger  *slog.Logger  // Optional
}

// SessionStore is the single source of truth for the client's authentication
// state. It mirrors the token and user to durable storage so a later process
// can restore them. Safe for concurrent use.
type SessionStore struct {
	storage ports.Storage
	keys    SessionKeys
	logger  *slog.Logger

	mu            sync.RWMutex
	user          *domainauth.User
	token         string
	authenticated bool

	restore singleflight.Group
}

// NewSessionStore constructs an empty (logged out) SessionStore.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	if opts.Storage == nil {
		panic("SessionStore requires Storage")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		storage: opts.Storage,
		keys:    opts.Keys.withDefaults(),
		logger:  logger.With("component", "session_store"),
	}
}

// SetUser records a successful sign-in and persists it.
// Persistence is best-effort: storage failures are logged, never returned.
// A failed write removes both keys so storage never pairs a new token with an
// older user record.
func (s *SessionStore) SetUser(ctx context.Context, resp domainauth.AuthResponse) {
	user := resp.User

	s.mu.Lock()
	s.user = &user
	s.token = resp.Token
	s.authenticated = resp.Token != ""
	s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode session user", "error", err)
		s.removeKeys(ctx)
		return
	}

	// user first: a token is only restorable next to the record it belongs to
	for _, item := range [...]struct{ key, value string }{
		{key: s.keys.User, value: string(raw)},
		{key: s.keys.Token, value: resp.Token},
	} {
		if err := s.storage.SetItem(ctx, item.key, item.value); err != nil {
			s.logger.WarnContext(ctx, "failed to persist session", "key", item.key, "error", err)
			s.removeKeys(ctx)
			return
		}
	}
}

// ClearAuth drops the in-memory session and removes both persisted keys.
// Calling it on an empty session is a no-op apart from the removals.
func (s *SessionStore) ClearAuth(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.mu.Unlock()

	s.removeKeys(ctx)
}

func (s *SessionStore) removeKeys(ctx context.Context) {
	for _, key := range []string{s.keys.Token, s.keys.User} {
		if err := s.storage.RemoveItem(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to remove persisted session key", "key", key, "error", err)
		}
	}
}

// Logout ends the session at the user's request.
func (s *SessionStore) Logout(ctx context.Context) {
	s.logger.InfoContext(ctx, "user logged out")
	s.ClearAuth(ctx)
}

// RestoreSession loads a persisted session into memory and reports whether
// one was found. A corrupt user record clears everything. When either key is
// missing or unreadable the in-memory state is left as is.
// Concurrent calls share a single storage read.
func (s *SessionStore) RestoreSession(ctx context.Context) bool {
	v, _, _ := s.restore.Do("restore", func() (any, error) {
		return s.restoreSession(ctx), nil
	})
	restored, _ := v.(bool)
	return restored
}

func (s *SessionStore) restoreSession(ctx context.Context) bool {
	token, ok := s.readItem(ctx, s.keys.Token)
	if !ok || token == "" {
		return false
	}
	raw, ok := s.readItem(ctx, s.keys.User)
	if !ok || raw == "" {
		return false
	}

	var user *domainauth.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user == nil {
		if err == nil {
			err = apperrors.Validation("persisted user is null")
		}
		s.logger.ErrorContext(ctx, "failed to parse persisted session user", "key", s.keys.User, "error", err)
		s.ClearAuth(ctx)
		return false
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.authenticated = true
	s.mu.Unlock()
	return true
}

func (s *SessionStore) readItem(ctx context.Context, key string) (string, bool) {
	v, err := s.storage.GetItem(ctx, key)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.WarnContext(ctx, "failed to read persisted session key", "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}

// IsLoggedIn reports whether the session can authorize requests.
func (s *SessionStore) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated && s.token != ""
}

// FullName returns "first last" trimmed, or "" without a user.
func (s *SessionStore) FullName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.FullName()
}

// User returns a copy of the current user, or nil.
func (s *SessionStore) User() *domainauth.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the bearer token, or "" when logged out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Snapshot returns the current state as a value.
func (s *SessionStore) Snapshot() domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := domainauth.Session{Token: s.token, Authenticated: s.authenticated}
	if s.user != nil {
		u := *s.user
		sess.User = &u
	}
	return sess
}

// Role returns the user's account type. When the user record carries none,
// the role claim of the token is read without verifying its signature.
func (s *SessionStore) Role() domainauth.Role {
	s.mu.RLock()
	user, token := s.user, s.token
	s.mu.RUnlock()

	if user != nil && user.Type != "" {
		return user.Type
	}
	return roleFromToken(token, s.keys.RoleClaim)
}

func roleFromToken(token, claim string) domainauth.Role {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	for _, name := range []string{claim, aspNetRoleClaim} {
		switch v := claims[name].(type) {
		case string:
			if r := normalizeRole(v); r != "" {
				return r
			}
		case []any:
			// multi-role tokens: prefer the first known role
			var first domainauth.Role
			for _, item := range v {
				str, ok := item.(string)
				if !ok {
					continue
				}
				if r, known := domainauth.ParseRole(str); known {
					return r
				}
				if first == "" {
					first = normalizeRole(str)
				}
			}
			if first != "" {
				return first
			}
		}
	}
	return ""
}

func normalizeRole(s string) domainauth.Role {
	return domainauth.Role(strings.ToLower(strings.TrimSpace(s)))
}
