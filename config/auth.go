package config

import (
	"fmt"
	"strings"
)

// UnauthorizedPolicy decides which 401 responses force a logout.
type UnauthorizedPolicy string

const (
	// UnauthorizedPolicyAll clears the session on every 401 response.
	UnauthorizedPolicyAll UnauthorizedPolicy = "all"
	// UnauthorizedPolicyAuthenticated clears the session only when the 401
	// answers a request that carried a bearer token.
	UnauthorizedPolicyAuthenticated UnauthorizedPolicy = "authenticated"
)

// UnmarshalText implements encoding.TextUnmarshaler for UnauthorizedPolicy.
func (p *UnauthorizedPolicy) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "all", "authenticated":
		*p = UnauthorizedPolicy(v)
		return nil
	default:
		return fmt.Errorf("invalid UnauthorizedPolicy: %q (valid options: all, authenticated)", v)
	}
}

// AuthConfig groups session persistence and navigation settings.
type AuthConfig struct {
	// LoginPath is where unauthenticated navigation and 401 responses land.
	LoginPath string `env:"AUTH_LOGIN_PATH" envDefault:"/login"`

	// HomePath is where authenticated users are sent away from login/sign-up
	// and where users lacking a role end up.
	HomePath string `env:"AUTH_HOME_PATH" envDefault:"/"`

	// RedirectParam is the login query parameter carrying the originally requested path.
	RedirectParam string `env:"AUTH_REDIRECT_PARAM" envDefault:"redirect"`

	// UnauthorizedPolicy controls which 401 responses clear the session.
	UnauthorizedPolicy UnauthorizedPolicy `env:"AUTH_UNAUTHORIZED_POLICY" envDefault:"all"`

	// TokenKey and UserKey are the two storage keys owned by the session store.
	TokenKey string `env:"AUTH_TOKEN_KEY" envDefault:"auth_token"`
	UserKey  string `env:"AUTH_USER_KEY"  envDefault:"auth_user"`

	// RoleClaim is the token claim consulted when the user record has no type.
	RoleClaim string `env:"AUTH_ROLE_CLAIM" envDefault:"role"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.LoginPath = absolutePath(a.LoginPath, "/login")
	a.HomePath = absolutePath(a.HomePath, "/")
	if a.RedirectParam = strings.TrimSpace(a.RedirectParam); a.RedirectParam == "" {
		a.RedirectParam = "redirect"
	}
	if a.UnauthorizedPolicy == "" {
		a.UnauthorizedPolicy = UnauthorizedPolicyAll
	}
	if a.TokenKey = strings.TrimSpace(a.TokenKey); a.TokenKey == "" {
		a.TokenKey = "auth_token"
	}
	if a.UserKey = strings.TrimSpace(a.UserKey); a.UserKey == "" {
		a.UserKey = "auth_user"
	}
	a.RoleClaim = strings.TrimSpace(a.RoleClaim)
}

func absolutePath(p, fallback string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return fallback
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
