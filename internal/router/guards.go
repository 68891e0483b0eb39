package router

import (
	"context"
	"log/slog"
	"slices"

	domainauth "github.com/target/storefront-client/internal/domain/auth"
)

// Decision is a guard's verdict: allow navigation or redirect elsewhere.
type Decision struct {
	Redirect string
}

// Allow lets navigation continue.
func Allow() Decision { return Decision{} }

// RedirectTo cancels navigation in favor of path.
func RedirectTo(path string) Decision { return Decision{Redirect: path} }

// Allowed reports whether navigation may proceed.
func (d Decision) Allowed() bool { return d.Redirect == "" }

// Guard runs before a route is entered.
type Guard func(ctx context.Context, to, from Location) Decision

// Session is the view of the session store guards need.
type Session interface {
	RestoreSession(ctx context.Context) bool
	IsLoggedIn() bool
	Role() domainauth.Role
}

// Paths are the well-known locations guards redirect to.
type Paths struct {
	Login         string
	Home          string
	RedirectParam string
}

// WithDefaults fills empty paths with /login, / and "redirect".
func (p Paths) WithDefaults() Paths {
	if p.Login == "" {
		p.Login = "/login"
	}
	if p.Home == "" {
		p.Home = "/"
	}
	if p.RedirectParam == "" {
		p.RedirectParam = "redirect"
	}
	return p
}

// Guards builds navigation guards over a session.
type Guards struct {
	session Session
	paths   Paths
	logger  *slog.Logger
}

// NewGuards constructs Guards. session is required.
func NewGuards(session Session, paths Paths, logger *slog.Logger) *Guards {
	if session == nil {
		panic("Guards requires a Session")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guards{session: session, paths: paths.WithDefaults(), logger: logger}
}

// Paths returns the resolved paths.
func (g *Guards) Paths() Paths { return g.paths }

// RequireAuth admits logged-in users and sends everyone else to the login page,
// remembering where they were going.
func (g *Guards) RequireAuth(ctx context.Context, to, _ Location) Decision {
	g.session.RestoreSession(ctx)
	if g.session.IsLoggedIn() {
		return Allow()
	}
	login := Location{Path: g.paths.Login}.WithQuery(g.paths.RedirectParam, to.FullPath())
	return RedirectTo(login.FullPath())
}

// RedirectIfAuthenticated keeps logged-in users away from the login and sign-up pages.
func (g *Guards) RedirectIfAuthenticated(ctx context.Context, _, _ Location) Decision {
	g.session.RestoreSession(ctx)
	if g.session.IsLoggedIn() {
		return RedirectTo(g.paths.Home)
	}
	return Allow()
}

// RequireRole admits logged-in users whose role is in roles.
// Anonymous users go to the login page; others go home.
func (g *Guards) RequireRole(roles ...domainauth.Role) Guard {
	allowed := slices.Clone(roles)
	return func(ctx context.Context, to, _ Location) Decision {
		g.session.RestoreSession(ctx)
		if !g.session.IsLoggedIn() {
			return RedirectTo(g.paths.Login)
		}
		role := g.session.Role()
		if slices.Contains(allowed, role) {
			return Allow()
		}
		g.logger.DebugContext(ctx, "role not allowed for route",
			slog.String("path", to.Path),
			slog.String("role", string(role)),
		)
		return RedirectTo(g.paths.Home)
	}
}
