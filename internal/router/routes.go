package router

import domainauth "github.com/target/storefront-client/internal/domain/auth"

// Route names.
const (
	RouteHome    = "home"
	RouteLogin   = "login"
	RouteSignUp  = "signup"
	RouteProfile = "profile"
	RouteSeller  = "seller"
	RouteAdmin   = "admin"
)

// DefaultRoutes is the storefront page table with its guards.
func DefaultRoutes(g *Guards) []Route {
	paths := g.Paths()
	return []Route{
		{Path: paths.Home, Name: RouteHome},
		{Path: paths.Login, Name: RouteLogin, BeforeEnter: []Guard{g.RedirectIfAuthenticated}},
		{Path: "/signup", Name: RouteSignUp, BeforeEnter: []Guard{g.RedirectIfAuthenticated}},
		{Path: "/profile", Name: RouteProfile, BeforeEnter: []Guard{g.RequireAuth}},
		{Path: "/seller", Name: RouteSeller, BeforeEnter: []Guard{g.RequireRole(domainauth.RoleSeller, domainauth.RoleAdmin)}},
		{Path: "/admin", Name: RouteAdmin, BeforeEnter: []Guard{g.RequireRole(domainauth.RoleAdmin)}},
	}
}
