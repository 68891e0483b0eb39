package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	apperrors "github.com/target/storefront-client/internal/errors"
	"github.com/target/storefront-client/internal/ports"
)

// MaxRedirects bounds how many guard redirects one navigation may follow.
const MaxRedirects = 10

// ErrRedirectLoop is returned when guards keep redirecting.
var ErrRedirectLoop = errors.New("router: too many redirects")

var _ ports.Navigator = (*Router)(nil)

// Route is one navigable page.
type Route struct {
	Path        string
	Name        string
	BeforeEnter []Guard
}

// RouterOptions groups dependencies for Router.
type RouterOptions struct {
	Routes []Route
	Start  string       // Optional: initial location, default "/"
	Logger *slog.Logger // Optional
}

// Router resolves navigation targets through route guards and tracks the
// current location. Safe for concurrent use; guards run without the lock held.
type Router struct {
	logger *slog.Logger

	mu      sync.RWMutex
	routes  map[string]Route
	current Location
}

// NewRouter constructs a Router.
func NewRouter(opts RouterOptions) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := opts.Start
	if start == "" {
		start = "/"
	}
	current, err := ParseLocation(start)
	if err != nil {
		current = Location{Path: "/"}
	}

	r := &Router{
		logger:  logger.With("component", "router"),
		routes:  make(map[string]Route, len(opts.Routes)),
		current: current,
	}
	for _, route := range opts.Routes {
		r.Handle(route)
	}
	return r
}

// Handle registers or replaces a route.
func (r *Router) Handle(route Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[route.Path] = route
}

// Routes returns registered routes sorted by path.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Route, 0, len(r.routes))
	for _, route := range r.routes {
		out = append(out, route)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Current returns the current location.
func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// CurrentPath returns the path of the current location.
func (r *Router) CurrentPath() string {
	return r.Current().Path
}

// Push navigates to target, running each destination's guards in order and
// following their redirects. It returns where navigation ended. A done ctx
// stops navigation with a timeout or canceled error and leaves the current
// location unchanged.
func (r *Router) Push(ctx context.Context, target string) (Location, error) {
	to, err := ParseLocation(target)
	if err != nil {
		return Location{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, fmt.Sprintf("invalid navigation target %q", target))
	}
	from := r.Current()

	for hops := 0; ; hops++ {
		if hops > MaxRedirects {
			return Location{}, fmt.Errorf("navigate to %q: %w", target, ErrRedirectLoop)
		}
		if err := ctx.Err(); err != nil {
			return Location{}, apperrors.FromContext(err, fmt.Sprintf("navigation to %q interrupted", target))
		}

		route, ok := r.lookup(to.Path)
		if !ok {
			return Location{}, apperrors.NotFoundf("no route for %q", to.Path)
		}

		redirect := runGuards(ctx, route.BeforeEnter, to, from)
		if redirect == "" {
			r.mu.Lock()
			r.current = to
			r.mu.Unlock()
			return to, nil
		}

		r.logger.DebugContext(ctx, "navigation redirected",
			slog.String("from", to.FullPath()),
			slog.String("to", redirect),
		)
		next, err := ParseLocation(redirect)
		if err != nil {
			return Location{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, fmt.Sprintf("guard returned invalid redirect %q", redirect))
		}
		to = next
	}
}

// Redirect navigates to path. Failures are logged; the current location is
// left unchanged.
func (r *Router) Redirect(ctx context.Context, path string) {
	if _, err := r.Push(ctx, path); err != nil {
		r.logger.WarnContext(ctx, "redirect failed", slog.String("path", path), slog.Any("error", err))
	}
}

func (r *Router) lookup(path string) (Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[path]
	return route, ok
}

func runGuards(ctx context.Context, guards []Guard, to, from Location) string {
	for _, g := range guards {
		if d := g(ctx, to, from); !d.Allowed() {
			return d.Redirect
		}
	}
	return ""
}
