// Package router implements client-side navigation with per-route guards.
package router

import (
	"net/url"
	"strings"
)

// Location is a navigation target inside the app.
type Location struct {
	Path  string
	Query url.Values
}

// ParseLocation parses "/path?query". A missing leading slash is added.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, err
	}
	path := u.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return Location{Path: path, Query: u.Query()}, nil
}

// FullPath returns the path with its encoded query, if any.
func (l Location) FullPath() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// WithQuery returns a copy of l with key set to value.
func (l Location) WithQuery(key, value string) Location {
	q := url.Values{}
	for k, v := range l.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(key, value)
	return Location{Path: l.Path, Query: q}
}

// SafeRedirectPath ensures the provided redirect is a same-app relative path
// starting with "/" and not an absolute or protocol-relative URL.
// Returns fallback when invalid.
func SafeRedirectPath(candidate, fallback string) string {
	if candidate == "" {
		return fallback
	}
	if strings.HasPrefix(candidate, "//") || strings.Contains(candidate, `\`) {
		return fallback
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return fallback
	}
	return candidate
}
