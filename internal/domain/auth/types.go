package auth

// Package auth contains domain-level types for the storefront session.
// It is pure and free of transport/storage concerns.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Role represents a storefront account type.
// Keep string form for easy persistence and token claims.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole normalizes s into a known Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// RoleOption pairs a role with its display label for selectors.
type RoleOption struct {
	Label string
	Value Role
}

// RoleOptions lists the account types offered at sign-up.
var RoleOptions = []RoleOption{
	{Label: "Customer", Value: RoleCustomer},
	{Label: "Seller", Value: RoleSeller},
	{Label: "Administrator", Value: RoleAdmin},
}

// UserID is the backend's user identifier. The backend may send it as a JSON
// number or string; numeric identifiers are encoded back as numbers.
type UserID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("user id: %w", err)
		}
		*id = UserID(n.String())
		return nil
	}
}

// MarshalJSON writes canonical integers as numbers and anything else as a
// string, so "007" or "+5" stay strings.
func (id UserID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// User is the identity subset of the session that is persisted between runs.
type User struct {
	ID        UserID `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Type      Role   `json:"type,omitempty"`
}

// FullName joins first and last name, trimmed.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// AuthResponse is the success body of sign-in (and sign-up when the backend
// logs the new account in): user identity fields plus the bearer token.
type AuthResponse struct {
	User
	Token string `json:"token"`
}

// Session is a point-in-time view of the client's authentication state.
type Session struct {
	User          *User
	Token         string
	Authenticated bool
}

// LoggedIn reports whether the session can authorize requests.
func (s Session) LoggedIn() bool { return s.Authenticated && s.Token != "" }

// SignUpInput carries the registration form fields sent to the backend.
// DateOfBirth uses the YYYY-MM-DD layout.
type SignUpInput struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Country     string
	Address     string
	Email       string
	Password    string
	Type        Role
}
