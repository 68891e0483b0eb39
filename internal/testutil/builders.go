package testutil

import (
	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/target/storefront-client/internal/domain/auth"
)

// TestAuthResponse returns the sign-in body for Ana Diaz with token T1.
func TestAuthResponse() domainauth.AuthResponse {
	return domainauth.AuthResponse{
		User: domainauth.User{
			ID:        "1",
			FirstName: "Ana",
			LastName:  "Diaz",
			Email:     "a@b.com",
		},
		Token: "T1",
	}
}

// AuthResponseBuilder provides a fluent interface for building sign-in bodies.
type AuthResponseBuilder struct {
	resp domainauth.AuthResponse
}

// NewAuthResponse starts from TestAuthResponse.
func NewAuthResponse() *AuthResponseBuilder {
	return &AuthResponseBuilder{resp: TestAuthResponse()}
}

// WithID sets the user ID.
func (b *AuthResponseBuilder) WithID(id string) *AuthResponseBuilder {
	b.resp.ID = domainauth.UserID(id)
	return b
}

// WithName sets first and last name.
func (b *AuthResponseBuilder) WithName(first, last string) *AuthResponseBuilder {
	b.resp.FirstName = first
	b.resp.LastName = last
	return b
}

// WithEmail sets the email.
func (b *AuthResponseBuilder) WithEmail(email string) *AuthResponseBuilder {
	b.resp.Email = email
	return b
}

// WithRole sets the user type.
func (b *AuthResponseBuilder) WithRole(role domainauth.Role) *AuthResponseBuilder {
	b.resp.Type = role
	return b
}

// WithToken sets the bearer token.
func (b *AuthResponseBuilder) WithToken(token string) *AuthResponseBuilder {
	b.resp.Token = token
	return b
}

// Build returns the response.
func (b *AuthResponseBuilder) Build() domainauth.AuthResponse {
	return b.resp
}

// TestSignUpInput returns a complete, valid registration form.
func TestSignUpInput() domainauth.SignUpInput {
	return domainauth.SignUpInput{
		FirstName:   "Ana",
		LastName:    "Diaz",
		DateOfBirth: "1990-05-17",
		Country:     "Argentina",
		Address:     "Calle Falsa 123",
		Email:       "a@b.com",
		Password:    "secret123",
		Type:        domainauth.RoleCustomer,
	}
}

// RoleToken returns an HS256 token whose claim carries role.
// The client never verifies signatures, so the key is irrelevant.
func RoleToken(t TestingTB, claim string, role any) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		claim: role,
	})
	signed, err := tok.SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
