package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	domainauth "github.com/target/storefront-client/internal/domain/auth"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "ana.diaz@shop.example.org", "x+tag@d.io"}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{"", "ab.com", "a@bcom", "a@b", "@b.com", "a@.com x", "a b@c.com", "a@@b.com"}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		min      int
		valid    bool
		message  string
	}{
		{name: "empty", password: "", min: 6, message: "Password must be at least 6 characters long"},
		{name: "one short", password: "12345", min: 6, message: "Password must be at least 6 characters long"},
		{name: "exactly minimum", password: "123456", min: 6, valid: true},
		{name: "above minimum", password: "1234567890", min: 6, valid: true},
		{name: "default minimum", password: "abc", min: 0, message: "Password must be at least 6 characters long"},
		{name: "custom minimum", password: "abcdefgh", min: 10, message: "Password must be at least 10 characters long"},
		{name: "counts runes", password: "ñññññ", min: 5, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePassword(tt.password, tt.min)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestValidatePasswordMatch(t *testing.T) {
	for _, p := range []string{"", "secret", "with space"} {
		assert.Equal(t, Result{Valid: true}, ValidatePasswordMatch(p, p), p)
	}

	got := ValidatePasswordMatch("secret", "Secret")
	assert.False(t, got.Valid)
	assert.Equal(t, "Passwords do not match", got.Message)
}

func TestValidateDateOfBirth(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dob     string
		valid   bool
		message string
	}{
		{name: "optional", dob: "", valid: true},
		{name: "adult", dob: "1990-05-17", valid: true},
		{name: "exactly thirteen by year", dob: "2011-12-31", valid: true},
		{name: "too young", dob: "2012-01-01", message: "You must be at least 13 years old to register"},
		{name: "exactly one hundred twenty", dob: "1904-01-01", valid: true},
		{name: "implausibly old", dob: "1900-01-01", message: "Please enter a valid date of birth"},
		{name: "not a date", dob: "17/05/1990", message: "Please enter a valid date of birth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDateOfBirth(tt.dob, now)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestValidateRequiredFields(t *testing.T) {
	fields := map[string]string{"firstName": "Ana", "lastName": "  ", "email": "a@b.com"}

	got := ValidateRequiredFields(fields, []string{"firstName", "lastName", "email"})
	assert.False(t, got.Valid)
	assert.Equal(t, "The lastName field is required", got.Message)

	got = ValidateRequiredFields(fields, []string{"country"})
	assert.Equal(t, "The country field is required", got.Message)

	assert.True(t, ValidateRequiredFields(fields, []string{"firstName", "email"}).Valid)
	assert.True(t, ValidateRequiredFields(nil, nil).Valid)
}

func TestRules_SignIn(t *testing.T) {
	r := DefaultRules()

	assert.True(t, r.SignIn("a@b.com", "secret").Valid())

	fv := r.SignIn("nope", "123")
	errs := fv.Errors()
	assert.Equal(t, "Enter a valid email address.", errs[FieldEmail])
	assert.Equal(t, "Password must be at least 6 characters long", errs[FieldPassword])

	fv = r.SignIn("", "")
	assert.Equal(t, "Email is required.", fv.Errors()[FieldEmail])
	assert.Equal(t, "Password is required.", fv.Errors()[FieldPassword])
}

func TestRules_SignUp(t *testing.T) {
	r := Rules{
		PasswordMinLength: 8,
		MinAge:            18,
		MaxAge:            100,
		Now:               func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
	}

	good := domainauth.SignUpInput{
		FirstName:   "Ana",
		LastName:    "Diaz",
		DateOfBirth: "1990-05-17",
		Email:       "a@b.com",
		Password:    "longenough",
		Type:        domainauth.RoleSeller,
	}
	assert.True(t, r.SignUp(good, "longenough").Valid())

	bad := good
	bad.FirstName = ""
	bad.DateOfBirth = "2010-01-01"
	bad.Password = "short"
	bad.Type = "guest"
	bad.Address = strings.Repeat("x", 300)

	fv := r.SignUp(bad, "different")
	errs := fv.Errors()
	assert.Equal(t, "First name is required.", errs[FieldFirstName])
	assert.Equal(t, "You must be at least 18 years old to register", errs[FieldDateOfBirth])
	assert.Equal(t, "Password must be at least 8 characters long", errs[FieldPassword])
	assert.Equal(t, "Passwords do not match", errs[FieldConfirmPassword])
	assert.Equal(t, "Account type must be one of: customer, seller, admin", errs[FieldType])
	assert.Equal(t, "Address cannot exceed 255 characters.", errs[FieldAddress])

	field, msg := fv.First(SignUpFieldOrder...)
	assert.Equal(t, FieldFirstName, field)
	assert.Equal(t, "First name is required.", msg)
}

func TestRules_WithDefaults(t *testing.T) {
	r := Rules{MinAge: 18}.WithDefaults()

	assert.Equal(t, DefaultPasswordMinLength, r.PasswordMinLength)
	assert.Equal(t, 18, r.MinAge)
	assert.Equal(t, DefaultMaxAge, r.MaxAge)
	assert.NotNil(t, r.Now)
}
