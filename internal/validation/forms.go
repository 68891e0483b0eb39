package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/target/storefront-client/internal/domain/auth"
)

// Defaults for Rules.
const (
	DefaultPasswordMinLength = 6
	DefaultMinAge            = 13
	DefaultMaxAge            = 120
)

const dateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of a single form check.
// Message is empty when Valid is true.
type Result struct {
	Valid   bool
	Message string
}

func ok() Result { return Result{Valid: true} }

func invalid(format string, args ...any) Result {
	return Result{Valid: false, Message: fmt.Sprintf(format, args...)}
}

// IsValidEmail reports whether email looks like local@domain.tld.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword checks that password has at least minLength characters.
// A non-positive minLength means DefaultPasswordMinLength.
func ValidatePassword(password string, minLength int) Result {
	if minLength <= 0 {
		minLength = DefaultPasswordMinLength
	}
	if password == "" || utf8.RuneCountInString(password) < minLength {
		return invalid("Password must be at least %d characters long", minLength)
	}
	return ok()
}

// ValidatePasswordMatch checks the confirmation field.
func ValidatePasswordMatch(password, confirmPassword string) Result {
	if password != confirmPassword {
		return invalid("Passwords do not match")
	}
	return ok()
}

// ValidateDateOfBirth checks a YYYY-MM-DD date of birth against the default age window.
// The field is optional: an empty value is valid.
func ValidateDateOfBirth(dateOfBirth string, now time.Time) Result {
	return Rules{MinAge: DefaultMinAge, MaxAge: DefaultMaxAge, Now: func() time.Time { return now }}.DateOfBirth(dateOfBirth)
}

// ValidateRequiredFields reports the first required field that is missing or blank.
func ValidateRequiredFields(fields map[string]string, required []string) Result {
	for _, field := range required {
		if strings.TrimSpace(fields[field]) == "" {
			return invalid("The %s field is required", field)
		}
	}
	return ok()
}

// Rules binds the configurable limits used by the sign-in and sign-up forms.
type Rules struct {
	PasswordMinLength int
	MinAge            int
	MaxAge            int
	Now               func() time.Time
}

// DefaultRules returns the stock limits.
func DefaultRules() Rules {
	return Rules{
		PasswordMinLength: DefaultPasswordMinLength,
		MinAge:            DefaultMinAge,
		MaxAge:            DefaultMaxAge,
		Now:               time.Now,
	}
}

// WithDefaults fills zero limits with the stock values.
func (r Rules) WithDefaults() Rules {
	if r.PasswordMinLength <= 0 {
		r.PasswordMinLength = DefaultPasswordMinLength
	}
	if r.MinAge <= 0 {
		r.MinAge = DefaultMinAge
	}
	if r.MaxAge <= 0 {
		r.MaxAge = DefaultMaxAge
	}
	if r.Now == nil {
		r.Now = time.Now
	}
	return r
}

func (r Rules) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Password applies ValidatePassword with the configured minimum.
func (r Rules) Password(password string) Result {
	return ValidatePassword(password, r.PasswordMinLength)
}

// DateOfBirth checks age bounds using calendar-year difference.
func (r Rules) DateOfBirth(dateOfBirth string) Result {
	dateOfBirth = strings.TrimSpace(dateOfBirth)
	if dateOfBirth == "" {
		return ok()
	}

	dob, err := time.Parse(dateLayout, dateOfBirth)
	if err != nil {
		return invalid("Please enter a valid date of birth")
	}

	age := r.now().Year() - dob.Year()
	if age < r.MinAge {
		return invalid("You must be at least %d years old to register", r.MinAge)
	}
	if age > r.MaxAge {
		return invalid("Please enter a valid date of birth")
	}
	return ok()
}

// Field names reported by SignIn and SignUp, in display order.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldDateOfBirth     = "dateOfBirth"
	FieldCountry         = "country"
	FieldAddress         = "address"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldType            = "type"
)

// SignUpFieldOrder lists sign-up fields top to bottom as the form shows them.
var SignUpFieldOrder = []string{
	FieldFirstName, FieldLastName, FieldDateOfBirth, FieldCountry, FieldAddress,
	FieldEmail, FieldPassword, FieldConfirmPassword, FieldType,
}

// SignIn validates the login form.
func (r Rules) SignIn(email, password string) *FieldValidator {
	return New().
		Validate(FieldEmail, email, Required("Email", 254), Email("Email")).
		Validate(FieldPassword, password, Required("Password", 128), FromResult(r.Password))
}

// SignUp validates the registration form including the password confirmation.
func (r Rules) SignUp(in domainauth.SignUpInput, confirmPassword string) *FieldValidator {
	roles := make([]string, 0, len(domainauth.RoleOptions))
	for _, opt := range domainauth.RoleOptions {
		roles = append(roles, string(opt.Value))
	}

	return New().
		Validate(FieldFirstName, in.FirstName, Required("First name", 100)).
		Validate(FieldLastName, in.LastName, Required("Last name", 100)).
		Validate(FieldDateOfBirth, in.DateOfBirth, FromResult(r.DateOfBirth)).
		Validate(FieldCountry, in.Country, Optional("Country", 100)).
		Validate(FieldAddress, in.Address, Optional("Address", 255)).
		Validate(FieldEmail, in.Email, Required("Email", 254), Email("Email")).
		Validate(FieldPassword, in.Password, Required("Password", 128), FromResult(r.Password)).
		Validate(FieldConfirmPassword, confirmPassword, func(v string) string {
			return ValidatePasswordMatch(in.Password, v).Message
		}).
		Validate(FieldType, string(in.Type), Required("Account type", 20), OneOf("Account type", roles))
}
