package validation

import "testing"

const errNameRequired = "Name is required."

func TestRequired(t *testing.T) {
	tests := []struct {
		name    string
		maxLen  int
		value   string
		wantErr string
	}{
		{name: "valid input", maxLen: 10, value: "valid"},
		{name: "empty string", maxLen: 10, value: "", wantErr: errNameRequired},
		{name: "whitespace only", maxLen: 10, value: "   ", wantErr: errNameRequired},
		{name: "exceeds max length", maxLen: 5, value: "toolong", wantErr: "Name cannot exceed 5 characters."},
		{name: "exactly max length", maxLen: 5, value: "exact"},
		{name: "unicode characters within limit", maxLen: 5, value: "Ñañez"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Required("Name", tt.maxLen)(tt.value); got != tt.wantErr {
				t.Errorf("Required() = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	v := Optional("Address", 5)
	if got := v(""); got != "" {
		t.Errorf("Optional(empty) = %q, want empty", got)
	}
	if got := v("12345"); got != "" {
		t.Errorf("Optional(at limit) = %q, want empty", got)
	}
	if got := v("123456"); got != "Address cannot exceed 5 characters." {
		t.Errorf("Optional(too long) = %q", got)
	}
}

func TestOneOf(t *testing.T) {
	v := OneOf("Account type", []string{"customer", "seller", "admin"})
	for _, ok := range []string{"customer", "SELLER", " admin "} {
		if got := v(ok); got != "" {
			t.Errorf("OneOf(%q) = %q, want empty", ok, got)
		}
	}
	if got := v("guest"); got != "Account type must be one of: customer, seller, admin" {
		t.Errorf("OneOf(guest) = %q", got)
	}
}

func TestEmail(t *testing.T) {
	v := Email("Email")
	if got := v(""); got != "" {
		t.Errorf("Email(empty) = %q, want empty so Required reports it", got)
	}
	if got := v("a@b.com"); got != "" {
		t.Errorf("Email(valid) = %q", got)
	}
	if got := v("not-an-email"); got != "Enter a valid email address." {
		t.Errorf("Email(invalid) = %q", got)
	}
}

func TestFieldValidator(t *testing.T) {
	fv := New().
		Validate("name", "", Required("Name", 10), Optional("Name", 1)).
		Validate("email", "x", Required("Email", 10), Email("Email")).
		Validate("country", "AR", Optional("Country", 10))

	if fv.Valid() {
		t.Fatal("expected errors")
	}
	errs := fv.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if errs["name"] != errNameRequired {
		t.Errorf("name error = %q; first failing validator should win", errs["name"])
	}

	field, msg := fv.First("country", "email", "name")
	if field != "email" || msg != "Enter a valid email address." {
		t.Errorf("First() = %q, %q", field, msg)
	}

	if field, msg := New().First("a"); field != "" || msg != "" {
		t.Errorf("First() on empty = %q, %q", field, msg)
	}
}
