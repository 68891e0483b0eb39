package config

const (
	defaultPasswordMinLength = 6
	defaultMinAge            = 13
	defaultMaxAge            = 120
)

// ValidationConfig holds the limits applied to sign-up and sign-in forms.
type ValidationConfig struct {
	PasswordMinLength int `env:"VALIDATION_PASSWORD_MIN_LENGTH" envDefault:"6"`
	MinAge            int `env:"VALIDATION_MIN_AGE"             envDefault:"13"`
	MaxAge            int `env:"VALIDATION_MAX_AGE"             envDefault:"120"`
}

// Sanitize applies guardrails to validation limits.
func (v *ValidationConfig) Sanitize() {
	if v.PasswordMinLength < 1 {
		v.PasswordMinLength = defaultPasswordMinLength
	}
	if v.MinAge < 0 {
		v.MinAge = defaultMinAge
	}
	if v.MaxAge <= v.MinAge {
		v.MaxAge = defaultMaxAge
	}
}
