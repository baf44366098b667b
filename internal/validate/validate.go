package validate

import (
	"regexp"
	"strings"
	"unicode"

	validator "github.com/go-playground/validator/v10"
)

// New returns the validator instance used for request payload validation.
func New() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?\.[a-zA-Z]{2,}$`)

// Email validates an email address. The local part may not start or end with
// a dot, or contain consecutive dots.
func Email(email string) (bool, string) {
	if email == "" {
		return false, "Email address is required"
	}
	if len(email) > 254 {
		return false, "Email address is too long"
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return false, "Email address format is invalid"
	}
	local := email[:at]
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false, "Email address format is invalid"
	}
	if !emailPattern.MatchString(email) {
		return false, "Email address format is invalid"
	}
	return true, ""
}

const specialChars = `!@#$%^&*(),.?":{}|<>`

// Password validates password strength.
func Password(password string) (bool, string) {
	if len(password) < 12 {
		return false, "Password must be at least 12 characters"
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return false, "Password must contain at least one uppercase letter"
	}
	if !hasLower {
		return false, "Password must contain at least one lowercase letter"
	}
	if !hasDigit {
		return false, "Password must contain at least one digit"
	}
	if !hasSpecial {
		return false, "Password must contain at least one special character"
	}
	return true, ""
}

// ShippingAddress validates a free-form shipping address.
func ShippingAddress(address string) (bool, string) {
	if address == "" {
		return false, "Shipping address is required"
	}
	if len(address) < 20 {
		return false, "Shipping address seems too short"
	}
	if len(address) > 500 {
		return false, "Shipping address is too long"
	}
	return true, ""
}

var sanitizer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Sanitize trims and HTML-escapes free-text input.
func Sanitize(text string) string {
	return sanitizer.Replace(strings.TrimSpace(text))
}
