package signup

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("email is not a valid address")
)

// emailPattern is the rule browsers apply to <input type="email">, so the
// server accepts exactly what the form lets through.
var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+" +
		"@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
		"(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

// CheckEmail is the input control in front of the workflow: it trims raw and
// accepts it when it is a single address such as "ada@example.com".
func CheckEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return "", ErrEmailInvalid
	}
	return email, nil
}
