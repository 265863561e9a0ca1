package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// EmailAddress is a syntactically valid email address. The zero value is
// not valid; use ParseEmailAddress.
type EmailAddress struct {
	value string
}

// ParseEmailAddress matches the whole candidate against the email pattern.
// The candidate is kept as typed: no trimming, no case folding.
func ParseEmailAddress(candidate string) (EmailAddress, error) {
	if !emailPattern.MatchString(candidate) {
		return EmailAddress{}, fmt.Errorf("%w: %q", ErrInvalidFormat, candidate)
	}
	return EmailAddress{value: candidate}, nil
}

func (e EmailAddress) String() string {
	return e.value
}

func (e EmailAddress) LocalPart() string {
	at := strings.LastIndexByte(e.value, '@')
	if at < 0 {
		return ""
	}
	return e.value[:at]
}

func (e EmailAddress) Domain() string {
	at := strings.LastIndexByte(e.value, '@')
	if at < 0 {
		return ""
	}
	return e.value[at+1:]
}

func (e EmailAddress) IsZero() bool {
	return e.value == ""
}
