package logger

import (
	"strings"

	"go.uber.org/zap"
)

// RedactEmail masks the local part of an address for logging.
// "john.doe@example.com" becomes "jo***@example.com"; local parts of two
// characters or fewer are fully masked.
func RedactEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return "***"
	}
	name, domain := email[:at], email[at+1:]
	if len(name) > 2 {
		return name[:2] + "***@" + domain
	}
	return "***@" + domain
}

// Email is a field carrying a redacted address.
func Email(email string) zap.Field {
	return zap.String("email", RedactEmail(email))
}
