package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmailAddress_Valid(t *testing.T) {
	cases := []string{
		"hello@pythontutorial.net",
		"a@b.co",
		"first.last+tag@sub.example.org",
		"UPPER_case%x-y@Example.COM",
		"user@host-name.io",
		"x@y.z.museum",
	}

	for _, c := range cases {
		t.Run(c, func(t *testing.T) {
			email, err := ParseEmailAddress(c)
			require.NoError(t, err)
			assert.Equal(t, c, email.String())
			assert.False(t, email.IsZero())
		})
	}
}

func TestParseEmailAddress_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":              "",
		"missing at":         "not-an-email",
		"missing tld":        "user@localhost",
		"one letter tld":     "user@example.c",
		"digit tld":          "user@example.c0m",
		"empty local part":   "@example.com",
		"leading space":      " user@example.com",
		"trailing newline":   "user@example.com\n",
		"two ats":            "user@@example.com",
		"space in local":     "us er@example.com",
		"embedded in text":   "mail me at user@example.com",
		"pipe in tld":        "user@example.c|m",
		"unicode local part": "jösé@example.com",
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			email, err := ParseEmailAddress(c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFormat))
			assert.True(t, email.IsZero())
		})
	}
}

func TestEmailAddress_Parts(t *testing.T) {
	email, err := ParseEmailAddress("first.last@mail.example.com")
	require.NoError(t, err)

	assert.Equal(t, "first.last", email.LocalPart())
	assert.Equal(t, "mail.example.com", email.Domain())
}

func TestEmailAddress_ZeroValue(t *testing.T) {
	var email EmailAddress
	assert.True(t, email.IsZero())
	assert.Empty(t, email.LocalPart())
	assert.Empty(t, email.Domain())
}
