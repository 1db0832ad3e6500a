package mailaddr

import (
	"unicode"

	"github.com/synqronlabs/mailaddr/utils"
)

// RFC 5321 Section 4.5.3.1 size limits, counted in characters.
const (
	maxEmailLength      = 320
	maxLocalPartLength  = 64
	maxDomainLength     = 255
	maxDomainPartLength = 63
)

const ipv6Prefix = "IPv6:"

// disallowedUnquoted holds the characters that may only appear in a
// local-part when quoted or escaped.
var disallowedUnquoted = func() map[rune]bool {
	m := map[rune]bool{
		'\t': true, '(': true, ')': true, ',': true, ':': true, ';': true,
		'<': true, '>': true, '@': true, '[': true, ']': true, '"': true,
	}
	for c := rune(1); c <= 31; c++ {
		switch c {
		case '\t', '\n', '\r':
		default:
			m[c] = true
		}
	}
	return m
}()

// quotedWithEscape holds the characters that need a backslash inside a
// quoted string.
var quotedWithEscape = map[rune]bool{'\r': true, 0: true, '\n': true}

func isAllowedDomainChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return c == '-' || c == '.' || c == ' '
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\n' || c == '\r'
}

func isAllDigits(s []rune) bool {
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

// isValidIDN reports whether domain converts to ASCII and the result only
// uses letters, digits, hyphens, dots and spaces.
func isValidIDN(domain string) bool {
	ascii, err := utils.ToASCIIDomain(domain)
	if err != nil {
		return false
	}
	for _, c := range ascii {
		if !isAllowedDomainChar(c) {
			return false
		}
	}
	return true
}
