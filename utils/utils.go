package utils

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// domainProfile maps and punycode-encodes labels the way IDNA2003-era lookups
// did. STD3 ASCII rules and hyphen placement are not enforced here; the
// parser checks the ASCII result against its own domain character set, so
// spaces from folding whitespace survive conversion.
var domainProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(true),
	idna.StrictDomainName(false),
	idna.CheckHyphens(false),
)

var errInvalidUTF8 = errors.New("utils: domain is not valid UTF-8")

// ContainsNonASCII checks if a string contains any non-ASCII characters (bytes > 127).
func ContainsNonASCII(s string) bool {
	for _, v := range s {
		if v >= utf8.RuneSelf {
			return true
		}
	}
	return false
}

// ToASCIIDomain converts a domain to its ASCII-compatible encoding.
// Internationalized labels become "xn--" A-labels; ASCII labels pass through
// with case folded. An error is returned for input that cannot be mapped,
// such as invalid UTF-8 or disallowed code points.
func ToASCIIDomain(domain string) (string, error) {
	if !utf8.ValidString(domain) {
		return "", errInvalidUTF8
	}
	return domainProfile.ToASCII(domain)
}
