package mailaddr

import (
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/synqronlabs/mailaddr/utils"
)

// lookupDomain returns the lower case ASCII form of a domain, without a
// trailing dot, suitable for Public Suffix List lookups.
func lookupDomain(domain string) string {
	domain = strings.TrimSuffix(strings.ToLower(domain), ".")
	if ascii, err := utils.ToASCIIDomain(domain); err == nil {
		return ascii
	}
	return domain
}

// registeredDomain returns the domain directly under the public suffix.
// For example:
//   - example.com -> example.com
//   - sub.example.com -> example.com
//   - sub.example.co.uk -> example.co.uk
//
// The empty string is returned for public suffixes themselves and for names
// the list cannot place, such as "localhost".
func registeredDomain(domain string) string {
	d := lookupDomain(domain)
	if d == "" {
		return ""
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(d)
	if err != nil {
		return ""
	}
	return etld1
}

// isICANNTopLevelDomain reports whether label is a top-level domain listed
// in the ICANN section of the Public Suffix List.
func isICANNTopLevelDomain(label string) bool {
	d := lookupDomain(label)
	if d == "" || strings.Contains(d, ".") {
		return false
	}

	suffix, icann := publicsuffix.PublicSuffix(d)
	return icann && suffix == d
}
