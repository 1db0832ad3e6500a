// Package ipaddr validates the address literals that may appear in the domain
// of an email address (RFC 5321 Section 4.1.3) and returns them in canonical
// text form.
package ipaddr

import (
	"net/netip"
	"strings"
)

// ValidateIPv4 checks that s is a dotted-quad IPv4 address and returns its
// canonical form. Leading zeros, missing octets and out-of-range values are
// rejected.
func ValidateIPv4(s string) (string, bool) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return "", false
	}
	return addr.String(), true
}

// ValidateIPv6 checks that s is an IPv6 address and returns it in the
// RFC 5952 form (lower case, longest zero run compressed). The embedded IPv4
// notation of RFC 4291 is accepted. Zones are not valid in a domain literal.
func ValidateIPv6(s string) (string, bool) {
	if strings.ContainsRune(s, '%') {
		return "", false
	}
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is6() {
		return "", false
	}
	return addr.String(), true
}
