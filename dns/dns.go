// Package dns provides the DNS lookups used to decide whether an email
// domain can receive mail.
//
// Two Resolver implementations are available: DNSResolver, built on
// github.com/miekg/dns with explicit per-query timeouts, a bounded retry count
// and optional DNSSEC, and StdResolver, which wraps net.Resolver. MockResolver
// serves canned records for tests.
package dns

import (
	"context"
	"errors"
	"net"
)

// DNS lookup errors.
var (
	ErrDNSNotFound = errors.New("dns: record not found")
	ErrDNSTimeout  = errors.New("dns: query timed out")
	ErrDNSServFail = errors.New("dns: server failure")
	ErrDNSRefused  = errors.New("dns: query refused")
	ErrDNSBogus    = errors.New("dns: DNSSEC validation failed")
)

// Result holds the records returned by a lookup.
type Result[T any] struct {
	// Records contains the answers of the requested type.
	Records []T

	// Authentic reports whether the response was DNSSEC-validated.
	Authentic bool
}

// Resolver is the set of lookups needed for mail host verification.
type Resolver interface {
	// LookupMX retrieves MX records for the given domain.
	LookupMX(ctx context.Context, name string) (Result[*net.MX], error)

	// LookupIP retrieves A and AAAA records for the given domain.
	LookupIP(ctx context.Context, domain string) (Result[net.IP], error)
}

// IsNotFound reports whether err indicates that no record exists.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDNSNotFound)
}

// IsTimeout reports whether err is a query timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrDNSTimeout)
}

// IsServFail reports whether err is a server failure.
func IsServFail(err error) bool {
	return errors.Is(err, ErrDNSServFail)
}

// IsTemporary reports whether retrying the lookup later might succeed.
func IsTemporary(err error) bool {
	return IsTimeout(err) || IsServFail(err)
}
