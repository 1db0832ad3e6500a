package dns

import (
	"context"
	"strings"
)

// MXOptions controls how HasMXRecord interprets missing MX records.
type MXOptions struct {
	// ImplicitMX treats a domain without MX records but with A or AAAA
	// records as its own mail host (RFC 5321 Section 5.1).
	ImplicitMX bool
}

// HasMXRecord reports whether domain publishes at least one usable mail host.
//
// A lone "null MX" record (RFC 7505, host ".") is an explicit statement that
// the domain accepts no mail and yields false, as does any lookup error.
// The returned error is the lookup failure, or nil when the answer was
// definitive.
func HasMXRecord(ctx context.Context, r Resolver, domain string, opts MXOptions) (bool, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return false, ErrDNSNotFound
	}

	result, err := r.LookupMX(ctx, domain)
	switch {
	case err == nil:
		for _, mx := range result.Records {
			if mx != nil && mx.Host != "." && mx.Host != "" {
				return true, nil
			}
		}
		return false, nil
	case IsNotFound(err) && opts.ImplicitMX:
		ips, ipErr := r.LookupIP(ctx, domain)
		if ipErr != nil {
			if IsNotFound(ipErr) {
				return false, nil
			}
			return false, ipErr
		}
		return len(ips.Records) > 0, nil
	case IsNotFound(err):
		return false, nil
	default:
		return false, err
	}
}
