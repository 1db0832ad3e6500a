package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// StdResolver implements the Resolver interface using the standard library
// net package. It never reports Authentic results; use DNSResolver when
// DNSSEC matters.
type StdResolver struct {
	resolver *net.Resolver
	timeout  time.Duration
}

// NewStdResolver creates a resolver backed by net.DefaultResolver. A positive
// timeout bounds every lookup; zero leaves the deadline to the caller's
// context.
func NewStdResolver(timeout time.Duration) *StdResolver {
	return &StdResolver{
		resolver: net.DefaultResolver,
		timeout:  timeout,
	}
}

// NewStdResolverWithDialer creates a resolver using a custom dialer.
// This allows configuring custom DNS servers while using the stdlib interface.
func NewStdResolverWithDialer(timeout time.Duration, dial func(ctx context.Context, network, address string) (net.Conn, error)) *StdResolver {
	return &StdResolver{
		resolver: &net.Resolver{
			PreferGo: true,
			Dial:     dial,
		},
		timeout: timeout,
	}
}

func (r *StdResolver) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// LookupMX retrieves MX records using the standard library.
func (r *StdResolver) LookupMX(ctx context.Context, name string) (Result[*net.MX], error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	records, err := r.resolver.LookupMX(ctx, strings.TrimSuffix(name, "."))
	if err != nil {
		return Result[*net.MX]{}, convertError(err)
	}
	if len(records) == 0 {
		return Result[*net.MX]{}, ErrDNSNotFound
	}
	return Result[*net.MX]{Records: records}, nil
}

// LookupIP retrieves A and AAAA records using the standard library.
func (r *StdResolver) LookupIP(ctx context.Context, domain string) (Result[net.IP], error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	ips, err := r.resolver.LookupIP(ctx, "ip", strings.TrimSuffix(domain, "."))
	if err != nil {
		return Result[net.IP]{}, convertError(err)
	}
	if len(ips) == 0 {
		return Result[net.IP]{}, ErrDNSNotFound
	}
	return Result[net.IP]{Records: ips}, nil
}

// convertError converts standard library DNS errors to package errors.
func convertError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return ErrDNSNotFound
		case dnsErr.IsTimeout:
			return ErrDNSTimeout
		case dnsErr.IsTemporary:
			return ErrDNSServFail
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrDNSTimeout
	}
	return fmt.Errorf("dns lookup failed: %w", err)
}
