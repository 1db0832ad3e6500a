package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	mdns "github.com/miekg/dns"
)

// ResolverConfig contains configuration for the DNS resolver.
type ResolverConfig struct {
	// Nameservers is a list of DNS servers to query (e.g., "8.8.8.8:53").
	// If empty, system resolvers from /etc/resolv.conf are used,
	// falling back to public DNS (8.8.8.8, 1.1.1.1).
	Nameservers []string

	// DNSSEC sets the DO bit on queries and reports the AD bit of responses
	// in Result.Authentic. Requires DNSSEC-validating upstream resolvers.
	DNSSEC bool

	// Timeout is the deadline for each individual query attempt.
	// Default: 5 seconds
	Timeout time.Duration

	// Retries is the number of additional rounds over the nameserver list
	// after the first one fails. Zero means a single round; negative values
	// use the default of 2.
	Retries int
}

// DefaultResolverConfig returns a ResolverConfig with a 5 second timeout
// and 2 retries, querying the system nameservers.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		Timeout: 5 * time.Second,
		Retries: 2,
	}
}

// DNSResolver implements the Resolver interface using github.com/miekg/dns.
type DNSResolver struct {
	config ResolverConfig
	client *mdns.Client
}

// NewResolver creates a new DNS resolver, filling unset config fields with
// their defaults. Use DefaultResolverConfig for the default retry count.
func NewResolver(config ResolverConfig) *DNSResolver {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.Retries < 0 {
		config.Retries = 2
	}
	if len(config.Nameservers) == 0 {
		config.Nameservers = getSystemNameservers()
	}

	return &DNSResolver{
		config: config,
		client: &mdns.Client{
			Timeout: config.Timeout,
		},
	}
}

// getSystemNameservers tries to get system DNS servers from resolv.conf.
func getSystemNameservers() []string {
	config, err := mdns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(config.Servers) == 0 {
		return []string{"8.8.8.8:53", "1.1.1.1:53"}
	}

	port := config.Port
	if port == "" {
		port = "53"
	}
	servers := make([]string, 0, len(config.Servers))
	for _, s := range config.Servers {
		servers = append(servers, net.JoinHostPort(s, port))
	}
	return servers
}

// ensureAbsolute ensures the domain name ends with a dot (FQDN format).
func ensureAbsolute(name string) string {
	if !strings.HasSuffix(name, ".") {
		return name + "."
	}
	return name
}

// query performs a DNS query, retrying across nameservers.
// Every attempt gets its own deadline of config.Timeout.
func (r *DNSResolver) query(ctx context.Context, name string, qtype uint16) (*mdns.Msg, bool, error) {
	m := new(mdns.Msg)
	m.SetQuestion(ensureAbsolute(name), qtype)
	m.RecursionDesired = true

	if r.config.DNSSEC {
		m.SetEdns0(4096, true)
	}

	var lastErr error

	for i := 0; i <= r.config.Retries; i++ {
		for _, server := range r.config.Nameservers {
			if err := ctx.Err(); err != nil {
				return nil, false, err
			}

			resp, err := r.exchange(ctx, m, server)
			if err != nil {
				lastErr = err
				continue
			}

			authentic := r.config.DNSSEC && resp.AuthenticatedData

			switch resp.Rcode {
			case mdns.RcodeSuccess:
				return resp, authentic, nil
			case mdns.RcodeNameError: // NXDOMAIN
				return nil, authentic, ErrDNSNotFound
			case mdns.RcodeServerFailure:
				// SERVFAIL might indicate DNSSEC validation failure
				if r.config.DNSSEC {
					lastErr = ErrDNSBogus
				} else {
					lastErr = ErrDNSServFail
				}
			case mdns.RcodeRefused:
				lastErr = ErrDNSRefused
			default:
				lastErr = fmt.Errorf("dns: unexpected rcode %d", resp.Rcode)
			}
		}
	}

	if lastErr != nil {
		return nil, false, lastErr
	}
	return nil, false, ErrDNSServFail
}

func (r *DNSResolver) exchange(ctx context.Context, m *mdns.Msg, server string) (*mdns.Msg, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	resp, _, err := r.client.ExchangeContext(attemptCtx, m, server)
	if err == nil {
		return resp, nil
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return nil, fmt.Errorf("%w: %s", ErrDNSTimeout, server)
	}
	return nil, fmt.Errorf("dns query failed: %w", err)
}

// LookupMX retrieves MX records for the given domain.
func (r *DNSResolver) LookupMX(ctx context.Context, name string) (Result[*net.MX], error) {
	resp, authentic, err := r.query(ctx, name, mdns.TypeMX)
	if err != nil {
		return Result[*net.MX]{Authentic: authentic}, err
	}

	var records []*net.MX
	for _, rr := range resp.Answer {
		if mx, ok := rr.(*mdns.MX); ok {
			records = append(records, &net.MX{
				Host: mx.Mx,
				Pref: mx.Preference,
			})
		}
	}

	if len(records) == 0 {
		return Result[*net.MX]{Authentic: authentic}, ErrDNSNotFound
	}

	return Result[*net.MX]{Records: records, Authentic: authentic}, nil
}

// LookupIP retrieves A and AAAA records for the given domain.
func (r *DNSResolver) LookupIP(ctx context.Context, domain string) (Result[net.IP], error) {
	var ips []net.IP
	authentic := true
	var lastErr error

	for _, qtype := range []uint16{mdns.TypeA, mdns.TypeAAAA} {
		resp, auth, err := r.query(ctx, domain, qtype)
		if err != nil {
			if !errors.Is(err, ErrDNSNotFound) && lastErr == nil {
				lastErr = err
			}
			continue
		}
		authentic = authentic && auth
		for _, rr := range resp.Answer {
			switch rec := rr.(type) {
			case *mdns.A:
				ips = append(ips, rec.A)
			case *mdns.AAAA:
				ips = append(ips, rec.AAAA)
			}
		}
	}

	if len(ips) == 0 {
		if lastErr != nil {
			return Result[net.IP]{}, lastErr
		}
		return Result[net.IP]{}, ErrDNSNotFound
	}

	return Result[net.IP]{Records: ips, Authentic: authentic}, nil
}

// Config returns the resolver's current configuration.
func (r *DNSResolver) Config() ResolverConfig {
	return r.config
}
