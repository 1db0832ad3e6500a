package mailaddr

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/synqronlabs/mailaddr/dns"
)

// Rule is an additional check applied by a Validator to an address that
// already passed the RFC grammar. Every call to NewRule or NewContextRule
// creates a distinct rule, even when names repeat; copies of a Rule value
// are the same rule. Stock rules without parameters are shared values, so
// registering one twice has no effect.
type Rule struct {
	name  string
	id    *ruleID
	check func(ctx context.Context, e *Email, logger *slog.Logger) bool
}

// ruleID gives each rule an identity. It must not be zero sized, since
// pointers to distinct zero-size values may compare equal.
type ruleID struct{ _ byte }

func newRule(name string, check func(ctx context.Context, e *Email, logger *slog.Logger) bool) Rule {
	return Rule{name: name, id: new(ruleID), check: check}
}

// NewRule returns a rule that accepts an address when fn returns true. The
// name is used in logs.
func NewRule(name string, fn func(e *Email) bool) Rule {
	return newRule(name, func(_ context.Context, e *Email, _ *slog.Logger) bool {
		return fn(e)
	})
}

// NewContextRule is NewRule for checks that block, such as lookups. fn
// receives the context given to Validator.ValidateContext.
func NewContextRule(name string, fn func(ctx context.Context, e *Email) bool) Rule {
	return newRule(name, func(ctx context.Context, e *Email, _ *slog.Logger) bool {
		return fn(ctx, e)
	})
}

// Name returns the rule name.
func (r Rule) Name() string {
	return r.name
}

// DisallowIPDomain rejects IP literal domains such as "user@[192.0.2.1]".
func DisallowIPDomain() Rule { return disallowIPDomainRule }

var disallowIPDomainRule = NewRule("disallow-ip-domain", func(e *Email) bool {
	return !e.IsIPAddress()
})

// RequireTopLevelDomain rejects dotless domains such as "user@localhost".
func RequireTopLevelDomain() Rule { return requireTopLevelDomainRule }

var requireTopLevelDomainRule = NewRule("require-top-level-domain", func(e *Email) bool {
	return e.TopLevelDomain() != None
})

// DisallowExplicitSourceRouting rejects addresses with an obsolete source
// route such as "@relay.example:user@example.org".
func DisallowExplicitSourceRouting() Rule { return disallowExplicitSourceRoutingRule }

var disallowExplicitSourceRoutingRule = NewRule("disallow-explicit-source-routing", func(e *Email) bool {
	return !e.HasExplicitSourceRoute()
})

// DisallowQuotedIdentifiers rejects the "name <address>" form.
func DisallowQuotedIdentifiers() Rule { return disallowQuotedIdentifiersRule }

var disallowQuotedIdentifiersRule = NewRule("disallow-quoted-identifiers", func(e *Email) bool {
	_, ok := e.DisplayName()
	return !ok
})

// DisallowQuotedLocalPart rejects local-parts that contain a quoted string.
func DisallowQuotedLocalPart() Rule { return disallowQuotedLocalPartRule }

var disallowQuotedLocalPartRule = NewRule("disallow-quoted-local-part", func(e *Email) bool {
	return !strings.ContainsRune(e.LocalPartWithoutComments(), '"')
})

// DisallowObsoleteWhitespace rejects folding whitespace outside of quotes.
func DisallowObsoleteWhitespace() Rule { return disallowObsoleteWhitespaceRule }

var disallowObsoleteWhitespaceRule = NewRule("disallow-obsolete-whitespace", func(e *Email) bool {
	return !e.ContainsWhitespace()
})

// RequireASCII rejects internationalized addresses.
func RequireASCII() Rule { return requireASCIIRule }

var requireASCIIRule = NewRule("require-ascii", func(e *Email) bool {
	return e.IsASCII()
})

var reservedTopLevelDomains = map[string]bool{
	"test":      true,
	"invalid":   true,
	"example":   true,
	"localhost": true,
}

var reservedExampleTLDs = map[TopLevelDomain]bool{
	DotCom: true,
	DotNet: true,
	DotOrg: true,
}

// DisallowReservedDomains rejects the names reserved by RFC 2606: the
// top-level domains test, invalid, example and localhost, and everything
// under example.com, example.net and example.org.
func DisallowReservedDomains() Rule { return disallowReservedDomainsRule }

var disallowReservedDomainsRule = NewRule("disallow-reserved-domains", func(e *Email) bool {
	parts := e.domainParts
	if len(parts) == 0 || e.IsIPAddress() {
		return true
	}
	if reservedTopLevelDomains[strings.ToLower(parts[len(parts)-1])] {
		return false
	}
	if len(parts) > 1 &&
		strings.EqualFold(parts[len(parts)-2], "example") &&
		reservedExampleTLDs[e.TopLevelDomain()] {
		return false
	}
	return true
})

// RequireICANNTopLevelDomain rejects domains whose final label is not an
// ICANN delegated top-level domain, such as "user@host.internal".
func RequireICANNTopLevelDomain() Rule { return requireICANNTopLevelDomainRule }

var requireICANNTopLevelDomainRule = NewRule("require-icann-top-level-domain", func(e *Email) bool {
	return e.TopLevelDomain().IsICANN()
})

const (
	mxRuleName       = "require-valid-mx-record"
	defaultMXTimeout = 5 * time.Second
	defaultMXRetries = 2
)

var defaultMXResolver = sync.OnceValue(func() dns.Resolver {
	return dns.NewResolver(dns.ResolverConfig{
		Timeout: defaultMXTimeout,
		Retries: defaultMXRetries,
	})
})

// RequireValidMXRecord rejects domains without a usable MX record. Each
// query is bounded by a 5 second timeout and retried twice.
func RequireValidMXRecord() Rule { return requireValidMXRecordRule }

var requireValidMXRecordRule = newRule(mxRuleName, func(ctx context.Context, e *Email, logger *slog.Logger) bool {
	return checkMX(ctx, defaultMXResolver(), dns.MXOptions{}, e, logger)
})

// RequireValidMXRecordWithTimeout is RequireValidMXRecord with a custom
// per-query timeout and retry count. A non-positive timeout or a negative
// retry count uses the default; zero retries means a single attempt.
func RequireValidMXRecordWithTimeout(timeout time.Duration, retries int) Rule {
	resolver := dns.NewResolver(dns.ResolverConfig{
		Timeout: timeout,
		Retries: retries,
	})
	return RequireValidMXRecordUsing(resolver, dns.MXOptions{})
}

// RequireValidMXRecordUsing rejects domains without a usable MX record as
// reported by resolver. Each call returns a new rule.
func RequireValidMXRecordUsing(resolver dns.Resolver, opts dns.MXOptions) Rule {
	return newRule(mxRuleName, func(ctx context.Context, e *Email, logger *slog.Logger) bool {
		return checkMX(ctx, resolver, opts, e, logger)
	})
}

func checkMX(ctx context.Context, resolver dns.Resolver, opts dns.MXOptions, e *Email, logger *slog.Logger) bool {
	if e.IsIPAddress() {
		return false
	}

	domain := lookupDomain(strings.Join(e.domainParts, "."))
	ok, err := dns.HasMXRecord(ctx, resolver, domain, opts)
	if err != nil {
		logger.Debug("MX lookup failed",
			slog.String("domain", domain),
			slog.Any("error", err),
		)
	}
	return ok
}
