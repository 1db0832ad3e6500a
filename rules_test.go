package mailaddr

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/synqronlabs/mailaddr/dns"
)

func TestStockRules(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		valid   []string
		invalid []string
	}{
		{
			name:    "disallow ip domain",
			rule:    DisallowIPDomain(),
			valid:   []string{"user@example.org"},
			invalid: []string{"user@[192.0.2.1]", "user@[IPv6:2001:db8::1]"},
		},
		{
			name:    "require top level domain",
			rule:    RequireTopLevelDomain(),
			valid:   []string{"user@example.org"},
			invalid: []string{"user@localhost", "user@[192.0.2.1]"},
		},
		{
			name:    "disallow explicit source routing",
			rule:    DisallowExplicitSourceRouting(),
			valid:   []string{"user@example.org"},
			invalid: []string{"@a.com,@b.com:user@c.com"},
		},
		{
			name:    "disallow quoted identifiers",
			rule:    DisallowQuotedIdentifiers(),
			valid:   []string{"user@example.org", "\"quoted\"@example.org"},
			invalid: []string{"John <john@example.org>", "<john@example.org>"},
		},
		{
			name:    "disallow quoted local-part",
			rule:    DisallowQuotedLocalPart(),
			valid:   []string{"user@example.org", "John <john@example.org>"},
			invalid: []string{"\"quoted\"@example.org", "first.\"mid\".last@example.org"},
		},
		{
			name:    "disallow obsolete whitespace",
			rule:    DisallowObsoleteWhitespace(),
			valid:   []string{"user@example.org", "\"with space\"@example.org"},
			invalid: []string{"first .last@example.org", "user@example .org"},
		},
		{
			name:    "require ascii",
			rule:    RequireASCII(),
			valid:   []string{"user@example.org", "user@xn--bcher-kva.com"},
			invalid: []string{"user@bücher.com", "用户@example.org"},
		},
		{
			name:  "disallow reserved domains",
			rule:  DisallowReservedDomains(),
			valid: []string{"user@example.co.uk", "user@examples.com", "user@example.org.uk", "user@[192.0.2.1]"},
			invalid: []string{
				"user@test", "user@invalid", "user@example", "user@localhost",
				"user@mail.test", "user@EXAMPLE.COM", "user@example.com",
				"user@example.net", "user@example.org", "user@sub.example.com",
			},
		},
		{
			name:    "require ICANN top level domain",
			rule:    RequireICANNTopLevelDomain(),
			valid:   []string{"user@example.org", "user@example.co.uk", "user@Example.COM"},
			invalid: []string{"user@host.internal", "user@localhost", "user@[192.0.2.1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator().WithRule(tt.rule)
			for _, address := range tt.valid {
				if !v.IsValid(address) {
					t.Errorf("%s rejected %q", tt.rule.Name(), address)
				}
			}
			for _, address := range tt.invalid {
				if !IsValid(address) {
					t.Fatalf("%q does not parse", address)
				}
				if v.IsValid(address) {
					t.Errorf("%s accepted %q", tt.rule.Name(), address)
				}
			}
		})
	}
}

func TestRequireValidMXRecordUsing(t *testing.T) {
	resolver := dns.MockResolver{
		MX: map[string][]*net.MX{
			"example.org.":        {{Host: "mx.example.org.", Pref: 10}},
			"xn--bcher-kva.com.":  {{Host: "mx.xn--bcher-kva.com.", Pref: 10}},
			"nullmx.example.net.": {{Host: ".", Pref: 0}},
			"sub.example.org.":    {{Host: "mx.example.org.", Pref: 10}},
		},
		A:    map[string][]string{"implicit.example.net.": {"192.0.2.25"}},
		Fail: []string{"mx broken.example.net."},
	}

	v := NewValidator().WithRule(RequireValidMXRecordUsing(resolver, dns.MXOptions{}))
	implicit := NewValidator().WithRule(RequireValidMXRecordUsing(resolver, dns.MXOptions{ImplicitMX: true}))

	tests := []struct {
		address  string
		valid    bool
		implicit bool
	}{
		{"user@example.org", true, true},
		{"user@Example.ORG", true, true},
		{"user@bücher.com", true, true},
		{"user(comment)@(c)sub.example.org", true, true},
		{"user@nullmx.example.net", false, false},
		{"user@missing.example.net", false, false},
		{"user@implicit.example.net", false, true},
		{"user@broken.example.net", false, false},
		{"user@[192.0.2.1]", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			if got := v.IsValid(tt.address); got != tt.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tt.address, got, tt.valid)
			}
			if got := implicit.IsValid(tt.address); got != tt.implicit {
				t.Errorf("implicit MX IsValid(%q) = %v, want %v", tt.address, got, tt.implicit)
			}
		})
	}
}

func TestRequireValidMXRecordCancelled(t *testing.T) {
	resolver := dns.MockResolver{
		MX: map[string][]*net.MX{"example.org.": {{Host: "mx.example.org.", Pref: 10}}},
	}
	v := NewValidator().WithRule(RequireValidMXRecordUsing(resolver, dns.MXOptions{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := v.ValidateContext(ctx, "user@example.org").FailureReason(); got != FailedCustomValidation {
		t.Errorf("cancelled lookup = %s, want %s", got, FailedCustomValidation)
	}
}

func TestRequireValidMXRecordWithTimeout(t *testing.T) {
	rule := RequireValidMXRecordWithTimeout(time.Second, 1)
	if rule.Name() != RequireValidMXRecord().Name() {
		t.Errorf("rule names differ: %q and %q", rule.Name(), RequireValidMXRecord().Name())
	}

	// The MX rules share a name but are distinct rules.
	v := NewValidator().WithRules(rule, RequireValidMXRecord(), RequireValidMXRecord())
	if got := len(v.Rules()); got != 2 {
		t.Errorf("validator has %d MX rules, want 2", got)
	}
}

func TestRequireValidMXRecordUsingAppliesEach(t *testing.T) {
	withMX := dns.MockResolver{
		MX: map[string][]*net.MX{"example.org.": {{Host: "mx.example.org.", Pref: 10}}},
	}
	withoutMX := dns.MockResolver{}

	v := NewValidator().WithRules(
		RequireValidMXRecordUsing(withMX, dns.MXOptions{}),
		RequireValidMXRecordUsing(withoutMX, dns.MXOptions{}),
	)
	if got := len(v.Rules()); got != 2 {
		t.Fatalf("validator has %d MX rules, want 2", got)
	}
	if v.IsValid("user@example.org") {
		t.Error("second MX rule was not applied")
	}
}

func TestRequireValidMXRecordIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	v := NewValidator().WithRule(RequireValidMXRecordWithTimeout(2*time.Second, 1))
	if !v.IsValid("user@gmail.com") {
		t.Skip("MX lookup failed, network may be unavailable")
	}
	if v.IsValid("user@nonexistent.invalid") {
		t.Error("accepted a domain under the reserved .invalid TLD")
	}
}
