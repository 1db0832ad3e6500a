package mailaddr

import (
	"slices"
	"strings"
)

// Email is a parsed email address. It is immutable; accessors return copies
// of any slices.
type Email struct {
	localPart                string
	localPartWithoutComments string
	localPartWithoutQuotes   string
	domain                   string
	domainWithoutComments    string
	domainParts              []string
	comments                 []string
	explicitSourceRoute      string
	sourceRoutes             []string
	isIPAddress              bool
	containsWhitespace       bool
	isASCII                  bool
	display                  *displayForm
}

// displayForm is the "name <address>" wrapping of an address.
type displayForm struct {
	name string
	addr *Email
}

// withDisplayName returns a copy of e wrapped in a display form.
func (e *Email) withDisplayName(name string) *Email {
	wrapped := *e
	wrapped.display = &displayForm{name: name, addr: e}
	return &wrapped
}

// LocalPart returns the local-part as written, comments and quotes included.
func (e *Email) LocalPart() string { return e.localPart }

// LocalPartWithoutComments returns the local-part with comments removed.
func (e *Email) LocalPartWithoutComments() string { return e.localPartWithoutComments }

// LocalPartWithoutQuotes returns the local-part without comments and with
// redundant quote pairs removed. A quoted string keeps its quotes when
// removing them would change the meaning of the address.
func (e *Email) LocalPartWithoutQuotes() string { return e.localPartWithoutQuotes }

// Domain returns the domain as written, comments included. For an IP literal
// it is the canonical address without brackets, with an "IPv6:" prefix for
// IPv6.
func (e *Email) Domain() string { return e.domain }

// DomainWithoutComments returns the domain with comments removed.
func (e *Email) DomainWithoutComments() string { return e.domainWithoutComments }

// DomainParts returns the dot separated labels of the domain.
func (e *Email) DomainParts() []string { return slices.Clone(e.domainParts) }

// Comments returns the text of every comment, without parentheses, in the
// order they appeared.
func (e *Email) Comments() []string { return slices.Clone(e.comments) }

// ExplicitSourceRoute returns the source route prefix as written, for
// example "@a.example,@b.example:", or the empty string.
func (e *Email) ExplicitSourceRoute() string { return e.explicitSourceRoute }

// SourceRoutes returns the domains of the source route prefix.
func (e *Email) SourceRoutes() []string { return slices.Clone(e.sourceRoutes) }

// HasExplicitSourceRoute reports whether the address had a source route.
func (e *Email) HasExplicitSourceRoute() bool { return e.explicitSourceRoute != "" }

// IsIPAddress reports whether the domain is an IP address literal.
func (e *Email) IsIPAddress() bool { return e.isIPAddress }

// ContainsWhitespace reports whether the address uses folding whitespace
// outside of quotes.
func (e *Email) ContainsWhitespace() bool { return e.containsWhitespace }

// IsASCII reports whether the address is made only of ASCII characters.
func (e *Email) IsASCII() bool { return e.isASCII }

// DisplayName returns the text before the angle brackets of a
// "name <address>" form. ok is false for a bare address.
func (e *Email) DisplayName() (name string, ok bool) {
	if e.display == nil {
		return "", false
	}
	return e.display.name, true
}

// AngleAddress returns the address inside the angle brackets of a
// "name <address>" form. ok is false for a bare address.
func (e *Email) AngleAddress() (addr *Email, ok bool) {
	if e.display == nil {
		return nil, false
	}
	return e.display.addr, true
}

// TopLevelDomain returns the final domain label in lower case, or None for
// dotless domains and IP literals.
func (e *Email) TopLevelDomain() TopLevelDomain {
	if e.isIPAddress || len(e.domainParts) < 2 {
		return None
	}
	return TopLevelDomain(strings.ToLower(e.domainParts[len(e.domainParts)-1]))
}

// RegisteredDomain returns the domain directly under its public suffix
// ("mail.example.co.uk" gives "example.co.uk"). It is empty for IP
// literals and for domains the Public Suffix List cannot place.
func (e *Email) RegisteredDomain() string {
	if e.isIPAddress {
		return ""
	}
	return registeredDomain(strings.Join(e.domainParts, "."))
}

// String returns the address in a form that parses back to an equal Email.
func (e *Email) String() string {
	if e.display != nil {
		return e.display.name + "<" + e.display.addr.String() + ">"
	}

	var b strings.Builder
	b.WriteString(e.explicitSourceRoute)
	b.WriteString(e.localPart)
	b.WriteByte('@')
	if e.isIPAddress {
		// Comments can only precede a domain literal.
		b.WriteString(strings.TrimSuffix(e.domain, e.domainWithoutComments))
		b.WriteByte('[')
		b.WriteString(e.domainWithoutComments)
		b.WriteByte(']')
	} else {
		b.WriteString(e.domain)
	}
	return b.String()
}

// Equal reports whether e and other describe the same parsed address.
func (e *Email) Equal(other *Email) bool {
	if e == nil || other == nil {
		return e == other
	}
	if (e.display == nil) != (other.display == nil) {
		return false
	}
	if e.display != nil {
		if e.display.name != other.display.name || !e.display.addr.Equal(other.display.addr) {
			return false
		}
	}
	return e.localPart == other.localPart &&
		e.localPartWithoutComments == other.localPartWithoutComments &&
		e.localPartWithoutQuotes == other.localPartWithoutQuotes &&
		e.domain == other.domain &&
		e.domainWithoutComments == other.domainWithoutComments &&
		slices.Equal(e.domainParts, other.domainParts) &&
		slices.Equal(e.comments, other.comments) &&
		e.explicitSourceRoute == other.explicitSourceRoute &&
		slices.Equal(e.sourceRoutes, other.sourceRoutes) &&
		e.isIPAddress == other.isIPAddress &&
		e.containsWhitespace == other.containsWhitespace &&
		e.isASCII == other.isASCII
}
