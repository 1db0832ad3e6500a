package mailaddr

// TopLevelDomain is the lower case final label of a domain.
type TopLevelDomain string

// Common top-level domains.
const (
	DotCom TopLevelDomain = "com"
	DotNet TopLevelDomain = "net"
	DotOrg TopLevelDomain = "org"
	DotEdu TopLevelDomain = "edu"
	DotGov TopLevelDomain = "gov"
	DotMil TopLevelDomain = "mil"
	DotInt TopLevelDomain = "int"

	// None is returned for dotless domains and IP literals.
	None TopLevelDomain = ""
)

// String returns the label, without a leading dot.
func (t TopLevelDomain) String() string {
	return string(t)
}

// IsICANN reports whether the label is a top-level domain delegated by
// ICANN according to the Public Suffix List.
func (t TopLevelDomain) IsICANN() bool {
	return t != None && isICANNTopLevelDomain(string(t))
}
