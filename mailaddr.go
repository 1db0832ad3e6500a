// Package mailaddr parses and validates email addresses according to
// RFC 5321 and RFC 5322, including internationalized domains (RFC 5890),
// IP address literals, comments, quoted local-parts, folding whitespace and
// obsolete source routes.
//
// # Validation
//
// The package level functions apply only the RFC grammar:
//
//	if mailaddr.IsValid("user@example.org") {
//	    // ...
//	}
//
//	result := mailaddr.Validate("first..last@example.org")
//	fmt.Println(result.FailureReason()) // MULTIPLE_DOT_SEPARATORS
//
// # Rules
//
// A Validator layers extra rules over the grammar. Validators are
// immutable and safe for concurrent use:
//
//	v := mailaddr.StrictValidator().
//	    WithRule(mailaddr.DisallowReservedDomains()).
//	    WithRule(mailaddr.RequireValidMXRecordWithTimeout(2*time.Second, 1))
//
//	email, ok := v.TryParse("John Smith <john.smith@example.org>")
//
// Custom checks are plain functions:
//
//	noPlus := mailaddr.NewRule("no-plus", func(e *mailaddr.Email) bool {
//	    return !strings.Contains(e.LocalPart(), "+")
//	})
//
// # Parsed addresses
//
// An Email exposes the parts of the address with and without comments, the
// domain labels, comments, source routes and display name:
//
//	email, _ := mailaddr.TryParse(`"john..doe"(work)@example.org`)
//	email.LocalPart()                // "john..doe"(work)
//	email.LocalPartWithoutComments() // "john..doe"
//	email.Comments()                 // [work]
//	email.Normalized()               // "john..doe"@example.org
//
// # Serialization
//
// Email supports both JSON and MessagePack:
//
//	data, err := email.ToJSON()
//	email, err := mailaddr.FromJSON(data)
//
//	packed, err := email.ToMessagePack()
//	email, err := mailaddr.FromMessagePack(packed)
package mailaddr

var defaultValidator = NewValidator()

// IsValid reports whether address satisfies the RFC grammar.
func IsValid(address string) bool {
	return defaultValidator.IsValid(address)
}

// IsInvalid reports whether address violates the RFC grammar.
func IsInvalid(address string) bool {
	return defaultValidator.IsInvalid(address)
}

// EnforceValid returns an error wrapping ErrInvalidEmail if address violates
// the RFC grammar.
func EnforceValid(address string) error {
	return defaultValidator.EnforceValid(address)
}

// Validate parses address, returning the Email or the reason it is invalid.
func Validate(address string) ValidationResult {
	return defaultValidator.Validate(address)
}

// TryParse parses address, returning false if it is invalid.
func TryParse(address string) (*Email, bool) {
	return defaultValidator.TryParse(address)
}
