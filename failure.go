package mailaddr

import "fmt"

// FailureReason identifies why an address was rejected.
// The zero value means no failure.
type FailureReason int

const (
	failureNone FailureReason = iota

	// Length limits (RFC 5321 Section 4.5.3.1).
	AddressTooShort
	AddressTooLong
	LocalPartMissing
	LocalPartTooLong
	DomainMissing
	DomainTooLong

	// Dot and separator placement.
	StartsWithDot
	EndsWithDot
	LocalPartEndsWithDot
	MultipleDotSeparators
	MultipleAtSymbols
	MissingAtSymbol
	BeginsWithAtSymbol

	// Local-part structure.
	UnquotedAngledBracket
	InvalidWhitespace
	InvalidCommentLocation
	InvalidQuoteLocation
	InvalidComment
	DisallowedUnquotedCharacter
	UnusedBackslashEscape
	MissingBackslashEscape

	// Domain structure.
	InvalidIPDomain
	DomainPartTooLong
	DomainPartStartsWithDash
	DomainPartEndsWithDash
	MissingTopLevelDomain
	TopLevelDomainTooLong
	NumericTLD
	InvalidDomainCharacter

	// FailedCustomValidation is reported when the address parsed but a
	// Validator rule rejected it.
	FailedCustomValidation

	// TooDeeplyNested is reported when comments or angle brackets nest
	// deeper than the configured maximum.
	TooDeeplyNested

	// InvalidUTF8 is reported when the input is not valid UTF-8.
	InvalidUTF8
)

var failureNames = map[FailureReason]string{
	failureNone:                 "NONE",
	AddressTooShort:             "ADDRESS_TOO_SHORT",
	AddressTooLong:              "ADDRESS_TOO_LONG",
	LocalPartMissing:            "LOCAL_PART_MISSING",
	LocalPartTooLong:            "LOCAL_PART_TOO_LONG",
	DomainMissing:               "DOMAIN_MISSING",
	DomainTooLong:               "DOMAIN_TOO_LONG",
	StartsWithDot:               "STARTS_WITH_DOT",
	EndsWithDot:                 "ENDS_WITH_DOT",
	LocalPartEndsWithDot:        "LOCAL_PART_ENDS_WITH_DOT",
	MultipleDotSeparators:       "MULTIPLE_DOT_SEPARATORS",
	MultipleAtSymbols:           "MULTIPLE_AT_SYMBOLS",
	MissingAtSymbol:             "MISSING_AT_SYMBOL",
	BeginsWithAtSymbol:          "BEGINS_WITH_AT_SYMBOL",
	UnquotedAngledBracket:       "UNQUOTED_ANGLED_BRACKET",
	InvalidWhitespace:           "INVALID_WHITESPACE",
	InvalidCommentLocation:      "INVALID_COMMENT_LOCATION",
	InvalidQuoteLocation:        "INVALID_QUOTE_LOCATION",
	InvalidComment:              "INVALID_COMMENT",
	DisallowedUnquotedCharacter: "DISALLOWED_UNQUOTED_CHARACTER",
	UnusedBackslashEscape:       "UNUSED_BACKSLASH_ESCAPE",
	MissingBackslashEscape:      "MISSING_BACKSLASH_ESCAPE",
	InvalidIPDomain:             "INVALID_IP_DOMAIN",
	DomainPartTooLong:           "DOMAIN_PART_TOO_LONG",
	DomainPartStartsWithDash:    "DOMAIN_PART_STARTS_WITH_DASH",
	DomainPartEndsWithDash:      "DOMAIN_PART_ENDS_WITH_DASH",
	MissingTopLevelDomain:       "MISSING_TOP_LEVEL_DOMAIN",
	TopLevelDomainTooLong:       "TOP_LEVEL_DOMAIN_TOO_LONG",
	NumericTLD:                  "NUMERIC_TLD",
	InvalidDomainCharacter:      "INVALID_DOMAIN_CHARACTER",
	FailedCustomValidation:      "FAILED_CUSTOM_VALIDATION",
	TooDeeplyNested:             "TOO_DEEPLY_NESTED",
	InvalidUTF8:                 "INVALID_UTF8",
}

// String returns the upper snake case name of the reason.
func (r FailureReason) String() string {
	if name, ok := failureNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText implements encoding.TextMarshaler.
func (r FailureReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *FailureReason) UnmarshalText(text []byte) error {
	for reason, name := range failureNames {
		if name == string(text) {
			*r = reason
			return nil
		}
	}
	return fmt.Errorf("mailaddr: unknown failure reason %q", text)
}
