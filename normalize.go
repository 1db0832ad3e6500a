package mailaddr

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type normalizeOptions struct {
	stripQuotes bool
	lowerCase   bool
	nfc         bool
}

// NormalizeOption adjusts the output of Email.Normalized.
type NormalizeOption func(*normalizeOptions)

// StripQuotes removes quote pairs from the local-part where doing so does
// not change the address.
func StripQuotes() NormalizeOption {
	return func(o *normalizeOptions) { o.stripQuotes = true }
}

// LowerCase lower cases the whole address. Local-parts are case sensitive in
// principle, so only use this for comparison keys.
func LowerCase() NormalizeOption {
	return func(o *normalizeOptions) { o.lowerCase = true }
}

// UnicodeNFC puts the address in Unicode Normalization Form C.
func UnicodeNFC() NormalizeOption {
	return func(o *normalizeOptions) { o.nfc = true }
}

// Normalized returns the address without comments, source route or display
// name. IP literals are written in brackets.
func (e *Email) Normalized(opts ...NormalizeOption) string {
	var o normalizeOptions
	for _, opt := range opts {
		opt(&o)
	}

	local := e.localPartWithoutComments
	if o.stripQuotes {
		local = e.localPartWithoutQuotes
	}

	domain := e.domainWithoutComments
	if e.isIPAddress {
		domain = "[" + domain + "]"
	}

	s := local + "@" + domain
	if o.nfc {
		s = norm.NFC.String(s)
	}
	if o.lowerCase {
		s = strings.ToLower(s)
	}
	return s
}
