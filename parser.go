package mailaddr

import (
	"strings"
	"unicode/utf8"

	"github.com/synqronlabs/mailaddr/ipaddr"
	"github.com/synqronlabs/mailaddr/utils"
)

// parseState is the scratch state of a single scan. It never outlives the
// call that created it.
type parseState struct {
	maxDepth int

	atFound               bool
	inQuotes              bool
	previousDot           bool
	prevBackslash         bool
	firstDomainChar       bool
	isIP                  bool
	requireAtOrDot        bool
	requireAtDotOrComment bool
	whitespace            bool
	previousComment       bool
	requireAngledBracket  bool
	containsWhitespace    bool
	removableQuotePair    bool
	previousQuotedDot     bool
	requireQuotedAtOrDot  bool
	charactersOnLine      int

	localPart                strings.Builder
	localPartWithoutComments strings.Builder
	localPartWithoutQuotes   strings.Builder
	currentQuote             strings.Builder
	domain                   strings.Builder
	domainWithoutComments    strings.Builder
	label                    []rune
	domainParts              []string
	comments                 []string
}

// parse validates s as an email address. depth counts the angle brackets
// already entered.
func parse(s []rune, depth, maxDepth int) (*Email, FailureReason) {
	if len(s) < 3 {
		return nil, AddressTooShort
	}

	var route sourceRoute
	if s[0] == '@' {
		r, ok := scanSourceRoute(s)
		if !ok {
			return nil, BeginsWithAtSymbol
		}
		route = r
		s = s[len([]rune(r.full)):]
	}

	switch n := len(s); {
	case n == 0:
		return nil, AddressTooShort
	case n > maxEmailLength:
		return nil, AddressTooLong
	case s[0] == '.':
		return nil, StartsWithDot
	case s[n-1] == '.':
		return nil, EndsWithDot
	case s[n-1] == '-':
		return nil, DomainPartEndsWithDash
	}

	st := &parseState{
		maxDepth:         maxDepth,
		firstDomainChar:  true,
		charactersOnLine: 1,
	}
	wrapped, reason := st.scan(s, depth)
	if reason != failureNone {
		return nil, reason
	}
	if wrapped != nil {
		return wrapped, failureNone
	}
	return st.finish(s, route)
}

// scan walks s once. It returns a non-nil Email only for the angle bracket
// form, where the bracketed address was parsed recursively.
func (st *parseState) scan(s []rune, depth int) (*Email, FailureReason) {
	size := len(s)

	for i := 0; i < size; i++ {
		c := s[i]

		if c == '<' && !st.inQuotes && !st.prevBackslash {
			if s[size-1] != '>' {
				return nil, UnquotedAngledBracket
			}
			if depth+1 > st.maxDepth {
				return nil, TooDeeplyNested
			}
			inner, reason := parse(s[i+1:size-1], depth+1, st.maxDepth)
			if reason != failureNone {
				return nil, reason
			}
			return inner.withDisplayName(st.localPart.String()), failureNone
		}

		if c == '@' && !st.inQuotes && !st.prevBackslash {
			if st.atFound {
				return nil, MultipleAtSymbols
			}
			if st.requireAngledBracket {
				return nil, InvalidWhitespace
			}
			st.atFound = true
			st.requireAtOrDot = false
			st.requireAtDotOrComment = false
			st.whitespace = false
			st.previousDot = true
			continue
		}

		// A line fold must follow at least one character.
		if c == '\n' {
			if st.charactersOnLine <= 0 {
				return nil, InvalidWhitespace
			}
			st.charactersOnLine = 0
		} else if c != '\r' {
			st.charactersOnLine++
		}

		if st.requireAtOrDot {
			if !isWhitespace(c) && c != '.' {
				return nil, InvalidCommentLocation
			}
			st.requireAtOrDot = false
		}

		if st.requireAtDotOrComment {
			if !isWhitespace(c) && c != '.' && c != '(' {
				return nil, InvalidQuoteLocation
			}
			st.requireAtDotOrComment = false
		}

		if st.whitespace && !st.previousDot && !st.previousComment {
			if c != '.' && c != '@' && c != '(' && !isWhitespace(c) {
				if st.atFound {
					return nil, InvalidWhitespace
				}
				// Only a display name may contain bare whitespace.
				st.requireAngledBracket = true
			}
		}

		if st.requireQuotedAtOrDot && st.inQuotes {
			if c != '.' && c != '@' && !isWhitespace(c) && c != '"' {
				st.removableQuotePair = false
			} else if !isWhitespace(c) && c != '"' {
				st.requireQuotedAtOrDot = false
			}
		}

		if c == '(' {
			if st.inQuotes {
				if !st.prevBackslash {
					st.removableQuotePair = false
				}
			} else {
				n, ok, tooDeep := scanComment(s[i:], 1, st.maxDepth)
				if tooDeep {
					return nil, TooDeeplyNested
				}
				if !ok {
					return nil, InvalidComment
				}
				st.comment(s[i:i+n], i, i+n == size)
				i += n - 1
				continue
			}
		}

		if c == '.' && st.previousDot {
			if !st.inQuotes {
				return nil, MultipleDotSeparators
			}
			st.removableQuotePair = false
		}

		if !st.atFound {
			if reason := st.localPartChar(c, i); reason != failureNone {
				return nil, reason
			}
		} else {
			if st.firstDomainChar && c == '[' {
				if reason := st.ipLiteral(s[i:]); reason != failureNone {
					return nil, reason
				}
				break
			}
			if reason := st.domainChar(c); reason != failureNone {
				return nil, reason
			}
		}

		quotedWhitespace := isWhitespace(c) && st.inQuotes
		if c == '"' && !st.prevBackslash {
			st.toggleQuote()
		}

		st.whitespace = isWhitespace(c) && !st.inQuotes && !st.prevBackslash
		if st.whitespace {
			st.containsWhitespace = true
		} else {
			st.previousDot = c == '.'
			st.previousComment = false
		}
		if quotedWhitespace {
			if !st.previousQuotedDot && !st.prevBackslash {
				st.requireQuotedAtOrDot = true
			}
		} else {
			st.previousQuotedDot = c == '.'
		}
		st.prevBackslash = c == '\\' && !st.prevBackslash
	}

	if !st.atFound {
		return nil, MissingAtSymbol
	}
	return nil, failureNone
}

// comment records a comment found at position i. A comment inside a
// local-part or domain must be followed by a dot or an '@' unless it sits
// next to one already.
func (st *parseState) comment(text []rune, i int, endsInput bool) {
	switch {
	case !st.atFound && i != 0 && !st.previousDot:
		st.requireAtOrDot = true
	case st.atFound && !st.firstDomainChar && !st.previousDot && !endsInput:
		st.requireAtOrDot = true
	}

	if st.atFound {
		st.domain.WriteString(string(text))
	} else {
		st.localPart.WriteString(string(text))
	}
	st.previousComment = true
	st.comments = append(st.comments, string(text[1:len(text)-1]))
}

func (st *parseState) localPartChar(c rune, i int) FailureReason {
	if c == '"' && i > 0 && !st.previousDot && !st.inQuotes {
		return InvalidQuoteLocation
	}

	mustBeQuoted := disallowedUnquoted[c]
	if c != '"' && !st.inQuotes && !st.prevBackslash && mustBeQuoted {
		return DisallowedUnquotedCharacter
	}
	if mustBeQuoted && st.inQuotes && !st.prevBackslash && c != '"' {
		st.removableQuotePair = false
	}
	if !st.inQuotes && st.prevBackslash && !mustBeQuoted && c != ' ' && c != '\\' {
		return UnusedBackslashEscape
	}
	if st.inQuotes && quotedWithEscape[c] {
		if !st.prevBackslash {
			return MissingBackslashEscape
		}
		st.removableQuotePair = false
	}

	st.localPart.WriteRune(c)
	st.localPartWithoutComments.WriteRune(c)

	switch {
	case c == '"' && st.prevBackslash && st.inQuotes:
		// An escaped quote keeps its enclosing quotes.
		st.removableQuotePair = false
		st.currentQuote.WriteRune(c)
	case c == '"':
	case st.inQuotes:
		st.currentQuote.WriteRune(c)
	default:
		st.localPartWithoutQuotes.WriteRune(c)
	}
	return failureNone
}

// ipLiteral handles a domain literal; rest starts at the opening bracket and
// runs to the end of the input.
func (st *parseState) ipLiteral(rest []rune) FailureReason {
	if len(rest) < 3 || rest[len(rest)-1] != ']' {
		return InvalidIPDomain
	}

	ip := string(rest[1 : len(rest)-1])
	var (
		validated string
		ok        bool
	)
	if v6, found := strings.CutPrefix(ip, ipv6Prefix); found {
		validated, ok = ipaddr.ValidateIPv6(v6)
		validated = ipv6Prefix + validated
	} else {
		validated, ok = ipaddr.ValidateIPv4(ip)
	}
	if !ok {
		return InvalidIPDomain
	}

	st.label = append(st.label, []rune(validated)...)
	st.domain.WriteString(validated)
	st.domainWithoutComments.WriteString(validated)
	st.isIP = true
	return failureNone
}

func (st *parseState) domainChar(c rune) FailureReason {
	if c == '.' {
		switch {
		case len(st.label) > maxDomainPartLength:
			return DomainPartTooLong
		case len(st.label) == 0:
			return MultipleDotSeparators
		case st.label[0] == '-':
			return DomainPartStartsWithDash
		case st.label[len(st.label)-1] == '-':
			return DomainPartEndsWithDash
		}
		st.domainParts = append(st.domainParts, string(st.label))
		st.label = st.label[:0]
	} else if !isWhitespace(c) {
		st.label = append(st.label, c)
	}

	st.domain.WriteRune(c)
	st.domainWithoutComments.WriteRune(c)
	st.firstDomainChar = false
	return failureNone
}

func (st *parseState) toggleQuote() {
	if st.inQuotes {
		st.requireAtDotOrComment = true
		if st.currentQuote.Len() == 0 {
			st.removableQuotePair = false
		}
		if st.removableQuotePair {
			st.localPartWithoutQuotes.WriteString(st.currentQuote.String())
		} else {
			st.localPartWithoutQuotes.WriteByte('"')
			st.localPartWithoutQuotes.WriteString(st.currentQuote.String())
			st.localPartWithoutQuotes.WriteByte('"')
		}
	} else {
		st.removableQuotePair = true
		st.requireQuotedAtOrDot = false
		st.currentQuote.Reset()
	}
	st.inQuotes = !st.inQuotes
}

// finish applies the length and top-level domain checks and builds the
// Email.
func (st *parseState) finish(s []rune, route sourceRoute) (*Email, FailureReason) {
	localPart := st.localPart.String()
	localPartWithoutComments := st.localPartWithoutComments.String()
	domainWithoutComments := st.domainWithoutComments.String()

	switch n := utf8.RuneCountInString(localPartWithoutComments); {
	case n == 0:
		return nil, LocalPartMissing
	case n > maxLocalPartLength:
		return nil, LocalPartTooLong
	}

	switch n := utf8.RuneCountInString(domainWithoutComments); {
	case n == 0:
		return nil, DomainMissing
	case n > maxDomainLength:
		return nil, DomainTooLong
	}

	if strings.HasSuffix(localPart, ".") {
		return nil, LocalPartEndsWithDot
	}

	tld := st.label
	switch {
	case len(tld) == 0:
		return nil, MissingTopLevelDomain
	case len(tld) > maxDomainPartLength:
		return nil, TopLevelDomainTooLong
	case tld[0] == '-':
		return nil, DomainPartStartsWithDash
	case tld[len(tld)-1] == '-':
		return nil, DomainPartEndsWithDash
	case isAllDigits(tld):
		return nil, NumericTLD
	}
	st.domainParts = append(st.domainParts, string(tld))

	if !st.isIP && !isValidIDN(domainWithoutComments) {
		return nil, InvalidDomainCharacter
	}

	return &Email{
		localPart:                localPart,
		localPartWithoutComments: localPartWithoutComments,
		localPartWithoutQuotes:   st.localPartWithoutQuotes.String(),
		domain:                   st.domain.String(),
		domainWithoutComments:    domainWithoutComments,
		domainParts:              st.domainParts,
		comments:                 st.comments,
		explicitSourceRoute:      route.full,
		sourceRoutes:             route.routes,
		isIPAddress:              st.isIP,
		containsWhitespace:       st.containsWhitespace,
		isASCII:                  !utils.ContainsNonASCII(string(s)),
	}, failureNone
}
