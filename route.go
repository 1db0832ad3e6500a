package mailaddr

// sourceRoute is an RFC 5321 obsolete source route such as
// "@a.example,@b.example:".
type sourceRoute struct {
	full   string
	routes []string
}

// scanSourceRoute reads the route prefix at the start of s. Every route
// domain is checked like a domain in an address: labels of 1 to 63
// characters without a leading or trailing hyphen, a final label that is
// not all digits, and a successful IDN conversion. The prefix must end in
// ':'.
func scanSourceRoute(s []rune) (sourceRoute, bool) {
	var (
		result           sourceRoute
		full             []rune
		route            []rune
		label            []rune
		requireNewDomain = true
		terminated       bool
	)

	for _, c := range s {
		if requireNewDomain && c != '@' {
			return sourceRoute{}, false
		}
		if c == '@' && !requireNewDomain {
			return sourceRoute{}, false
		}

		switch c {
		case '.', ',', ':':
			if len(label) == 0 || len(label) > maxDomainPartLength {
				return sourceRoute{}, false
			}
			if label[0] == '-' || label[len(label)-1] == '-' {
				return sourceRoute{}, false
			}
			if c != '.' && isAllDigits(label) {
				return sourceRoute{}, false
			}
			label = label[:0]
		default:
			if c != '@' {
				label = append(label, c)
			}
		}

		requireNewDomain = c == ','
		full = append(full, c)

		switch {
		case c == ',' || c == ':':
			domain := string(route)
			if !isValidIDN(domain) {
				return sourceRoute{}, false
			}
			result.routes = append(result.routes, domain)
			route = route[:0]
		case c != '@':
			route = append(route, c)
		}

		if c == ':' {
			terminated = true
			break
		}
	}

	if !terminated {
		return sourceRoute{}, false
	}

	result.full = string(full)
	return result, true
}
