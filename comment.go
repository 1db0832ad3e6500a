package mailaddr

// scanComment reads the parenthesized comment at the start of s and returns
// its length in runes, parentheses included. Nested comments are consumed
// whole. ok is false when no unescaped closing parenthesis ends the comment.
// If nesting goes past maxDepth, tooDeep is set.
func scanComment(s []rune, depth, maxDepth int) (n int, ok, tooDeep bool) {
	if len(s) < 2 {
		return 0, false, false
	}
	if depth > maxDepth {
		return 0, false, true
	}

	prevBackslash := false
	for i := 0; i < len(s); i++ {
		c := s[i]

		if c == '(' && !prevBackslash && i != 0 {
			inner, ok, tooDeep := scanComment(s[i:], depth+1, maxDepth)
			if !ok {
				return 0, false, tooDeep
			}
			i += inner - 1
			continue
		}

		if c == ')' && !prevBackslash {
			return i + 1, true, false
		}

		prevBackslash = c == '\\' && !prevBackslash
	}

	return 0, false, false
}
