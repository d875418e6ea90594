package keyspace

// Match exposes the KEYS glob matcher for callers outside the package,
// such as CONFIG GET's pattern matching over setting names.
func Match(pattern, text string) bool {
	return globMatch(pattern, text)
}

// globMatch implements the KEYS pattern matcher from spec.md §4.2: '*'
// matches any sequence including empty, '?' matches exactly one byte, and
// '\x' escapes the next byte to match it literally. Matching operates on
// raw bytes, not runes, so it stays correct over non-UTF-8 keys.
func globMatch(pattern, text string) bool {
	return globMatchBytes([]byte(pattern), []byte(text))
}

func globMatchBytes(pattern, text []byte) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			// Collapse consecutive '*' and try every split point.
			for len(pattern) > 1 && pattern[1] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 1 {
				return true
			}
			for i := 0; i <= len(text); i++ {
				if globMatchBytes(pattern[1:], text[i:]) {
					return true
				}
			}
			return false

		case '?':
			if len(text) == 0 {
				return false
			}
			pattern = pattern[1:]
			text = text[1:]

		case '\\':
			if len(pattern) < 2 {
				return false
			}
			if len(text) == 0 || text[0] != pattern[1] {
				return false
			}
			pattern = pattern[2:]
			text = text[1:]

		default:
			if len(text) == 0 || text[0] != pattern[0] {
				return false
			}
			pattern = pattern[1:]
			text = text[1:]
		}
	}
	return len(text) == 0
}
