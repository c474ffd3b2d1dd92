package config

import "strings"

// Expand returns a copy of tree with $NAME and ${NAME} references in every
// string value replaced from environ. NAME must be an identifier
// ([A-Za-z_][A-Za-z0-9_]*); any other "$" sequence, such as "$5" or "${}",
// is kept as written, and "$$" is copied through along with whatever
// follows it, so "pa$$word" stays "pa$$word". Unset variables expand to "", so an unset
// variable cannot be told apart from an empty one. Mapping keys and
// non-string leaves are left untouched.
func Expand(tree Tree, environ Environ) Tree {
	out := make(Tree, len(tree))
	for key, value := range tree {
		out[key] = expandValue(value, environ)
	}

	return out
}

func expandValue(value any, environ Environ) any {
	switch value := value.(type) {
	case string:
		return expandString(value, environ)
	case map[string]any:
		return Expand(value, environ)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = expandValue(item, environ)
		}

		return out
	default:
		return value
	}
}

func expandString(s string, environ Environ) string {
	if !strings.Contains(s, "$") {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++

			continue
		}

		if strings.HasPrefix(s[i+1:], "$") {
			b.WriteString("$$")
			i += 2

			continue
		}

		name, width := referenceAt(s[i+1:])
		if width == 0 {
			b.WriteByte('$')
			i++

			continue
		}

		b.WriteString(environ.Get(name))
		i += 1 + width
	}

	return b.String()
}

// referenceAt parses the reference following a "$". width is the number of
// bytes consumed, 0 when s does not start with a valid reference.
func referenceAt(s string) (name string, width int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 || identifierLen(s[1:end]) != end-1 || end == 1 {
			return "", 0
		}

		return s[1:end], end + 1
	}

	n := identifierLen(s)

	return s[:n], n
}

// identifierLen returns the length of the identifier at the start of s.
func identifierLen(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return i
		}
	}

	return len(s)
}
