package searchquery

import "strings"

// Parse tokenizes a search query. It never fails: input that is not a
// well-formed filter is kept as free text, and an unterminated quote runs
// to the end of the input.
func Parse(query string) *QueryResults {
	q := &QueryResults{}
	for i := 0; i < len(query); {
		c := query[i]
		switch {
		case isSpace(c):
			i++
		case c == '(' || c == ')':
			q.tokens = append(q.tokens, Operator(string(c)))
			i++
		case c == '"':
			_, n := readQuoted(query[i:])
			q.tokens = append(q.tokens, FreeText(query[i:i+n]))
			i += n
		default:
			var t Token
			t, i = readTerm(query, i)
			q.tokens = append(q.tokens, t)
		}
	}
	return q
}

// readTerm reads one unquoted term starting at i. A `key:"..."` term may
// contain spaces inside the quotes.
func readTerm(s string, i int) (Token, int) {
	start := i
	for i < len(s) && !isSpace(s[i]) && s[i] != '(' && s[i] != ')' {
		if s[i] == ':' && i+1 < len(s) && s[i+1] == '"' {
			if t, ok := tagToken(s[start:i], ""); ok {
				value, n := readQuoted(s[i+1:])
				t.Value = value
				return t, i + 1 + n
			}
		}
		i++
	}
	term := s[start:i]
	if term == OpAnd || term == OpOr {
		return Operator(term), i
	}
	if idx := strings.IndexByte(term, ':'); idx > 0 {
		if t, ok := tagToken(term[:idx], term[idx+1:]); ok {
			return t, i
		}
	}
	return FreeText(term), i
}

func tagToken(key, value string) (Token, bool) {
	negated := strings.HasPrefix(key, "!")
	if negated {
		key = key[1:]
	}
	if key == "" {
		return Token{}, false
	}
	return Token{Kind: KindTag, Key: key, Value: value, Negated: negated}, true
}

// readQuoted reads a double-quoted string at the start of s and returns the
// unescaped contents and the number of bytes consumed.
func readQuoted(s string) (string, int) {
	var b strings.Builder
	j := 1
	for j < len(s) {
		switch s[j] {
		case '\\':
			if j+1 < len(s) {
				b.WriteByte(s[j+1])
				j += 2
				continue
			}
			j++
		case '"':
			return b.String(), j + 1
		default:
			b.WriteByte(s[j])
			j++
		}
	}
	return b.String(), len(s)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
