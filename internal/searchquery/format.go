package searchquery

import "strings"

// Format serializes q into the search mini-language. Tokens are joined by a
// single space. Tag values that are empty render as `key:""`; values holding
// whitespace, parentheses, backslashes or double quotes are quoted and
// escaped.
func Format(q *QueryResults) string {
	if q == nil {
		return ""
	}
	parts := make([]string, 0, len(q.tokens))
	for _, t := range q.tokens {
		if s := formatToken(t); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func formatToken(t Token) string {
	switch t.Kind {
	case KindTag:
		key := t.Key
		if t.Negated {
			key = "!" + key
		}
		return key + ":" + formatValue(t.Value)
	case KindFreeText, KindOperator:
		return strings.TrimSpace(t.Value)
	default:
		return ""
	}
}

func formatValue(v string) string {
	if v == "" {
		return `""`
	}
	if !needsQuotes(v) {
		return v
	}
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for _, r := range v {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuotes(v string) bool {
	return strings.ContainsAny(v, " \t\n\r\f\v()\\\"")
}
