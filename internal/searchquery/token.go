// Package searchquery builds and parses the issue search mini-language:
// space separated `key:value` filters, optionally negated with `!`, mixed
// with free text and the boolean operators AND / OR.
//
// Queries are assembled from structured tokens and serialized by Format so
// the quoting rules live in one place.
package searchquery

// Kind classifies a token.
type Kind int

const (
	KindTag Kind = iota
	KindFreeText
	KindOperator
)

func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindFreeText:
		return "free_text"
	case KindOperator:
		return "operator"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Operator values.
const (
	OpAnd        = "AND"
	OpOr         = "OR"
	OpParenOpen  = "("
	OpParenClose = ")"
)

// Token is a single element of a search query.
type Token struct {
	Kind    Kind   `json:"kind"`
	Key     string `json:"key,omitempty"` // tags only
	Value   string `json:"value"`
	Negated bool   `json:"negated,omitempty"` // tags only: `!key:value`
}

// Tag returns a `key:value` filter.
func Tag(key, value string) Token {
	return Token{Kind: KindTag, Key: key, Value: value}
}

// NotTag returns a negated `!key:value` filter.
func NotTag(key, value string) Token {
	return Token{Kind: KindTag, Key: key, Value: value, Negated: true}
}

// FreeText returns a plain text term.
func FreeText(text string) Token {
	return Token{Kind: KindFreeText, Value: text}
}

// Operator returns a boolean operator or parenthesis token.
func Operator(op string) Token {
	return Token{Kind: KindOperator, Value: op}
}

// QueryResults is an ordered sequence of tokens. Adjacent filters are
// implicitly ANDed by the search backend.
type QueryResults struct {
	tokens []Token
}

// New returns a QueryResults holding tokens in order.
func New(tokens ...Token) *QueryResults {
	q := &QueryResults{}
	return q.Add(tokens...)
}

// Add appends tokens and returns q for chaining.
func (q *QueryResults) Add(tokens ...Token) *QueryResults {
	q.tokens = append(q.tokens, tokens...)
	return q
}

// Tokens returns a copy of the token sequence.
func (q *QueryResults) Tokens() []Token {
	out := make([]Token, len(q.tokens))
	copy(out, q.tokens)
	return out
}

func (q *QueryResults) String() string { return Format(q) }
