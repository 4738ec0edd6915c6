package token

import "github.com/blevesearch/segment"

type Type int

const (
	PUNCT Type = iota
	WORD
	NUMBER
	IDEO
	KANA
)

func (t Type) String() string {
	switch t {
	case PUNCT:
		return "PUNCT"
	case WORD:
		return "WORD"
	case NUMBER:
		return "NUMBER"
	case IDEO:
		return "IDEO"
	case KANA:
		return "KANA"
	default:
		return "UNKNOWN"
	}
}

func typeOf(segmentType int) Type {
	switch segmentType {
	case segment.Letter:
		return WORD
	case segment.Number:
		return NUMBER
	case segment.Ideo:
		return IDEO
	case segment.Kana:
		return KANA
	default:
		return PUNCT
	}
}

// Token represents a lexical token with its type and literal value.
type Token struct {
	Type  Type
	Value string
}

// Values returns the literal values of tokens in order.
func Values(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Value
	}
	return out
}
