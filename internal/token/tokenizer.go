package token

import (
	"fmt"
	"strings"

	"github.com/blevesearch/segment"
)

// Tokenizer interface defines the method for tokenizing input strings.
type Tokenizer interface {
	Tokenize(input string) ([]Token, error)
}

// WordTokenizer splits text on Unicode word boundaries. Words, numbers and
// every punctuation mark become tokens; whitespace is dropped. Case is kept.
type WordTokenizer struct{}

func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{}
}

func (t *WordTokenizer) Tokenize(input string) ([]Token, error) {
	seg := segment.NewWordSegmenterDirect([]byte(input))

	var tokens []Token
	for seg.Segment() {
		text := seg.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		tokens = append(tokens, Token{Type: typeOf(seg.Type()), Value: text})
	}
	if err := seg.Err(); err != nil {
		return nil, fmt.Errorf("segment text: %w", err)
	}

	return tokens, nil
}
