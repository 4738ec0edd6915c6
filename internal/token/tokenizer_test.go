package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordTokenizer_Tokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple query",
			input: "what is a kernel",
			want:  []string{"what", "is", "a", "kernel"},
		},
		{
			name:  "punctuation becomes tokens",
			input: "Hello, world!",
			want:  []string{"Hello", ",", "world", "!"},
		},
		{
			name:  "numbers and decimals",
			input: "costs 3.5 dollars",
			want:  []string{"costs", "3.5", "dollars"},
		},
		{
			name:  "collapses whitespace",
			input: "  a \t\n b  ",
			want:  []string{"a", "b"},
		},
		{
			name:  "empty",
			input: "",
			want:  []string{},
		},
	}

	tok := NewWordTokenizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tok.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Values(tokens))
		})
	}
}

func TestWordTokenizer_Types(t *testing.T) {
	tokens, err := NewWordTokenizer().Tokenize("top 10 kernels.")
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	assert.Equal(t, WORD, tokens[0].Type)
	assert.Equal(t, NUMBER, tokens[1].Type)
	assert.Equal(t, WORD, tokens[2].Type)
	assert.Equal(t, PUNCT, tokens[3].Type)
	assert.Equal(t, "PUNCT", tokens[3].Type.String())
}
