package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ,", nil},
		{"http://a:9200", []string{"http://a:9200"}},
		{"a, b ,,c", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitList(tt.in, ","), "input %q", tt.in)
	}
}
