package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFragment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "should strip tags",
			input: "<b>Ranked</b> <a href='/x'>#12</a> worldwide",
			want:  "Ranked #12 worldwide",
		},
		{
			name:  "should drop script content",
			input: "<script>alert(1)</script>top university",
			want:  "top university",
		},
		{
			name:  "should collapse whitespace",
			input: "  spread \n across\t lines ",
			want:  "spread across lines",
		},
		{
			name:  "should pass plain text through",
			input: "University of Toronto",
			want:  "University of Toronto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFragment(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "", Truncate("abc", 0))
	// Rune boundary, not byte boundary.
	assert.Equal(t, "日本", Truncate("日本語", 2))
}

func TestExtractReadableText_PlainText(t *testing.T) {
	got := ExtractReadableText("  already   plain text  ")
	assert.Equal(t, "already plain text", got)
}

func TestExtractReadableText_Empty(t *testing.T) {
	assert.Equal(t, "", ExtractReadableText("   "))
}
