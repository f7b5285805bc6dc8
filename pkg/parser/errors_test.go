package parser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short text unchanged", "Wordle 942 3/6", "Wordle 942 3/6"},
		{"first line only", "Wordle 942 3/6\n🟩🟩🟩🟩🟩", "Wordle 942 3/6"},
		{"surrounding whitespace trimmed", "  Wordle 942 3/6  ", "Wordle 942 3/6"},
		{"long ascii line capped", strings.Repeat("a", 80), strings.Repeat("a", 60)},
		{"long emoji line capped on rune boundary", strings.Repeat("🟩", 80), strings.Repeat("🟩", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := excerpt(tt.text)
			if got != tt.want {
				t.Errorf("excerpt() = %q, expected %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("excerpt() = %q is not valid UTF-8", got)
			}
		})
	}
}

func TestParseErrorExcerptStaysValidUTF8(t *testing.T) {
	// A failing share whose first line is all emoji, so a byte-based cut
	// would split a rune.
	text := "Wordle " + strings.Repeat("🟨", 40)
	perr := newParseError(ErrInvalidScore, "wordle", text)

	if !utf8.ValidString(perr.Excerpt) {
		t.Fatalf("Excerpt = %q is not valid UTF-8", perr.Excerpt)
	}
	if !strings.Contains(perr.Error(), perr.Excerpt) {
		t.Error("Error() must include the excerpt")
	}
}
