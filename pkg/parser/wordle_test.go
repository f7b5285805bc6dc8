package parser

import (
	"errors"
	"testing"

	"puzzletrack/pkg/catalog"
)

func wordleGame(t *testing.T) catalog.Game {
	t.Helper()
	g, ok := catalog.Default().ByID(catalog.GameWordle)
	if !ok {
		t.Fatal("wordle missing from default catalog")
	}
	return g
}

func TestParseWordle(t *testing.T) {
	p := New()
	game := wordleGame(t)

	tests := []struct {
		name          string
		text          string
		wantScore     int
		wantMax       int
		wantCompleted bool
		wantPuzzle    string
		wantFormat    string
	}{
		{
			name:          "canonical share",
			text:          "Wordle 942 3/6\n\n⬛🟨⬛🟨⬛\n🟨⬛🟨⬛⬛\n🟩🟩🟩🟩🟩",
			wantScore:     3,
			wantMax:       6,
			wantCompleted: true,
			wantPuzzle:    "942",
			wantFormat:    "primary",
		},
		{
			name:          "thousands separator in puzzle number",
			text:          "Wordle 1,234 4/6\n🟩🟩🟩🟩🟩",
			wantScore:     4,
			wantMax:       6,
			wantCompleted: true,
			wantPuzzle:    "1234",
			wantFormat:    "primary",
		},
		{
			name:          "failed puzzle",
			text:          "Wordle 942 X/6\n⬛⬛⬛⬛⬛",
			wantScore:     0,
			wantMax:       6,
			wantCompleted: false,
			wantPuzzle:    "942",
			wantFormat:    "primary",
		},
		{
			name:          "hard mode marker",
			text:          "Wordle 942 2/6*\n🟩🟩🟩🟩🟩",
			wantScore:     2,
			wantMax:       6,
			wantCompleted: true,
			wantPuzzle:    "942",
			wantFormat:    "primary",
		},
		{
			name:          "legacy score on its own line",
			text:          "Wordle #618\n\n5/6\n\n🟩🟩🟩🟩🟩",
			wantScore:     5,
			wantMax:       6,
			wantCompleted: true,
			wantPuzzle:    "618",
			wantFormat:    "legacy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.Parse(tt.text, game)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if res.Score != tt.wantScore {
				t.Errorf("Score = %d, expected %d", res.Score, tt.wantScore)
			}
			if res.MaxAttempts != tt.wantMax {
				t.Errorf("MaxAttempts = %d, expected %d", res.MaxAttempts, tt.wantMax)
			}
			if res.Completed != tt.wantCompleted {
				t.Errorf("Completed = %v, expected %v", res.Completed, tt.wantCompleted)
			}
			if got := res.ParsedData[catalog.KeyPuzzleNumber]; got != tt.wantPuzzle {
				t.Errorf("puzzleNumber = %q, expected %q", got, tt.wantPuzzle)
			}
			if got := res.ParsedData[catalog.KeyFormat]; got != tt.wantFormat {
				t.Errorf("format = %q, expected %q", got, tt.wantFormat)
			}
			if res.SharedText != tt.text {
				t.Error("SharedText must retain the original text verbatim")
			}
		})
	}
}

func TestParseWordleHardModeKey(t *testing.T) {
	p := New()

	res, err := p.Parse("Wordle 942 2/6*\n🟩🟩🟩🟩🟩", wordleGame(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.ParsedData[catalog.KeyHardMode] != "true" {
		t.Errorf("hardMode = %q, expected \"true\"", res.ParsedData[catalog.KeyHardMode])
	}
}

func TestParseWordleFailures(t *testing.T) {
	p := New()
	game := wordleGame(t)

	tests := []struct {
		name     string
		text     string
		wantKind error
	}{
		{"unrelated text", "had a great lunch today", ErrUnknownGameFormat},
		{"score out of range", "Wordle 942 7/6", ErrInvalidScore},
		{"no score token", "Wordle 942\n🟩🟩🟩🟩🟩", ErrInvalidScore},
		{"no puzzle number", "Wordle went well today", ErrMissingPuzzleNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.text, game)
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("Parse() error = %v, expected %v", err, tt.wantKind)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatal("expected a *ParseError")
			}
			if perr.Game != game.Name {
				t.Errorf("ParseError.Game = %q, expected %q", perr.Game, game.Name)
			}
			if perr.Hint() == "" {
				t.Error("ParseError.Hint() must provide a recovery suggestion")
			}
		})
	}
}
