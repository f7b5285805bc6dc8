package parser

import (
	"errors"
	"testing"

	"puzzletrack/pkg/catalog"
	"puzzletrack/pkg/result"
)

func parseGame(t *testing.T, gameID, text string) (result.GameResult, error) {
	t.Helper()
	game, ok := catalog.Default().ByID(gameID)
	if !ok {
		t.Fatalf("game %s missing from default catalog", gameID)
	}
	return New().Parse(text, game)
}

func TestParseTimeScoredGames(t *testing.T) {
	tests := []struct {
		name       string
		gameID     string
		text       string
		wantScore  int
		wantPuzzle string
		wantFormat string
	}{
		{
			name:       "tango canonical share",
			gameID:     catalog.GameTango,
			text:       "Tango #362\n1:10 🌗\nlnkd.in/tango.",
			wantScore:  70,
			wantPuzzle: "362",
			wantFormat: "primary",
		},
		{
			name:       "queens pipe separated line",
			gameID:     catalog.GameQueens,
			text:       "Queens #123 | 0:45\nFirst 👑s: 🟦 🟪 🟩",
			wantScore:  45,
			wantPuzzle: "123",
			wantFormat: "primary",
		},
		{
			name:       "crossclimb over a minute",
			gameID:     catalog.GameCrossclimb,
			text:       "Crossclimb #310\n2:03 🪜\nlnkd.in/crossclimb.",
			wantScore:  123,
			wantPuzzle: "310",
			wantFormat: "primary",
		},
		{
			name:       "queens marker without time",
			gameID:     catalog.GameQueens,
			text:       "Queens #123 👑",
			wantScore:  0,
			wantPuzzle: "123",
			wantFormat: "legacy",
		},
		{
			name:       "tango moon marker without time",
			gameID:     catalog.GameTango,
			text:       "Tango #40 🌕🌗 solved it!",
			wantScore:  0,
			wantPuzzle: "40",
			wantFormat: "legacy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseGame(t, tt.gameID, tt.text)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if res.Score != tt.wantScore {
				t.Errorf("Score = %d, expected %d", res.Score, tt.wantScore)
			}
			if !res.Completed {
				t.Error("Completed = false, expected true")
			}
			if got := res.ParsedData[catalog.KeyPuzzleNumber]; got != tt.wantPuzzle {
				t.Errorf("puzzleNumber = %q, expected %q", got, tt.wantPuzzle)
			}
			if got := res.ParsedData[catalog.KeyFormat]; got != tt.wantFormat {
				t.Errorf("format = %q, expected %q", got, tt.wantFormat)
			}
		})
	}
}

func TestParseTimeScoredFailures(t *testing.T) {
	tests := []struct {
		name     string
		gameID   string
		text     string
		wantKind error
	}{
		{"malformed clock", catalog.GameQueens, "Queens #5 | 0:7", ErrInvalidScore},
		{"time but no puzzle number", catalog.GameTango, "Tango 1:10 🌗", ErrMissingPuzzleNumber},
		{"name only", catalog.GameCrossclimb, "Crossclimb was hard today", ErrUnknownGameFormat},
		{"wrong game entirely", catalog.GameQueens, "Wordle 942 3/6", ErrUnknownGameFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseGame(t, tt.gameID, tt.text)
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("Parse() error = %v, expected %v", err, tt.wantKind)
			}
		})
	}
}

func TestParseZipBacktracks(t *testing.T) {
	res, err := parseGame(t, catalog.GameZip, "Zip #91 | 0:44 🏁\nWith 3 backtracks\nlnkd.in/zip.")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if res.Score != 44 {
		t.Errorf("Score = %d, expected 44", res.Score)
	}
	if res.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, expected backtrack count 3", res.MaxAttempts)
	}
	if got := res.ParsedData[catalog.KeyBacktracks]; got != "3" {
		t.Errorf("backtracks = %q, expected \"3\"", got)
	}

	// No backtrack line: the attempt cap stays unset.
	res, err = parseGame(t, catalog.GameZip, "Zip #91 | 0:44 🏁")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.MaxAttempts != 0 {
		t.Errorf("MaxAttempts = %d, expected 0 without a backtrack line", res.MaxAttempts)
	}
	if _, ok := res.ParsedData[catalog.KeyBacktracks]; ok {
		t.Error("backtracks key must be absent without a backtrack line")
	}
}

func TestParsePinpoint(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantScore     int
		wantMax       int
		wantCompleted bool
		wantFormat    string
	}{
		{
			name:          "fraction with marker",
			text:          "Pinpoint #402 (2/5)\n📌 🟦 🟦 ⬜ ⬜ ⬜",
			wantScore:     2,
			wantMax:       5,
			wantCompleted: true,
			wantFormat:    "primary",
		},
		{
			name:          "fraction without marker is not completed",
			text:          "Pinpoint #402 (5/5)\n🟦 🟦 🟦 🟦 🟦",
			wantScore:     5,
			wantMax:       5,
			wantCompleted: false,
			wantFormat:    "primary",
		},
		{
			name:          "spelled out guesses",
			text:          "Pinpoint #402 | 2 guesses\n📌 🟦 🟦 ⬜ ⬜ ⬜\nlnkd.in/pinpoint.",
			wantScore:     2,
			wantMax:       5,
			wantCompleted: true,
			wantFormat:    "legacy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseGame(t, catalog.GamePinpoint, tt.text)
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
			if got := res.ParsedData[catalog.KeyFormat]; got != tt.wantFormat {
				t.Errorf("format = %q, expected %q", got, tt.wantFormat)
			}
		})
	}
}

func TestParseMiniSudoku(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantPuzzle string
		wantFormat string
	}{
		{"full name", "Mini Sudoku #52 ✅\nlnkd.in/minisudoku.", "52", "primary"},
		{"dropped prefix", "Sudoku #52 done", "52", "legacy"},
		{"no puzzle number", "Mini Sudoku solved", "", "primary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseGame(t, catalog.GameMiniSudoku, tt.text)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if !res.Completed || res.Score != 1 {
				t.Errorf("got score=%d completed=%v, expected nominal completed score 1", res.Score, res.Completed)
			}
			if got := res.ParsedData[catalog.KeyPuzzleNumber]; got != tt.wantPuzzle {
				t.Errorf("puzzleNumber = %q, expected %q", got, tt.wantPuzzle)
			}
			if got := res.ParsedData[catalog.KeyFormat]; got != tt.wantFormat {
				t.Errorf("format = %q, expected %q", got, tt.wantFormat)
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	game, _ := catalog.Default().ByID(catalog.GameWordle)
	p := New()

	first, err := p.Parse("Wordle 942 3/6\n🟩🟩🟩🟩🟩", game)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := p.Parse(first.SharedText, game)
	if err != nil {
		t.Fatalf("reparse error = %v", err)
	}

	if second.Score != first.Score || second.MaxAttempts != first.MaxAttempts ||
		second.Completed != first.Completed {
		t.Error("reparsing the stored text must reproduce the same outcome")
	}
	for k, v := range first.ParsedData {
		if second.ParsedData[k] != v {
			t.Errorf("parsedData[%q] = %q on reparse, expected %q", k, second.ParsedData[k], v)
		}
	}
}
