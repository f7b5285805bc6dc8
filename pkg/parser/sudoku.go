package parser

import (
	"regexp"

	"puzzletrack/pkg/catalog"
)

// Mini Sudoku shares carry no stable score grammar across clients, so it is
// parsed best-effort: the name token (plus an optional puzzle number) is
// enough to record a completed result with a nominal score of 1.

var (
	miniSudokuRe = regexp.MustCompile(`(?i)\bmini\s*sudoku\b`)
	sudokuRe     = regexp.MustCompile(`(?i)\bsudoku\b`)
)

func sudokuGrammars() []grammar {
	return []grammar{
		{name: "primary", fn: sudokuPresence(miniSudokuRe)},
		// Early shares dropped the "Mini" prefix.
		{name: "legacy", fn: sudokuPresence(sudokuRe)},
	}
}

func sudokuPresence(nameRe *regexp.Regexp) func(string, catalog.Game) (*match, error) {
	return func(text string, game catalog.Game) (*match, error) {
		if !nameRe.MatchString(text) {
			return nil, nil
		}

		number, _ := findPuzzleNumber(text)
		return &match{
			puzzleNumber: number,
			score:        1,
			completed:    true,
		}, nil
	}
}
