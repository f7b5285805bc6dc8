package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"puzzletrack/pkg/catalog"
)

// Wordle share text, current format:
//
//	Wordle 1,234 3/6*
//	⬛🟨⬛🟨⬛
//	...
//
// The attempts token uses X as the numerator for a failed puzzle ("X/6").
// Older shares printed the number without thousands separators and sometimes
// put the score block on its own line, which the legacy grammar covers by
// scanning ahead instead of requiring a single header line.

var (
	wordleHeaderRe = regexp.MustCompile(`(?i)\bwordle\s+#?([\d,]+)\s+([1-6Xx])/(\d)(\*?)`)
	wordleNumberRe = regexp.MustCompile(`(?i)\bwordle\s+#?([\d,]+)`)
	attemptsRe     = regexp.MustCompile(`\b([1-6Xx])/(\d)(\*?)`)
)

func wordleGrammars() []grammar {
	return []grammar{
		{name: "primary", fn: wordlePrimary},
		{name: "legacy", fn: wordleScanAhead},
	}
}

// wordlePrimary matches the canonical single header line "Wordle N S/6".
func wordlePrimary(text string, game catalog.Game) (*match, error) {
	m := wordleHeaderRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	return wordleMatch(m[1], m[2], m[3], m[4], game, text)
}

// wordleScanAhead tolerates the name, number and score tokens drifting apart,
// which older share formats and third-party clients produce.
func wordleScanAhead(text string, game catalog.Game) (*match, error) {
	if !containsName(text, "wordle") {
		return nil, nil
	}

	num := wordleNumberRe.FindStringSubmatch(text)
	if num == nil {
		return nil, newParseError(ErrMissingPuzzleNumber, game.Name, text)
	}

	score := attemptsRe.FindStringSubmatch(text)
	if score == nil {
		return nil, newParseError(ErrInvalidScore, game.Name, text)
	}

	return wordleMatch(num[1], score[1], score[2], score[3], game, text)
}

func wordleMatch(number, numerator, denominator, hardMode string, game catalog.Game, text string) (*match, error) {
	maxAttempts, err := strconv.Atoi(denominator)
	if err != nil || maxAttempts == 0 {
		return nil, newParseError(ErrInvalidScore, game.Name, text)
	}

	out := &match{
		puzzleNumber: strings.ReplaceAll(number, ",", ""),
		maxAttempts:  maxAttempts,
		extra:        map[string]string{},
	}

	if strings.EqualFold(numerator, "x") {
		// X/6 is an exhausted puzzle: no score, not completed.
		out.completed = false
		out.scoreDisplay = fmt.Sprintf("X/%d", maxAttempts)
	} else {
		attempts, err := strconv.Atoi(numerator)
		if err != nil || attempts < 1 || attempts > maxAttempts {
			return nil, newParseError(ErrInvalidScore, game.Name, text)
		}
		out.score = attempts
		out.completed = true
		out.scoreDisplay = fmt.Sprintf("%d/%d", attempts, maxAttempts)
	}

	if hardMode == "*" {
		out.extra[catalog.KeyHardMode] = "true"
	}

	return out, nil
}
