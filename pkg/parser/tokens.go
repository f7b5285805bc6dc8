package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Shared token scanners used by the per-game grammars.

var (
	// "#362", "# 1,234" - the puzzle number token most games print.
	puzzleNumberRe = regexp.MustCompile(`#\s*([\d,]+)`)

	// "1:10" style clock token. Broad on purpose: candidates are validated
	// by parseClock so a malformed clock is a typed failure, not a miss.
	clockRe = regexp.MustCompile(`(\d{1,3}):(\d{1,2})\b`)

	// Explicit completion markers that appear in share text regardless of
	// score tokens.
	completionMarkRe = regexp.MustCompile(`[✅🏁🎉]|✔️`)
)

// findPuzzleNumber returns the first #N token after the game-name token,
// with thousands separators stripped ("1,234" -> "1234").
func findPuzzleNumber(text string) (string, bool) {
	m := puzzleNumberRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ReplaceAll(m[1], ",", ""), true
}

// containsName reports whether the game-name token appears in the text,
// case-insensitively and on a word boundary.
func containsName(text, name string) bool {
	re := nameTokenRe(name)
	return re.MatchString(text)
}

func nameTokenRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
}

// findClock scans for an m:ss time token and converts it to total seconds.
// Returns (0, false, nil) when no clock-like token exists and a typed error
// when one exists but is malformed.
func findClock(text string) (seconds int, display string, found bool, err error) {
	m := clockRe.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false, nil
	}

	mins, _ := strconv.Atoi(m[1])
	secs, _ := strconv.Atoi(m[2])
	if len(m[2]) != 2 || secs > 59 {
		return 0, "", false, fmt.Errorf("malformed clock token %q", m[0])
	}

	return mins*60 + secs, fmt.Sprintf("%d:%02d", mins, secs), true, nil
}

// hasCompletionMark reports whether a generic completion marker (checkmark,
// flag) or any of the game-specific markers appears in the text.
func hasCompletionMark(text string, markers ...string) bool {
	if completionMarkRe.MatchString(text) {
		return true
	}
	for _, mk := range markers {
		if strings.Contains(text, mk) {
			return true
		}
	}
	return false
}
