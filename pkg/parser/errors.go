package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel parse failure kinds. Malformed share text is an expected, common
// occurrence, so all of these are recoverable and none is ever a panic.
var (
	// ErrUnknownGameFormat means no grammar matched the text at all.
	ErrUnknownGameFormat = errors.New("unknown game format")

	// ErrInvalidScore means the game was recognized but its score token is malformed.
	ErrInvalidScore = errors.New("invalid score format")

	// ErrMissingPuzzleNumber means a grammar matched but no #N token was found.
	ErrMissingPuzzleNumber = errors.New("missing puzzle number")

	// ErrUnsupportedGame means the game has no registered grammar chain.
	ErrUnsupportedGame = errors.New("unsupported game")

	// ErrDateParse is reserved for embedded-date parsing; the current
	// grammars always date results at parse time.
	ErrDateParse = errors.New("date parsing failed")
)

// ParseError carries enough context to render a user-facing recovery hint.
// The original text is preserved (as an excerpt here, verbatim by the caller)
// so the user can retry or correct manually.
type ParseError struct {
	Kind    error
	Game    string
	Excerpt string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: game=%s text=%q", e.Kind, e.Game, e.Excerpt)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Hint returns a user-facing recovery suggestion for this failure.
func (e *ParseError) Hint() string {
	switch {
	case errors.Is(e.Kind, ErrUnknownGameFormat):
		return fmt.Sprintf("The text doesn't look like a %s share. Paste the full share text, or use manual entry.", e.Game)
	case errors.Is(e.Kind, ErrInvalidScore):
		return fmt.Sprintf("Found a %s share but couldn't read the score. Use manual entry to record it.", e.Game)
	case errors.Is(e.Kind, ErrMissingPuzzleNumber):
		return fmt.Sprintf("Found a %s share without a puzzle number. Paste the full share text including the #number.", e.Game)
	case errors.Is(e.Kind, ErrUnsupportedGame):
		return fmt.Sprintf("%s isn't supported yet. Use manual entry to record it.", e.Game)
	default:
		return "Could not read the share text. Use manual entry to record the result."
	}
}

func newParseError(kind error, game, text string) *ParseError {
	return &ParseError{Kind: kind, Game: game, Excerpt: excerpt(text)}
}

// excerpt returns a short single-line prefix of the offending text.
// Truncation counts runes, not bytes; share text is emoji-heavy and a byte
// cut could leave invalid UTF-8 in the user-facing message.
func excerpt(text string) string {
	t := strings.TrimSpace(text)
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[:i]
	}
	const max = 60
	if runes := []rune(t); len(runes) > max {
		t = string(runes[:max])
	}
	return t
}
