// Package result defines the parsed play-event record shared by the parser,
// streak builder and achievement engine.
package result

import (
	"time"

	"github.com/google/uuid"
)

// GameResult is one parsed play event. Results are created once by the parser
// and immutable afterwards; the only sanctioned mutation path is the
// reparse-and-replace migration, which swaps whole records.
type GameResult struct {
	ID       string    `json:"id"`
	GameID   string    `json:"gameId"`
	GameName string    `json:"gameName"`
	Date     time.Time `json:"date"`
	// Score semantics depend on the game's scoring model: attempts used,
	// seconds taken, guesses used, or points. Zero when parsing only detected
	// completion without a numeric value.
	Score int `json:"score"`
	// MaxAttempts echoes the game's attempt cap or a game-specific derived
	// cap (e.g. zip's backtrack count).
	MaxAttempts int  `json:"maxAttempts"`
	Completed   bool `json:"completed"`
	// SharedText is the raw share text, retained verbatim for audit and
	// reparse migrations.
	SharedText string `json:"sharedText"`
	// ParsedData is an open string map of auxiliary fields; see the known-key
	// list in the catalog package.
	ParsedData map[string]string `json:"parsedData,omitempty"`
}

// New creates a result with a fresh identifier, dated now.
func New(gameID, gameName, sharedText string) GameResult {
	return GameResult{
		ID:         uuid.NewString(),
		GameID:     gameID,
		GameName:   gameName,
		Date:       time.Now(),
		SharedText: sharedText,
		ParsedData: make(map[string]string),
	}
}

// PuzzleNumber returns the parsed "#N" token, or "" when none was found.
func (r GameResult) PuzzleNumber() string {
	return r.ParsedData["puzzleNumber"]
}

// Day returns the result's date truncated to its local calendar day.
func (r GameResult) Day() time.Time {
	y, m, d := r.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.Date.Location())
}
