// Package streak derives per-game streak records from result history.
package streak

import (
	"time"
)

// GameStreak is the derived streak view for one game. It is fully recomputed
// from the result history on demand and is never a source of truth; every
// catalog game gets an entry, zero-valued when the game has no results.
type GameStreak struct {
	GameID              string     `json:"gameId"`
	CurrentStreak       int        `json:"currentStreak"`
	MaxStreak           int        `json:"maxStreak"`
	StreakStartDate     *time.Time `json:"streakStartDate,omitempty"`
	LastPlayedDate      *time.Time `json:"lastPlayedDate,omitempty"`
	TotalGamesPlayed    int        `json:"totalGamesPlayed"`
	TotalGamesCompleted int        `json:"totalGamesCompleted"`
}

// Empty returns the zero-valued streak record for a game.
func Empty(gameID string) GameStreak {
	return GameStreak{GameID: gameID}
}
