// Package store persists result history and derived state. The computation
// core never touches storage; these interfaces belong to the caller side of
// the read-modify-write pass.
package store

import (
	"context"

	"puzzletrack/pkg/achievement"
	"puzzletrack/pkg/result"
	"puzzletrack/pkg/streak"
)

// ResultStore persists the full GameResult history. Normal operation is
// append-only; ReplaceResults exists solely for the reparse migration.
type ResultStore interface {
	AppendResult(ctx context.Context, r result.GameResult) error
	Results(ctx context.Context) ([]result.GameResult, error)
	ReplaceResults(ctx context.Context, results []result.GameResult) error
}

// StreakStore persists the derived per-game streak records.
type StreakStore interface {
	SaveStreak(ctx context.Context, s streak.GameStreak) error
	Streaks(ctx context.Context) (map[string]streak.GameStreak, error)
}

// AchievementStore persists the achievement list. An empty store yields nil,
// which callers seed with the defaults.
type AchievementStore interface {
	SaveAchievements(ctx context.Context, list []achievement.TieredAchievement) error
	Achievements(ctx context.Context) ([]achievement.TieredAchievement, error)
}

// Store is the combined persistence surface used by the tracker.
type Store interface {
	ResultStore
	StreakStore
	AchievementStore
}
