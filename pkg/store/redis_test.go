package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"puzzletrack/pkg/achievement"
	"puzzletrack/pkg/result"
	"puzzletrack/pkg/streak"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return NewRedisStore(client), mr
}

func testResult(gameID string, score int) result.GameResult {
	return result.GameResult{
		ID:          uuid.NewString(),
		GameID:      gameID,
		GameName:    gameID,
		Date:        time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
		Score:       score,
		MaxAttempts: 6,
		Completed:   true,
		SharedText:  "Wordle 942 3/6",
		ParsedData:  map[string]string{"puzzleNumber": "942", "format": "primary"},
	}
}

func TestResults_EmptyStore(t *testing.T) {
	s, mr := setupTestRedis(t)
	defer mr.Close()

	results, err := s.Results(context.Background())
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results from an empty store, expected 0", len(results))
	}
}

func TestAppendResult_PreservesOrderAndFields(t *testing.T) {
	s, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	first := testResult("wordle", 3)
	second := testResult("queens", 45)

	if err := s.AppendResult(ctx, first); err != nil {
		t.Fatalf("AppendResult() error = %v", err)
	}
	if err := s.AppendResult(ctx, second); err != nil {
		t.Fatalf("AppendResult() error = %v", err)
	}

	results, err := s.Results(ctx)
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, expected 2", len(results))
	}
	if results[0].ID != first.ID || results[1].ID != second.ID {
		t.Error("results came back out of append order")
	}

	got := results[0]
	if got.GameID != first.GameID || got.Score != first.Score ||
		got.Completed != first.Completed || got.SharedText != first.SharedText {
		t.Errorf("stored result lost fields: %+v", got)
	}
	if !got.Date.Equal(first.Date) {
		t.Errorf("Date = %v, expected %v", got.Date, first.Date)
	}
	if got.ParsedData["puzzleNumber"] != "942" {
		t.Errorf("ParsedData[puzzleNumber] = %q, expected \"942\"", got.ParsedData["puzzleNumber"])
	}
}

func TestReplaceResults(t *testing.T) {
	s, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := s.AppendResult(ctx, testResult("wordle", i+1)); err != nil {
			t.Fatalf("AppendResult() error = %v", err)
		}
	}

	replacement := []result.GameResult{testResult("queens", 45)}
	if err := s.ReplaceResults(ctx, replacement); err != nil {
		t.Fatalf("ReplaceResults() error = %v", err)
	}

	results, err := s.Results(ctx)
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != replacement[0].ID {
		t.Errorf("got %d results after replace, expected only the replacement", len(results))
	}

	// Replacing with an empty history clears the list.
	if err := s.ReplaceResults(ctx, nil); err != nil {
		t.Fatalf("ReplaceResults(nil) error = %v", err)
	}
	results, err = s.Results(ctx)
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results after clearing, expected 0", len(results))
	}
}

func TestStreaks_RoundTrip(t *testing.T) {
	s, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	streaks, err := s.Streaks(ctx)
	if err != nil {
		t.Fatalf("Streaks() error = %v", err)
	}
	if len(streaks) != 0 {
		t.Errorf("got %d streaks from an empty store, expected 0", len(streaks))
	}

	start := time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC)
	st := streak.GameStreak{
		GameID:              "wordle",
		CurrentStreak:       5,
		MaxStreak:           12,
		StreakStartDate:     &start,
		TotalGamesPlayed:    40,
		TotalGamesCompleted: 37,
	}
	if err := s.SaveStreak(ctx, st); err != nil {
		t.Fatalf("SaveStreak() error = %v", err)
	}

	// Upsert overwrites the same game's record.
	st.CurrentStreak = 6
	if err := s.SaveStreak(ctx, st); err != nil {
		t.Fatalf("SaveStreak() error = %v", err)
	}

	streaks, err = s.Streaks(ctx)
	if err != nil {
		t.Fatalf("Streaks() error = %v", err)
	}
	if len(streaks) != 1 {
		t.Fatalf("got %d streaks, expected 1", len(streaks))
	}

	got := streaks["wordle"]
	if got.CurrentStreak != 6 || got.MaxStreak != 12 {
		t.Errorf("got current=%d max=%d, expected 6/12", got.CurrentStreak, got.MaxStreak)
	}
	if got.StreakStartDate == nil || !got.StreakStartDate.Equal(start) {
		t.Errorf("StreakStartDate = %v, expected %v", got.StreakStartDate, start)
	}
}

func TestAchievements_RoundTrip(t *testing.T) {
	s, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	list, err := s.Achievements(ctx)
	if err != nil {
		t.Fatalf("Achievements() error = %v", err)
	}
	if list != nil {
		t.Errorf("got %d achievements from an empty store, expected nil", len(list))
	}

	saved := achievement.Defaults()
	saved[0].Progress.CurrentValue = 15
	saved[0].Progress.CurrentTier = achievement.TierBronze
	saved[0].Progress.UnlockedAt = map[string]time.Time{
		achievement.TierBronze: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}

	if err := s.SaveAchievements(ctx, saved); err != nil {
		t.Fatalf("SaveAchievements() error = %v", err)
	}

	list, err = s.Achievements(ctx)
	if err != nil {
		t.Fatalf("Achievements() error = %v", err)
	}
	if len(list) != len(saved) {
		t.Fatalf("got %d achievements, expected %d", len(list), len(saved))
	}

	got := list[0]
	if got.Category != saved[0].Category {
		t.Errorf("Category = %s, expected %s", got.Category, saved[0].Category)
	}
	if got.Progress.CurrentValue != 15 || got.Progress.CurrentTier != achievement.TierBronze {
		t.Errorf("progress = %+v, expected value 15 at bronze", got.Progress)
	}
	if _, ok := got.Progress.UnlockedAt[achievement.TierBronze]; !ok {
		t.Error("bronze unlock timestamp lost in the round trip")
	}
}
