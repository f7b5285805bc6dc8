package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"puzzletrack/pkg/achievement"
	"puzzletrack/pkg/result"
	"puzzletrack/pkg/streak"
)

const (
	resultsKey      = "puzzletrack:results"
	streaksKey      = "puzzletrack:streaks"
	achievementsKey = "puzzletrack:achievements"
)

// RedisStore persists results, streaks and achievements as JSON in redis.
// Results live in a list (append-only), streaks in a hash keyed by game id,
// the achievement list as one JSON document.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store over an existing redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// AppendResult appends one result to the history list.
func (s *RedisStore) AppendResult(ctx context.Context, r result.GameResult) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal result %s: %w", r.ID, err)
	}

	if err := s.client.RPush(ctx, resultsKey, data).Err(); err != nil {
		return fmt.Errorf("failed to append result %s: %w", r.ID, err)
	}

	logrus.Debugf("appended result %s for game %s", r.ID, r.GameID)
	return nil
}

// Results loads the full result history. An empty store yields an empty
// slice, not an error.
func (s *RedisStore) Results(ctx context.Context) ([]result.GameResult, error) {
	raw, err := s.client.LRange(ctx, resultsKey, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	results := make([]result.GameResult, 0, len(raw))
	for _, item := range raw {
		var r result.GameResult
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored result: %w", err)
		}
		results = append(results, r)
	}

	return results, nil
}

// ReplaceResults atomically swaps the whole history. Only the reparse
// migration uses this path.
func (s *RedisStore) ReplaceResults(ctx context.Context, results []result.GameResult) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, resultsKey)
	for _, r := range results {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal result %s: %w", r.ID, err)
		}
		pipe.RPush(ctx, resultsKey, data)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace results: %w", err)
	}

	logrus.Infof("replaced result history with %d results", len(results))
	return nil
}

// SaveStreak upserts one game's streak record.
func (s *RedisStore) SaveStreak(ctx context.Context, st streak.GameStreak) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal streak for game %s: %w", st.GameID, err)
	}

	if err := s.client.HSet(ctx, streaksKey, st.GameID, data).Err(); err != nil {
		return fmt.Errorf("failed to save streak for game %s: %w", st.GameID, err)
	}

	return nil
}

// Streaks loads all stored streak records keyed by game id.
func (s *RedisStore) Streaks(ctx context.Context) (map[string]streak.GameStreak, error) {
	raw, err := s.client.HGetAll(ctx, streaksKey).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to load streaks: %w", err)
	}

	streaks := make(map[string]streak.GameStreak, len(raw))
	for gameID, item := range raw {
		var st streak.GameStreak
		if err := json.Unmarshal([]byte(item), &st); err != nil {
			return nil, fmt.Errorf("failed to unmarshal streak for game %s: %w", gameID, err)
		}
		streaks[gameID] = st
	}

	return streaks, nil
}

// SaveAchievements stores the whole achievement list.
func (s *RedisStore) SaveAchievements(ctx context.Context, list []achievement.TieredAchievement) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal achievements: %w", err)
	}

	if err := s.client.Set(ctx, achievementsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save achievements: %w", err)
	}

	return nil
}

// Achievements loads the stored achievement list, nil when none was saved.
func (s *RedisStore) Achievements(ctx context.Context) ([]achievement.TieredAchievement, error) {
	data, err := s.client.Get(ctx, achievementsKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}

	var list []achievement.TieredAchievement
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal achievements: %w", err)
	}

	return list, nil
}
