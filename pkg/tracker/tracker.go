// Package tracker orchestrates the ingestion pipeline:
// shared text → parser → stored result → streak rebuild → achievement check.
//
// The core transforms underneath are pure functions; the tracker owns the
// read-modify-write pass over shared state and serializes it behind a single
// writer lock.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"puzzletrack/pkg/achievement"
	"puzzletrack/pkg/catalog"
	"puzzletrack/pkg/parser"
	"puzzletrack/pkg/result"
	"puzzletrack/pkg/store"
	"puzzletrack/pkg/streak"
)

// ErrUnknownGame means the requested game name is not in the catalog.
var ErrUnknownGame = errors.New("unknown game")

// UnlockHook receives achievement unlock events after they are persisted.
type UnlockHook func(achievement.Unlock)

// Tracker wires the catalog, parser, achievement engine and store together.
type Tracker struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	parser  *parser.Parser
	engine  *achievement.Engine
	store   store.Store
	metrics *Metrics
	hooks   []UnlockHook
}

// New creates a tracker. metrics may be nil (tests).
func New(cat *catalog.Catalog, p *parser.Parser, e *achievement.Engine, st store.Store, metrics *Metrics) *Tracker {
	return &Tracker{
		catalog: cat,
		parser:  p,
		engine:  e,
		store:   st,
		metrics: metrics,
	}
}

// OnUnlock registers a hook invoked for every emitted unlock event.
// Hooks must be registered before the tracker starts processing.
func (t *Tracker) OnUnlock(hook UnlockHook) {
	t.hooks = append(t.hooks, hook)
}

// Games returns the catalog entries.
func (t *Tracker) Games() []catalog.Game {
	return t.catalog.Games()
}

// Ingest parses one piece of shared text for the named game, persists the
// result and recomputes the affected streak and all achievements.
// Parse failures are returned typed and persist nothing.
func (t *Tracker) Ingest(ctx context.Context, gameName, text string) (result.GameResult, []achievement.Unlock, error) {
	game, ok := t.catalog.ByName(gameName)
	if !ok {
		game, ok = t.catalog.ByID(gameName)
	}
	if !ok {
		return result.GameResult{}, nil, fmt.Errorf("%w: %s", ErrUnknownGame, gameName)
	}

	res, err := t.parser.Parse(text, game)
	if err != nil {
		if t.metrics != nil {
			t.metrics.ParseFailures.WithLabelValues(failureKind(err)).Inc()
		}
		logrus.Debugf("parse failed for game %s: %v", game.ID, err)
		return result.GameResult{}, nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.AppendResult(ctx, res); err != nil {
		return result.GameResult{}, nil, err
	}

	allResults, err := t.store.Results(ctx)
	if err != nil {
		return result.GameResult{}, nil, err
	}

	updatedStreak := streak.Rebuild(game, resultsForGame(allResults, game.ID))
	if err := t.store.SaveStreak(ctx, updatedStreak); err != nil {
		return result.GameResult{}, nil, err
	}

	unlocks, err := t.checkAchievements(ctx, &res, allResults)
	if err != nil {
		return result.GameResult{}, nil, err
	}

	if t.metrics != nil {
		t.metrics.ResultsIngested.WithLabelValues(game.ID).Inc()
	}
	logrus.Infof("ingested %s result: score=%d completed=%v unlocks=%d",
		game.ID, res.Score, res.Completed, len(unlocks))

	return res, unlocks, nil
}

// RecomputeAll rebuilds every streak and re-runs the achievement engine from
// scratch over the full history. Results referencing game ids absent from
// the catalog are skipped for per-game aggregation, never fatal.
func (t *Tracker) RecomputeAll(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.recomputeLocked(ctx)
}

func (t *Tracker) recomputeLocked(ctx context.Context) error {
	allResults, err := t.store.Results(ctx)
	if err != nil {
		return err
	}

	for _, game := range t.catalog.Games() {
		s := streak.Rebuild(game, resultsForGame(allResults, game.ID))
		if err := t.store.SaveStreak(ctx, s); err != nil {
			return err
		}
	}

	if _, err := t.checkAchievements(ctx, nil, allResults); err != nil {
		return err
	}

	if t.metrics != nil {
		t.metrics.Recomputes.Inc()
	}
	logrus.Infof("recomputed streaks and achievements over %d results", len(allResults))
	return nil
}

// ReparseResults is the best-effort one-time migration: every stored result
// is re-parsed under the current grammars. On a per-result failure the
// original is retained unchanged and the migration continues; failures are
// logged, not surfaced. Identity and dates are preserved across the swap.
func (t *Tracker) ReparseResults(ctx context.Context) (migrated, failed int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	allResults, err := t.store.Results(ctx)
	if err != nil {
		return 0, 0, err
	}

	replacement := make([]result.GameResult, 0, len(allResults))
	for _, r := range allResults {
		game, ok := t.catalog.ByID(r.GameID)
		if !ok {
			replacement = append(replacement, r)
			continue
		}

		reparsed, perr := t.parser.Parse(r.SharedText, game)
		if perr != nil {
			logrus.Warnf("reparse failed for result %s (game %s), keeping original: %v", r.ID, r.GameID, perr)
			replacement = append(replacement, r)
			failed++
			continue
		}

		reparsed.ID = r.ID
		reparsed.Date = r.Date
		replacement = append(replacement, reparsed)
		migrated++
	}

	if err := t.store.ReplaceResults(ctx, replacement); err != nil {
		return 0, 0, err
	}

	if err := t.recomputeLocked(ctx); err != nil {
		return migrated, failed, err
	}

	logrus.Infof("reparse migration finished: migrated=%d failed=%d", migrated, failed)
	return migrated, failed, nil
}

// Results returns the stored history, optionally filtered by game id.
func (t *Tracker) Results(ctx context.Context, gameID string) ([]result.GameResult, error) {
	all, err := t.store.Results(ctx)
	if err != nil {
		return nil, err
	}
	if gameID == "" {
		return all, nil
	}
	return resultsForGame(all, gameID), nil
}

// Streaks returns a streak record for every catalog game, zero-valued when
// the game has never been played.
func (t *Tracker) Streaks(ctx context.Context) ([]streak.GameStreak, error) {
	stored, err := t.store.Streaks(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]streak.GameStreak, 0, t.catalog.Count())
	for _, game := range t.catalog.Games() {
		if s, ok := stored[game.ID]; ok {
			out = append(out, s)
		} else {
			out = append(out, streak.Empty(game.ID))
		}
	}
	return out, nil
}

// Achievements returns the stored achievement list, seeded with defaults on
// first use.
func (t *Tracker) Achievements(ctx context.Context) ([]achievement.TieredAchievement, error) {
	list, err := t.store.Achievements(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = achievement.Defaults()
	}
	return list, nil
}

// checkAchievements runs the engine over the current state and persists the
// outcome. newResult is nil during batch recomputes.
func (t *Tracker) checkAchievements(ctx context.Context, newResult *result.GameResult, allResults []result.GameResult) ([]achievement.Unlock, error) {
	list, err := t.Achievements(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := t.store.Streaks(ctx)
	if err != nil {
		return nil, err
	}

	games := make(map[string]catalog.Game, t.catalog.Count())
	streaks := make(map[string]streak.GameStreak, t.catalog.Count())
	for _, game := range t.catalog.Games() {
		games[game.ID] = game
		if s, ok := stored[game.ID]; ok {
			streaks[game.ID] = s
		} else {
			streaks[game.ID] = streak.Empty(game.ID)
		}
	}

	updated, unlocks := t.engine.CheckAll(achievement.Input{
		NewResult: newResult,
		Results:   allResults,
		Streaks:   streaks,
		Games:     games,
	}, list)

	if err := t.store.SaveAchievements(ctx, updated); err != nil {
		return nil, err
	}

	for _, u := range unlocks {
		if t.metrics != nil {
			t.metrics.Unlocks.WithLabelValues(string(u.Achievement.Category)).Inc()
		}
		for _, hook := range t.hooks {
			hook(u)
		}
	}

	return unlocks, nil
}

func resultsForGame(all []result.GameResult, gameID string) []result.GameResult {
	out := make([]result.GameResult, 0, len(all))
	for _, r := range all {
		if r.GameID == gameID {
			out = append(out, r)
		}
	}
	return out
}
