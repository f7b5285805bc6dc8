package achievement

import (
	"fmt"
	"sync"
	"time"

	"puzzletrack/pkg/catalog"
	"puzzletrack/pkg/result"
	"puzzletrack/pkg/streak"
)

// Input is the evaluation context handed to every checker. All fields are
// read-only snapshots owned by the caller.
type Input struct {
	// NewResult is the triggering result, nil during a batch recompute.
	NewResult *result.GameResult
	Results   []result.GameResult
	Streaks   map[string]streak.GameStreak
	Games     map[string]catalog.Game
	// Now anchors the today/yesterday checks; the engine defaults it when zero.
	Now time.Time
}

// game looks up the catalog entry for a game id. Results referencing ids
// absent from the catalog are skipped by per-game aggregations.
func (in Input) game(id string) (catalog.Game, bool) {
	g, ok := in.Games[id]
	return g, ok
}

// Checker computes one achievement category's metric.
// Checkers are registered in a Registry and evaluated by the Engine.
type Checker interface {
	// Category returns the achievement category this checker serves.
	Category() Category

	// Monotonic reports whether the metric may never decrease across
	// recomputations, tolerating partial or incremental history scans.
	Monotonic() bool

	// Value computes the metric from the evaluation input.
	Value(in Input) int
}

// Registry manages available checkers.
// It provides thread-safe registration and lookup by category.
type Registry struct {
	checkers map[Category]Checker
	mu       sync.RWMutex
}

// NewRegistry creates a new empty checker registry.
func NewRegistry() *Registry {
	return &Registry{checkers: make(map[Category]Checker)}
}

// Register adds a checker to the registry.
// Returns an error if a checker for the same category already exists.
func (r *Registry) Register(c Checker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checkers[c.Category()]; exists {
		return fmt.Errorf("checker %s already registered", c.Category())
	}

	r.checkers[c.Category()] = c
	return nil
}

// Get returns the checker for a category, nil when none is registered.
func (r *Registry) Get(category Category) Checker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.checkers[category]
}

// Count returns the number of registered checkers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.checkers)
}

// DefaultRegistry returns a registry with every built-in checker registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, c := range builtinCheckers() {
		if err := r.Register(c); err != nil {
			// Built-in categories are unique by construction.
			panic(err)
		}
	}
	return r
}
