package catalog

import (
	"fmt"
	"strings"
)

// ScoringModel defines how a game's numeric score is interpreted.
type ScoringModel string

const (
	// ScoringAttempts means lower attempts is better (e.g. Wordle 3/6).
	ScoringAttempts ScoringModel = "attempts"
	// ScoringTime means lower solve time in seconds is better.
	ScoringTime ScoringModel = "time"
	// ScoringGuesses means lower guess count is better.
	ScoringGuesses ScoringModel = "guesses"
	// ScoringHints means lower hint count is better.
	ScoringHints ScoringModel = "hints"
	// ScoringPoints means higher is better.
	ScoringPoints ScoringModel = "points"
)

// Valid reports whether the scoring model is one of the known values.
func (m ScoringModel) Valid() bool {
	switch m {
	case ScoringAttempts, ScoringTime, ScoringGuesses, ScoringHints, ScoringPoints:
		return true
	}
	return false
}

// Game is a static catalog entry. Games are defined at startup and never
// mutated afterwards.
type Game struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"` // lowercase key, e.g. "wordle"
	DisplayName string       `yaml:"displayName" json:"displayName"`
	Scoring     ScoringModel `yaml:"scoring" json:"scoring"`
	// MaxAttempts is the game's attempt cap, where the scoring model has one.
	MaxAttempts int `yaml:"maxAttempts,omitempty" json:"maxAttempts,omitempty"`
	// MinPossibleAttempts is the best achievable attempt count, used by the
	// Speed Demon achievement. Zero excludes the game from that metric.
	MinPossibleAttempts int `yaml:"minPossibleAttempts,omitempty" json:"minPossibleAttempts,omitempty"`
}

// Catalog holds the ordered list of supported games.
type Catalog struct {
	games  []Game
	byID   map[string]Game
	byName map[string]Game
}

// New builds a catalog from a list of games. Game ids and names must be
// unique and scoring models must be known.
func New(games []Game) (*Catalog, error) {
	c := &Catalog{
		games:  make([]Game, 0, len(games)),
		byID:   make(map[string]Game, len(games)),
		byName: make(map[string]Game, len(games)),
	}

	for _, g := range games {
		if g.ID == "" {
			return nil, fmt.Errorf("game with empty id")
		}
		if g.Name == "" {
			return nil, fmt.Errorf("game %s has empty name", g.ID)
		}
		if g.Name != strings.ToLower(g.Name) {
			return nil, fmt.Errorf("game %s name must be lowercase: %q", g.ID, g.Name)
		}
		if !g.Scoring.Valid() {
			return nil, fmt.Errorf("game %s has unknown scoring model: %q", g.ID, g.Scoring)
		}
		if _, dup := c.byID[g.ID]; dup {
			return nil, fmt.Errorf("duplicate game id: %s", g.ID)
		}
		if _, dup := c.byName[g.Name]; dup {
			return nil, fmt.Errorf("duplicate game name: %s", g.Name)
		}

		c.games = append(c.games, g)
		c.byID[g.ID] = g
		c.byName[g.Name] = g
	}

	return c, nil
}

// Games returns the catalog entries in definition order.
func (c *Catalog) Games() []Game {
	out := make([]Game, len(c.games))
	copy(out, c.games)
	return out
}

// ByID looks up a game by its identifier.
func (c *Catalog) ByID(id string) (Game, bool) {
	g, ok := c.byID[id]
	return g, ok
}

// ByName looks up a game by its lowercase name key.
func (c *Catalog) ByName(name string) (Game, bool) {
	g, ok := c.byName[strings.ToLower(name)]
	return g, ok
}

// Count returns the number of games in the catalog.
func (c *Catalog) Count() int {
	return len(c.games)
}
