// Package parser extracts structured game results from raw shared text.
//
// Each supported game has an ordered chain of grammars: the primary grammar
// for the game's current share format, followed by legacy variants for
// formats the game used in the past. Grammars are tried in sequence and the
// first match wins; real share text interleaves emoji, promotional links and
// score blocks unpredictably, so grammars scan ahead for their tokens rather
// than parsing line by line.
package parser

import (
	"github.com/sirupsen/logrus"

	"puzzletrack/pkg/catalog"
	"puzzletrack/pkg/result"
)

// match is the structured output of one grammar.
type match struct {
	puzzleNumber string
	score        int
	maxAttempts  int
	completed    bool
	scoreDisplay string
	extra        map[string]string
}

// grammar is one pattern matcher in a game's fallback chain. It returns
// (nil, nil) when the text doesn't match, a typed *ParseError when the game
// was recognized but a token is malformed, and a match on success.
type grammar struct {
	name string // recorded in parsedData["format"]
	fn   func(text string, game catalog.Game) (*match, error)
}

// Parser holds the per-game grammar chains.
type Parser struct {
	chains map[string][]grammar // keyed by game id
}

// New creates a parser with grammars registered for every built-in game.
func New() *Parser {
	p := &Parser{chains: make(map[string][]grammar)}

	p.register(catalog.GameWordle, wordleGrammars()...)
	p.register(catalog.GameQueens, timeGrammars("queens", "👑")...)
	p.register(catalog.GameTango, timeGrammars("tango", "🌗", "🌕")...)
	p.register(catalog.GameCrossclimb, timeGrammars("crossclimb", "🪜")...)
	p.register(catalog.GameZip, zipGrammars()...)
	p.register(catalog.GamePinpoint, pinpointGrammars()...)
	p.register(catalog.GameMiniSudoku, sudokuGrammars()...)

	return p
}

func (p *Parser) register(gameID string, grammars ...grammar) {
	p.chains[gameID] = append(p.chains[gameID], grammars...)
	logrus.Debugf("registered %d grammars for game %s", len(grammars), gameID)
}

// Parse applies the target game's grammar chain to the shared text.
// It is a pure function: the outcome is fully determined by (text, game),
// except for the parse-time date stamped on the result.
func (p *Parser) Parse(text string, game catalog.Game) (result.GameResult, error) {
	chain, ok := p.chains[game.ID]
	if !ok || len(chain) == 0 {
		return result.GameResult{}, newParseError(ErrUnsupportedGame, game.Name, text)
	}

	for _, g := range chain {
		m, err := g.fn(text, game)
		if err != nil {
			logrus.Debugf("grammar %s/%s rejected text: %v", game.ID, g.name, err)
			return result.GameResult{}, err
		}
		if m == nil {
			continue
		}

		res := result.New(game.ID, game.Name, text)
		res.Score = m.score
		res.MaxAttempts = m.maxAttempts
		res.Completed = m.completed
		if m.puzzleNumber != "" {
			res.ParsedData[catalog.KeyPuzzleNumber] = m.puzzleNumber
		}
		if m.scoreDisplay != "" {
			res.ParsedData[catalog.KeyScoreDisplay] = m.scoreDisplay
		}
		res.ParsedData[catalog.KeyFormat] = g.name
		for k, v := range m.extra {
			res.ParsedData[k] = v
		}

		logrus.Debugf("parsed %s result via %s grammar: score=%d completed=%v puzzle=%s",
			game.ID, g.name, res.Score, res.Completed, m.puzzleNumber)
		return res, nil
	}

	return result.GameResult{}, newParseError(ErrUnknownGameFormat, game.Name, text)
}

// Supports reports whether the parser has a grammar chain for the game.
func (p *Parser) Supports(game catalog.Game) bool {
	return len(p.chains[game.ID]) > 0
}
