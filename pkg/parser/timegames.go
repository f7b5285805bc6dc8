package parser

import (
	"puzzletrack/pkg/catalog"
)

// The LinkedIn time-scored games (Queens, Tango, Crossclimb) share one text
// shape: a name token, a "#N" puzzle number and an m:ss solve time, with a
// game emoji and a promo link mixed in:
//
//	Tango #362
//	1:10 🌗
//	lnkd.in/tango.
//
// Older shares put everything on one pipe-separated line ("Queens #123 | 0:45"),
// which the scan-ahead matching covers without a separate pattern. The legacy
// grammar handles shares that carry a completion marker but no time token,
// which some clients strip; those record a completed result with score 0.

func timeGrammars(name string, markers ...string) []grammar {
	return []grammar{
		{name: "primary", fn: timedPrimary(name, markers)},
		{name: "legacy", fn: timedMarkerOnly(name, markers)},
	}
}

// timedPrimary requires the name token, a puzzle number and a valid clock.
func timedPrimary(name string, markers []string) func(string, catalog.Game) (*match, error) {
	return func(text string, game catalog.Game) (*match, error) {
		if !containsName(text, name) {
			return nil, nil
		}

		seconds, display, found, err := findClock(text)
		if err != nil {
			return nil, newParseError(ErrInvalidScore, game.Name, text)
		}
		if !found {
			// Fall through to the marker-only legacy grammar.
			return nil, nil
		}

		number, ok := findPuzzleNumber(text)
		if !ok {
			return nil, newParseError(ErrMissingPuzzleNumber, game.Name, text)
		}

		return &match{
			puzzleNumber: number,
			score:        seconds,
			completed:    true,
			scoreDisplay: display,
		}, nil
	}
}

// timedMarkerOnly accepts a share with a completion marker but no time token.
func timedMarkerOnly(name string, markers []string) func(string, catalog.Game) (*match, error) {
	return func(text string, game catalog.Game) (*match, error) {
		if !containsName(text, name) {
			return nil, nil
		}
		if !hasCompletionMark(text, markers...) {
			return nil, nil
		}

		number, _ := findPuzzleNumber(text)
		return &match{
			puzzleNumber: number,
			completed:    true,
		}, nil
	}
}
