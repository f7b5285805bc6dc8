package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"puzzletrack/pkg/catalog"
)

// Pinpoint is guess-scored. Current shares print a "(2/5)" token; older ones
// spell it out as "2 guesses". Completion is signaled by the 📌 emoji
// appearing anywhere in the text, independent of the guess count reaching
// its maximum:
//
//	Pinpoint #402 | 2 guesses
//	📌 🟦 🟦 ⬜ ⬜ ⬜
//	lnkd.in/pinpoint.

var (
	pinpointFractionRe = regexp.MustCompile(`\((\d)/(\d)\)`)
	pinpointGuessesRe  = regexp.MustCompile(`(?i)\b(\d+)\s+guess(?:es)?\b`)
)

const pinpointMarker = "📌"

func pinpointGrammars() []grammar {
	return []grammar{
		{name: "primary", fn: pinpointFraction},
		{name: "legacy", fn: pinpointSpelled},
	}
}

func pinpointFraction(text string, game catalog.Game) (*match, error) {
	if !containsName(text, "pinpoint") {
		return nil, nil
	}

	frac := pinpointFractionRe.FindStringSubmatch(text)
	if frac == nil {
		return nil, nil
	}

	guesses, err := strconv.Atoi(frac[1])
	if err != nil || guesses < 1 {
		return nil, newParseError(ErrInvalidScore, game.Name, text)
	}
	maxGuesses, err := strconv.Atoi(frac[2])
	if err != nil || maxGuesses < guesses {
		return nil, newParseError(ErrInvalidScore, game.Name, text)
	}

	number, ok := findPuzzleNumber(text)
	if !ok {
		return nil, newParseError(ErrMissingPuzzleNumber, game.Name, text)
	}

	return &match{
		puzzleNumber: number,
		score:        guesses,
		maxAttempts:  maxGuesses,
		completed:    strings.Contains(text, pinpointMarker),
		scoreDisplay: fmt.Sprintf("%d/%d", guesses, maxGuesses),
	}, nil
}

func pinpointSpelled(text string, game catalog.Game) (*match, error) {
	if !containsName(text, "pinpoint") {
		return nil, nil
	}

	spelled := pinpointGuessesRe.FindStringSubmatch(text)
	if spelled == nil {
		return nil, nil
	}

	guesses, err := strconv.Atoi(spelled[1])
	if err != nil || guesses < 1 {
		return nil, newParseError(ErrInvalidScore, game.Name, text)
	}

	number, ok := findPuzzleNumber(text)
	if !ok {
		return nil, newParseError(ErrMissingPuzzleNumber, game.Name, text)
	}

	return &match{
		puzzleNumber: number,
		score:        guesses,
		maxAttempts:  game.MaxAttempts,
		completed:    strings.Contains(text, pinpointMarker),
		scoreDisplay: fmt.Sprintf("%d guesses", guesses),
	}, nil
}
