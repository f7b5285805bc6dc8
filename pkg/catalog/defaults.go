package catalog

// Built-in game ids.
const (
	GameWordle     = "wordle"
	GameQueens     = "queens"
	GameTango      = "tango"
	GamePinpoint   = "pinpoint"
	GameCrossclimb = "crossclimb"
	GameZip        = "zip"
	GameMiniSudoku = "mini-sudoku"
)

// Known parsedData keys written by the parser. The set of keys differs per
// game family and grows over time, which is why GameResult carries an open
// string map instead of one struct per game.
//
//	puzzleNumber  - the "#N" token, all games that print one
//	scoreDisplay  - display-ready score string ("3/6", "1:10", "2 guesses")
//	format        - grammar variant that matched ("primary", "legacy")
//	backtracks    - zip only, backtrack count from the share text
//	hardMode      - wordle only, "true" when the share carries the * marker
const (
	KeyPuzzleNumber = "puzzleNumber"
	KeyScoreDisplay = "scoreDisplay"
	KeyFormat       = "format"
	KeyBacktracks   = "backtracks"
	KeyHardMode     = "hardMode"
)

// Default returns the built-in catalog: Wordle plus the LinkedIn daily games.
func Default() *Catalog {
	c, err := New(defaultGames())
	if err != nil {
		// The built-in table is validated by tests; this cannot fail at runtime.
		panic(err)
	}
	return c
}

func defaultGames() []Game {
	return []Game{
		{
			ID:                  GameWordle,
			Name:                "wordle",
			DisplayName:         "Wordle",
			Scoring:             ScoringAttempts,
			MaxAttempts:         6,
			MinPossibleAttempts: 1,
		},
		{
			ID:          GameQueens,
			Name:        "queens",
			DisplayName: "LinkedIn Queens",
			Scoring:     ScoringTime,
		},
		{
			ID:          GameTango,
			Name:        "tango",
			DisplayName: "LinkedIn Tango",
			Scoring:     ScoringTime,
		},
		{
			ID:                  GamePinpoint,
			Name:                "pinpoint",
			DisplayName:         "LinkedIn Pinpoint",
			Scoring:             ScoringGuesses,
			MaxAttempts:         5,
			MinPossibleAttempts: 1,
		},
		{
			ID:          GameCrossclimb,
			Name:        "crossclimb",
			DisplayName: "LinkedIn Crossclimb",
			Scoring:     ScoringTime,
		},
		{
			ID:          GameZip,
			Name:        "zip",
			DisplayName: "LinkedIn Zip",
			Scoring:     ScoringTime,
		},
		{
			ID:          GameMiniSudoku,
			Name:        "mini sudoku",
			DisplayName: "LinkedIn Mini Sudoku",
			Scoring:     ScoringPoints,
		},
	}
}
