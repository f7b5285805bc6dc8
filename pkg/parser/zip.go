package parser

import (
	"regexp"
	"strconv"

	"puzzletrack/pkg/catalog"
)

// Zip is time-scored like the other LinkedIn games but its share text also
// reports backtracks:
//
//	Zip #91 | 0:44 🏁
//	With 3 backtracks
//
// The backtrack count is surfaced as the result's derived attempt cap and in
// parsedData, since zip has no fixed attempt limit of its own.

var backtracksRe = regexp.MustCompile(`(?i)with\s+(\d+)\s+backtracks?`)

func zipGrammars() []grammar {
	base := timeGrammars("zip", "🏁")
	out := make([]grammar, 0, len(base))
	for _, g := range base {
		out = append(out, grammar{name: g.name, fn: withBacktracks(g.fn)})
	}
	return out
}

func withBacktracks(inner func(string, catalog.Game) (*match, error)) func(string, catalog.Game) (*match, error) {
	return func(text string, game catalog.Game) (*match, error) {
		m, err := inner(text, game)
		if m == nil || err != nil {
			return m, err
		}

		if bt := backtracksRe.FindStringSubmatch(text); bt != nil {
			n, convErr := strconv.Atoi(bt[1])
			if convErr == nil {
				m.maxAttempts = n
				if m.extra == nil {
					m.extra = map[string]string{}
				}
				m.extra[catalog.KeyBacktracks] = bt[1]
			}
		}

		return m, nil
	}
}
