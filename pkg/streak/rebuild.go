package streak

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"puzzletrack/pkg/catalog"
	"puzzletrack/pkg/result"
)

// Rebuild recomputes the streak record for one game from its full result
// history. It walks the raw chronological list; same-day repeat plays hold
// the counter, a day gap of exactly one extends it, and a gap greater than
// one day or an uncompleted result breaks it.
//
// A streak is never broken by the passage of real-world time since the last
// play. Only a dated gap in the history itself breaks it; the walk does not
// consult the current time at all.
func Rebuild(game catalog.Game, results []result.GameResult) GameStreak {
	s := Empty(game.ID)
	if len(results) == 0 {
		return s
	}

	sorted := make([]result.GameResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var (
		counter       int
		startDate     *time.Time
		lastCompleted *time.Time // day of the previous completed result
	)

	for _, r := range sorted {
		s.TotalGamesPlayed++
		last := r.Date
		s.LastPlayedDate = &last

		if !r.Completed {
			// An unsuccessful play breaks the run regardless of dates.
			counter = 0
			startDate = nil
			continue
		}

		s.TotalGamesCompleted++
		day := r.Day()

		switch {
		case counter == 0:
			counter = 1
			startDate = &day
		default:
			gap := daysBetween(*lastCompleted, day)
			switch {
			case gap == 0:
				// Same-day repeat plays neither extend nor break the run.
			case gap == 1:
				counter++
			default:
				// Broken by the dated gap; this completed result starts a new run.
				counter = 1
				startDate = &day
			}
		}

		lastCompleted = &day
		if counter > s.MaxStreak {
			s.MaxStreak = counter
		}
	}

	// Cover a run still active at the end of history.
	if counter > s.MaxStreak {
		s.MaxStreak = counter
	}

	s.CurrentStreak = counter
	s.StreakStartDate = startDate

	logrus.Debugf("rebuilt streak for game %s: current=%d max=%d played=%d completed=%d",
		game.ID, s.CurrentStreak, s.MaxStreak, s.TotalGamesPlayed, s.TotalGamesCompleted)

	return s
}

// daysBetween returns the whole-day calendar distance from a to b.
// The dates are normalized to UTC midnights first so DST transitions in the
// local zone cannot shorten a day below 24 hours.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}
