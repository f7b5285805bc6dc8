package achievement

import (
	"sort"
	"time"

	"puzzletrack/pkg/result"
)

// metricChecker adapts a metric function to the Checker interface.
type metricChecker struct {
	category  Category
	monotonic bool
	value     func(Input) int
}

func (c metricChecker) Category() Category { return c.category }
func (c metricChecker) Monotonic() bool    { return c.monotonic }
func (c metricChecker) Value(in Input) int { return c.value(in) }

func builtinCheckers() []Checker {
	return []Checker{
		metricChecker{CategoryStreakMaster, false, streakMasterValue},
		metricChecker{CategoryGameCollector, false, gameCollectorValue},
		metricChecker{CategoryPerfectionist, false, perfectionistValue},
		metricChecker{CategoryDailyDevotee, false, dailyDevoteeValue},
		metricChecker{CategoryVarietyPlayer, true, varietyPlayerValue},
		metricChecker{CategorySpeedDemon, false, speedDemonValue},
		metricChecker{CategoryEarlyBird, false, earlyBirdValue},
		metricChecker{CategoryNightOwl, false, nightOwlValue},
		metricChecker{CategoryComebackChampion, true, comebackChampionValue},
		metricChecker{CategoryMarathonRunner, false, marathonRunnerValue},
	}
}

// streakMasterValue is the current streak of the game tied to the triggering
// result. During a batch recompute with no trigger it takes the best current
// streak across all games.
func streakMasterValue(in Input) int {
	if in.NewResult != nil {
		return in.Streaks[in.NewResult.GameID].CurrentStreak
	}

	best := 0
	for _, s := range in.Streaks {
		if s.CurrentStreak > best {
			best = s.CurrentStreak
		}
	}
	return best
}

// gameCollectorValue counts all results across all games.
func gameCollectorValue(in Input) int {
	return len(in.Results)
}

// perfectionistValue counts completed results across all games.
func perfectionistValue(in Input) int {
	n := 0
	for _, r := range in.Results {
		if r.Completed {
			n++
		}
	}
	return n
}

// dailyDevoteeValue is the run of consecutive calendar days with at least one
// result, ending at the most recent played day. The run is zeroed when it
// does not reach today or yesterday.
func dailyDevoteeValue(in Input) int {
	days := distinctDays(in.Results, false)
	if len(days) == 0 {
		return 0
	}

	last := days[len(days)-1]
	if dayDistance(last, dayOf(in.Now)) > 1 {
		return 0
	}

	run := 1
	for i := len(days) - 1; i > 0; i-- {
		if dayDistance(days[i-1], days[i]) != 1 {
			break
		}
		run++
	}
	return run
}

// varietyPlayerValue counts distinct games ever played. Monotonic.
func varietyPlayerValue(in Input) int {
	seen := make(map[string]struct{})
	for _, r := range in.Results {
		seen[r.GameID] = struct{}{}
	}
	return len(seen)
}

// speedDemonValue counts completed results solved in the game's minimal
// possible attempts. Games without a multi-attempt scoring model are excluded
// via a zero MinPossibleAttempts; unknown game ids are skipped.
func speedDemonValue(in Input) int {
	n := 0
	for _, r := range in.Results {
		g, ok := in.game(r.GameID)
		if !ok || g.MinPossibleAttempts == 0 {
			continue
		}
		if r.Completed && r.Score == g.MinPossibleAttempts {
			n++
		}
	}
	return n
}

// earlyBirdValue counts results played in the local [5,9) hour window.
func earlyBirdValue(in Input) int {
	return countInHourWindow(in.Results, 5, 9)
}

// nightOwlValue counts results played in the local [0,5) hour window.
func nightOwlValue(in Input) int {
	return countInHourWindow(in.Results, 0, 5)
}

// comebackChampionValue counts, across all games, new run starts following a
// gap greater than one day, with results bucketed to one completed day per
// game. Monotonic.
func comebackChampionValue(in Input) int {
	byGame := make(map[string][]result.GameResult)
	for _, r := range in.Results {
		byGame[r.GameID] = append(byGame[r.GameID], r)
	}

	total := 0
	for _, results := range byGame {
		days := distinctDays(results, true)
		for i := 1; i < len(days); i++ {
			if dayDistance(days[i-1], days[i]) > 1 {
				total++
			}
		}
	}
	return total
}

// marathonRunnerValue counts distinct calendar days with at least one result,
// across all games.
func marathonRunnerValue(in Input) int {
	return len(distinctDays(in.Results, false))
}

func countInHourWindow(results []result.GameResult, from, to int) int {
	n := 0
	for _, r := range results {
		h := r.Date.Hour()
		if h >= from && h < to {
			n++
		}
	}
	return n
}

// distinctDays collapses results to their sorted set of distinct calendar
// days, optionally keeping only completed results. This set-based bucketing
// is deliberately separate from the streak builder's raw chronological walk;
// the two gap policies serve different metrics and must not be unified.
func distinctDays(results []result.GameResult, completedOnly bool) []time.Time {
	set := make(map[time.Time]struct{})
	for _, r := range results {
		if completedOnly && !r.Completed {
			continue
		}
		set[dayOf(r.Date)] = struct{}{}
	}

	days := make([]time.Time, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// dayOf truncates a timestamp to its UTC-normalized calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayDistance returns whole calendar days from a to b.
func dayDistance(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
