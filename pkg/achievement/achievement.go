// Package achievement tracks tiered achievement progress over the result
// history and reports tier-transition events.
package achievement

import (
	"time"
)

// Category identifies one achievement family.
type Category string

const (
	CategoryStreakMaster     Category = "streak_master"
	CategoryGameCollector    Category = "game_collector"
	CategoryPerfectionist    Category = "perfectionist"
	CategoryDailyDevotee     Category = "daily_devotee"
	CategoryVarietyPlayer    Category = "variety_player"
	CategorySpeedDemon       Category = "speed_demon"
	CategoryEarlyBird        Category = "early_bird"
	CategoryNightOwl         Category = "night_owl"
	CategoryComebackChampion Category = "comeback_champion"
	CategoryMarathonRunner   Category = "marathon_runner"
)

// Tier labels, ascending.
const (
	TierBronze    = "bronze"
	TierSilver    = "silver"
	TierGold      = "gold"
	TierLegendary = "legendary"
)

// TierRequirement is one threshold level within a category.
type TierRequirement struct {
	Tier      string `json:"tier"`
	Threshold int    `json:"threshold"`
}

// Progress is the mutable progress record attached to an achievement.
type Progress struct {
	CurrentValue int `json:"currentValue"`
	// CurrentTier is the currently attained tier label, empty when none.
	CurrentTier string `json:"currentTier,omitempty"`
	// UnlockedAt maps tier label to the time the tier was first reached.
	// Entries are never removed, even if a recompute lowers the tier.
	UnlockedAt map[string]time.Time `json:"unlockedAt,omitempty"`
}

// TieredAchievement is one achievement category with its ordered tier table
// and progress record.
type TieredAchievement struct {
	Category    Category          `json:"category"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Tiers       []TierRequirement `json:"tiers"` // ascending by threshold
	Progress    Progress          `json:"progress"`
}

// Unlock is a tier-transition event. It is emitted exactly once per
// (achievement, tier) transition and is not persisted state.
type Unlock struct {
	Achievement TieredAchievement `json:"achievement"` // snapshot after the update
	Tier        string            `json:"tier"`
	Timestamp   time.Time         `json:"timestamp"`
}

// tierIndex returns the position of a tier label in the table, -1 when the
// label is empty or unknown.
func (a *TieredAchievement) tierIndex(tier string) int {
	for i, t := range a.Tiers {
		if t.Tier == tier {
			return i
		}
	}
	return -1
}

// highestTier resolves the highest tier whose threshold is <= value.
// Returns -1 when no tier is attained.
func (a *TieredAchievement) highestTier(value int) int {
	best := -1
	for i, t := range a.Tiers {
		if value >= t.Threshold {
			best = i
		}
	}
	return best
}

// clone returns a deep copy so the engine never aliases caller state.
func (a TieredAchievement) clone() TieredAchievement {
	out := a
	out.Tiers = make([]TierRequirement, len(a.Tiers))
	copy(out.Tiers, a.Tiers)
	out.Progress.UnlockedAt = make(map[string]time.Time, len(a.Progress.UnlockedAt))
	for k, v := range a.Progress.UnlockedAt {
		out.Progress.UnlockedAt[k] = v
	}
	return out
}

func tiers(bronze, silver, gold, legendary int) []TierRequirement {
	return []TierRequirement{
		{Tier: TierBronze, Threshold: bronze},
		{Tier: TierSilver, Threshold: silver},
		{Tier: TierGold, Threshold: gold},
		{Tier: TierLegendary, Threshold: legendary},
	}
}

// Defaults returns the full achievement list with zeroed progress.
func Defaults() []TieredAchievement {
	return []TieredAchievement{
		{
			Category:    CategoryStreakMaster,
			Name:        "Streak Master",
			Description: "Keep a daily completion streak alive",
			Icon:        "🔥",
			Tiers:       tiers(3, 7, 30, 100),
		},
		{
			Category:    CategoryGameCollector,
			Name:        "Game Collector",
			Description: "Record puzzle results",
			Icon:        "🎮",
			Tiers:       tiers(10, 50, 200, 500),
		},
		{
			Category:    CategoryPerfectionist,
			Name:        "Perfectionist",
			Description: "Complete puzzles successfully",
			Icon:        "✨",
			Tiers:       tiers(10, 50, 200, 500),
		},
		{
			Category:    CategoryDailyDevotee,
			Name:        "Daily Devotee",
			Description: "Play something every day",
			Icon:        "📅",
			Tiers:       tiers(7, 30, 100, 365),
		},
		{
			Category:    CategoryVarietyPlayer,
			Name:        "Variety Player",
			Description: "Play different games",
			Icon:        "🎲",
			Tiers:       tiers(2, 4, 6, 8),
		},
		{
			Category:    CategorySpeedDemon,
			Name:        "Speed Demon",
			Description: "Solve in the minimum possible attempts",
			Icon:        "⚡",
			Tiers:       tiers(5, 25, 100, 250),
		},
		{
			Category:    CategoryEarlyBird,
			Name:        "Early Bird",
			Description: "Play between 5am and 9am",
			Icon:        "🌅",
			Tiers:       tiers(5, 25, 100, 250),
		},
		{
			Category:    CategoryNightOwl,
			Name:        "Night Owl",
			Description: "Play between midnight and 5am",
			Icon:        "🦉",
			Tiers:       tiers(5, 25, 100, 250),
		},
		{
			Category:    CategoryComebackChampion,
			Name:        "Comeback Champion",
			Description: "Start a new run after a break",
			Icon:        "💪",
			Tiers:       tiers(1, 5, 15, 50),
		},
		{
			Category:    CategoryMarathonRunner,
			Name:        "Marathon Runner",
			Description: "Play on many distinct days",
			Icon:        "🏃",
			Tiers:       tiers(7, 30, 180, 365),
		},
	}
}
