package achievement

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Engine re-evaluates every achievement category against the result history
// and reports tier transitions. It is a pure transform: inputs are never
// mutated, the updated list and emitted events are fresh values.
type Engine struct {
	registry *Registry
}

// NewEngine creates an achievement engine over a checker registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// CheckAll recomputes progress for every achievement and returns the updated
// list plus unlock events for tiers newly crossed by this pass.
//
// Tier resolution is idempotent: recomputing with the same inputs yields the
// same tier and emits no duplicate events. When one pass crosses several
// tiers at once, one event is emitted per crossed tier so every
// (achievement, tier) transition fires exactly once. A lowered metric lowers
// the current tier but never erases recorded unlock timestamps and never
// emits events.
func (e *Engine) CheckAll(in Input, achievements []TieredAchievement) ([]TieredAchievement, []Unlock) {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	updated := make([]TieredAchievement, 0, len(achievements))
	var unlocks []Unlock

	for _, a := range achievements {
		next := a.clone()

		checker := e.registry.Get(a.Category)
		if checker == nil {
			logrus.Warnf("no checker registered for achievement category %s", a.Category)
			updated = append(updated, next)
			continue
		}

		value := checker.Value(in)
		if checker.Monotonic() && value < next.Progress.CurrentValue {
			// Partial history scans must never walk monotonic progress back.
			value = next.Progress.CurrentValue
		}
		next.Progress.CurrentValue = value

		prevIdx := next.tierIndex(next.Progress.CurrentTier)
		newIdx := next.highestTier(value)

		if newIdx > prevIdx {
			for i := prevIdx + 1; i <= newIdx; i++ {
				tier := next.Tiers[i].Tier
				if _, seen := next.Progress.UnlockedAt[tier]; !seen {
					next.Progress.UnlockedAt[tier] = in.Now
				}
				next.Progress.CurrentTier = tier

				unlocks = append(unlocks, Unlock{
					Achievement: next.clone(),
					Tier:        tier,
					Timestamp:   in.Now,
				})

				logrus.Infof("achievement %s reached tier %s (value=%d)", a.Category, tier, value)
			}
		} else if newIdx >= 0 {
			next.Progress.CurrentTier = next.Tiers[newIdx].Tier
		} else {
			next.Progress.CurrentTier = ""
		}

		updated = append(updated, next)
	}

	return updated, unlocks
}
