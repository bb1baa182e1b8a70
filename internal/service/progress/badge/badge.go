// Package badge decides which achievements a progress event unlocks. It is
// pure and deterministic: the same inputs always produce the same badges,
// in a fixed order.
package badge

import (
	"github.com/lingora/lingora-backend/internal/domain"
)

// Context carries the per-event facts that are not derivable from the
// before/after counters.
type Context struct {
	// WasPerfect is true when the lesson was completed without losing a
	// heart.
	WasPerfect bool
	// Held excludes badges the user already has.
	Held map[domain.AchievementID]bool
}

type streakMilestone struct {
	badge  domain.AchievementID
	streak int
}

type pointsMilestone struct {
	badge  domain.AchievementID
	points int
}

var streakMilestones = []streakMilestone{
	{domain.AchievementStreak7, 7},
	{domain.AchievementStreak30, 30},
	{domain.AchievementStreak100, 100},
}

var pointsMilestones = []pointsMilestone{
	{domain.AchievementPoints100, 100},
	{domain.AchievementPoints1000, 1000},
	{domain.AchievementPoints10000, 10000},
}

// Evaluate returns the badges newly earned by moving from before to after.
// A milestone counts only when this event crossed it; badges in ctx.Held
// are never returned.
func Evaluate(before, after domain.Stats, ctx Context) []domain.AchievementID {
	var earned []domain.AchievementID

	add := func(id domain.AchievementID) {
		if !ctx.Held[id] {
			earned = append(earned, id)
		}
	}

	if before.LessonsCompleted == 0 && after.LessonsCompleted > 0 {
		add(domain.AchievementFirstLesson)
	}
	if ctx.WasPerfect {
		add(domain.AchievementPerfectLesson)
	}
	for _, m := range streakMilestones {
		if before.Streak < m.streak && after.Streak >= m.streak {
			add(m.badge)
		}
	}
	for _, m := range pointsMilestones {
		if before.Points < m.points && after.Points >= m.points {
			add(m.badge)
		}
	}

	return earned
}
