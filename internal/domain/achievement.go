package domain

import (
	"time"

	"github.com/google/uuid"
)

// AchievementID names a one-time unlockable badge.
type AchievementID string

const (
	AchievementFirstLesson   AchievementID = "first-lesson"
	AchievementPerfectLesson AchievementID = "perfect-lesson"
	AchievementStreak7       AchievementID = "streak-7"
	AchievementStreak30      AchievementID = "streak-30"
	AchievementStreak100     AchievementID = "streak-100"
	AchievementPoints100     AchievementID = "points-100"
	AchievementPoints1000    AchievementID = "points-1000"
	AchievementPoints10000   AchievementID = "points-10000"
)

func (a AchievementID) String() string { return string(a) }

// UserAchievement is one unlocked badge. The set is append-only and each
// badge is written at most once per user.
type UserAchievement struct {
	UserID        uuid.UUID
	AchievementID AchievementID
	UnlockedAt    time.Time
}
