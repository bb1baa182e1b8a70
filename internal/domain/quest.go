package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuestType names a persisted monthly quest counter.
type QuestType string

const (
	QuestCompleteLessons  QuestType = "complete_lessons"
	QuestEarnPoints       QuestType = "earn_points"
	QuestPracticeSessions QuestType = "practice_sessions"
)

func (t QuestType) String() string { return string(t) }

// IsValid returns true if the quest type is a known value.
func (t QuestType) IsValid() bool {
	switch t {
	case QuestCompleteLessons, QuestEarnPoints, QuestPracticeSessions:
		return true
	}
	return false
}

// MonthlyQuestProgress is one persisted quest counter for one user and one
// calendar month. CurrentValue only ever grows; Completed flips to true at
// most once and never back.
type MonthlyQuestProgress struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	QuestType     QuestType
	Month         time.Time // first day of the month, UTC
	CurrentValue  int
	TargetValue   int
	Completed     bool
	CompletedAt   *time.Time
	RewardClaimed bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PointsQuestTier is one static point-threshold quest. Tier completion is a
// pure projection over cumulative points and is never persisted.
type PointsQuestTier struct {
	Title string
	Value int
}

// TierStatus is the read-time projection of one tier for one user.
type TierStatus struct {
	Tier     PointsQuestTier
	Progress int
	Complete bool
}

// MonthOf truncates t to the first day of its month in UTC, which is the
// canonical key for monthly quest rows.
func MonthOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
