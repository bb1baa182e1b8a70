package progress

import "github.com/lingora/lingora-backend/internal/domain"

// RewardBundle is the full outcome of a first-time lesson completion.
type RewardBundle struct {
	XP           int
	Gems         int
	Streak       int
	Achievements []domain.AchievementID
}

// SubmitResult is the outcome of one challenge submission. Rewards is set
// only when LessonComplete is true.
type SubmitResult struct {
	LessonComplete bool
	Rewards        *RewardBundle
}
