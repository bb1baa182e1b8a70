package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxHearts is the hearts ceiling for free-tier users.
// Subscribers bypass the hearts economy entirely while active.
const MaxHearts = 5

// UserProgress is the single per-user gamification row.
// It is created lazily on first course selection and never deleted.
// Points are monotonically non-decreasing except when spent on a refill.
type UserProgress struct {
	UserID                uuid.UUID
	ActiveCourseID        uuid.UUID
	Hearts                int
	Points                int
	Gems                  int
	Streak                int
	LastLessonCompletedAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CanAttempt reports whether the user may attempt a non-practice challenge.
func (p *UserProgress) CanAttempt(subscribed bool) bool {
	return subscribed || p.Hearts > 0
}

// ChallengeProgress marks one challenge as completed by one user.
// (UserID, ChallengeID) is unique; the row is created on first completion
// and only updated on later practice attempts.
type ChallengeProgress struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ChallengeID uuid.UUID
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Stats is a snapshot of a learner's counters used by the badge evaluator.
type Stats struct {
	Points           int
	Streak           int
	LessonsCompleted int
}
