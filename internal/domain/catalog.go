package domain

import "github.com/google/uuid"

// ChallengeType distinguishes the interaction kind of a challenge.
// The engine only branches on identity, never on type.
type ChallengeType string

const (
	ChallengeTypeSelect ChallengeType = "SELECT"
	ChallengeTypeAssist ChallengeType = "ASSIST"
)

func (t ChallengeType) String() string { return string(t) }

// IsValid returns true if the challenge type is a known value.
func (t ChallengeType) IsValid() bool {
	switch t {
	case ChallengeTypeSelect, ChallengeTypeAssist:
		return true
	}
	return false
}

// Course is the top-level catalog unit. Read-only to the engine.
type Course struct {
	ID    uuid.UUID
	Title string
}

// Lesson owns an ordered set of challenges. "Complete" is derived, not
// stored: a lesson is complete for a user when the user's completed
// challenge set covers all of the lesson's challenge IDs.
type Lesson struct {
	ID       uuid.UUID
	CourseID uuid.UUID
	Title    string
	Order    int
}

// Challenge belongs to exactly one lesson. Read-only to the engine.
type Challenge struct {
	ID       uuid.UUID
	LessonID uuid.UUID
	Type     ChallengeType
	Question string
	Order    int
}
