// Package reward computes the points and gems granted for learning activity.
// It is pure: no I/O, no clock, no randomness. Callers feed it a Table of
// amounts and get back itemized awards they can persist and report.
package reward

import "github.com/google/uuid"

// Table holds the canonical award amounts. Amounts are flat per event;
// the user's tier never changes per-question awards, only the practice
// lesson bonus and the subscriber lesson bonus.
type Table struct {
	PracticeQuestionXP   int
	ChallengeQuestionXP  int
	LessonXP             int
	PracticeLessonXP     int
	PracticeBonusFreeXP  int
	PracticeBonusProXP   int
	SubscriberBonusXP    int
	StreakBonusXP        int
	StreakBonusThreshold int
	LessonGems           int
}

// SourceKind names the event an award was granted for.
type SourceKind string

const (
	SourcePracticeQuestion    SourceKind = "practice_question"
	SourceChallengeQuestion   SourceKind = "challenge_question"
	SourcePracticeLessonBonus SourceKind = "practice_lesson_bonus"
	SourceLessonCompletion    SourceKind = "lesson_completion"
)

// Modifiers are the per-event switches that scale a lesson completion.
type Modifiers struct {
	ApplySubscriptionBonus bool
	ApplyStreakBonus       bool
}

// Award is one itemized grant of XP.
type Award struct {
	Amount     int
	SourceKind SourceKind
	SourceID   uuid.UUID
	Modifiers  Modifiers
}

// Mode distinguishes a first-time lesson completion from a practice run.
type Mode int

const (
	ModeStandard Mode = iota
	ModePractice
)

// Bundle is the total outcome of a lesson completion.
type Bundle struct {
	XP     int
	Gems   int
	Awards []Award
}

// PracticeQuestion returns the award for correctly answering a question the
// user has already completed before.
func (t Table) PracticeQuestion(challengeID uuid.UUID) Award {
	return Award{
		Amount:     t.PracticeQuestionXP,
		SourceKind: SourcePracticeQuestion,
		SourceID:   challengeID,
	}
}

// ChallengeQuestion returns the award for a first-time correct answer.
func (t Table) ChallengeQuestion(challengeID uuid.UUID) Award {
	return Award{
		Amount:     t.ChallengeQuestionXP,
		SourceKind: SourceChallengeQuestion,
		SourceID:   challengeID,
	}
}

// PracticeLessonBonus returns the bonus granted when a practice pass over a
// lesson reaches its final challenge. Subscribers get the pro amount.
func (t Table) PracticeLessonBonus(lessonID uuid.UUID, subscribed bool) Award {
	amount := t.PracticeBonusFreeXP
	if subscribed {
		amount = t.PracticeBonusProXP
	}
	return Award{
		Amount:     amount,
		SourceKind: SourcePracticeLessonBonus,
		SourceID:   lessonID,
		Modifiers:  Modifiers{ApplySubscriptionBonus: subscribed},
	}
}

// LessonCompletion returns the full bundle for finishing a lesson. The
// baseline depends on the mode; the subscription and streak modifiers each
// add their flat bonus on top. The streak bonus applies only from the
// configured threshold upward.
func (t Table) LessonCompletion(lessonID uuid.UUID, mode Mode, mods Modifiers, streak int) Bundle {
	amount := t.LessonXP
	if mode == ModePractice {
		amount = t.PracticeLessonXP
	}
	if mods.ApplySubscriptionBonus {
		amount += t.SubscriberBonusXP
	}
	if mods.ApplyStreakBonus && streak >= t.StreakBonusThreshold {
		amount += t.StreakBonusXP
	} else {
		mods.ApplyStreakBonus = false
	}

	award := Award{
		Amount:     amount,
		SourceKind: SourceLessonCompletion,
		SourceID:   lessonID,
		Modifiers:  mods,
	}
	return Bundle{
		XP:     amount,
		Gems:   t.LessonGems,
		Awards: []Award{award},
	}
}
