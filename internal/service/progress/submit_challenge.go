package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/service/progress/badge"
	"github.com/lingora/lingora-backend/internal/service/progress/reward"
	"github.com/lingora/lingora-backend/pkg/ctxutil"
)

// SubmitChallenge records one correct challenge answer and applies every
// consequence in a single transaction: practice classification, the hearts
// gate, XP/gem awards, lesson completion, quest counters, and achievements.
//
// A submission for a challenge the user already completed is a practice
// run: no new ChallengeProgress row, flat XP, one heart back for free
// users. A first-time submission inserts the row and, when it covers the
// lesson's full challenge set, returns the lesson reward bundle.
func (s *Service) SubmitChallenge(ctx context.Context, input SubmitChallengeInput) (*SubmitResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	var (
		result *SubmitResult
		lesson *domain.Lesson
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Lock the progress row first; every concurrent submission for
		// this user queues behind it until commit.
		prog, err := s.progress.GetForUpdate(txCtx, userID)
		if err != nil {
			return fmt.Errorf("get progress: %w", err)
		}

		challenge, err := s.catalog.GetChallenge(txCtx, input.ChallengeID)
		if err != nil {
			return fmt.Errorf("get challenge: %w", err)
		}
		lesson, err = s.catalog.GetLesson(txCtx, challenge.LessonID)
		if err != nil {
			return fmt.Errorf("get lesson: %w", err)
		}

		subscribed, err := s.subscribed(txCtx, userID, now)
		if err != nil {
			return fmt.Errorf("get subscription: %w", err)
		}

		isPractice, err := s.isPractice(txCtx, userID, challenge.ID)
		if err != nil {
			return err
		}

		// Hearts gate. Practice attempts are always allowed; the gate is
		// re-evaluated on every call, not just at lesson start.
		if !isPractice && !prog.CanAttempt(subscribed) {
			return fmt.Errorf("user %s: %w", userID, domain.ErrOutOfHearts)
		}

		if isPractice {
			result, err = s.submitPractice(txCtx, userID, challenge, subscribed, now)
			return err
		}
		result, err = s.submitFirstTime(txCtx, userID, prog, challenge, subscribed, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Cache invalidation is outside the transactional boundary; it fires
	// only after a successful commit.
	s.notify.ProgressChanged(ctx, lesson.CourseID, lesson.ID)

	return result, nil
}

// isPractice classifies the submission by the presence of an existing
// ChallengeProgress row.
func (s *Service) isPractice(ctx context.Context, userID, challengeID uuid.UUID) (bool, error) {
	_, err := s.challenges.Get(ctx, userID, challengeID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get challenge progress: %w", err)
	}
	return true, nil
}

// submitPractice handles a re-attempt of an already-completed challenge.
func (s *Service) submitPractice(ctx context.Context, userID uuid.UUID, challenge *domain.Challenge, subscribed bool, now time.Time) (*SubmitResult, error) {
	if err := s.challenges.MarkCompleted(ctx, userID, challenge.ID); err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}

	xp := s.rewards.PracticeQuestion(challenge.ID).Amount

	// Practice gives a heart back to free users. Subscribers never touch
	// the hearts column while active.
	if !subscribed {
		if _, err := s.progress.IncrementHeart(ctx, userID); err != nil {
			return nil, fmt.Errorf("increment heart: %w", err)
		}
	}

	lastID, err := s.catalog.LastChallengeID(ctx, challenge.LessonID)
	if err != nil {
		return nil, fmt.Errorf("last challenge: %w", err)
	}

	if challenge.ID == lastID {
		xp += s.rewards.PracticeLessonBonus(challenge.LessonID, subscribed).Amount

		month := domain.MonthOf(now)
		if _, err := s.quests.Advance(ctx, userID, domain.QuestCompleteLessons, month, 1, s.questTargets.Lessons); err != nil {
			return nil, fmt.Errorf("advance lessons quest: %w", err)
		}
		if _, err := s.quests.Advance(ctx, userID, domain.QuestPracticeSessions, month, 1, s.questTargets.Practice); err != nil {
			return nil, fmt.Errorf("advance practice quest: %w", err)
		}
	}

	if err := s.awardPoints(ctx, userID, xp, now); err != nil {
		return nil, err
	}

	return &SubmitResult{LessonComplete: false}, nil
}

// submitFirstTime handles the first completion of a challenge, including
// the lesson-completion bundle when the lesson's challenge set is covered.
func (s *Service) submitFirstTime(ctx context.Context, userID uuid.UUID, prog *domain.UserProgress, challenge *domain.Challenge, subscribed bool, now time.Time) (*SubmitResult, error) {
	inserted, err := s.challenges.Insert(ctx, userID, challenge.ID)
	if err != nil {
		return nil, fmt.Errorf("insert challenge progress: %w", err)
	}
	if !inserted {
		// A concurrent submission won the unique constraint race. The
		// reward was granted exactly once, on the other path.
		return &SubmitResult{LessonComplete: false}, nil
	}

	lessonIDs, err := s.catalog.ChallengeIDsByLesson(ctx, challenge.LessonID)
	if err != nil {
		return nil, fmt.Errorf("lesson challenges: %w", err)
	}
	completedIDs, err := s.challenges.CompletedChallengeIDs(ctx, userID, challenge.LessonID)
	if err != nil {
		return nil, fmt.Errorf("completed challenges: %w", err)
	}

	if !covers(completedIDs, lessonIDs) {
		xp := s.rewards.ChallengeQuestion(challenge.ID).Amount
		if err := s.awardPoints(ctx, userID, xp, now); err != nil {
			return nil, err
		}
		return &SubmitResult{LessonComplete: false}, nil
	}

	return s.completeLesson(ctx, userID, prog, challenge.LessonID, subscribed, now)
}

// completeLesson grants the full lesson bundle: streak bump, XP, gems,
// quest advances, and newly crossed achievements.
func (s *Service) completeLesson(ctx context.Context, userID uuid.UUID, prog *domain.UserProgress, lessonID uuid.UUID, subscribed bool, now time.Time) (*SubmitResult, error) {
	streak, err := s.progress.IncrementStreak(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("increment streak: %w", err)
	}

	mods := reward.Modifiers{
		ApplySubscriptionBonus: subscribed,
		ApplyStreakBonus:       true,
	}
	bundle := s.rewards.LessonCompletion(lessonID, reward.ModeStandard, mods, streak)

	newPoints, err := s.awardPointsTotal(ctx, userID, bundle.XP, now)
	if err != nil {
		return nil, err
	}
	if bundle.Gems > 0 {
		if _, err := s.progress.AddGems(ctx, userID, bundle.Gems); err != nil {
			return nil, fmt.Errorf("add gems: %w", err)
		}
	}

	month := domain.MonthOf(now)
	if _, err := s.quests.Advance(ctx, userID, domain.QuestCompleteLessons, month, 1, s.questTargets.Lessons); err != nil {
		return nil, fmt.Errorf("advance lessons quest: %w", err)
	}

	held, err := s.achievements.Held(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("held achievements: %w", err)
	}

	before := domain.Stats{
		Points: prog.Points,
		Streak: prog.Streak,
	}
	if prog.LastLessonCompletedAt != nil {
		before.LessonsCompleted = 1
	}
	after := domain.Stats{
		Points:           newPoints,
		Streak:           streak,
		LessonsCompleted: before.LessonsCompleted + 1,
	}
	earned := badge.Evaluate(before, after, badge.Context{
		WasPerfect: prog.Hearts == domain.MaxHearts,
		Held:       held,
	})

	unlocked, err := s.achievements.Unlock(ctx, userID, earned)
	if err != nil {
		return nil, fmt.Errorf("unlock achievements: %w", err)
	}

	s.log.InfoContext(ctx, "lesson completed",
		"user_id", userID,
		"lesson_id", lessonID,
		"xp", bundle.XP,
		"streak", streak,
		"achievements", len(unlocked),
	)

	return &SubmitResult{
		LessonComplete: true,
		Rewards: &RewardBundle{
			XP:           bundle.XP,
			Gems:         bundle.Gems,
			Streak:       streak,
			Achievements: unlocked,
		},
	}, nil
}

// awardPoints adds xp to the balance and advances the earn-points quest.
func (s *Service) awardPoints(ctx context.Context, userID uuid.UUID, xp int, now time.Time) error {
	_, err := s.awardPointsTotal(ctx, userID, xp, now)
	return err
}

func (s *Service) awardPointsTotal(ctx context.Context, userID uuid.UUID, xp int, now time.Time) (int, error) {
	if xp <= 0 {
		p, err := s.progress.GetByUserID(ctx, userID)
		if err != nil {
			return 0, fmt.Errorf("get progress: %w", err)
		}
		return p.Points, nil
	}

	points, err := s.progress.AddPoints(ctx, userID, xp)
	if err != nil {
		return 0, fmt.Errorf("add points: %w", err)
	}
	if _, err := s.quests.Advance(ctx, userID, domain.QuestEarnPoints, domain.MonthOf(now), xp, s.questTargets.Points); err != nil {
		return 0, fmt.Errorf("advance points quest: %w", err)
	}
	return points, nil
}

// covers reports whether completed contains every ID in required.
func covers(completed, required []uuid.UUID) bool {
	set := make(map[uuid.UUID]bool, len(completed))
	for _, id := range completed {
		set[id] = true
	}
	for _, id := range required {
		if !set[id] {
			return false
		}
	}
	return len(required) > 0
}
