// Package progress implements the challenge submission state machine, the
// hearts ledger, and course selection. All counter mutations run inside one
// transaction per call; the UserProgress row is locked first so concurrent
// submissions for the same user serialize.
package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/service/progress/reward"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userProgressRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error)
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error)
	Create(ctx context.Context, userID, courseID uuid.UUID) (*domain.UserProgress, error)
	SetActiveCourse(ctx context.Context, userID, courseID uuid.UUID) error
	AddPoints(ctx context.Context, userID uuid.UUID, delta int) (int, error)
	AddGems(ctx context.Context, userID uuid.UUID, delta int) (int, error)
	IncrementHeart(ctx context.Context, userID uuid.UUID) (int, error)
	DecrementHeart(ctx context.Context, userID uuid.UUID) (int, error)
	RefillHearts(ctx context.Context, userID uuid.UUID, cost int) (int, error)
	IncrementStreak(ctx context.Context, userID uuid.UUID, completedAt time.Time) (int, error)
}

type challengeProgressRepo interface {
	Get(ctx context.Context, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error)
	Insert(ctx context.Context, userID, challengeID uuid.UUID) (bool, error)
	MarkCompleted(ctx context.Context, userID, challengeID uuid.UUID) error
	CompletedChallengeIDs(ctx context.Context, userID, lessonID uuid.UUID) ([]uuid.UUID, error)
	CountCompleted(ctx context.Context, userID uuid.UUID) (int, error)
}

type catalogRepo interface {
	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	GetChallenge(ctx context.Context, id uuid.UUID) (*domain.Challenge, error)
	GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	ChallengeIDsByLesson(ctx context.Context, lessonID uuid.UUID) ([]uuid.UUID, error)
	LastChallengeID(ctx context.Context, lessonID uuid.UUID) (uuid.UUID, error)
}

type subscriptionRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
}

type questRepo interface {
	Advance(ctx context.Context, userID uuid.UUID, questType domain.QuestType, month time.Time, delta, targetValue int) (*domain.MonthlyQuestProgress, error)
}

type achievementRepo interface {
	Unlock(ctx context.Context, userID uuid.UUID, ids []domain.AchievementID) ([]domain.AchievementID, error)
	Held(ctx context.Context, userID uuid.UUID) (map[domain.AchievementID]bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	ProgressChanged(ctx context.Context, courseID, lessonID uuid.UUID)
}

// QuestTargets holds the monthly quest target values the submission path
// advances against.
type QuestTargets struct {
	Lessons  int
	Points   int
	Practice int
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the progress and reward business logic.
type Service struct {
	progress      userProgressRepo
	challenges    challengeProgressRepo
	catalog       catalogRepo
	subscriptions subscriptionRepo
	quests        questRepo
	achievements  achievementRepo
	tx            txManager
	notify        notifier
	log           *slog.Logger
	rewards       reward.Table
	refillCost    int
	questTargets  QuestTargets
}

// NewService creates a new progress service.
func NewService(
	log *slog.Logger,
	progress userProgressRepo,
	challenges challengeProgressRepo,
	catalog catalogRepo,
	subscriptions subscriptionRepo,
	quests questRepo,
	achievements achievementRepo,
	tx txManager,
	notify notifier,
	rewards reward.Table,
	refillCost int,
	questTargets QuestTargets,
) *Service {
	return &Service{
		progress:      progress,
		challenges:    challenges,
		catalog:       catalog,
		subscriptions: subscriptions,
		quests:        quests,
		achievements:  achievements,
		tx:            tx,
		notify:        notify,
		log:           log.With("service", "progress"),
		rewards:       rewards,
		refillCost:    refillCost,
		questTargets:  questTargets,
	}
}

// subscribed reports whether the user currently holds pro benefits.
// A missing subscription row is the common free-tier case, not an error.
func (s *Service) subscribed(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	sub, err := s.subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub.IsActive(now), nil
}
