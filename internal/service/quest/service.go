// Package quest tracks named progress goals: persisted monthly counters
// and derived point-threshold tiers. Tier completion is never stored; it is
// recomputed from cumulative points on every read.
package quest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type questRepo interface {
	Advance(ctx context.Context, userID uuid.UUID, questType domain.QuestType, month time.Time, delta, targetValue int) (*domain.MonthlyQuestProgress, error)
	Get(ctx context.Context, userID uuid.UUID, questType domain.QuestType, month time.Time) (*domain.MonthlyQuestProgress, error)
	ClaimReward(ctx context.Context, userID uuid.UUID, questType domain.QuestType, month time.Time) error
	ListMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]*domain.MonthlyQuestProgress, error)
}

type userProgressRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error)
	AddGems(ctx context.Context, userID uuid.UUID, delta int) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Targets holds the per-type monthly target values.
type Targets struct {
	Lessons  int
	Points   int
	Practice int
}

func (t Targets) forType(questType domain.QuestType) int {
	switch questType {
	case domain.QuestCompleteLessons:
		return t.Lessons
	case domain.QuestEarnPoints:
		return t.Points
	case domain.QuestPracticeSessions:
		return t.Practice
	}
	return 0
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements quest progress business logic.
type Service struct {
	quests     questRepo
	progress   userProgressRepo
	tx         txManager
	log        *slog.Logger
	targets    Targets
	rewardGems int
}

// NewService creates a new quest service.
func NewService(
	log *slog.Logger,
	quests questRepo,
	progress userProgressRepo,
	tx txManager,
	targets Targets,
	rewardGems int,
) *Service {
	return &Service{
		quests:     quests,
		progress:   progress,
		tx:         tx,
		log:        log.With("service", "quest"),
		targets:    targets,
		rewardGems: rewardGems,
	}
}

// Advance adds delta to the authenticated user's counter for questType in
// the current month, creating the row on first touch.
func (s *Service) Advance(ctx context.Context, questType domain.QuestType, delta int) (*domain.MonthlyQuestProgress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !questType.IsValid() {
		return nil, fmt.Errorf("quest type %q: %w", questType, domain.ErrValidation)
	}
	if delta <= 0 {
		return nil, fmt.Errorf("delta must be positive: %w", domain.ErrValidation)
	}

	month := domain.MonthOf(time.Now())
	return s.quests.Advance(ctx, userID, questType, month, delta, s.targets.forType(questType))
}

// ClaimReward credits the quest's gem reward once per completed quest
// instance. Unfinished or already-claimed quests fail with ErrConflict.
func (s *Service) ClaimReward(ctx context.Context, questType domain.QuestType) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if !questType.IsValid() {
		return 0, fmt.Errorf("quest type %q: %w", questType, domain.ErrValidation)
	}

	month := domain.MonthOf(time.Now())

	var gems int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.quests.ClaimReward(txCtx, userID, questType, month); err != nil {
			return err
		}
		var addErr error
		gems, addErr = s.progress.AddGems(txCtx, userID, s.rewardGems)
		if addErr != nil {
			return fmt.Errorf("add gems: %w", addErr)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "quest reward claimed",
		"user_id", userID, "quest_type", questType, "gems", s.rewardGems)

	return gems, nil
}

// Overview is the read model behind the quests screen: the current month's
// persisted counters plus the derived point-threshold tiers.
type Overview struct {
	Monthly []*domain.MonthlyQuestProgress
	Tiers   []domain.TierStatus
}

// GetOverview returns the authenticated user's quest state for now.
// A user with no progress row sees zeroed tiers and no monthly rows.
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	month := domain.MonthOf(time.Now())
	monthly, err := s.quests.ListMonth(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("list monthly quests: %w", err)
	}

	points := 0
	prog, err := s.progress.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		points = prog.Points
	case errors.Is(err, domain.ErrNotFound):
		// no course selected yet
	default:
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return &Overview{
		Monthly: monthly,
		Tiers:   TierStatuses(points),
	}, nil
}
