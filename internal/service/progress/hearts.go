package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/pkg/ctxutil"
)

// DecrementHeart spends one heart after a wrong answer on the given
// challenge. Wrong answers on a challenge the user already mastered are
// free (ErrPracticeChallenge); active subscribers never spend hearts.
// Returns the remaining hearts.
func (s *Service) DecrementHeart(ctx context.Context, challengeID uuid.UUID) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if challengeID == uuid.Nil {
		return 0, fmt.Errorf("challenge id is required: %w", domain.ErrValidation)
	}

	prog, err := s.progress.GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get progress: %w", err)
	}

	practice, err := s.isPractice(ctx, userID, challengeID)
	if err != nil {
		return 0, err
	}
	if practice {
		return prog.Hearts, fmt.Errorf("challenge %s: %w", challengeID, domain.ErrPracticeChallenge)
	}

	subscribed, err := s.subscribed(ctx, userID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("get subscription: %w", err)
	}
	if subscribed {
		// Hearts are cosmetic for subscribers; nothing is spent.
		return prog.Hearts, nil
	}

	hearts, err := s.progress.DecrementHeart(ctx, userID)
	if err != nil {
		return 0, err
	}
	return hearts, nil
}

// RefillHearts restores the user to full hearts in exchange for points.
// Returns the new points balance.
func (s *Service) RefillHearts(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	// Surfaces ErrNotFound for accounts that never selected a course.
	if _, err := s.progress.GetByUserID(ctx, userID); err != nil {
		return 0, fmt.Errorf("get progress: %w", err)
	}

	points, err := s.progress.RefillHearts(ctx, userID, s.refillCost)
	if err == nil {
		return points, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return 0, err
	}

	// The conditional UPDATE matched no row: either hearts were already
	// full or points were short. Re-read to name the reason.
	prog, err := s.progress.GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get progress: %w", err)
	}
	if prog.Hearts >= domain.MaxHearts {
		return 0, domain.ErrHeartsFull
	}
	return 0, domain.ErrNotEnoughPoints
}
