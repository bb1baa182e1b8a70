package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/pkg/ctxutil"
)

// SelectCourse makes courseID the user's active course, lazily creating the
// progress row with full hearts on first selection.
func (s *Service) SelectCourse(ctx context.Context, courseID uuid.UUID) (*domain.UserProgress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if courseID == uuid.Nil {
		return nil, fmt.Errorf("course id is required: %w", domain.ErrValidation)
	}

	if _, err := s.catalog.GetCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	prog, err := s.progress.Create(ctx, userID, courseID)
	if err == nil {
		s.log.InfoContext(ctx, "progress created", "user_id", userID, "course_id", courseID)
		return prog, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return nil, fmt.Errorf("create progress: %w", err)
	}

	if err := s.progress.SetActiveCourse(ctx, userID, courseID); err != nil {
		return nil, fmt.Errorf("set active course: %w", err)
	}
	prog, err = s.progress.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return prog, nil
}
