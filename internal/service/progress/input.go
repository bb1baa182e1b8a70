package progress

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lingora/lingora-backend/internal/domain"
)

// SubmitChallengeInput identifies the challenge being submitted.
type SubmitChallengeInput struct {
	ChallengeID uuid.UUID
}

// Validate checks required fields.
func (i SubmitChallengeInput) Validate() error {
	if i.ChallengeID == uuid.Nil {
		return fmt.Errorf("challenge id is required: %w", domain.ErrValidation)
	}
	return nil
}
