// Package subscription implements read-only access to billing state.
// The engine consumes it to decide hearts bypass and reward tiers; writes
// happen in the billing system, never here.
package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingora/lingora-backend/internal/adapter/postgres"
	"github.com/lingora/lingora-backend/internal/domain"
)

// Repo provides subscription reads backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new subscription repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByUserIDSQL = `
SELECT user_id, is_active, pro_type, current_period_end
FROM subscriptions
WHERE user_id = $1`

// GetByUserID returns the subscription row for a user, or nil (no error)
// when the user has never subscribed — absence is the common case for the
// free tier, not a failure.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.Subscription
	var proType *string
	err := querier.QueryRow(ctx, getByUserIDSQL, userID).Scan(
		&s.UserID, &s.Active, &proType, &s.CurrentPeriodEnd,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("subscription %s: %w", userID, err)
	}

	if proType != nil {
		pt := domain.ProType(*proType)
		s.ProType = &pt
	}
	return &s, nil
}
