// Package achievement implements the UserAchievement repository using
// PostgreSQL. The unlock set is append-only; ON CONFLICT DO NOTHING makes
// repeated unlocks of the same badge harmless.
package achievement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingora/lingora-backend/internal/adapter/postgres"
	"github.com/lingora/lingora-backend/internal/domain"
)

// Repo provides achievement persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new achievement repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const unlockSQL = `
INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id, achievement_id) DO NOTHING`

const heldSQL = `
SELECT achievement_id
FROM user_achievements
WHERE user_id = $1`

const listByUserSQL = `
SELECT user_id, achievement_id, unlocked_at
FROM user_achievements
WHERE user_id = $1
ORDER BY unlocked_at, achievement_id`

// Unlock records the given badges for the user. Badges already held are
// skipped. The returned slice holds the IDs that were newly written, in
// input order.
func (r *Repo) Unlock(ctx context.Context, userID uuid.UUID, ids []domain.AchievementID) ([]domain.AchievementID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(unlockSQL, userID, id.String())
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	var unlocked []domain.AchievementID
	for _, id := range ids {
		tag, err := results.Exec()
		if err != nil {
			return nil, fmt.Errorf("unlock achievement %s for %s: %w", id, userID, err)
		}
		if tag.RowsAffected() == 1 {
			unlocked = append(unlocked, id)
		}
	}
	return unlocked, nil
}

// Held returns the set of badge IDs the user already holds.
func (r *Repo) Held(ctx context.Context, userID uuid.UUID) (map[domain.AchievementID]bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, heldSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("load achievements for %s: %w", userID, err)
	}
	defer rows.Close()

	held := make(map[domain.AchievementID]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		held[domain.AchievementID(id)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate achievements: %w", err)
	}
	return held, nil
}

// ListByUserID returns the user's unlocked badges in unlock order.
func (r *Repo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.UserAchievement, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements for %s: %w", userID, err)
	}
	defer rows.Close()

	achievements := []*domain.UserAchievement{}
	for rows.Next() {
		var ua domain.UserAchievement
		var id string
		if err := rows.Scan(&ua.UserID, &id, &ua.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scan user_achievement: %w", err)
		}
		ua.AchievementID = domain.AchievementID(id)
		achievements = append(achievements, &ua)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user_achievements: %w", err)
	}
	return achievements, nil
}
