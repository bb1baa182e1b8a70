// Package challengeprogress implements the ChallengeProgress repository using
// PostgreSQL. The (user_id, challenge_id) unique constraint is the engine's
// idempotence anchor: a racing duplicate "first completion" degrades to a
// harmless no-op insert instead of a double reward.
package challengeprogress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingora/lingora-backend/internal/adapter/postgres"
	"github.com/lingora/lingora-backend/internal/domain"
)

// Repo provides challenge progress persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new challenge progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT id, user_id, challenge_id, completed, created_at, updated_at
FROM challenge_progress
WHERE user_id = $1 AND challenge_id = $2`

const insertSQL = `
INSERT INTO challenge_progress (id, user_id, challenge_id, completed, created_at, updated_at)
VALUES ($1, $2, $3, true, $4, $4)
ON CONFLICT (user_id, challenge_id) DO NOTHING`

const markCompletedSQL = `
UPDATE challenge_progress
SET completed = true, updated_at = now()
WHERE user_id = $1 AND challenge_id = $2`

const completedIDsByLessonSQL = `
SELECT cp.challenge_id
FROM challenge_progress cp
JOIN challenges c ON cp.challenge_id = c.id
WHERE cp.user_id = $1 AND c.lesson_id = $2 AND cp.completed`

const countCompletedSQL = `
SELECT count(*) FROM challenge_progress WHERE user_id = $1 AND completed`

// Get returns the progress row for one (user, challenge) pair.
// Its absence is what classifies a submission as first-time.
func (r *Repo) Get(ctx context.Context, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var cp domain.ChallengeProgress
	err := querier.QueryRow(ctx, getSQL, userID, challengeID).Scan(
		&cp.ID, &cp.UserID, &cp.ChallengeID, &cp.Completed, &cp.CreatedAt, &cp.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "challenge_progress", challengeID)
	}
	return &cp, nil
}

// Insert creates the first-completion row. Returns false without error when
// the unique constraint absorbed a concurrent duplicate.
func (r *Repo) Insert(ctx context.Context, userID, challengeID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	tag, err := querier.Exec(ctx, insertSQL, uuid.New(), userID, challengeID, now)
	if err != nil {
		return false, mapError(err, "challenge_progress", challengeID)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkCompleted re-asserts completed=true on an existing row. Idempotent;
// returns domain.ErrNotFound only when no row exists at all.
func (r *Repo) MarkCompleted(ctx context.Context, userID, challengeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markCompletedSQL, userID, challengeID)
	if err != nil {
		return mapError(err, "challenge_progress", challengeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("challenge_progress %s: %w", challengeID, domain.ErrNotFound)
	}
	return nil
}

// CompletedChallengeIDs returns the set of challenge IDs in a lesson the
// user has completed. Lesson completion is derived by comparing this set
// against the lesson's full challenge ID set.
func (r *Repo) CompletedChallengeIDs(ctx context.Context, userID, lessonID uuid.UUID) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, completedIDsByLessonSQL, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("completed challenge ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan challenge id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate challenge ids: %w", err)
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// CountCompleted returns the number of challenges the user has ever completed.
func (r *Repo) CountCompleted(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countCompletedSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count completed challenges: %w", err)
	}
	return count, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
