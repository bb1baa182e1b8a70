// Package userprogress implements the UserProgress repository using PostgreSQL.
// Counter mutations are expressed as atomic relative UPDATEs so concurrent
// submissions for the same user can never lose updates, even outside a
// FOR UPDATE lock.
package userprogress

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

// Repo provides user progress persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const progressColumns = `user_id, active_course_id, hearts, points, gems, streak,
       last_lesson_completed_at, created_at, updated_at`

const getByUserIDSQL = `
SELECT ` + progressColumns + `
FROM user_progress
WHERE user_id = $1`

const getForUpdateSQL = `
SELECT ` + progressColumns + `
FROM user_progress
WHERE user_id = $1
FOR UPDATE`

const createSQL = `
INSERT INTO user_progress (user_id, active_course_id, hearts, points, gems, streak, created_at, updated_at)
VALUES ($1, $2, $3, 0, 0, 0, $4, $4)
RETURNING ` + progressColumns

const setActiveCourseSQL = `
UPDATE user_progress
SET active_course_id = $2, updated_at = now()
WHERE user_id = $1`

const addPointsSQL = `
UPDATE user_progress
SET points = points + $2, updated_at = now()
WHERE user_id = $1
RETURNING points`

const addGemsSQL = `
UPDATE user_progress
SET gems = gems + $2, updated_at = now()
WHERE user_id = $1
RETURNING gems`

const incrementHeartSQL = `
UPDATE user_progress
SET hearts = LEAST(hearts + 1, $2), updated_at = now()
WHERE user_id = $1
RETURNING hearts`

const decrementHeartSQL = `
UPDATE user_progress
SET hearts = hearts - 1, updated_at = now()
WHERE user_id = $1 AND hearts > 0
RETURNING hearts`

const refillHeartsSQL = `
UPDATE user_progress
SET hearts = $2, points = points - $3, updated_at = now()
WHERE user_id = $1 AND hearts < $2 AND points >= $3
RETURNING hearts, points`

const incrementStreakSQL = `
UPDATE user_progress
SET streak = streak + 1, last_lesson_completed_at = $2, updated_at = now()
WHERE user_id = $1
RETURNING streak`

// GetByUserID returns the progress row for a user.
// Returns domain.ErrNotFound if the user has never selected a course.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	return scanProgress(querier.QueryRow(ctx, getByUserIDSQL, userID), userID)
}

// GetForUpdate loads the progress row with a row-level lock. It must be
// called inside a transaction; the lock serializes all concurrent
// submissions for the same user until commit.
func (r *Repo) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	return scanProgress(querier.QueryRow(ctx, getForUpdateSQL, userID), userID)
}

// Create inserts a fresh progress row with full hearts and zero counters.
// Duplicate user_id results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, userID, courseID uuid.UUID) (*domain.UserProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	return scanProgress(querier.QueryRow(ctx, createSQL, userID, courseID, domain.MaxHearts, now), userID)
}

// SetActiveCourse retargets the user's active course.
// Returns domain.ErrNotFound if no progress row exists.
func (r *Repo) SetActiveCourse(ctx context.Context, userID, courseID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setActiveCourseSQL, userID, courseID)
	if err != nil {
		return mapError(err, "user_progress", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user_progress %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

// AddPoints atomically adds delta to the user's points and returns the new
// total. Returns domain.ErrNotFound if no progress row exists.
func (r *Repo) AddPoints(ctx context.Context, userID uuid.UUID, delta int) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var points int
	if err := querier.QueryRow(ctx, addPointsSQL, userID, delta).Scan(&points); err != nil {
		return 0, mapError(err, "user_progress", userID)
	}
	return points, nil
}

// AddGems atomically adds delta to the user's gems and returns the new
// total. Returns domain.ErrNotFound if no progress row exists.
func (r *Repo) AddGems(ctx context.Context, userID uuid.UUID, delta int) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var gems int
	if err := querier.QueryRow(ctx, addGemsSQL, userID, delta).Scan(&gems); err != nil {
		return 0, mapError(err, "user_progress", userID)
	}
	return gems, nil
}

// IncrementHeart atomically grants one heart capped at the ceiling and
// returns the new value. At the ceiling it is a no-op, never an error.
func (r *Repo) IncrementHeart(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var hearts int
	if err := querier.QueryRow(ctx, incrementHeartSQL, userID, domain.MaxHearts).Scan(&hearts); err != nil {
		return 0, mapError(err, "user_progress", userID)
	}
	return hearts, nil
}

// DecrementHeart atomically spends one heart. The WHERE hearts > 0 guard
// makes the floor check race-free: zero rows affected means the user was
// already out of hearts, surfaced as domain.ErrOutOfHearts. Callers must
// verify the row exists before interpreting the gate.
func (r *Repo) DecrementHeart(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var hearts int
	err := querier.QueryRow(ctx, decrementHeartSQL, userID).Scan(&hearts)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("user_progress %s: %w", userID, domain.ErrOutOfHearts)
	}
	if err != nil {
		return 0, mapError(err, "user_progress", userID)
	}
	return hearts, nil
}

// RefillHearts sets hearts to the ceiling and spends cost points in one
// conditional UPDATE. Zero rows affected means the guard failed (hearts
// already full, or not enough points); callers disambiguate from the row
// they hold. Returns the new points balance.
func (r *Repo) RefillHearts(ctx context.Context, userID uuid.UUID, cost int) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var hearts, points int
	err := querier.QueryRow(ctx, refillHeartsSQL, userID, domain.MaxHearts, cost).Scan(&hearts, &points)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("user_progress %s: %w", userID, domain.ErrConflict)
	}
	if err != nil {
		return 0, mapError(err, "user_progress", userID)
	}
	return points, nil
}

// IncrementStreak bumps the consecutive-activity counter and stamps the
// completion time. Returns the new streak value.
func (r *Repo) IncrementStreak(ctx context.Context, userID uuid.UUID, completedAt time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var streak int
	if err := querier.QueryRow(ctx, incrementStreakSQL, userID, completedAt).Scan(&streak); err != nil {
		return 0, mapError(err, "user_progress", userID)
	}
	return streak, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanProgress(row pgx.Row, userID uuid.UUID) (*domain.UserProgress, error) {
	var p domain.UserProgress
	err := row.Scan(
		&p.UserID, &p.ActiveCourseID, &p.Hearts, &p.Points, &p.Gems, &p.Streak,
		&p.LastLessonCompletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "user_progress", userID)
	}
	return &p, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

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
