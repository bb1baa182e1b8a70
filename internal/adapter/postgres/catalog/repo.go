// Package catalog implements read-only access to courses, lessons, and
// challenges. The reward engine never writes catalog content.
package catalog

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

// Repo provides catalog reads backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getCourseSQL = `
SELECT id, title FROM courses WHERE id = $1`

const getChallengeSQL = `
SELECT c.id, c.lesson_id, c.type, c.question, c."order"
FROM challenges c
JOIN lessons l ON c.lesson_id = l.id
WHERE c.id = $1`

const getLessonSQL = `
SELECT id, course_id, title, "order" FROM lessons WHERE id = $1`

const challengeIDsByLessonSQL = `
SELECT id FROM challenges WHERE lesson_id = $1 ORDER BY "order", id`

const lastChallengeIDSQL = `
SELECT id FROM challenges WHERE lesson_id = $1 ORDER BY "order" DESC, id DESC LIMIT 1`

// GetCourse returns a course by ID. Returns domain.ErrNotFound if absent.
func (r *Repo) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Course
	if err := querier.QueryRow(ctx, getCourseSQL, id).Scan(&c.ID, &c.Title); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("course %s: %w", id, err)
	}
	return &c, nil
}

// GetChallenge returns a challenge with its lesson link. The JOIN makes a
// dangling lesson_id surface as domain.ErrNotFound rather than a broken row.
func (r *Repo) GetChallenge(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Challenge
	var typ string
	err := querier.QueryRow(ctx, getChallengeSQL, id).Scan(&c.ID, &c.LessonID, &typ, &c.Question, &c.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("challenge %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("challenge %s: %w", id, err)
	}
	c.Type = domain.ChallengeType(typ)
	return &c, nil
}

// GetLesson returns a lesson by ID. Returns domain.ErrNotFound if absent.
func (r *Repo) GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var l domain.Lesson
	err := querier.QueryRow(ctx, getLessonSQL, id).Scan(&l.ID, &l.CourseID, &l.Title, &l.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("lesson %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("lesson %s: %w", id, err)
	}
	return &l, nil
}

// ChallengeIDsByLesson returns all challenge IDs of a lesson in order.
func (r *Repo) ChallengeIDsByLesson(ctx context.Context, lessonID uuid.UUID) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, challengeIDsByLessonSQL, lessonID)
	if err != nil {
		return nil, fmt.Errorf("challenge ids by lesson: %w", err)
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

// LastChallengeID returns the ID of the final challenge of a lesson by order.
// Returns domain.ErrNotFound for a lesson with no challenges.
func (r *Repo) LastChallengeID(ctx context.Context, lessonID uuid.UUID) (uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var id uuid.UUID
	if err := querier.QueryRow(ctx, lastChallengeIDSQL, lessonID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("lesson %s: %w", lessonID, domain.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("lesson %s: %w", lessonID, err)
	}
	return id, nil
}
