package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed helpers insert catalog and progress fixtures directly, bypassing the
// repositories, so repo tests don't depend on the code under test.

// SeedCourse inserts a course and returns its ID.
func SeedCourse(t *testing.T, pool *pgxpool.Pool, title string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	mustExec(t, pool, `INSERT INTO courses (id, title) VALUES ($1, $2)`, id, title)
	return id
}

// SeedLesson inserts a lesson into a course and returns its ID.
func SeedLesson(t *testing.T, pool *pgxpool.Pool, courseID uuid.UUID, order int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	mustExec(t, pool,
		`INSERT INTO lessons (id, course_id, title, "order") VALUES ($1, $2, $3, $4)`,
		id, courseID, fmt.Sprintf("Lesson %d", order), order,
	)
	return id
}

// SeedChallenge inserts a challenge into a lesson and returns its ID.
func SeedChallenge(t *testing.T, pool *pgxpool.Pool, lessonID uuid.UUID, order int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	mustExec(t, pool,
		`INSERT INTO challenges (id, lesson_id, type, question, "order") VALUES ($1, $2, 'SELECT', $3, $4)`,
		id, lessonID, fmt.Sprintf("Question %d", order), order,
	)
	return id
}

// SeedUserProgress inserts a user_progress row and returns the user ID.
func SeedUserProgress(t *testing.T, pool *pgxpool.Pool, courseID uuid.UUID, hearts, points, streak int) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	mustExec(t, pool,
		`INSERT INTO user_progress (user_id, active_course_id, hearts, points, streak, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())`,
		userID, courseID, hearts, points, streak,
	)
	return userID
}

// SeedSubscription inserts a subscription row for a user.
func SeedSubscription(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, active bool, periodEnd *time.Time) {
	t.Helper()

	mustExec(t, pool,
		`INSERT INTO subscriptions (user_id, is_active, pro_type, current_period_end, updated_at)
		 VALUES ($1, $2, 'monthly', $3, now())`,
		userID, active, periodEnd,
	)
}

// SeedChallengeProgress inserts a completed challenge_progress row.
func SeedChallengeProgress(t *testing.T, pool *pgxpool.Pool, userID, challengeID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()
	mustExec(t, pool,
		`INSERT INTO challenge_progress (id, user_id, challenge_id, completed, created_at, updated_at)
		 VALUES ($1, $2, $3, true, now(), now())`,
		id, userID, challengeID,
	)
	return id
}

func mustExec(t *testing.T, pool *pgxpool.Pool, sql string, args ...any) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, sql, args...); err != nil {
		t.Fatalf("testhelper: seed exec: %v", err)
	}
}
