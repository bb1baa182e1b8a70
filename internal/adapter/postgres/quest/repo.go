// Package quest implements the MonthlyQuestProgress repository using
// PostgreSQL. Increment and the complete-once transition are folded into a
// single upsert so the monotonicity invariants hold without application-side
// read-modify-write.
package quest

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingora/lingora-backend/internal/adapter/postgres"
	"github.com/lingora/lingora-backend/internal/domain"
)

// Repo provides monthly quest persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new monthly quest repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const questColumns = `id, user_id, quest_type, month, current_value, target_value,
       completed, completed_at, reward_claimed, created_at, updated_at`

// advanceSQL upserts the current month's row and applies the complete-once
// transition in SQL:
//   - current_value only ever grows;
//   - completed may flip false→true, never back;
//   - completed_at is stamped at most once (COALESCE keeps the first value).
const advanceSQL = `
INSERT INTO monthly_quest_progress
    (id, user_id, quest_type, month, current_value, target_value,
     completed, completed_at, reward_claimed, created_at, updated_at)
VALUES
    ($1, $2, $3, $4, $5, $6,
     $5 >= $6, CASE WHEN $5 >= $6 THEN now() END, false, now(), now())
ON CONFLICT (user_id, quest_type, month) DO UPDATE SET
    current_value = monthly_quest_progress.current_value + EXCLUDED.current_value,
    completed = monthly_quest_progress.completed
        OR monthly_quest_progress.current_value + EXCLUDED.current_value >= monthly_quest_progress.target_value,
    completed_at = COALESCE(
        monthly_quest_progress.completed_at,
        CASE WHEN monthly_quest_progress.current_value + EXCLUDED.current_value >= monthly_quest_progress.target_value
             THEN now() END),
    updated_at = now()
RETURNING ` + questColumns

const claimRewardSQL = `
UPDATE monthly_quest_progress
SET reward_claimed = true, updated_at = now()
WHERE user_id = $1 AND quest_type = $2 AND month = $3
  AND completed AND NOT reward_claimed`

const getSQL = `
SELECT ` + questColumns + `
FROM monthly_quest_progress
WHERE user_id = $1 AND quest_type = $2 AND month = $3`

// Advance adds delta to the user's counter for (questType, month), creating
// the row with targetValue on first touch. The returned row reflects the
// state after the increment.
func (r *Repo) Advance(ctx context.Context, userID uuid.UUID, questType domain.QuestType, month time.Time, delta, targetValue int) (*domain.MonthlyQuestProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, advanceSQL, uuid.New(), userID, questType.String(), month, delta, targetValue)
	return scanQuest(row, userID)
}

// Get returns one quest row. Returns domain.ErrNotFound if the user has not
// touched this quest in the given month.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID, questType domain.QuestType, month time.Time) (*domain.MonthlyQuestProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getSQL, userID, questType.String(), month)
	return scanQuest(row, userID)
}

// ClaimReward marks a completed quest's reward as claimed, at most once.
// Returns domain.ErrConflict when the quest is not completed yet or the
// reward was already claimed.
func (r *Repo) ClaimReward(ctx context.Context, userID uuid.UUID, questType domain.QuestType, month time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, claimRewardSQL, userID, questType.String(), month)
	if err != nil {
		return mapError(err, "monthly_quest", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("monthly_quest %s/%s: %w", userID, questType, domain.ErrConflict)
	}
	return nil
}

// Filter narrows List results. Nil fields mean "no filter".
type Filter struct {
	Month     *time.Time
	QuestType *domain.QuestType
	Completed *bool
}

// List returns the user's quest rows matching the filter, newest month first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter Filter) ([]*domain.MonthlyQuestProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select(
		"id", "user_id", "quest_type", "month", "current_value", "target_value",
		"completed", "completed_at", "reward_claimed", "created_at", "updated_at",
	).
		From("monthly_quest_progress").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("month DESC", "quest_type").
		PlaceholderFormat(sq.Dollar)

	if filter.Month != nil {
		builder = builder.Where(sq.Eq{"month": *filter.Month})
	}
	if filter.QuestType != nil {
		builder = builder.Where(sq.Eq{"quest_type": filter.QuestType.String()})
	}
	if filter.Completed != nil {
		builder = builder.Where(sq.Eq{"completed": *filter.Completed})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build quest list query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list monthly quests: %w", err)
	}
	defer rows.Close()

	var quests []*domain.MonthlyQuestProgress
	for rows.Next() {
		q, err := scanQuestFromRows(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly quests: %w", err)
	}

	if quests == nil {
		quests = []*domain.MonthlyQuestProgress{}
	}
	return quests, nil
}

// ListMonth returns all of the user's quest rows for one month.
func (r *Repo) ListMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]*domain.MonthlyQuestProgress, error) {
	return r.List(ctx, userID, Filter{Month: &month})
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanQuest(row pgx.Row, userID uuid.UUID) (*domain.MonthlyQuestProgress, error) {
	var q domain.MonthlyQuestProgress
	var questType string
	err := row.Scan(
		&q.ID, &q.UserID, &questType, &q.Month, &q.CurrentValue, &q.TargetValue,
		&q.Completed, &q.CompletedAt, &q.RewardClaimed, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "monthly_quest", userID)
	}
	q.QuestType = domain.QuestType(questType)
	return &q, nil
}

func scanQuestFromRows(rows pgx.Rows) (*domain.MonthlyQuestProgress, error) {
	var q domain.MonthlyQuestProgress
	var questType string
	err := rows.Scan(
		&q.ID, &q.UserID, &questType, &q.Month, &q.CurrentValue, &q.TargetValue,
		&q.Completed, &q.CompletedAt, &q.RewardClaimed, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan monthly_quest: %w", err)
	}
	q.QuestType = domain.QuestType(questType)
	return &q, nil
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
