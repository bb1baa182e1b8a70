package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.RatePerMinute <= 0 {
		return fmt.Errorf("server.rate_per_minute must be > 0 (got %d)", c.Server.RatePerMinute)
	}

	if err := c.Rewards.validate(); err != nil {
		return fmt.Errorf("rewards: %w", err)
	}

	if c.Hearts.RefillCost <= 0 {
		return fmt.Errorf("hearts.refill_cost must be > 0 (got %d)", c.Hearts.RefillCost)
	}

	if err := c.Quests.validate(); err != nil {
		return fmt.Errorf("quests: %w", err)
	}

	return nil
}

func (r *RewardsConfig) validate() error {
	if r.PracticeQuestionPoints < 0 || r.ChallengeQuestionPoints < 0 {
		return fmt.Errorf("question points must be >= 0 (got %d, %d)",
			r.PracticeQuestionPoints, r.ChallengeQuestionPoints)
	}
	if r.LessonPoints <= 0 {
		return fmt.Errorf("lesson_points must be > 0 (got %d)", r.LessonPoints)
	}
	if r.PracticeLessonPoints <= 0 {
		return fmt.Errorf("practice_lesson_points must be > 0 (got %d)", r.PracticeLessonPoints)
	}
	if r.StreakBonusThreshold <= 0 {
		return fmt.Errorf("streak_bonus_threshold must be > 0 (got %d)", r.StreakBonusThreshold)
	}
	return nil
}

func (q *QuestsConfig) validate() error {
	if q.LessonsTarget <= 0 {
		return fmt.Errorf("lessons_target must be > 0 (got %d)", q.LessonsTarget)
	}
	if q.PointsTarget <= 0 {
		return fmt.Errorf("points_target must be > 0 (got %d)", q.PointsTarget)
	}
	if q.PracticeTarget <= 0 {
		return fmt.Errorf("practice_target must be > 0 (got %d)", q.PracticeTarget)
	}
	return nil
}
