package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Rewards    RewardsConfig    `yaml:"rewards"`
	Hearts     HeartsConfig     `yaml:"hearts"`
	Quests     QuestsConfig     `yaml:"quests"`
	Revalidate RevalidateConfig `yaml:"revalidate"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RatePerMinute   int           `yaml:"rate_per_minute"  env:"SERVER_RATE_PER_MINUTE"  env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds JWT settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"lingora"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// RewardsConfig holds the point and gem amounts granted for learning
// activity. Per-question XP does not depend on the user's tier; the tier
// shows up only in the practice lesson bonus and the subscriber bonus.
type RewardsConfig struct {
	PracticeQuestionPoints  int `yaml:"practice_question_points"   env:"REWARDS_PRACTICE_QUESTION_POINTS"   env-default:"1"`
	ChallengeQuestionPoints int `yaml:"challenge_question_points"  env:"REWARDS_CHALLENGE_QUESTION_POINTS"  env-default:"2"`
	LessonPoints            int `yaml:"lesson_points"              env:"REWARDS_LESSON_POINTS"              env-default:"20"`
	PracticeLessonPoints    int `yaml:"practice_lesson_points"     env:"REWARDS_PRACTICE_LESSON_POINTS"     env-default:"10"`
	PracticeBonusFree       int `yaml:"practice_bonus_free"        env:"REWARDS_PRACTICE_BONUS_FREE"        env-default:"5"`
	PracticeBonusPro        int `yaml:"practice_bonus_pro"         env:"REWARDS_PRACTICE_BONUS_PRO"         env-default:"10"`
	SubscriberLessonBonus   int `yaml:"subscriber_lesson_bonus"    env:"REWARDS_SUBSCRIBER_LESSON_BONUS"    env-default:"10"`
	StreakBonus             int `yaml:"streak_bonus"               env:"REWARDS_STREAK_BONUS"               env-default:"5"`
	StreakBonusThreshold    int `yaml:"streak_bonus_threshold"     env:"REWARDS_STREAK_BONUS_THRESHOLD"     env-default:"7"`
	GemsPerLesson           int `yaml:"gems_per_lesson"            env:"REWARDS_GEMS_PER_LESSON"            env-default:"5"`
}

// HeartsConfig holds heart economy settings.
type HeartsConfig struct {
	RefillCost int `yaml:"refill_cost" env:"HEARTS_REFILL_COST" env-default:"50"`
}

// QuestsConfig holds monthly quest targets.
type QuestsConfig struct {
	LessonsTarget  int `yaml:"lessons_target"  env:"QUESTS_LESSONS_TARGET"  env-default:"20"`
	PointsTarget   int `yaml:"points_target"   env:"QUESTS_POINTS_TARGET"   env-default:"1000"`
	PracticeTarget int `yaml:"practice_target" env:"QUESTS_PRACTICE_TARGET" env-default:"10"`
	RewardGems     int `yaml:"reward_gems"     env:"QUESTS_REWARD_GEMS"     env-default:"25"`
}

// RevalidateConfig holds frontend cache invalidation settings. Empty URL
// disables the notifier.
type RevalidateConfig struct {
	URL    string `yaml:"url"    env:"REVALIDATE_URL"`
	Secret string `yaml:"secret" env:"REVALIDATE_SECRET"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
