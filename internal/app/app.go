package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/lingora/lingora-backend/internal/adapter/postgres"
	"github.com/lingora/lingora-backend/internal/adapter/postgres/achievement"
	"github.com/lingora/lingora-backend/internal/adapter/postgres/catalog"
	"github.com/lingora/lingora-backend/internal/adapter/postgres/challengeprogress"
	questrepo "github.com/lingora/lingora-backend/internal/adapter/postgres/quest"
	"github.com/lingora/lingora-backend/internal/adapter/postgres/subscription"
	"github.com/lingora/lingora-backend/internal/adapter/postgres/userprogress"
	"github.com/lingora/lingora-backend/internal/adapter/revalidate"
	"github.com/lingora/lingora-backend/internal/auth"
	"github.com/lingora/lingora-backend/internal/config"
	"github.com/lingora/lingora-backend/internal/service/progress"
	"github.com/lingora/lingora-backend/internal/service/progress/reward"
	"github.com/lingora/lingora-backend/internal/service/quest"
	"github.com/lingora/lingora-backend/internal/transport/middleware"
	"github.com/lingora/lingora-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and HTTP handlers, and serves until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	progressRepo := userprogress.New(pool)
	challengeRepo := challengeprogress.New(pool)
	catalogRepo := catalog.New(pool)
	subscriptionRepo := subscription.New(pool)
	questRepo := questrepo.New(pool)
	achievementRepo := achievement.New(pool)

	notifier := revalidate.New(cfg.Revalidate.URL, cfg.Revalidate.Secret, logger)

	rewards := rewardTable(cfg.Rewards)
	targets := progress.QuestTargets{
		Lessons:  cfg.Quests.LessonsTarget,
		Points:   cfg.Quests.PointsTarget,
		Practice: cfg.Quests.PracticeTarget,
	}

	progressSvc := progress.NewService(
		logger,
		progressRepo,
		challengeRepo,
		catalogRepo,
		subscriptionRepo,
		questRepo,
		achievementRepo,
		txm,
		notifier,
		rewards,
		cfg.Hearts.RefillCost,
		targets,
	)
	questSvc := quest.NewService(
		logger,
		questRepo,
		progressRepo,
		txm,
		quest.Targets{
			Lessons:  cfg.Quests.LessonsTarget,
			Points:   cfg.Quests.PointsTarget,
			Practice: cfg.Quests.PracticeTarget,
		},
		cfg.Quests.RewardGems,
	)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := newRouter(routerDeps{
		logger:      logger,
		pool:        pool,
		cfg:         cfg,
		progressSvc: progressSvc,
		questSvc:    questSvc,
		jwt:         jwtManager,
		limiter:     limiter,
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

type routerDeps struct {
	logger      *slog.Logger
	pool        interface{ Ping(ctx context.Context) error }
	cfg         *config.Config
	progressSvc *progress.Service
	questSvc    *quest.Service
	jwt         *auth.JWTManager
	limiter     *middleware.RateLimiter
}

func newRouter(deps routerDeps) http.Handler {
	healthHandler := rest.NewHealthHandler(deps.pool, BuildVersion())
	progressHandler := rest.NewProgressHandler(deps.progressSvc, deps.logger)
	questHandler := rest.NewQuestHandler(deps.questSvc, deps.logger)

	api := http.NewServeMux()
	api.HandleFunc("POST /api/challenges/{id}/submit", progressHandler.SubmitChallenge)
	api.HandleFunc("POST /api/challenges/{id}/heart", progressHandler.DecrementHeart)
	api.HandleFunc("POST /api/hearts/refill", progressHandler.RefillHearts)
	api.HandleFunc("POST /api/courses/{id}/select", progressHandler.SelectCourse)
	api.HandleFunc("GET /api/quests", questHandler.GetOverview)
	api.HandleFunc("POST /api/quests/{type}/claim", questHandler.ClaimReward)

	apiChain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(deps.logger),
		middleware.Recovery(deps.logger),
		middleware.CORS(deps.cfg.CORS),
		deps.limiter.Limit(deps.cfg.Server.RatePerMinute),
		middleware.Auth(deps.jwt),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("/api/", apiChain(api))

	return mux
}

func rewardTable(cfg config.RewardsConfig) reward.Table {
	return reward.Table{
		PracticeQuestionXP:   cfg.PracticeQuestionPoints,
		ChallengeQuestionXP:  cfg.ChallengeQuestionPoints,
		LessonXP:             cfg.LessonPoints,
		PracticeLessonXP:     cfg.PracticeLessonPoints,
		PracticeBonusFreeXP:  cfg.PracticeBonusFree,
		PracticeBonusProXP:   cfg.PracticeBonusPro,
		SubscriberBonusXP:    cfg.SubscriberLessonBonus,
		StreakBonusXP:        cfg.StreakBonus,
		StreakBonusThreshold: cfg.StreakBonusThreshold,
		LessonGems:           cfg.GemsPerLesson,
	}
}
