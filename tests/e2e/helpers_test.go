//go:build e2e

package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/lingora/lingora-backend/internal/adapter/postgres"
	"github.com/lingora/lingora-backend/internal/adapter/postgres/achievement"
	"github.com/lingora/lingora-backend/internal/adapter/postgres/catalog"
	"github.com/lingora/lingora-backend/internal/adapter/postgres/challengeprogress"
	questrepo "github.com/lingora/lingora-backend/internal/adapter/postgres/quest"
	"github.com/lingora/lingora-backend/internal/adapter/postgres/subscription"
	"github.com/lingora/lingora-backend/internal/adapter/postgres/testhelper"
	"github.com/lingora/lingora-backend/internal/adapter/postgres/userprogress"
	"github.com/lingora/lingora-backend/internal/adapter/revalidate"
	authpkg "github.com/lingora/lingora-backend/internal/auth"
	"github.com/lingora/lingora-backend/internal/config"
	"github.com/lingora/lingora-backend/internal/service/progress"
	"github.com/lingora/lingora-backend/internal/service/progress/reward"
	questsvc "github.com/lingora/lingora-backend/internal/service/quest"
	"github.com/lingora/lingora-backend/internal/transport/middleware"
	"github.com/lingora/lingora-backend/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	txm := postgres.NewTxManager(pool)

	progressRepo := userprogress.New(pool)
	challengeRepo := challengeprogress.New(pool)
	catalogRepo := catalog.New(pool)
	subscriptionRepo := subscription.New(pool)
	questRepo := questrepo.New(pool)
	achievementRepo := achievement.New(pool)

	notifier := revalidate.New("", "", logger) // disabled

	rewards := reward.Table{
		PracticeQuestionXP:   1,
		ChallengeQuestionXP:  2,
		LessonXP:             20,
		PracticeLessonXP:     10,
		PracticeBonusFreeXP:  5,
		PracticeBonusProXP:   10,
		SubscriberBonusXP:    10,
		StreakBonusXP:        5,
		StreakBonusThreshold: 7,
		LessonGems:           5,
	}
	targets := progress.QuestTargets{Lessons: 20, Points: 1000, Practice: 10}

	progressService := progress.NewService(
		logger, progressRepo, challengeRepo, catalogRepo, subscriptionRepo,
		questRepo, achievementRepo, txm, notifier, rewards, 50, targets,
	)
	questService := questsvc.NewService(
		logger, questRepo, progressRepo, txm,
		questsvc.Targets{Lessons: 20, Points: 1000, Practice: 10}, 25,
	)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	progressHandler := rest.NewProgressHandler(progressService, logger)
	questHandler := rest.NewQuestHandler(questService, logger)

	api := http.NewServeMux()
	api.HandleFunc("POST /api/challenges/{id}/submit", progressHandler.SubmitChallenge)
	api.HandleFunc("POST /api/challenges/{id}/heart", progressHandler.DecrementHeart)
	api.HandleFunc("POST /api/hearts/refill", progressHandler.RefillHearts)
	api.HandleFunc("POST /api/courses/{id}/select", progressHandler.SelectCourse)
	api.HandleFunc("GET /api/quests", questHandler.GetOverview)
	api.HandleFunc("POST /api/quests/{type}/claim", questHandler.ClaimReward)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{AllowedOrigins: "*"}),
		middleware.Auth(jwtMgr),
	)

	mux := http.NewServeMux()
	mux.Handle("/api/", chain(api))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtMgr,
	}
}

// newUserToken seeds a user_progress row bound to a fresh course and returns
// the user ID plus a valid bearer token.
func newUserToken(t *testing.T, ts *testServer, courseID uuid.UUID, hearts, points int) (uuid.UUID, string) {
	t.Helper()

	userID := testhelper.SeedUserProgress(t, ts.Pool, courseID, hearts, points, 0)
	token, err := ts.jwt.GenerateAccessToken(userID)
	require.NoError(t, err)
	return userID, token
}

// freshToken returns a token for a user with no progress row yet.
func freshToken(t *testing.T, ts *testServer) (uuid.UUID, string) {
	t.Helper()

	userID := uuid.New()
	token, err := ts.jwt.GenerateAccessToken(userID)
	require.NoError(t, err)
	return userID, token
}

// doJSON performs an authorized request and decodes the JSON response body.
func doJSON(t *testing.T, ts *testServer, method, path, token string, out any) int {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// seedLesson creates a course, one lesson, and n challenges.
func seedLesson(t *testing.T, ts *testServer, n int) (uuid.UUID, []uuid.UUID) {
	t.Helper()

	courseID := testhelper.SeedCourse(t, ts.Pool, fmt.Sprintf("E2E Course %s", uuid.New()))
	lessonID := testhelper.SeedLesson(t, ts.Pool, courseID, 1)
	challenges := make([]uuid.UUID, 0, n)
	for i := range n {
		challenges = append(challenges, testhelper.SeedChallenge(t, ts.Pool, lessonID, i+1))
	}
	return courseID, challenges
}
