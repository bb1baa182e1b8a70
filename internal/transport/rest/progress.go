package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/service/progress"
)

// progressService defines the minimal interface needed by ProgressHandler.
type progressService interface {
	SubmitChallenge(ctx context.Context, input progress.SubmitChallengeInput) (*progress.SubmitResult, error)
	DecrementHeart(ctx context.Context, challengeID uuid.UUID) (int, error)
	RefillHearts(ctx context.Context) (int, error)
	SelectCourse(ctx context.Context, courseID uuid.UUID) (*domain.UserProgress, error)
}

// ProgressHandler serves challenge-submission and hearts REST endpoints.
type ProgressHandler struct {
	svc progressService
	log *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc progressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: logger.With("handler", "progress")}
}

type rewardBundleResponse struct {
	XP           int      `json:"xp"`
	Gems         int      `json:"gems"`
	Streak       int      `json:"streak"`
	Achievements []string `json:"achievements"`
}

type submitResponse struct {
	LessonComplete bool                  `json:"lessonComplete"`
	Rewards        *rewardBundleResponse `json:"rewards,omitempty"`
}

type heartsResponse struct {
	Hearts int `json:"hearts"`
}

type pointsResponse struct {
	Points int `json:"points"`
}

type progressResponse struct {
	UserID         string `json:"userId"`
	ActiveCourseID string `json:"activeCourseId"`
	Hearts         int    `json:"hearts"`
	Points         int    `json:"points"`
	Gems           int    `json:"gems"`
	Streak         int    `json:"streak"`
}

// SubmitChallenge handles POST /api/challenges/{id}/submit.
func (h *ProgressHandler) SubmitChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid challenge id")
		return
	}

	result, err := h.svc.SubmitChallenge(r.Context(), progress.SubmitChallengeInput{
		ChallengeID: challengeID,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubmitResponse(result))
}

// DecrementHeart handles POST /api/challenges/{id}/heart. The client calls
// it on a wrong answer; the challenge ID names where the heart was lost.
func (h *ProgressHandler) DecrementHeart(w http.ResponseWriter, r *http.Request) {
	challengeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid challenge id")
		return
	}

	hearts, err := h.svc.DecrementHeart(r.Context(), challengeID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, heartsResponse{Hearts: hearts})
}

// RefillHearts handles POST /api/hearts/refill.
func (h *ProgressHandler) RefillHearts(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.RefillHearts(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pointsResponse{Points: points})
}

// SelectCourse handles POST /api/courses/{id}/select.
func (h *ProgressHandler) SelectCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	prog, err := h.svc.SelectCourse(r.Context(), courseID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProgressResponse(prog))
}

func (h *ProgressHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrOutOfHearts):
		writeErrorCode(w, http.StatusConflict, "hearts", "out of hearts")
	case errors.Is(err, domain.ErrPracticeChallenge):
		writeErrorCode(w, http.StatusConflict, "practice", "practice challenges do not cost hearts")
	case errors.Is(err, domain.ErrHeartsFull):
		writeErrorCode(w, http.StatusConflict, "hearts_full", "hearts are already full")
	case errors.Is(err, domain.ErrNotEnoughPoints):
		writeErrorCode(w, http.StatusPaymentRequired, "points", "not enough points")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toSubmitResponse(result *progress.SubmitResult) submitResponse {
	resp := submitResponse{LessonComplete: result.LessonComplete}
	if result.Rewards != nil {
		achievements := make([]string, 0, len(result.Rewards.Achievements))
		for _, id := range result.Rewards.Achievements {
			achievements = append(achievements, string(id))
		}
		resp.Rewards = &rewardBundleResponse{
			XP:           result.Rewards.XP,
			Gems:         result.Rewards.Gems,
			Streak:       result.Rewards.Streak,
			Achievements: achievements,
		}
	}
	return resp
}

func toProgressResponse(prog *domain.UserProgress) progressResponse {
	return progressResponse{
		UserID:         prog.UserID.String(),
		ActiveCourseID: prog.ActiveCourseID.String(),
		Hearts:         prog.Hearts,
		Points:         prog.Points,
		Gems:           prog.Gems,
		Streak:         prog.Streak,
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeErrorCode adds a stable machine-readable code next to the message so
// clients can branch on gating outcomes without string matching.
func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "error": message})
}
