package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/service/quest"
)

// questService defines the minimal interface needed by QuestHandler.
type questService interface {
	GetOverview(ctx context.Context) (*quest.Overview, error)
	ClaimReward(ctx context.Context, questType domain.QuestType) (int, error)
}

// QuestHandler serves quest REST endpoints.
type QuestHandler struct {
	svc questService
	log *slog.Logger
}

// NewQuestHandler creates a QuestHandler.
func NewQuestHandler(svc questService, logger *slog.Logger) *QuestHandler {
	return &QuestHandler{svc: svc, log: logger.With("handler", "quest")}
}

type monthlyQuestResponse struct {
	QuestType     string     `json:"questType"`
	Month         string     `json:"month"`
	CurrentValue  int        `json:"currentValue"`
	TargetValue   int        `json:"targetValue"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	RewardClaimed bool       `json:"rewardClaimed"`
}

type tierResponse struct {
	Title    string `json:"title"`
	Value    int    `json:"value"`
	Progress int    `json:"progress"`
	Complete bool   `json:"complete"`
}

type overviewResponse struct {
	Monthly []monthlyQuestResponse `json:"monthly"`
	Tiers   []tierResponse         `json:"tiers"`
}

type claimResponse struct {
	Gems int `json:"gems"`
}

// GetOverview handles GET /api/quests.
func (h *QuestHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.GetOverview(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOverviewResponse(overview))
}

// ClaimReward handles POST /api/quests/{type}/claim.
func (h *QuestHandler) ClaimReward(w http.ResponseWriter, r *http.Request) {
	questType := domain.QuestType(r.PathValue("type"))

	gems, err := h.svc.ClaimReward(r.Context(), questType)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, claimResponse{Gems: gems})
}

func (h *QuestHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "quest is not claimable")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toOverviewResponse(overview *quest.Overview) overviewResponse {
	resp := overviewResponse{
		Monthly: make([]monthlyQuestResponse, 0, len(overview.Monthly)),
		Tiers:   make([]tierResponse, 0, len(overview.Tiers)),
	}
	for _, q := range overview.Monthly {
		resp.Monthly = append(resp.Monthly, monthlyQuestResponse{
			QuestType:     q.QuestType.String(),
			Month:         q.Month.Format("2006-01"),
			CurrentValue:  q.CurrentValue,
			TargetValue:   q.TargetValue,
			Completed:     q.Completed,
			CompletedAt:   q.CompletedAt,
			RewardClaimed: q.RewardClaimed,
		})
	}
	for _, t := range overview.Tiers {
		resp.Tiers = append(resp.Tiers, tierResponse{
			Title:    t.Tier.Title,
			Value:    t.Tier.Value,
			Progress: t.Progress,
			Complete: t.Complete,
		})
	}
	return resp
}
