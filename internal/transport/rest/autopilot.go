package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pollboard/pollboard-backend/internal/domain"
	"github.com/pollboard/pollboard-backend/internal/service/autocreator"
	"github.com/pollboard/pollboard-backend/internal/service/engagement"
	"github.com/pollboard/pollboard-backend/pkg/ctxutil"
)

type creatorService interface {
	Run(ctx context.Context, kind domain.ExecutionKind) (autocreator.Result, error)
}

type engagementService interface {
	RunScheduled(ctx context.Context) (engagement.Result, error)
	ExecuteAction(ctx context.Context, postID int64, action domain.EngagementAction) (string, error)
	LogFailure(ctx context.Context, kind domain.ExecutionKind, postID *int64, action *domain.EngagementAction, errMsg string)
}

// AutopilotHandler serves the autopilot trigger endpoints.
type AutopilotHandler struct {
	creator    creatorService
	engagement engagementService
	log        *slog.Logger
}

// NewAutopilotHandler creates an AutopilotHandler.
func NewAutopilotHandler(creator creatorService, eng engagementService, logger *slog.Logger) *AutopilotHandler {
	return &AutopilotHandler{
		creator:    creator,
		engagement: eng,
		log:        logger.With("handler", "autopilot"),
	}
}

type runResponse struct {
	Success bool    `json:"success"`
	Ran     bool    `json:"ran"`
	Reason  string  `json:"reason,omitempty"`
	Message string  `json:"message,omitempty"`
	PostIDs []int64 `json:"created_post_ids,omitempty"`
}

// RunCreator triggers one creation run.
// POST /api/autopilot/creator/run
func (h *AutopilotHandler) RunCreator(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	res, err := h.creator.Run(r.Context(), domain.ExecutionKindManual)
	if err != nil {
		h.log.ErrorContext(r.Context(), "creator run failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "creation run failed")
		return
	}

	writeJSON(w, http.StatusOK, runResponse{
		Success: true,
		Ran:     res.Ran,
		Reason:  res.Reason,
		PostIDs: res.CreatedPostIDs,
	})
}

// RunEngagement triggers one scheduled engagement tick.
// POST /api/autopilot/engagement/run
func (h *AutopilotHandler) RunEngagement(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	res, err := h.engagement.RunScheduled(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "engagement run failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "engagement run failed")
		return
	}

	writeJSON(w, http.StatusOK, runResponse{
		Success: true,
		Ran:     res.Ran,
		Reason:  res.Reason,
		Message: res.Message,
	})
}

type executeRequest struct {
	PostID     *int64 `json:"post_id"`
	ActionType string `json:"action_type"`
}

type executeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ExecuteEngagement performs one engagement action against a specific post.
// POST /api/autopilot/engagement/execute {"post_id": 1, "action_type": "vote"}
func (h *AutopilotHandler) ExecuteEngagement(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.engagement.LogFailure(r.Context(), domain.ExecutionKindManual, nil, nil, "invalid request body")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.PostID == nil {
		h.engagement.LogFailure(r.Context(), domain.ExecutionKindManual, nil, nil, "post_id is required")
		writeError(w, http.StatusBadRequest, "post_id is required")
		return
	}

	action, err := domain.ParseEngagementAction(req.ActionType)
	if err != nil {
		h.engagement.LogFailure(r.Context(), domain.ExecutionKindManual, req.PostID, nil, err.Error())
		writeError(w, http.StatusBadRequest, "unknown action_type")
		return
	}

	msg, err := h.engagement.ExecuteAction(r.Context(), *req.PostID, action)
	if err != nil {
		// The executor already logged the attempt.
		writeJSON(w, http.StatusInternalServerError, executeResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, executeResponse{Success: true, Message: msg})
}

func (h *AutopilotHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !ctxutil.IsAdminCtx(r.Context()) {
		writeError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}
