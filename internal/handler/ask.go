package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/stumpsai/stumpsai/internal/models"
	"github.com/stumpsai/stumpsai/internal/resolver"
)

// MessageResolver is the resolution pipeline entry point.
type MessageResolver interface {
	Resolve(ctx context.Context, message string) resolver.Resolution
}

// AskHandler handles POST /api/v1/ask: one natural-language message in,
// one resolved answer out.
type AskHandler struct {
	resolver MessageResolver
}

func NewAskHandler(res MessageResolver) *AskHandler {
	return &AskHandler{resolver: res}
}

// Ask handles POST /api/v1/ask
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		models.WriteError(w, http.StatusBadRequest, "message is required")
		return
	}
	req.SetDefaults()

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(req.TimeoutMs)*time.Millisecond)
	defer cancel()

	start := time.Now()
	res := h.resolver.Resolve(ctx, req.Message)

	status := "success"
	if !res.Success {
		status = "failed"
	}

	var result *models.QueryResponse
	if res.Result != nil {
		result = &models.QueryResponse{
			Status:   status,
			Data:     res.Result.Rows,
			Columns:  res.Result.Columns,
			RowCount: res.Result.Count,
		}
	}

	models.WriteJSON(w, http.StatusOK, models.AskResponse{
		Status:  status,
		Message: req.Message,
		Intent:  string(res.Intent),
		Answer:  res.Answer,
		Source:  res.Source,
		Result:  result,
		Metadata: map[string]any{
			"execution_time_ms": time.Since(start).Milliseconds(),
		},
	})
}
