package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/stumpsai/stumpsai/internal/models"
	"github.com/stumpsai/stumpsai/internal/query"
	"github.com/stumpsai/stumpsai/internal/security"
)

// QueryRunner executes validated SQL with a row cap.
type QueryRunner interface {
	Run(ctx context.Context, sql string, limit int) query.Result
}

// QueryHandler handles direct SQL execution for API clients.
type QueryHandler struct {
	runner QueryRunner
	sqlVal *security.SQLValidator
	audit  *security.AuditLogger
}

func NewQueryHandler(runner QueryRunner, sqlVal *security.SQLValidator, audit *security.AuditLogger) *QueryHandler {
	return &QueryHandler{runner: runner, sqlVal: sqlVal, audit: audit}
}

// Execute handles POST /api/v1/query
func (h *QueryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.SetDefaults()

	if errMsg := h.sqlVal.Validate(req.SQL); errMsg != "" {
		models.WriteError(w, http.StatusBadRequest, "SQL validation failed: "+errMsg)
		return
	}

	apiKey := r.Header.Get("X-API-Key")
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(req.TimeoutMs)*time.Millisecond)
	defer cancel()

	result := h.runner.Run(ctx, req.SQL, query.MaxRows)
	execMs := time.Since(start).Milliseconds()

	if !result.Success {
		h.audit.LogDirectQuery(req.SQL, apiKey, execMs, 0, false, result.Err)
		models.WriteError(w, http.StatusInternalServerError, "query execution failed")
		return
	}

	h.audit.LogDirectQuery(req.SQL, apiKey, execMs, result.Count, true, "")

	models.WriteJSON(w, http.StatusOK, models.QueryResponse{
		Status:          "success",
		Data:            result.Rows,
		Columns:         result.Columns,
		RowCount:        result.Count,
		ExecutionTimeMs: execMs,
	})
}
