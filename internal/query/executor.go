package query

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stumpsai/stumpsai/internal/security"
)

// MaxRows is the hard cap on rows any execution may return, whatever
// limit the originating template or generated query carries.
const MaxRows = 20

// Selector is the relational-store dependency: a single read-only
// statement in, normalized rows out. Implemented by store.DB.
type Selector interface {
	Select(ctx context.Context, sql string, limit int) ([]map[string]any, []string, error)
}

// Executor runs validated queries with a statement timeout and row cap.
// Callers are expected to have validated the query already; the
// executor re-checks anyway given the severity of executing untrusted
// text against the store.
type Executor struct {
	db        Selector
	validator *security.SQLValidator
	timeout   time.Duration
}

func NewExecutor(db Selector, validator *security.SQLValidator, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Executor{db: db, validator: validator, timeout: timeout}
}

// Run executes sql and returns at most min(limit, MaxRows) rows. Any
// execution error (model-made syntax error, missing column, transient
// connectivity failure) is converted into a failed Result with the
// offending SQL attached. Never retries; retry policy lives with the
// orchestrator's fallback chain.
func (e *Executor) Run(ctx context.Context, sql string, limit int) Result {
	if msg := e.validator.Validate(sql); msg != "" {
		return Fail(sql, "query blocked: "+msg)
	}

	if limit <= 0 || limit > MaxRows {
		limit = MaxRows
	}

	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	rows, columns, err := e.db.Select(execCtx, sql, limit)
	if err != nil {
		log.Warn().Err(err).Str("sql", sql).Msg("query execution failed")
		return Fail(sql, err.Error())
	}

	log.Debug().
		Int("rows", len(rows)).
		Dur("duration", time.Since(start)).
		Msg("query executed")

	return Ok(sql, rows, columns)
}
