package query_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stumpsai/stumpsai/internal/query"
	"github.com/stumpsai/stumpsai/internal/security"
)

type fakeStore struct {
	rows    []map[string]any
	columns []string
	err     error

	gotSQL   string
	gotLimit int
}

func (f *fakeStore) Select(ctx context.Context, sql string, limit int) ([]map[string]any, []string, error) {
	f.gotSQL = sql
	f.gotLimit = limit
	if f.err != nil {
		return nil, nil, f.err
	}
	rows := f.rows
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, f.columns, nil
}

func newRegistry(t *testing.T) *query.Registry {
	t.Helper()
	r, err := query.NewRegistry(security.NewSQLValidator())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

// ─── Registry ─────────────────────────────────────────────────────────────────

func TestRegistryTemplatesAreReadOnly(t *testing.T) {
	r := newRegistry(t)
	v := security.NewSQLValidator()

	for _, id := range []query.TemplateID{
		query.TemplateTopBatsmen, query.TemplateTopBowlers,
		query.TemplateBestStrikeRate, query.TemplateBestEconomy,
		query.TemplateAllRounders, query.TemplateListPlayers,
	} {
		tmpl, ok := r.Get(id)
		if !ok {
			t.Fatalf("template %s not registered", id)
		}
		if !v.IsSafe(tmpl.SQL) {
			t.Errorf("template %s SQL failed safety validation", id)
		}
		if tmpl.Limit < 5 || tmpl.Limit > 20 {
			t.Errorf("template %s limit %d out of range", id, tmpl.Limit)
		}
	}
}

// ─── Router.Match ─────────────────────────────────────────────────────────────

func TestRouterMatch(t *testing.T) {
	router := query.NewRouter(newRegistry(t), nil)

	tests := []struct {
		message string
		want    query.TemplateID
		matched bool
	}{
		{"Top 5 batsmen by IPL runs", query.TemplateTopBatsmen, true},
		{"best batsman this season", query.TemplateTopBatsmen, true},
		{"top bowlers by wickets", query.TemplateTopBowlers, true},
		{"who has the best strike rate", query.TemplateBestStrikeRate, true},
		{"bowlers with lowest economy", query.TemplateBestEconomy, true},
		{"show me all-rounders", query.TemplateAllRounders, true},
		{"list all players", query.TemplateListPlayers, true},
		{"asdkjhasdkjh random nonsense", "", false},
		{"what's the weather", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, ok := router.Match(tt.message)
			if ok != tt.matched {
				t.Fatalf("Match(%q) matched=%v, want %v", tt.message, ok, tt.matched)
			}
			if got != tt.want {
				t.Errorf("Match(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestRouterMatchIsIdempotent(t *testing.T) {
	router := query.NewRouter(newRegistry(t), nil)

	for _, msg := range []string{"Top 5 batsmen by IPL runs", "gibberish input"} {
		id1, ok1 := router.Match(msg)
		id2, ok2 := router.Match(msg)
		if id1 != id2 || ok1 != ok2 {
			t.Errorf("Match(%q) not idempotent: (%q,%v) vs (%q,%v)", msg, id1, ok1, id2, ok2)
		}
	}
}

// ─── Router.Execute ───────────────────────────────────────────────────────────

func TestRouterExecuteTopBatsmen(t *testing.T) {
	store := &fakeStore{
		columns: []string{"name", "runs", "average", "strike_rate", "hundreds", "fifties"},
		rows: []map[string]any{
			{"name": "Virat Kohli", "runs": 7263, "average": 37.2, "strike_rate": 130.0, "hundreds": 7, "fifties": 50},
			{"name": "Rohit Sharma", "runs": 6211, "average": 29.3, "strike_rate": 130.6, "hundreds": 1, "fifties": 42},
		},
	}
	exec := query.NewExecutor(store, security.NewSQLValidator(), time.Second)
	router := query.NewRouter(newRegistry(t), exec)

	id, ok := router.Match("Top 5 batsmen by IPL runs")
	if !ok || id != query.TemplateTopBatsmen {
		t.Fatalf("expected top_batsmen match, got %q (%v)", id, ok)
	}

	res := router.Execute(context.Background(), id)
	if !res.Success {
		t.Fatalf("execute failed: %s", res.Err)
	}
	if store.gotLimit != 5 {
		t.Errorf("template limit = %d, want 5", store.gotLimit)
	}
	if !strings.Contains(store.gotSQL, "ORDER BY b.runs DESC") {
		t.Errorf("template SQL missing runs ordering:\n%s", store.gotSQL)
	}
	for _, col := range []string{"name", "runs", "average", "strike_rate", "hundreds", "fifties"} {
		if _, ok := res.Rows[0][col]; !ok {
			t.Errorf("row missing column %q", col)
		}
	}
}

func TestRouterExecuteConvertsErrors(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	exec := query.NewExecutor(store, security.NewSQLValidator(), time.Second)
	router := query.NewRouter(newRegistry(t), exec)

	res := router.Execute(context.Background(), query.TemplateTopBowlers)
	if res.Success {
		t.Fatal("expected failure result")
	}
	if res.Err == "" {
		t.Error("expected error description on failed result")
	}
}

// ─── Executor ─────────────────────────────────────────────────────────────────

func TestExecutorCapsRows(t *testing.T) {
	rows := make([]map[string]any, 50)
	for i := range rows {
		rows[i] = map[string]any{"name": "p"}
	}
	store := &fakeStore{rows: rows, columns: []string{"name"}}
	exec := query.NewExecutor(store, security.NewSQLValidator(), time.Second)

	res := exec.Run(context.Background(), "SELECT name FROM players", 100)
	if !res.Success {
		t.Fatalf("run failed: %s", res.Err)
	}
	if len(res.Rows) > query.MaxRows {
		t.Errorf("rows = %d, exceeds cap %d", len(res.Rows), query.MaxRows)
	}
	if store.gotLimit != query.MaxRows {
		t.Errorf("store limit = %d, want %d", store.gotLimit, query.MaxRows)
	}
}

func TestExecutorRejectsUnsafeSQL(t *testing.T) {
	store := &fakeStore{}
	exec := query.NewExecutor(store, security.NewSQLValidator(), time.Second)

	res := exec.Run(context.Background(), "DROP TABLE players", 5)
	if res.Success {
		t.Fatal("unsafe SQL must not execute")
	}
	if store.gotSQL != "" {
		t.Error("store was reached with unsafe SQL")
	}
}

func TestExecutorAttachesOffendingSQL(t *testing.T) {
	store := &fakeStore{err: errors.New(`column "runz" does not exist`)}
	exec := query.NewExecutor(store, security.NewSQLValidator(), time.Second)

	bad := "SELECT runz FROM players"
	res := exec.Run(context.Background(), bad, 5)
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.SQL != bad {
		t.Errorf("failed result SQL = %q, want %q", res.SQL, bad)
	}
}
