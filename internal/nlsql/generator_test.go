package nlsql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stumpsai/stumpsai/internal/nlsql"
	"github.com/stumpsai/stumpsai/internal/security"
)

type fakeModel struct {
	output string
	err    error
	calls  int
}

func (f *fakeModel) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	return f.output, f.err
}

type memCache struct {
	store map[string]string
}

func newMemCache() *memCache {
	return &memCache{store: make(map[string]string)}
}

func (m *memCache) Get(ctx context.Context, key string) (string, bool) {
	v, ok := m.store[key]
	return v, ok
}

func (m *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	m.store[key] = value
	return true
}

func newGenerator(model *fakeModel, cache *memCache) *nlsql.Generator {
	return nlsql.NewGenerator(
		model,
		cache,
		security.NewSQLValidator(),
		security.NewAuditLogger(false),
		time.Hour,
	)
}

func TestGenerateCleansMarkdownAndWhitespace(t *testing.T) {
	model := &fakeModel{output: "```sql\nSELECT p.name,   b.runs\nFROM players p\nINNER JOIN batting_stats b ON p.id = b.player_id\nWHERE b.format = 'IPL'\nLIMIT 5\n```"}
	gen := newGenerator(model, newMemCache())

	q, err := gen.Generate(context.Background(), "top run scorers")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := "SELECT p.name, b.runs FROM players p INNER JOIN batting_stats b ON p.id = b.player_id WHERE b.format = 'IPL' LIMIT 5;"
	if q.SQL != want {
		t.Errorf("cleaned SQL = %q, want %q", q.SQL, want)
	}
	if !q.Safe {
		t.Error("returned query must be marked safe")
	}
}

func TestGenerateBlocksUnsafeOutput(t *testing.T) {
	cache := newMemCache()
	model := &fakeModel{output: "DROP TABLE players;"}
	gen := newGenerator(model, cache)

	q, err := gen.Generate(context.Background(), "DROP TABLE players")
	if !errors.Is(err, nlsql.ErrQueryBlocked) {
		t.Fatalf("err = %v, want ErrQueryBlocked", err)
	}
	if q.Safe || q.SQL != "" {
		t.Error("blocked generation must not return usable SQL")
	}
	if len(cache.store) != 0 {
		t.Error("blocked SQL must never be cached")
	}
}

func TestGenerateReportsModelFailure(t *testing.T) {
	model := &fakeModel{err: errors.New("connection timeout")}
	gen := newGenerator(model, newMemCache())

	if _, err := gen.Generate(context.Background(), "top batsmen"); !errors.Is(err, nlsql.ErrGeneration) {
		t.Fatalf("err = %v, want ErrGeneration", err)
	}
}

func TestGenerateReportsEmptyOutput(t *testing.T) {
	model := &fakeModel{output: "```sql\n```"}
	gen := newGenerator(model, newMemCache())

	if _, err := gen.Generate(context.Background(), "nonsense"); !errors.Is(err, nlsql.ErrGeneration) {
		t.Fatalf("err = %v, want ErrGeneration", err)
	}
}

// Repeated identical messages within the TTL window must hit the model
// exactly once; the second call is served from cache.
func TestGenerateUsesCacheOnRepeat(t *testing.T) {
	model := &fakeModel{output: "SELECT name FROM players LIMIT 20"}
	gen := newGenerator(model, newMemCache())

	first, err := gen.Generate(context.Background(), "List all players")
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := gen.Generate(context.Background(), "  list ALL players  ")
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	if model.calls != 1 {
		t.Errorf("model calls = %d, want 1", model.calls)
	}
	if !second.Cached {
		t.Error("second call should be served from cache")
	}
	if first.SQL != second.SQL {
		t.Errorf("cached SQL %q differs from generated %q", second.SQL, first.SQL)
	}
}
