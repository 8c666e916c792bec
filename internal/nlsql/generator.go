// Package nlsql turns natural-language questions into validated SQL via
// the language model, with a write-through cache of cleaned queries.
package nlsql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stumpsai/stumpsai/internal/llm"
	"github.com/stumpsai/stumpsai/internal/security"
)

var (
	// ErrGeneration covers language-model transport failures and unusable output.
	ErrGeneration = errors.New("could not generate query")
	// ErrQueryBlocked means the model produced SQL the safety validator rejected.
	ErrQueryBlocked = errors.New("query blocked")
)

// GeneratedQuery is the model's output for one message. SQL carries the
// cleaned, validated statement; Safe is always true on a non-error
// return — a blocked query never leaves Generate.
type GeneratedQuery struct {
	Input  string
	Raw    string
	SQL    string
	Safe   bool
	Cached bool
}

// CacheStore is the query-cache dependency. Only validated SQL text is
// ever stored, so a hit can be trusted without re-validation.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) bool
}

type Generator struct {
	model     llm.Client
	cache     CacheStore
	validator *security.SQLValidator
	audit     *security.AuditLogger
	ttl       time.Duration
}

func NewGenerator(model llm.Client, cache CacheStore, validator *security.SQLValidator, audit *security.AuditLogger, ttl time.Duration) *Generator {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Generator{model: model, cache: cache, validator: validator, audit: audit, ttl: ttl}
}

// Generate resolves a message to a safe SQL statement, consulting the
// cache first. Errors are ErrGeneration or ErrQueryBlocked; unsafe text
// is never returned, executed, or cached.
func (g *Generator) Generate(ctx context.Context, message string) (GeneratedQuery, error) {
	key := cacheKey(message)

	if cached, ok := g.cache.Get(ctx, key); ok {
		log.Debug().Str("key", key).Msg("generated SQL cache hit")
		g.audit.LogGeneratedSQL(message, cached, true, true)
		return GeneratedQuery{Input: message, SQL: cached, Safe: true, Cached: true}, nil
	}

	raw, err := g.model.Generate(ctx, systemPrompt, buildUserPrompt(message))
	if err != nil {
		log.Warn().Err(err).Msg("SQL generation failed")
		return GeneratedQuery{Input: message}, ErrGeneration
	}

	sql := cleanSQL(raw)
	if sql == ";" || sql == "" {
		return GeneratedQuery{Input: message, Raw: raw}, ErrGeneration
	}

	if msg := g.validator.Validate(sql); msg != "" {
		log.Warn().Str("reason", msg).Msg("generated SQL blocked")
		g.audit.LogGeneratedSQL(message, sql, false, false)
		return GeneratedQuery{Input: message, Raw: raw}, ErrQueryBlocked
	}

	g.cache.Set(ctx, key, sql, g.ttl)
	g.audit.LogGeneratedSQL(message, sql, true, false)

	return GeneratedQuery{Input: message, Raw: raw, SQL: sql, Safe: true}, nil
}

func cacheKey(message string) string {
	return "sql:" + strings.ToLower(strings.TrimSpace(message))
}

// cleanSQL strips Markdown fences, collapses whitespace, and ensures a
// terminating semicolon.
func cleanSQL(raw string) string {
	sql := strings.ReplaceAll(raw, "```sql", "")
	sql = strings.ReplaceAll(sql, "```SQL", "")
	sql = strings.ReplaceAll(sql, "```", "")
	sql = strings.Join(strings.Fields(sql), " ")
	if sql == "" {
		return ""
	}
	if !strings.HasSuffix(sql, ";") {
		sql += ";"
	}
	return sql
}
