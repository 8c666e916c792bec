package security

import (
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog/log"
)

// AuditLogger logs query-resolution events with hashed identifiers so
// raw message and SQL text never land in the log stream.
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

// LogResolution records the outcome of one resolved message.
func (a *AuditLogger) LogResolution(message, intent, source string, success bool, executionTimeMs int64) {
	if !a.enabled {
		return
	}
	log.Info().
		Str("event", "resolution_audit").
		Str("message_hash", hashStr(message)[:16]).
		Str("intent", intent).
		Str("source", source).
		Bool("success", success).
		Int64("execution_time_ms", executionTimeMs).
		Msg("audit")
}

// LogGeneratedSQL records a generated query passing or failing validation.
func (a *AuditLogger) LogGeneratedSQL(message, sql string, validationPassed, cacheHit bool) {
	if !a.enabled {
		return
	}
	sqlHash := ""
	if sql != "" {
		sqlHash = hashStr(sql)[:16]
	}
	log.Info().
		Str("event", "generation_audit").
		Str("message_hash", hashStr(message)[:16]).
		Str("sql_hash", sqlHash).
		Bool("validation_passed", validationPassed).
		Bool("cache_hit", cacheHit).
		Msg("generation audit")
}

// LogDirectQuery records a direct SQL execution through the API.
func (a *AuditLogger) LogDirectQuery(sql, apiKey string, executionTimeMs int64, rowCount int, success bool, errMsg string) {
	if !a.enabled {
		return
	}
	keyHash := ""
	if apiKey != "" {
		keyHash = hashStr(apiKey)[:16]
	}
	log.Info().
		Str("event", "query_audit").
		Str("sql_hash", hashStr(sql)[:16]).
		Str("api_key_hash", keyHash).
		Int64("execution_time_ms", executionTimeMs).
		Int("row_count", rowCount).
		Bool("success", success).
		Str("error", errMsg).
		Msg("query audit")
}

func hashStr(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)
}
