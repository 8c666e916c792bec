package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	APIPrefix   string `json:"api_prefix"`
	LogLevel    string `json:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Auth
	APIKeyHeader string   `json:"api_key_header"`
	APIKeys      []string `json:"api_keys"`
	EnableAuth   bool     `json:"enable_auth"`

	// Rate Limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// Postgres
	DatabaseURL    string `json:"database_url"`
	MaxConnections int32  `json:"max_connections"`
	QueryTimeoutMs int    `json:"query_timeout_ms"`
	MaxResultRows  int    `json:"max_result_rows"`

	// Redis
	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`
	SQLCacheTTLs  int    `json:"sql_cache_ttl_seconds"`

	// Elasticsearch
	ElasticsearchEnabled  bool   `json:"elasticsearch_enabled"`
	ElasticsearchHost     string `json:"elasticsearch_host"`
	ElasticsearchPort     int    `json:"elasticsearch_port"`
	ElasticsearchScheme   string `json:"elasticsearch_scheme"`
	ElasticsearchUser     string `json:"elasticsearch_user"`
	ElasticsearchPassword string `json:"elasticsearch_password"`
	ElasticsearchIndex    string `json:"elasticsearch_index"`
	ElasticsearchTimeout  int    `json:"elasticsearch_timeout"`

	// AI / LLM
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	AnthropicBaseURL string `json:"anthropic_base_url"` // override for custom proxy
	AnthropicModel   string `json:"anthropic_model"`
	LLMTimeoutSec    int    `json:"llm_timeout_seconds"`

	// Audit
	EnableAuditLogging bool `json:"enable_audit_logging"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:                 DefaultHost,
		Port:                 DefaultPort,
		Environment:          DefaultEnvironment,
		APIPrefix:            DefaultAPIPrefix,
		LogLevel:             DefaultLogLevel,
		CORSOrigins:          DefaultCORSOrigins,
		APIKeyHeader:         "X-API-Key",
		RateLimitPerMinute:   DefaultRateLimitPerMinute,
		MaxConnections:       DefaultMaxConnections,
		QueryTimeoutMs:       DefaultQueryTimeoutMs,
		MaxResultRows:        DefaultMaxResultRows,
		RedisAddr:            DefaultRedisAddr,
		SQLCacheTTLs:         DefaultSQLCacheTTLSeconds,
		ElasticsearchPort:    DefaultElasticsearchPort,
		ElasticsearchScheme:  DefaultElasticsearchScheme,
		ElasticsearchIndex:   DefaultElasticsearchIndex,
		ElasticsearchTimeout: DefaultElasticsearchTimeout,
		AnthropicModel:       DefaultAnthropicModel,
		LLMTimeoutSec:        DefaultLLMTimeoutSeconds,
		EnableAuditLogging:   true,
	}

	// Load from JSON config file if specified
	if path := getEnv("STUMPSAI_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("STUMPSAI_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("STUMPSAI_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("STUMPSAI_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("STUMPSAI_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("STUMPSAI_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
		cfg.EnableAuth = true
	}
	if v := getEnv("DATABASE_URL", ""); v != "" {
		cfg.DatabaseURL = v
	}
	if v := getEnv("REDIS_ADDR", ""); v != "" {
		cfg.RedisAddr = v
	}
	if v := getEnv("REDIS_PASSWORD", ""); v != "" {
		cfg.RedisPassword = v
	}
	if v := getEnv("REDIS_DB", ""); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = d
		}
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := getEnv("ANTHROPIC_MODEL", ""); v != "" {
		cfg.AnthropicModel = v
	}
	if v := getEnv("ELASTICSEARCH_ENABLED", ""); v != "" {
		cfg.ElasticsearchEnabled = v == "true" || v == "1"
	}
	if v := getEnv("ELASTICSEARCH_HOST", ""); v != "" {
		cfg.ElasticsearchHost = v
	}
	if v := getEnv("ELASTICSEARCH_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.ElasticsearchPort = p
		}
	}
	if v := getEnv("ELASTICSEARCH_SCHEME", ""); v != "" {
		cfg.ElasticsearchScheme = v
	}
	if v := getEnv("ELASTICSEARCH_USER", ""); v != "" {
		cfg.ElasticsearchUser = v
	}
	if v := getEnv("ELASTICSEARCH_PASSWORD", ""); v != "" {
		cfg.ElasticsearchPassword = v
	}
	if v := getEnv("ELASTICSEARCH_INDEX", ""); v != "" {
		cfg.ElasticsearchIndex = v
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
	if v := getEnv("ENABLE_AUDIT_LOGGING", ""); v != "" {
		cfg.EnableAuditLogging = v == "true" || v == "1"
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
