package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultEnvironment = "development"
	DefaultAPIPrefix   = "/api/v1"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 60

	DefaultMaxConnections = 10
	DefaultQueryTimeoutMs = 10_000

	// Hard cap on rows returned to the pipeline, regardless of what a
	// generated query asks for.
	DefaultMaxResultRows = 20

	DefaultRedisAddr          = "localhost:6379"
	DefaultSQLCacheTTLSeconds = 3600

	DefaultElasticsearchPort    = 9200
	DefaultElasticsearchScheme  = "http"
	DefaultElasticsearchIndex   = "players"
	DefaultElasticsearchTimeout = 30

	DefaultAnthropicModel    = "claude-sonnet-4-6"
	DefaultLLMTimeoutSeconds = 30

	DefaultMaxMessageLength = 2000
)

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
}
