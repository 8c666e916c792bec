package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/stumpsai/stumpsai/internal/cache"
	"github.com/stumpsai/stumpsai/internal/handler"
	"github.com/stumpsai/stumpsai/internal/llm"
	"github.com/stumpsai/stumpsai/internal/middleware"
	"github.com/stumpsai/stumpsai/internal/nlsql"
	"github.com/stumpsai/stumpsai/internal/query"
	"github.com/stumpsai/stumpsai/internal/resolver"
	"github.com/stumpsai/stumpsai/internal/security"
	"github.com/stumpsai/stumpsai/internal/semantic"
	"github.com/stumpsai/stumpsai/internal/store"
	"github.com/stumpsai/stumpsai/internal/valuation"
)

// webhookTimeout bounds webhook resolution; Twilio drops connections
// after 15 seconds.
const webhookTimeout = 14 * time.Second

func (s *Server) setupRoutes(ctx context.Context) (http.Handler, error) {
	cfg := s.cfg

	// ─── Data stores ────────────────────────────────────────────────────────────
	db, err := store.Connect(ctx, store.Config{
		URL:            cfg.DatabaseURL,
		MaxConnections: cfg.MaxConnections,
	})
	if err != nil {
		return nil, err
	}
	s.db = db

	redisCache := cache.New(cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	s.cache = redisCache

	var esSvc *semantic.Service
	if cfg.ElasticsearchEnabled {
		esSvc, err = semantic.New(semantic.Config{
			Scheme:   cfg.ElasticsearchScheme,
			Host:     cfg.ElasticsearchHost,
			Port:     cfg.ElasticsearchPort,
			User:     cfg.ElasticsearchUser,
			Password: cfg.ElasticsearchPassword,
			Index:    cfg.ElasticsearchIndex,
			Timeout:  time.Duration(cfg.ElasticsearchTimeout) * time.Second,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Elasticsearch unavailable - semantic fallback disabled")
			esSvc = nil
		}
	}

	// ─── Pipeline ───────────────────────────────────────────────────────────────
	sqlVal := security.NewSQLValidator()
	audit := security.NewAuditLogger(cfg.EnableAuditLogging)

	registry, err := query.NewRegistry(sqlVal)
	if err != nil {
		return nil, err
	}
	exec := query.NewExecutor(db, sqlVal, time.Duration(cfg.QueryTimeoutMs)*time.Millisecond)
	patternRouter := query.NewRouter(registry, exec)

	var generator *nlsql.Generator
	if cfg.AnthropicAPIKey != "" {
		client := llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicBaseURL, time.Duration(cfg.LLMTimeoutSec)*time.Second)
		generator = nlsql.NewGenerator(client, redisCache, sqlVal, audit, time.Duration(cfg.SQLCacheTTLs)*time.Second)
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY not set - natural language SQL disabled")
	}

	resolverCfg := resolver.Config{
		Router:    patternRouter,
		Runner:    exec,
		Players:   db,
		Cache:     redisCache,
		Valuation: valuation.NewModel(),
		Audit:     audit,
	}
	if generator != nil {
		resolverCfg.Generator = generator
	}
	if esSvc != nil {
		resolverCfg.Searcher = esSvc
	}
	res := resolver.New(resolverCfg)

	log.Info().
		Bool("llm_enabled", generator != nil).
		Bool("elasticsearch_enabled", esSvc != nil).
		Bool("auth_enabled", cfg.EnableAuth && len(cfg.APIKeys) > 0).
		Bool("audit_logging", cfg.EnableAuditLogging).
		Msg("service configuration")
	if cfg.EnableAuth && len(cfg.APIKeys) == 0 {
		log.Warn().Msg("WARNING: auth enabled but no API keys configured - all API requests will be rejected")
	}

	// ─── Handlers ───────────────────────────────────────────────────────────────
	var esPinger handler.Pinger
	if esSvc != nil {
		esPinger = esSvc
	}
	healthH := handler.NewHealthHandler(db, redisCache, esPinger)
	askH := handler.NewAskHandler(res)
	queryH := handler.NewQueryHandler(exec, sqlVal, audit)
	playersH := handler.NewPlayersHandler(db, valuation.NewModel(), redisCache)
	webhookH := handler.NewWebhookHandler(res, webhookTimeout)

	// ─── Router ─────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	// Public routes
	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)
	r.Post("/webhook/whatsapp", webhookH.Receive)

	// Auth + rate limiting for API routes
	apiMiddleware := []func(http.Handler) http.Handler{
		middleware.RateLimit(cfg.RateLimitPerMinute),
	}
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		apiMiddleware = append(apiMiddleware, middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
	}

	r.Group(func(r chi.Router) {
		for _, m := range apiMiddleware {
			r.Use(m)
		}

		r.Route(cfg.APIPrefix, func(r chi.Router) {
			r.Post("/ask", askH.Ask)
			r.Post("/query", queryH.Execute)

			r.Route("/players", func(r chi.Router) {
				r.Get("/popular", playersH.Popular)
				r.Get("/{name}", playersH.Get)
				r.Get("/{name}/valuation", playersH.Valuation)
			})
		})
	})

	return r, nil
}
