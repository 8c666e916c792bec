// Package resolver orchestrates the resolution pipeline: intent
// classification, then either a dedicated intent handler or the layered
// query chain (pattern router, generated SQL, semantic search), ending
// in a fixed guidance message when every strategy fails.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/stumpsai/stumpsai/internal/intent"
	"github.com/stumpsai/stumpsai/internal/nlsql"
	"github.com/stumpsai/stumpsai/internal/query"
	"github.com/stumpsai/stumpsai/internal/respond"
	"github.com/stumpsai/stumpsai/internal/security"
	"github.com/stumpsai/stumpsai/internal/semantic"
	"github.com/stumpsai/stumpsai/internal/store"
	"github.com/stumpsai/stumpsai/internal/valuation"
)

// Resolution sources, reported to callers and the audit log.
const (
	SourcePattern    = "pattern"
	SourceLLM        = "llm"
	SourceLLMCache   = "llm_cache"
	SourceSemantic   = "semantic"
	SourceProfile    = "profile"
	SourceValuation  = "valuation"
	SourceComparison = "comparison"
	SourceGuidance   = "guidance"
)

// profileTTL bounds how long a fetched player profile is cached.
const profileTTL = 2 * time.Hour

// Resolution is the outcome of processing one message.
type Resolution struct {
	Intent  intent.Intent    `json:"intent"`
	Source  string           `json:"source"`
	Success bool             `json:"success"`
	Answer  string           `json:"answer"`
	Result  *query.Result    `json:"result,omitempty"`
	Matches []semantic.Match `json:"matches,omitempty"`
}

// PatternRouter matches messages against fixed query templates.
type PatternRouter interface {
	Match(message string) (query.TemplateID, bool)
	Execute(ctx context.Context, id query.TemplateID) query.Result
}

// SQLGenerator turns a message into validated SQL.
type SQLGenerator interface {
	Generate(ctx context.Context, message string) (nlsql.GeneratedQuery, error)
}

// QueryRunner executes validated SQL with a row cap.
type QueryRunner interface {
	Run(ctx context.Context, sql string, limit int) query.Result
}

// PlayerFinder looks up a player profile by approximate name.
type PlayerFinder interface {
	FindPlayer(ctx context.Context, name string) (*store.Player, error)
}

// ProfileCache is the subset of the cache used by the resolver.
type ProfileCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) bool
	IncrementSearch(ctx context.Context, playerName string) int64
}

// Config carries the resolver's dependencies. Generator and Searcher
// may be nil; the chain skips the corresponding stage.
type Config struct {
	Router    PatternRouter
	Generator SQLGenerator
	Runner    QueryRunner
	Searcher  semantic.Searcher
	Players   PlayerFinder
	Cache     ProfileCache
	Valuation *valuation.Model
	Audit     *security.AuditLogger
}

type Resolver struct {
	cfg   Config
	group singleflight.Group
}

func New(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve classifies the message and dispatches to the matching
// handler. It always returns a user-presentable Resolution; the only
// terminal failure is the guidance message.
func (r *Resolver) Resolve(ctx context.Context, message string) Resolution {
	start := time.Now()
	in := intent.Classify(message)
	log.Debug().Str("intent", string(in)).Msg("message classified")

	var res Resolution
	switch in {
	case intent.PlayerStats:
		res = r.resolvePlayerStats(ctx, message)
	case intent.Valuation:
		res = r.resolveValuation(ctx, message)
	case intent.Comparison:
		res = r.resolveComparison(ctx, message)
	case intent.HiddenGems:
		res = r.resolveHiddenGems(ctx, message)
	default:
		res = r.resolveQuery(ctx, message)
	}
	res.Intent = in

	r.cfg.Audit.LogResolution(message, string(in), res.Source, res.Success, time.Since(start).Milliseconds())
	return res
}

// resolveQuery runs the layered chain for ranking and general queries:
// pattern template, then generated SQL, then semantic search, then the
// fixed guidance message. Each stage falls through on failure without
// retrying.
func (r *Resolver) resolveQuery(ctx context.Context, message string) Resolution {
	if id, ok := r.cfg.Router.Match(message); ok {
		result := r.cfg.Router.Execute(ctx, id)
		if result.Success {
			return Resolution{
				Source:  SourcePattern,
				Success: true,
				Answer:  respond.QueryResult(result, message),
				Result:  &result,
			}
		}
		log.Warn().Str("template", string(id)).Str("error", result.Err).Msg("pattern query failed")
	}

	if r.cfg.Generator != nil {
		gen, err := r.cfg.Generator.Generate(ctx, message)
		if err != nil {
			log.Warn().Err(err).Msg("query generation failed")
		} else {
			result := r.cfg.Runner.Run(ctx, gen.SQL, query.MaxRows)
			if result.Success {
				source := SourceLLM
				if gen.Cached {
					source = SourceLLMCache
				}
				return Resolution{
					Source:  source,
					Success: true,
					Answer:  respond.QueryResult(result, message),
					Result:  &result,
				}
			}
			log.Warn().Str("error", result.Err).Msg("generated query failed")
		}
	}

	if r.cfg.Searcher != nil {
		matches, err := r.cfg.Searcher.Search(ctx, message, 5)
		if err != nil {
			log.Warn().Err(err).Msg("semantic fallback failed")
		} else if len(matches) > 0 {
			return Resolution{
				Source:  SourceSemantic,
				Success: true,
				Answer:  respond.SimilarPlayers(matches),
				Matches: matches,
			}
		}
	}

	return Resolution{Source: SourceGuidance, Answer: respond.Guidance}
}

func (r *Resolver) resolvePlayerStats(ctx context.Context, message string) Resolution {
	name := ExtractPlayerName(message)
	if name == "" {
		return Resolution{
			Source: SourceProfile,
			Answer: "Please specify a player name.\n\nExample: Show me Virat Kohli stats",
		}
	}

	r.cfg.Cache.IncrementSearch(ctx, name)

	p, err := r.profile(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrPlayerNotFound) {
			return Resolution{
				Source: SourceProfile,
				Answer: respond.DidYouMean(name, r.suggest(ctx, name)),
			}
		}
		log.Error().Err(err).Str("player", name).Msg("player lookup failed")
		return Resolution{
			Source: SourceProfile,
			Answer: "Sorry, something went wrong looking up that player.",
		}
	}

	return Resolution{Source: SourceProfile, Success: true, Answer: respond.PlayerStats(p)}
}

func (r *Resolver) resolveValuation(ctx context.Context, message string) Resolution {
	name := ExtractPlayerName(message)
	if name == "" {
		return Resolution{
			Source: SourceValuation,
			Answer: "Please specify a player name.\n\nExample: What's Virat Kohli's auction value?",
		}
	}

	p, err := r.profile(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrPlayerNotFound) {
			return Resolution{Source: SourceValuation, Answer: respond.DidYouMean(name, r.suggest(ctx, name))}
		}
		log.Error().Err(err).Str("player", name).Msg("player lookup failed")
		return Resolution{Source: SourceValuation, Answer: "Unable to calculate a valuation for this player."}
	}

	est := r.cfg.Valuation.Valuate(p)
	return Resolution{Source: SourceValuation, Success: true, Answer: respond.Valuation(est)}
}

func (r *Resolver) resolveComparison(ctx context.Context, message string) Resolution {
	names := ExtractPlayerNames(message)
	if len(names) < 2 {
		return Resolution{
			Source: SourceComparison,
			Answer: "Please specify at least 2 players to compare.\n\nExample: Compare Virat Kohli and Rohit Sharma",
		}
	}

	var players []*store.Player
	for _, name := range names {
		p, err := r.profile(ctx, name)
		if err != nil {
			log.Warn().Err(err).Str("player", name).Msg("comparison lookup skipped")
			continue
		}
		players = append(players, p)
	}
	if len(players) < 2 {
		return Resolution{Source: SourceComparison, Answer: "Could not find enough players to compare."}
	}

	estimates := r.cfg.Valuation.Compare(players)
	return Resolution{Source: SourceComparison, Success: true, Answer: respond.Comparison(estimates)}
}

func (r *Resolver) resolveHiddenGems(ctx context.Context, message string) Resolution {
	role := "player"
	lower := strings.ToLower(message)
	for _, candidate := range []string{"batsman", "bowler", "all-rounder", "wicket-keeper"} {
		if strings.Contains(lower, candidate) {
			role = candidate
			break
		}
	}

	if r.cfg.Searcher == nil {
		return Resolution{Source: SourceSemantic, Answer: "No hidden gems found at the moment."}
	}
	matches, err := r.cfg.Searcher.Search(ctx, "underrated "+role+" good performance low cost", 5)
	if err != nil || len(matches) == 0 {
		if err != nil {
			log.Warn().Err(err).Msg("hidden gems search failed")
		}
		return Resolution{Source: SourceSemantic, Answer: "No hidden gems found at the moment."}
	}

	return Resolution{
		Source:  SourceSemantic,
		Success: true,
		Answer:  respond.SimilarPlayers(matches),
		Matches: matches,
	}
}

// profile fetches a player through the cache, collapsing concurrent
// fetches of the same name into one store round trip.
func (r *Resolver) profile(ctx context.Context, name string) (*store.Player, error) {
	key := "player:" + strings.ToLower(strings.TrimSpace(name))

	if raw, ok := r.cfg.Cache.Get(ctx, key); ok {
		var p store.Player
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return &p, nil
		}
		log.Warn().Str("key", key).Msg("discarding undecodable cached profile")
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		p, err := r.cfg.Players.FindPlayer(ctx, name)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(p); err == nil {
			r.cfg.Cache.Set(ctx, key, string(data), profileTTL)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*store.Player), nil
}

// suggest returns up to three semantically similar names for a missed
// lookup. Errors degrade to no suggestions.
func (r *Resolver) suggest(ctx context.Context, name string) []semantic.Match {
	if r.cfg.Searcher == nil {
		return nil
	}
	matches, err := r.cfg.Searcher.Search(ctx, name, 3)
	if err != nil {
		log.Warn().Err(err).Msg("name suggestion search failed")
		return nil
	}
	return matches
}
