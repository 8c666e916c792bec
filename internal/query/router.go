package query

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// matchRule selects a template when the message contains at least one
// word from every group. Rules are evaluated in order; first match wins.
type matchRule struct {
	id     TemplateID
	groups [][]string
}

var matchRules = []matchRule{
	{TemplateTopBatsmen, [][]string{{"top", "best"}, {"batsmen", "batsman", "runs"}}},
	{TemplateTopBowlers, [][]string{{"top", "best"}, {"bowlers", "bowler", "wickets"}}},
	{TemplateBestStrikeRate, [][]string{{"strike"}, {"rate"}}},
	{TemplateBestEconomy, [][]string{{"economy"}}},
	{TemplateAllRounders, [][]string{{"all"}, {"round"}}},
	{TemplateListPlayers, [][]string{{"list", "show all", "all players"}}},
}

// Router maps recognized phrasings to precompiled templates and runs
// them without involving the language model.
type Router struct {
	registry *Registry
	exec     *Executor
}

func NewRouter(registry *Registry, exec *Executor) *Router {
	return &Router{registry: registry, exec: exec}
}

// Match returns the first template whose rule the message satisfies.
// Deterministic: the same message always yields the same TemplateID.
func (r *Router) Match(message string) (TemplateID, bool) {
	lower := strings.ToLower(message)
	for _, rule := range matchRules {
		if matchesAllGroups(lower, rule.groups) {
			return rule.id, true
		}
	}
	return "", false
}

func matchesAllGroups(lower string, groups [][]string) bool {
	for _, group := range groups {
		any := false
		for _, word := range group {
			if strings.Contains(lower, word) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

// Execute runs the template for id. Execution errors come back as a
// failed Result, never as a propagated error.
func (r *Router) Execute(ctx context.Context, id TemplateID) Result {
	t, ok := r.registry.Get(id)
	if !ok {
		return Fail("", "unknown template: "+string(id))
	}
	log.Debug().Str("template", string(id)).Msg("executing fixed template")
	return r.exec.Run(ctx, t.SQL, t.Limit)
}
