package query

import (
	"fmt"

	"github.com/stumpsai/stumpsai/internal/security"
)

// TemplateID names a fixed, pre-vetted query.
type TemplateID string

const (
	TemplateTopBatsmen     TemplateID = "top_batsmen"
	TemplateTopBowlers     TemplateID = "top_bowlers"
	TemplateBestStrikeRate TemplateID = "best_strike_rate"
	TemplateBestEconomy    TemplateID = "best_economy"
	TemplateAllRounders    TemplateID = "all_rounders"
	TemplateListPlayers    TemplateID = "list_players"
)

// Template is a parameter-free read-only query defined at startup.
type Template struct {
	ID    TemplateID
	SQL   string
	Limit int
}

var templateDefs = []Template{
	{
		ID: TemplateTopBatsmen,
		SQL: `SELECT p.name, b.runs, b.average, b.strike_rate, b.hundreds, b.fifties
FROM players p
INNER JOIN batting_stats b ON p.id = b.player_id
WHERE b.format = 'IPL'
ORDER BY b.runs DESC
LIMIT 5;`,
		Limit: 5,
	},
	{
		ID: TemplateTopBowlers,
		SQL: `SELECT p.name, bw.wickets, bw.average, bw.economy
FROM players p
INNER JOIN bowling_stats bw ON p.id = bw.player_id
WHERE bw.format = 'IPL'
ORDER BY bw.wickets DESC
LIMIT 5;`,
		Limit: 5,
	},
	{
		ID: TemplateBestStrikeRate,
		SQL: `SELECT p.name, b.strike_rate, b.runs, b.average
FROM players p
INNER JOIN batting_stats b ON p.id = b.player_id
WHERE b.format = 'IPL' AND b.matches > 10
ORDER BY b.strike_rate DESC
LIMIT 5;`,
		Limit: 5,
	},
	{
		ID: TemplateBestEconomy,
		SQL: `SELECT p.name, bw.economy, bw.wickets, bw.average
FROM players p
INNER JOIN bowling_stats bw ON p.id = bw.player_id
WHERE bw.format = 'IPL' AND bw.wickets > 10
ORDER BY bw.economy ASC
LIMIT 5;`,
		Limit: 5,
	},
	{
		ID: TemplateAllRounders,
		SQL: `SELECT p.name, p.role, b.runs, bw.wickets
FROM players p
LEFT JOIN batting_stats b ON p.id = b.player_id AND b.format = 'IPL'
LEFT JOIN bowling_stats bw ON p.id = bw.player_id AND bw.format = 'IPL'
WHERE p.role = 'All-Rounder'
LIMIT 10;`,
		Limit: 10,
	},
	{
		ID: TemplateListPlayers,
		SQL: `SELECT name, role, country
FROM players
ORDER BY name
LIMIT 20;`,
		Limit: 20,
	},
}

// Registry holds the immutable template set. Every template's SQL is
// checked against the safety validator once here, so read-only shape is
// enforced at registration rather than per execution.
type Registry struct {
	templates map[TemplateID]Template
}

func NewRegistry(validator *security.SQLValidator) (*Registry, error) {
	r := &Registry{templates: make(map[TemplateID]Template, len(templateDefs))}
	for _, t := range templateDefs {
		if msg := validator.Validate(t.SQL); msg != "" {
			return nil, fmt.Errorf("template %s failed safety validation: %s", t.ID, msg)
		}
		if t.Limit < 5 || t.Limit > 20 {
			return nil, fmt.Errorf("template %s row limit %d out of range", t.ID, t.Limit)
		}
		r.templates[t.ID] = t
	}
	return r, nil
}

// Get returns the template for id.
func (r *Registry) Get(id TemplateID) (Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}
