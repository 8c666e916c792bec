// Package intent classifies what a user message is asking for.
package intent

import "strings"

// Intent is the closed-set classification of a message.
type Intent string

const (
	PlayerStats  Intent = "player_stats"
	Valuation    Intent = "valuation"
	Comparison   Intent = "comparison"
	HiddenGems   Intent = "hidden_gems"
	Ranking      Intent = "ranking"
	GeneralQuery Intent = "general_query"
)

// intentKeywords are checked in priority order; the first matching set
// wins. Order is significant: "best batsman stats" is player_stats, not
// ranking.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{PlayerStats, []string{"stats", "profile", "about", "tell me"}},
	{Valuation, []string{"price", "value", "worth", "cost", "valuation"}},
	{Comparison, []string{"compare", "vs", "versus", "better"}},
	{HiddenGems, []string{"hidden gem", "underrated", "bargain", "cheap"}},
	{Ranking, []string{"top", "best", "highest", "most", "list"}},
}

// Classify maps a raw message to an Intent. Pure and deterministic:
// case-insensitive substring matching, defaulting to GeneralQuery.
func Classify(message string) Intent {
	lower := strings.ToLower(message)
	for _, entry := range intentKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.intent
			}
		}
	}
	return GeneralQuery
}
