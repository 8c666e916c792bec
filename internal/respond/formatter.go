// Package respond shapes pipeline results into short human-readable
// text. User-facing output never contains raw SQL, error codes, or
// stack traces.
package respond

import (
	"fmt"
	"strings"

	"github.com/stumpsai/stumpsai/internal/query"
	"github.com/stumpsai/stumpsai/internal/semantic"
	"github.com/stumpsai/stumpsai/internal/store"
	"github.com/stumpsai/stumpsai/internal/valuation"
)

// Guidance is the fixed message returned when every resolution strategy
// has failed. It lists example supported phrasings instead of an error.
const Guidance = `Sorry, I couldn't understand that query. Try:

Show me Virat Kohli stats
What's Rohit Sharma's auction value?
Top 5 batsmen by IPL runs`

// maxDisplayRows bounds how many result rows are rendered.
const maxDisplayRows = 10

// PlayerStats renders a player profile with IPL batting and bowling.
func PlayerStats(p *store.Player) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", p.Name)
	fmt.Fprintf(&sb, "Role: %s\n", orNA(p.Role))
	fmt.Fprintf(&sb, "Country: %s\n", orNA(p.Country))

	if b := p.IPLBatting(); b != nil {
		sb.WriteString("\nIPL Batting:\n")
		fmt.Fprintf(&sb, "- Matches: %d\n", b.Matches)
		fmt.Fprintf(&sb, "- Runs: %d\n", b.Runs)
		fmt.Fprintf(&sb, "- Average: %.2f\n", b.Average)
		fmt.Fprintf(&sb, "- Strike Rate: %.2f\n", b.StrikeRate)
		fmt.Fprintf(&sb, "- 50s/100s: %d/%d\n", b.Fifties, b.Hundreds)
	}
	if bw := p.IPLBowling(); bw != nil && bw.Wickets > 0 {
		sb.WriteString("\nIPL Bowling:\n")
		fmt.Fprintf(&sb, "- Wickets: %d\n", bw.Wickets)
		fmt.Fprintf(&sb, "- Average: %.2f\n", bw.Average)
		fmt.Fprintf(&sb, "- Economy: %.2f\n", bw.Economy)
		fmt.Fprintf(&sb, "- 5W: %d\n", bw.FiveWicketHaul)
	}
	return strings.TrimSpace(sb.String())
}

// Valuation renders an auction estimate with its component breakdown.
func Valuation(est valuation.Estimate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Auction Valuation: %s\n\n", est.PlayerName)
	fmt.Fprintf(&sb, "Estimated Price: Rs %.2f Cr\n\n", est.EstimatedPriceCr)

	sb.WriteString("Impact Breakdown:\n")
	fmt.Fprintf(&sb, "- Batting: %.1f%%\n", est.Breakdown.BattingImpact*100)
	fmt.Fprintf(&sb, "- Bowling: %.1f%%\n", est.Breakdown.BowlingImpact*100)
	fmt.Fprintf(&sb, "- Form: %.1f%%\n", est.Breakdown.RecentForm*100)
	fmt.Fprintf(&sb, "- Scarcity: %.1f%%\n", est.Breakdown.RoleScarcity*100)

	if len(est.KeyStats) > 0 {
		sb.WriteString("\nKey Stats:\n")
		if runs, ok := est.KeyStats["ipl_runs"]; ok {
			fmt.Fprintf(&sb, "- Runs: %v\n", runs)
			fmt.Fprintf(&sb, "- Avg: %v\n", est.KeyStats["batting_avg"])
		}
		if wkts, ok := est.KeyStats["ipl_wickets"]; ok {
			fmt.Fprintf(&sb, "- Wickets: %v\n", wkts)
			fmt.Fprintf(&sb, "- Economy: %v\n", est.KeyStats["economy"])
		}
	}
	return strings.TrimSpace(sb.String())
}

// Comparison renders side-by-side valuations, highest price first.
func Comparison(estimates []valuation.Estimate) string {
	if len(estimates) == 0 {
		return "Could not find enough players to compare."
	}
	var sb strings.Builder
	sb.WriteString("Player Comparison\n\n")
	for i, est := range estimates {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, est.PlayerName)
		fmt.Fprintf(&sb, "   Rs %.2f Cr | %s\n", est.EstimatedPriceCr, orNA(est.Role))

		var parts []string
		if runs, ok := est.KeyStats["ipl_runs"]; ok {
			parts = append(parts, fmt.Sprintf("%v runs", runs))
		}
		if wkts, ok := est.KeyStats["ipl_wickets"]; ok {
			parts = append(parts, fmt.Sprintf("%v wkts", wkts))
		}
		if len(parts) > 0 {
			fmt.Fprintf(&sb, "   %s\n", strings.Join(parts, " | "))
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// QueryResult renders the rows of a successful execution. Failures get
// a generic apology; the offending SQL stays in the logs.
func QueryResult(res query.Result, message string) string {
	if !res.Success {
		return "Sorry, I couldn't process that query. Please try rephrasing."
	}
	if len(res.Rows) == 0 {
		return "No results found for your query."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Results for: %s\n\n", truncate(message, 50))

	for i, row := range res.Rows {
		if i >= maxDisplayRows {
			break
		}
		fmt.Fprintf(&sb, "%d. ", i+1)
		var parts []string
		for _, col := range res.Columns {
			val, ok := row[col]
			if !ok || val == nil {
				continue
			}
			if f, isFloat := val.(float64); isFloat {
				parts = append(parts, fmt.Sprintf("%s: %.2f", col, f))
			} else {
				parts = append(parts, fmt.Sprintf("%s: %v", col, val))
			}
		}
		sb.WriteString(strings.Join(parts, " | "))
		sb.WriteString("\n")
	}

	if len(res.Rows) > maxDisplayRows {
		fmt.Fprintf(&sb, "\n...and %d more results", len(res.Rows)-maxDisplayRows)
	}
	return strings.TrimSpace(sb.String())
}

// SimilarPlayers renders semantic-search hits.
func SimilarPlayers(matches []semantic.Match) string {
	if len(matches) == 0 {
		return "No similar players found."
	}
	var sb strings.Builder
	sb.WriteString("Similar Players:\n\n")
	for i, m := range matches {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, m.Name)
		fmt.Fprintf(&sb, "   %s | %s\n", orNA(m.Role), orNA(m.Country))
	}
	return strings.TrimSpace(sb.String())
}

// DidYouMean renders name suggestions when an exact lookup misses.
func DidYouMean(name string, matches []semantic.Match) string {
	if len(matches) == 0 {
		return fmt.Sprintf("Player '%s' not found in database.", name)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Player '%s' not found.\n\nDid you mean:\n", name)
	for i, m := range matches {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&sb, "- %s\n", m.Name)
	}
	return strings.TrimSpace(sb.String())
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
