package respond_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stumpsai/stumpsai/internal/query"
	"github.com/stumpsai/stumpsai/internal/respond"
	"github.com/stumpsai/stumpsai/internal/semantic"
	"github.com/stumpsai/stumpsai/internal/store"
	"github.com/stumpsai/stumpsai/internal/valuation"
)

func TestPlayerStatsIncludesBattingAndBowling(t *testing.T) {
	p := &store.Player{
		Name:    "Ravindra Jadeja",
		Role:    "All-Rounder",
		Country: "India",
		BattingStats: []store.BattingStats{
			{Format: "IPL", Matches: 240, Runs: 2959, Average: 27.1, StrikeRate: 130.6, Fifties: 3},
		},
		BowlingStats: []store.BowlingStats{
			{Format: "IPL", Matches: 240, Wickets: 160, Average: 29.9, Economy: 7.62},
		},
	}

	out := respond.PlayerStats(p)
	for _, want := range []string{"Ravindra Jadeja", "All-Rounder", "IPL Batting:", "Runs: 2959", "IPL Bowling:", "Wickets: 160", "Economy: 7.62"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayerStatsOmitsEmptySections(t *testing.T) {
	p := &store.Player{
		Name: "Test Batter",
		BattingStats: []store.BattingStats{
			{Format: "IPL", Matches: 10, Runs: 300},
		},
	}

	out := respond.PlayerStats(p)
	if strings.Contains(out, "IPL Bowling:") {
		t.Errorf("bowling section rendered for player without IPL bowling:\n%s", out)
	}
	if !strings.Contains(out, "Role: N/A") {
		t.Errorf("missing role should render as N/A:\n%s", out)
	}
}

func TestValuationShowsPriceAndBreakdown(t *testing.T) {
	est := valuation.Estimate{
		PlayerName:       "Virat Kohli",
		Role:             "Batsman",
		EstimatedPriceCr: 15.25,
		Breakdown:        valuation.Breakdown{BattingImpact: 0.9, RoleScarcity: 0.6},
		KeyStats:         map[string]any{"ipl_runs": 7263, "batting_avg": 37.2},
	}

	out := respond.Valuation(est)
	for _, want := range []string{"Virat Kohli", "Rs 15.25 Cr", "Batting: 90.0%", "Scarcity: 60.0%", "Runs: 7263"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestComparisonOrderAndEmpty(t *testing.T) {
	if out := respond.Comparison(nil); !strings.Contains(out, "Could not find") {
		t.Errorf("empty comparison got %q", out)
	}

	out := respond.Comparison([]valuation.Estimate{
		{PlayerName: "Player A", EstimatedPriceCr: 12.0, Role: "Batsman"},
		{PlayerName: "Player B", EstimatedPriceCr: 8.5, Role: "Bowler"},
	})
	ia := strings.Index(out, "Player A")
	ib := strings.Index(out, "Player B")
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("comparison order wrong:\n%s", out)
	}
}

func TestQueryResultCapsDisplayedRows(t *testing.T) {
	rows := make([]map[string]any, 15)
	for i := range rows {
		rows[i] = map[string]any{"name": fmt.Sprintf("Player %d", i), "runs": i * 100}
	}
	res := query.Ok("SELECT 1;", rows, []string{"name", "runs"})

	out := respond.QueryResult(res, "top run scorers")
	if !strings.Contains(out, "...and 5 more results") {
		t.Errorf("expected overflow note:\n%s", out)
	}
	if strings.Contains(out, "Player 10") {
		t.Errorf("rows beyond the display cap were rendered:\n%s", out)
	}
}

func TestQueryResultFailureHidesSQL(t *testing.T) {
	res := query.Fail("SELECT * FROM players WHERE broken", "syntax error")
	out := respond.QueryResult(res, "whatever")
	if strings.Contains(out, "SELECT") || strings.Contains(out, "syntax error") {
		t.Errorf("failure message leaked internals: %q", out)
	}
	if !strings.Contains(out, "rephrasing") {
		t.Errorf("unexpected failure message: %q", out)
	}
}

func TestQueryResultEmpty(t *testing.T) {
	res := query.Ok("SELECT 1;", nil, []string{"name"})
	if out := respond.QueryResult(res, "x"); !strings.Contains(out, "No results") {
		t.Errorf("got %q", out)
	}
}

func TestSimilarPlayersAndDidYouMean(t *testing.T) {
	matches := []semantic.Match{
		{Name: "Shubman Gill", Role: "Batsman", Country: "India"},
		{Name: "Shreyas Iyer", Role: "Batsman", Country: "India"},
	}

	out := respond.SimilarPlayers(matches)
	if !strings.Contains(out, "Shubman Gill") || !strings.Contains(out, "Shreyas Iyer") {
		t.Errorf("matches missing:\n%s", out)
	}

	dym := respond.DidYouMean("Shubman Gil", matches)
	if !strings.Contains(dym, "Did you mean") || !strings.Contains(dym, "Shubman Gill") {
		t.Errorf("suggestion missing:\n%s", dym)
	}
	if out := respond.DidYouMean("Nobody", nil); !strings.Contains(out, "not found in database") {
		t.Errorf("got %q", out)
	}
}

func TestGuidanceListsExamples(t *testing.T) {
	for _, want := range []string{"Virat Kohli stats", "auction value", "Top 5 batsmen"} {
		if !strings.Contains(respond.Guidance, want) {
			t.Errorf("guidance missing %q", want)
		}
	}
}
