package valuation_test

import (
	"testing"

	"github.com/stumpsai/stumpsai/internal/store"
	"github.com/stumpsai/stumpsai/internal/valuation"
)

func starBatsman() *store.Player {
	return &store.Player{
		ID:   1,
		Name: "Virat Kohli",
		Role: "Batsman",
		BattingStats: []store.BattingStats{
			{Format: "IPL", Matches: 237, Runs: 7263, Average: 37.2, StrikeRate: 130.0, Fours: 643, Sixes: 234},
			{Format: "TEST", Matches: 113, Runs: 8848},
			{Format: "ODI", Matches: 292, Runs: 13848},
		},
	}
}

func fringePlayer() *store.Player {
	return &store.Player{
		ID:   2,
		Name: "Net Bowler",
		Role: "Bowler",
		BowlingStats: []store.BowlingStats{
			{Format: "IPL", Matches: 3, Wickets: 2, Economy: 9.5},
		},
	}
}

func TestValuateStarBatsman(t *testing.T) {
	m := valuation.NewModel()
	est := m.Valuate(starBatsman())

	if est.EstimatedPriceCr <= 2.0 {
		t.Errorf("star batsman price = %.2f, want above base price", est.EstimatedPriceCr)
	}
	if est.EstimatedPriceCr > 20.0 {
		t.Errorf("price = %.2f, exceeds 20 Cr cap", est.EstimatedPriceCr)
	}
	if est.Breakdown.BattingImpact <= 0 {
		t.Error("expected positive batting impact")
	}
	if est.Breakdown.BowlingImpact != 0 {
		t.Errorf("pure batsman bowling impact = %.3f, want 0", est.Breakdown.BowlingImpact)
	}
	if est.Breakdown.InternationalStatus <= 0 {
		t.Error("international player should score international status")
	}
	if _, ok := est.KeyStats["ipl_runs"]; !ok {
		t.Error("key stats missing ipl_runs")
	}
}

// Fewer than 5 matches contributes no impact; valuation falls back to
// base price adjusted only by form and scarcity.
func TestValuateIgnoresTinySamples(t *testing.T) {
	m := valuation.NewModel()
	est := m.Valuate(fringePlayer())

	if est.Breakdown.BowlingImpact != 0 {
		t.Errorf("bowling impact with 3 matches = %.3f, want 0", est.Breakdown.BowlingImpact)
	}
}

func TestCompareOrdersByPrice(t *testing.T) {
	m := valuation.NewModel()
	estimates := m.Compare([]*store.Player{fringePlayer(), starBatsman()})

	if len(estimates) != 2 {
		t.Fatalf("got %d estimates, want 2", len(estimates))
	}
	if estimates[0].EstimatedPriceCr < estimates[1].EstimatedPriceCr {
		t.Error("compare results not ordered by descending price")
	}
	if estimates[0].PlayerName != "Virat Kohli" {
		t.Errorf("top estimate = %s, want Virat Kohli", estimates[0].PlayerName)
	}
}
