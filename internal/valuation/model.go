// Package valuation estimates auction prices from IPL performance.
package valuation

import (
	"math"
	"sort"

	"github.com/stumpsai/stumpsai/internal/store"
)

// Base prices by role, in INR crores.
var basePrices = map[string]float64{
	"Batsman":       2.0,
	"Bowler":        2.0,
	"All-Rounder":   3.0,
	"Wicket-Keeper": 2.5,
}

// Component weights; sum to 1.0.
const (
	weightBatting       = 0.35
	weightBowling       = 0.35
	weightRecentForm    = 0.15
	weightScarcity      = 0.10
	weightInternational = 0.05
)

// Hard ceiling on any estimate, in crores.
const maxPriceCr = 20.0

// Breakdown carries the per-component scores behind an estimate.
type Breakdown struct {
	BattingImpact       float64 `json:"batting_impact"`
	BowlingImpact       float64 `json:"bowling_impact"`
	RecentForm          float64 `json:"recent_form"`
	RoleScarcity        float64 `json:"role_scarcity"`
	InternationalStatus float64 `json:"international_status"`
	TotalScore          float64 `json:"total_score"`
}

// Estimate is the valuation result for one player.
type Estimate struct {
	PlayerID         int            `json:"player_id"`
	PlayerName       string         `json:"player_name"`
	Role             string         `json:"role"`
	EstimatedPriceCr float64        `json:"estimated_price_cr"`
	Breakdown        Breakdown      `json:"breakdown"`
	KeyStats         map[string]any `json:"key_stats"`
}

// Model is a deterministic scoring model; no external dependencies.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

// Valuate scores a player from their IPL stats.
func (m *Model) Valuate(p *store.Player) Estimate {
	batting := p.IPLBatting()
	bowling := p.IPLBowling()

	b := Breakdown{
		BattingImpact:       battingImpact(batting),
		BowlingImpact:       bowlingImpact(bowling),
		RecentForm:          0.5, // placeholder until per-match history is ingested
		RoleScarcity:        roleScarcity(p.Role),
		InternationalStatus: internationalStatus(p),
	}
	b.TotalScore = b.BattingImpact*weightBatting +
		b.BowlingImpact*weightBowling +
		b.RecentForm*weightRecentForm +
		b.RoleScarcity*weightScarcity +
		b.InternationalStatus*weightInternational

	base, ok := basePrices[p.Role]
	if !ok {
		base = 2.0
	}
	price := math.Min(base*(1+b.TotalScore), maxPriceCr)

	return Estimate{
		PlayerID:         p.ID,
		PlayerName:       p.Name,
		Role:             p.Role,
		EstimatedPriceCr: round2(price),
		Breakdown:        roundBreakdown(b),
		KeyStats:         keyStats(batting, bowling),
	}
}

// Compare valuates several players and orders them by estimated price,
// highest first.
func (m *Model) Compare(players []*store.Player) []Estimate {
	estimates := make([]Estimate, 0, len(players))
	for _, p := range players {
		estimates = append(estimates, m.Valuate(p))
	}
	sort.Slice(estimates, func(i, j int) bool {
		return estimates[i].EstimatedPriceCr > estimates[j].EstimatedPriceCr
	})
	return estimates
}

func battingImpact(s *store.BattingStats) float64 {
	if s == nil || s.Matches < 5 {
		return 0.0
	}

	runsScore := math.Min(float64(s.Runs)/5000, 1.0)
	avgScore := math.Min(s.Average/50, 1.0)

	srScore := 0.0
	if s.StrikeRate > 100 {
		srScore = math.Min((s.StrikeRate-100)/100, 1.0)
	}

	boundaries := float64(s.Fours + s.Sixes*2)
	boundaryScore := math.Min(boundaries/1000, 1.0)

	return runsScore*0.4 + avgScore*0.25 + srScore*0.25 + boundaryScore*0.10
}

func bowlingImpact(s *store.BowlingStats) float64 {
	if s == nil || s.Matches < 5 {
		return 0.0
	}

	wicketsScore := math.Min(float64(s.Wickets)/200, 1.0)

	economyScore := 0.0
	if s.Economy > 0 {
		economyScore = math.Max(1-(s.Economy-6)/4, 0.0)
	}

	fifersScore := math.Min(float64(s.FiveWicketHaul)/5, 1.0)

	return wicketsScore*0.5 + economyScore*0.4 + fifersScore*0.1
}

func roleScarcity(role string) float64 {
	switch role {
	case "All-Rounder":
		return 1.0
	case "Wicket-Keeper":
		return 0.8
	case "Bowler":
		return 0.5
	case "Batsman":
		return 0.3
	default:
		return 0.5
	}
}

func internationalStatus(p *store.Player) float64 {
	score := 0.0
	for _, s := range p.BattingStats {
		if s.Matches == 0 {
			continue
		}
		switch s.Format {
		case "TEST":
			score += 0.4
		case "ODI":
			score += 0.3
		case "T20":
			score += 0.3
		}
	}
	return math.Min(score, 1.0)
}

func keyStats(batting *store.BattingStats, bowling *store.BowlingStats) map[string]any {
	stats := make(map[string]any)
	if batting != nil && batting.Matches > 0 {
		stats["ipl_matches"] = batting.Matches
		stats["ipl_runs"] = batting.Runs
		stats["batting_avg"] = batting.Average
		stats["strike_rate"] = batting.StrikeRate
		stats["fifties"] = batting.Fifties
		stats["hundreds"] = batting.Hundreds
	}
	if bowling != nil && bowling.Matches > 0 {
		stats["ipl_wickets"] = bowling.Wickets
		stats["bowling_avg"] = bowling.Average
		stats["economy"] = bowling.Economy
		stats["five_wickets"] = bowling.FiveWicketHaul
	}
	return stats
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func roundBreakdown(b Breakdown) Breakdown {
	return Breakdown{
		BattingImpact:       round3(b.BattingImpact),
		BowlingImpact:       round3(b.BowlingImpact),
		RecentForm:          round3(b.RecentForm),
		RoleScarcity:        round3(b.RoleScarcity),
		InternationalStatus: round3(b.InternationalStatus),
		TotalScore:          round3(b.TotalScore),
	}
}
