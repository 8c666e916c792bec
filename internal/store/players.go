package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrPlayerNotFound is returned when no player matches a name lookup.
var ErrPlayerNotFound = errors.New("player not found")

// Player is one row of the players table with its per-format stats.
type Player struct {
	ID           int            `json:"id"`
	CricbuzzID   int            `json:"cricbuzz_id,omitempty"`
	Name         string         `json:"name"`
	Country      string         `json:"country"`
	Role         string         `json:"role"`
	BattingStyle string         `json:"batting_style,omitempty"`
	BowlingStyle string         `json:"bowling_style,omitempty"`
	BattingStats []BattingStats `json:"batting_stats,omitempty"`
	BowlingStats []BowlingStats `json:"bowling_stats,omitempty"`
}

type BattingStats struct {
	Format     string  `json:"format"`
	Matches    int     `json:"matches"`
	Innings    int     `json:"innings"`
	Runs       int     `json:"runs"`
	Highest    string  `json:"highest,omitempty"`
	Average    float64 `json:"average"`
	StrikeRate float64 `json:"strike_rate"`
	Fifties    int     `json:"fifties"`
	Hundreds   int     `json:"hundreds"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
}

type BowlingStats struct {
	Format         string  `json:"format"`
	Matches        int     `json:"matches"`
	Innings        int     `json:"innings"`
	Wickets        int     `json:"wickets"`
	Average        float64 `json:"average"`
	Economy        float64 `json:"economy"`
	StrikeRate     float64 `json:"strike_rate"`
	FiveWicketHaul int     `json:"five_wicket_haul"`
	TenWicketHaul  int     `json:"ten_wicket_haul"`
}

// IPLBatting returns the player's IPL batting block, if any.
func (p *Player) IPLBatting() *BattingStats {
	for i := range p.BattingStats {
		if p.BattingStats[i].Format == "IPL" {
			return &p.BattingStats[i]
		}
	}
	return nil
}

// IPLBowling returns the player's IPL bowling block, if any.
func (p *Player) IPLBowling() *BowlingStats {
	for i := range p.BowlingStats {
		if p.BowlingStats[i].Format == "IPL" {
			return &p.BowlingStats[i]
		}
	}
	return nil
}

// FindPlayer looks up a player by case-insensitive partial name match
// and loads the per-format stats. Name matching is deliberately loose:
// "kohli" finds "Virat Kohli".
func (db *DB) FindPlayer(ctx context.Context, name string) (*Player, error) {
	const playerSQL = `SELECT id, cricbuzz_id, name, COALESCE(country, ''), COALESCE(role, ''),
		COALESCE(batting_style, ''), COALESCE(bowling_style, '')
	FROM players
	WHERE name ILIKE '%' || $1 || '%'
	ORDER BY name
	LIMIT 1`

	var p Player
	err := db.pool.QueryRow(ctx, playerSQL, name).Scan(
		&p.ID, &p.CricbuzzID, &p.Name, &p.Country, &p.Role, &p.BattingStyle, &p.BowlingStyle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("find player: %w", err)
	}

	if err := db.loadBattingStats(ctx, &p); err != nil {
		return nil, err
	}
	if err := db.loadBowlingStats(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *DB) loadBattingStats(ctx context.Context, p *Player) error {
	const sql = `SELECT format, matches, innings, runs, COALESCE(highest, ''), average,
		strike_rate, fifties, hundreds, fours, sixes
	FROM batting_stats WHERE player_id = $1 ORDER BY format`

	rows, err := db.pool.Query(ctx, sql, p.ID)
	if err != nil {
		return fmt.Errorf("load batting stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s BattingStats
		if err := rows.Scan(&s.Format, &s.Matches, &s.Innings, &s.Runs, &s.Highest,
			&s.Average, &s.StrikeRate, &s.Fifties, &s.Hundreds, &s.Fours, &s.Sixes); err != nil {
			return fmt.Errorf("scan batting stats: %w", err)
		}
		p.BattingStats = append(p.BattingStats, s)
	}
	return rows.Err()
}

func (db *DB) loadBowlingStats(ctx context.Context, p *Player) error {
	const sql = `SELECT format, matches, innings, wickets, average, economy,
		strike_rate, five_wicket_haul, ten_wicket_haul
	FROM bowling_stats WHERE player_id = $1 ORDER BY format`

	rows, err := db.pool.Query(ctx, sql, p.ID)
	if err != nil {
		return fmt.Errorf("load bowling stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s BowlingStats
		if err := rows.Scan(&s.Format, &s.Matches, &s.Innings, &s.Wickets, &s.Average,
			&s.Economy, &s.StrikeRate, &s.FiveWicketHaul, &s.TenWicketHaul); err != nil {
			return fmt.Errorf("scan bowling stats: %w", err)
		}
		p.BowlingStats = append(p.BowlingStats, s)
	}
	return rows.Err()
}
