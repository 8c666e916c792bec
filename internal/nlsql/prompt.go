package nlsql

// schemaContext describes the three tables the generator may target.
// The alias convention (p, b, bw) and the format='IPL' rule are part of
// the contract with the model; the worked examples pin down the
// expected join shapes.
const schemaContext = `Database Schema:

Table: players
- id (int, primary key)
- cricbuzz_id (int, unique)
- name (varchar)
- country (varchar)
- role (varchar) - Values: 'Batsman', 'Bowler', 'All-Rounder', 'Wicket-Keeper'
- batting_style (varchar)
- bowling_style (varchar)

Table: batting_stats
- id (int, primary key)
- player_id (int, foreign key to players.id)
- format (varchar) - Values: 'TEST', 'ODI', 'T20', 'IPL'
- matches (int)
- innings (int)
- runs (int)
- highest (varchar)
- average (float)
- strike_rate (float)
- fifties (int)
- hundreds (int)
- fours (int)
- sixes (int)

Table: bowling_stats
- id (int, primary key)
- player_id (int, foreign key to players.id)
- format (varchar) - Values: 'TEST', 'ODI', 'T20', 'IPL'
- matches (int)
- innings (int)
- wickets (int)
- average (float)
- economy (float)
- strike_rate (float)
- five_wicket_haul (int)
- ten_wicket_haul (int)

IMPORTANT RULES:
1. ALWAYS use table aliases (p for players, b for batting_stats, bw for bowling_stats)
2. ALWAYS specify format = 'IPL' when filtering IPL stats
3. For IPL runs, use: WHERE b.format = 'IPL'
4. Use INNER JOIN when stats are required
5. Use LEFT JOIN when player data is primary
6. Always LIMIT results to 20 or less

Examples:

1. "Top 5 batsmen by IPL runs"
SELECT p.name, b.runs, b.average, b.strike_rate
FROM players p
INNER JOIN batting_stats b ON p.id = b.player_id
WHERE b.format = 'IPL'
ORDER BY b.runs DESC
LIMIT 5;

2. "Best economy bowlers in IPL"
SELECT p.name, bw.economy, bw.wickets
FROM players p
INNER JOIN bowling_stats bw ON p.id = bw.player_id
WHERE bw.format = 'IPL' AND bw.wickets > 10
ORDER BY bw.economy ASC
LIMIT 10;

3. "All-rounders with 1000+ runs and 50+ wickets in IPL"
SELECT p.name, b.runs, bw.wickets
FROM players p
INNER JOIN batting_stats b ON p.id = b.player_id
INNER JOIN bowling_stats bw ON p.id = bw.player_id
WHERE p.role = 'All-Rounder'
AND b.format = 'IPL' AND b.runs > 1000
AND bw.format = 'IPL' AND bw.wickets > 50;

4. "Show all batsmen"
SELECT name, country, batting_style
FROM players
WHERE role = 'Batsman'
LIMIT 20;

5. "Batsmen with strike rate above 130"
SELECT p.name, b.strike_rate, b.runs
FROM players p
INNER JOIN batting_stats b ON p.id = b.player_id
WHERE b.format = 'IPL' AND b.strike_rate > 130
ORDER BY b.strike_rate DESC
LIMIT 20;`

const systemPrompt = `You are a SQL expert. Convert the user's natural language question into a valid PostgreSQL SELECT query.

` + schemaContext + `

CRITICAL RULES:
1. Generate ONLY SELECT queries (no INSERT, UPDATE, DELETE, DROP)
2. Use proper INNER JOIN or LEFT JOIN syntax
3. ALWAYS use table aliases (p, b, bw)
4. For IPL statistics, ALWAYS include: WHERE format = 'IPL'
5. Limit results to maximum 20 rows
6. Use single quotes for string literals
7. Return ONLY the SQL query, no explanations or markdown
8. Do not include any text before or after the SQL query
9. The query must be a single valid SQL statement ending with semicolon`

func buildUserPrompt(message string) string {
	return "User Question: " + message + "\n\nSQL Query:"
}
