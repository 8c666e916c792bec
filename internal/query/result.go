package query

// Result is the normalized outcome of any query execution. Rows are
// ordered column→value maps; on failure Err carries a description and
// SQL the offending statement for diagnostics. Raw SQL is never shown
// to end users, only logged.
type Result struct {
	Success bool
	Rows    []map[string]any
	Columns []string
	Count   int
	Err     string
	SQL     string
}

// Ok builds a successful result from rows.
func Ok(sql string, rows []map[string]any, columns []string) Result {
	return Result{
		Success: true,
		Rows:    rows,
		Columns: columns,
		Count:   len(rows),
		SQL:     sql,
	}
}

// Fail builds a failed result carrying the error description.
func Fail(sql, errMsg string) Result {
	return Result{Success: false, Err: errMsg, SQL: sql}
}
