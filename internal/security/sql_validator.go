package security

import (
	"strings"
)

// forbiddenKeywords are matched as plain substrings against the
// upper-cased query. Deliberately conservative: a column or value that
// happens to contain one of these words is rejected too — an accepted
// false-positive cost, since generated SQL is untrusted model output.
var forbiddenKeywords = []string{
	"DROP", "DELETE", "TRUNCATE", "ALTER", "CREATE", "INSERT", "UPDATE",
}

// SQLValidator gates every query before it may reach the executor.
type SQLValidator struct{}

func NewSQLValidator() *SQLValidator {
	return &SQLValidator{}
}

// Validate returns an error string if SQL is not a safe read-only
// statement, or empty string if OK.
func (v *SQLValidator) Validate(sql string) string {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return "SQL cannot be empty"
	}

	upperSQL := strings.ToUpper(trimmed)

	for _, kw := range forbiddenKeywords {
		if strings.Contains(upperSQL, kw) {
			return "forbidden keyword detected: " + kw
		}
	}

	if !strings.HasPrefix(upperSQL, "SELECT") {
		return "only SELECT queries are allowed"
	}

	return ""
}

// IsSafe reports whether sql passes all validation rules.
func (v *SQLValidator) IsSafe(sql string) bool {
	return v.Validate(sql) == ""
}
