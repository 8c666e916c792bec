package models

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// QueryResponse is returned by POST /api/v1/query
type QueryResponse struct {
	Status          string           `json:"status"`
	Data            []map[string]any `json:"data"`
	Columns         []string         `json:"columns"`
	RowCount        int              `json:"row_count"`
	ExecutionTimeMs int64            `json:"execution_time_ms"`
}

// AskResponse is returned by POST /api/v1/ask
type AskResponse struct {
	Status   string         `json:"status"`
	Message  string         `json:"message"`
	Intent   string         `json:"intent"`
	Answer   string         `json:"answer"`
	Source   string         `json:"source"`
	Result   *QueryResponse `json:"result,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PopularPlayer is one entry of GET /api/v1/players/popular
type PopularPlayer struct {
	Name     string `json:"name"`
	Searches int64  `json:"searches"`
}
