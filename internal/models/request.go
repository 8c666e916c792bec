package models

// AskRequest for POST /api/v1/ask (natural language message)
type AskRequest struct {
	Message   string `json:"message"`
	TimeoutMs int    `json:"timeout_ms"`
}

func (r *AskRequest) SetDefaults() {
	if r.TimeoutMs == 0 {
		r.TimeoutMs = 60000
	}
	if r.TimeoutMs < 1000 {
		r.TimeoutMs = 1000
	}
	if r.TimeoutMs > 120000 {
		r.TimeoutMs = 120000
	}
}

// QueryRequest for POST /api/v1/query (direct SQL)
type QueryRequest struct {
	SQL       string `json:"sql"`
	TimeoutMs int    `json:"timeout_ms"`
}

func (r *QueryRequest) SetDefaults() {
	if r.TimeoutMs == 0 {
		r.TimeoutMs = 10000
	}
	if r.TimeoutMs < 1000 {
		r.TimeoutMs = 1000
	}
	if r.TimeoutMs > 60000 {
		r.TimeoutMs = 60000
	}
}
