package model

import "time"

// RequestLog captures one AI gateway call: which provider and operation ran,
// how it ended, and how big the payloads were. Prompt and response bodies are
// deliberately not stored, only their sizes.
type RequestLog struct {
	ID            string    `db:"id" json:"id"`
	Provider      string    `db:"provider" json:"provider"`
	Operation     string    `db:"operation" json:"operation"`
	Model         string    `db:"model" json:"model"`
	StatusCode    int       `db:"status_code" json:"status_code"`
	ErrorCode     string    `db:"error_code" json:"error_code,omitempty"`
	Degraded      bool      `db:"degraded" json:"degraded"`
	PromptChars   int       `db:"prompt_chars" json:"prompt_chars"`
	ResponseChars int       `db:"response_chars" json:"response_chars"`
	LatencyMS     int64     `db:"latency_ms" json:"latency_ms"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// DailyStats represents aggregated usage data for a specific day.
type DailyStats struct {
	Date           string  `db:"date" json:"date"`
	TotalRequests  int     `db:"total_requests" json:"total_requests"`
	FailedRequests int     `db:"failed_requests" json:"failed_requests"`
	DegradedCount  int     `db:"degraded_count" json:"degraded_count"`
	AverageLatency float64 `db:"avg_latency" json:"avg_latency"`
}
