package dto

import "time"

// Envelope wraps data-read responses.
type Envelope struct {
	Success bool   `json:"success"`
	Source  string `json:"source"`
	Data    any    `json:"data"`
}

// Message is the body of error and informational responses.
type Message struct {
	Message string `json:"message"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// DBStatusResponse reports primary store reachability.
type DBStatusResponse struct {
	Connected bool      `json:"connected"`
	Mode      string    `json:"mode"`
	Attempts  int       `json:"attempts"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}
