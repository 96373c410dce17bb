package server

import "github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"

// ErrorResponse represents a standardized error response format
type ErrorResponse struct {
	Error   string `json:"error"`             // Human-readable error message
	Code    int    `json:"code"`              // HTTP status code
	Details any    `json:"details,omitempty"` // Additional error details (dev mode only)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	OK bool `json:"ok"` // Service health status
}

// ChatRequest is the inbound chat payload. Action "usage_check" returns the
// caller's remaining quota without invoking the pipeline.
type ChatRequest struct {
	Messages  []models.ChatMessage `json:"messages"`
	SessionID string               `json:"session_id,omitempty"`
	Action    string               `json:"action,omitempty"`
}

// UsageResponse answers a usage_check action. Remaining is -1 for admins.
type UsageResponse struct {
	Remaining int  `json:"remaining"`
	IsAdmin   bool `json:"is_admin"`
}
