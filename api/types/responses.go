package types

import "github.com/killallgit/podcast-catalog/internal/views"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`            // One of the Status constants above
	Message string `json:"message,omitempty"` // Human-readable message
}

// PodcastsResponse is the filtered and sorted catalog
type PodcastsResponse struct {
	BaseResponse
	Podcasts []views.CardView `json:"podcasts"`
	Genre    string           `json:"genre"`
	Sort     string           `json:"sort"`
	Count    int              `json:"count"`
}

// PodcastResponse is the detail of one podcast
type PodcastResponse struct {
	BaseResponse
	Podcast views.DetailView `json:"podcast"`
}

// GenresResponse lists the genre table
type GenresResponse struct {
	BaseResponse
	Genres []Genre `json:"genres"`
	Count  int     `json:"count"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Error     string         `json:"error,omitempty"`   // Error code
	Details   map[string]any `json:"details,omitempty"` // Additional error details
	RequestID string         `json:"requestId,omitempty"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Timestamp string         `json:"timestamp"`
	Dataset   map[string]any `json:"dataset"`
	Database  map[string]any `json:"database"`
}

// VersionResponse for the version endpoint
type VersionResponse struct {
	BaseResponse
	BuildInfo
}
