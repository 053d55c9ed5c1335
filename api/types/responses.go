package types

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// MovieSearchResponse for the search endpoint
type MovieSearchResponse struct {
	BaseResponse
	Movies []Movie `json:"movies"`
	Query  string  `json:"query"`
	Count  int     `json:"count"` // Number of results in this response
}

// ErrorResponse is returned for any non-2xx answer
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Search    map[string]int64 `json:"search,omitempty"` // Search client counters, when available
}

// VersionResponse for the version endpoint
type VersionResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
}
