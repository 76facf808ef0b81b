package api

import "github.com/kiuyha/portfolio-content/internal/content"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse represents the readiness check response
type ReadinessResponse struct {
	Status string `json:"status"`
	State  string `json:"state"`
}

// VersionResponse represents the version information response
type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// SnapshotResponse is the client-mode state
type SnapshotResponse struct {
	Snapshot  content.Snapshot `json:"snapshot"`
	IsLoading bool             `json:"isLoading"`
	State     string           `json:"state"`
	// Warning is set when the requested language could only be applied with fallback text
	Warning string `json:"warning,omitempty"`
}

// LanguagesResponse lists the supported languages
type LanguagesResponse struct {
	Languages []content.SupportedLanguage `json:"languages"`
}

// PagesResponse lists the generated pages
type PagesResponse struct {
	Pages []string `json:"pages"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}
