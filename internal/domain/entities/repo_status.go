package entities

import (
	"net/http"
)

// RepoStatus classifies the outcome of a repository reachability probe.
type RepoStatus string

const (
	StatusReachable         RepoStatus = "Reachable"
	StatusUnreachable       RepoStatus = "Unreachable"
	StatusPrivateRepo       RepoStatus = "PrivateRepo"
	StatusRateLimitExceeded RepoStatus = "RateLimitExceeded"
	StatusResourceNotFound  RepoStatus = "ResourceNotFound"
	StatusInvalidSelection  RepoStatus = "InvalidSelection"
)

// StatusFromHTTPCode maps an HTTP failure status code to a RepoStatus.
// Any code without a dedicated status collapses to InvalidSelection.
func StatusFromHTTPCode(code int) RepoStatus {
	switch code {
	case http.StatusTooManyRequests:
		return StatusRateLimitExceeded
	case http.StatusForbidden:
		return StatusPrivateRepo
	case http.StatusNotFound:
		return StatusResourceNotFound
	default:
		return StatusInvalidSelection
	}
}
