package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// CreateScanRequest is the JSON body for POST /api/v1/scans.
type CreateScanRequest struct {
	Root        string   `json:"root"`
	Concurrency int      `json:"concurrency"`
	MaxFileSize int64    `json:"max_file_size"`
	IgnoreRules []string `json:"ignore_rules"`
}

// decodeCreateScanRequest reads and validates the request body.
func decodeCreateScanRequest(r *http.Request) (*CreateScanRequest, error) {
	var req CreateScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if req.Root == "" {
		return nil, fmt.Errorf("root is required")
	}
	if req.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must be non-negative")
	}
	if req.MaxFileSize < 0 {
		return nil, fmt.Errorf("max_file_size must be non-negative")
	}

	return &req, nil
}
