package api

import (
	"encoding/json"
	"net/http"

	"github.com/hashicorp/go-hclog"
)

// encodeLog reports response-encoding failures. The status line is
// already written by then, so logging is all that is left to do.
var encodeLog = hclog.L().Named("api")

// ErrorResponse is the standard error JSON body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSON encodes data as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		encodeLog.Warn("encoding response body failed", "status", status, "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: status})
}
