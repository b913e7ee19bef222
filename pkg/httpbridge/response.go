package httpbridge

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON body of every non-stream endpoint.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// PostResult is the data of a successful post.
type PostResult struct {
	Name string `json:"name"`
}

// HealthResult is the data of GET /health.
type HealthResult struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// StreamEvent is the data line of a "notification" event.
type StreamEvent struct {
	Name string `json:"name"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	detail := &ErrorDetail{Code: code, Message: http.StatusText(status)}
	if err != nil {
		detail.Message = err.Error()
	}
	writeJSON(w, status, Response{Error: detail})
}
