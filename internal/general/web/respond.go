// Package web carries the JSON envelope shared by every HTTP handler:
// {"success": bool, "message": ..., "data": ...}.
package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"travel-po/internal/general/logger"
)

// Envelope is the standard API response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Cached  *bool  `json:"cached,omitempty"`
}

// JSON writes any envelope with the given status. Encoding happens into a
// buffer first so the status can still change on failure.
func JSON(ctx context.Context, log *logger.Logger, w http.ResponseWriter, status int, body Envelope) {
	buf, err := json.Marshal(body)
	if err != nil {
		log.Error(ctx, "response_encode_failed", "Failed to encode response", err, nil)
		http.Error(w, `{"success":false,"message":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

// Data writes a success envelope wrapping data.
func Data(ctx context.Context, log *logger.Logger, w http.ResponseWriter, status int, data any) {
	JSON(ctx, log, w, status, Envelope{Success: true, Data: data})
}

// Message writes a success envelope with a message and optional data.
func Message(ctx context.Context, log *logger.Logger, w http.ResponseWriter, status int, msg string, data any) {
	JSON(ctx, log, w, status, Envelope{Success: true, Message: msg, Data: data})
}

// Error logs and writes a failure envelope with a message.
func Error(ctx context.Context, log *logger.Logger, w http.ResponseWriter, status int, msg string, err error) {
	action := "request_failed"
	switch {
	case status >= 500:
		action = "http_internal_error"
	case status == http.StatusBadRequest:
		action = "validation_failed"
	case status == http.StatusNotFound:
		action = "not_found"
	}
	log.Error(ctx, action, msg, err, nil)

	JSON(ctx, log, w, status, Envelope{Success: false, Message: msg})
}

// WithRequestID extracts or generates a request ID and adds it to the context.
func WithRequestID(log *logger.Logger, r *http.Request) context.Context {
	reqID := r.Header.Get("X-Request-ID")
	if strings.TrimSpace(reqID) == "" {
		reqID = randID()
	}
	return log.WithRequestID(r.Context(), reqID)
}

// IntPtr is a convenience for Envelope.Count.
func IntPtr(n int) *int { return &n }

// BoolPtr is a convenience for Envelope.Cached.
func BoolPtr(b bool) *bool { return &b }

// randID generates a random 24-char hex string suitable for request IDs.
func randID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
