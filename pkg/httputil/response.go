// Package httputil provides shared HTTP utilities for consistent request and
// response handling.
package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodySize is the largest request body ReadJSONBody accepts.
const MaxBodySize = 32 << 20

// ErrBodyTooLarge is returned for a body above MaxBodySize.
var ErrBodyTooLarge = errors.New("request body too large")

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WritePayload writes a decoded JSON payload. A nil payload produces an
// empty body without a Content-Type, as ARM does for 202 and 204 replies.
func WritePayload(w http.ResponseWriter, status int, header http.Header, payload any) {
	for k, v := range header {
		w.Header()[k] = v
	}
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	WriteJSON(w, status, payload)
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteOK writes a 200 OK response with data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// ReadJSONBody reads the request body and decodes it as JSON. An empty body
// decodes to nil. The raw bytes are returned in every case but a read error.
func ReadJSONBody(r *http.Request) ([]byte, any, error) {
	if r.Body == nil {
		return nil, nil, nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("reading request body: %w", err)
	}
	if len(raw) > MaxBodySize {
		return nil, nil, ErrBodyTooLarge
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return raw, nil, nil
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return raw, nil, fmt.Errorf("decoding request body: %w", err)
	}
	return raw, body, nil
}

// StatusRecorder wraps an http.ResponseWriter to capture the status code.
type StatusRecorder struct {
	http.ResponseWriter
	Status  int
	written bool
}

// NewStatusRecorder creates a recorder defaulting to 200.
func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter.
func (w *StatusRecorder) WriteHeader(code int) {
	if !w.written {
		w.Status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write writes data to the underlying ResponseWriter.
func (w *StatusRecorder) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Written reports whether a status or body has been sent.
func (w *StatusRecorder) Written() bool { return w.written }

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *StatusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
