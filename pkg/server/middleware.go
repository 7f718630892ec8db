package server

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/httputil"
	"github.com/getmockd/armmock/pkg/logging"
	"github.com/getmockd/armmock/pkg/metrics"
)

// recoverPanics turns a handler panic into a 500 CloudError.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := httputil.NewStatusRecorder(w)
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				s.log.Error("panic serving request", "method", r.Method, "path", r.URL.Path, "panic", v, "stack", string(debug.Stack()))
				if !rec.Written() {
					arm.WriteInternalServerError(rec)
				}
			}
		}()
		next.ServeHTTP(rec, r)
	})
}

// correlate sets the ARM request id headers and puts a request-scoped logger
// carrying them in the context.
func (s *Server) correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		correlationID := r.Header.Get(arm.HeaderNameCorrelationRequestID)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		h := w.Header()
		h.Set(arm.HeaderNameRequestID, requestID)
		h.Set(arm.HeaderNameCorrelationRequestID, correlationID)
		clientID := r.Header.Get(arm.HeaderNameClientRequestID)
		if clientID != "" && strings.EqualFold(r.Header.Get(arm.HeaderNameReturnClientRequestID), "true") {
			h.Set(arm.HeaderNameClientRequestID, clientID)
		}

		log := s.log.With("request_id", requestID, "correlation_id", correlationID)
		if clientID != "" {
			log = log.With("client_request_id", clientID)
		}
		next.ServeHTTP(w, r.WithContext(logging.WithContext(r.Context(), log)))
	})
}

// observe logs each request and records its metrics.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := httputil.NewStatusRecorder(w)

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := metrics.RouteARM
		if strings.HasPrefix(r.URL.Path, AdminPrefix) {
			route = metrics.RouteAdmin
		}
		s.metrics.ObserveRequest(r.Method, route, rec.Status, elapsed)
		logging.FromContext(r.Context()).Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.Status,
			"duration", elapsed,
		)
	})
}
