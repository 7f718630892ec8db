package server

import (
	"net/http"
	"time"

	"github.com/getmockd/armmock/pkg/httputil"
	"github.com/getmockd/armmock/pkg/specindex"
)

// StatusResponse is the body of the status route.
type StatusResponse struct {
	Status     string   `json:"status"`
	Error      string   `json:"error,omitempty"`
	Files      int      `json:"files"`
	Operations int      `json:"operations"`
	Providers  []string `json:"providers"`
	Resources  int      `json:"resources"`
	Uptime     string   `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, map[string]string{"status": "healthy", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

// handleStatus reports the index state. It answers 503 until the index is
// initialized, so it doubles as a readiness probe.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	status, err := s.coord.Status()
	resp := StatusResponse{
		Status:    status.String(),
		Providers: []string{},
		Resources: s.coord.Responder().Pool().Count(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	if s.inventory != nil && status == specindex.Initialized {
		resp.Files = s.inventory.Files()
		resp.Operations = s.inventory.Operations()
		resp.Providers = s.inventory.Providers()
	}

	code := http.StatusOK
	if status != specindex.Initialized {
		code = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, code, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.coord.ResetState()
	httputil.WriteNoContent(w)
}
