package server

import (
	"errors"
	"net"
	"net/http"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/coordinator"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/httputil"
	"github.com/getmockd/armmock/pkg/logging"
)

// statusCoder is implemented by every typed error of the mock core.
type statusCoder interface {
	StatusCode() int
	Code() string
}

type cloudErrorer interface {
	CloudError() *arm.CloudError
}

func (s *Server) handleARM(w http.ResponseWriter, r *http.Request) {
	req, err := newExchangeRequest(r)
	if err != nil {
		s.writeError(w, r, arm.NewCloudError(http.StatusBadRequest, arm.CloudErrorCodeInvalidRequestContent, "", "%s", err.Error()))
		return
	}

	resp := exchange.NewResponse()
	if err := s.coord.GenerateResponse(r.Context(), req, resp, s.coord.ProfileFor(req)); err != nil {
		s.writeError(w, r, err)
		return
	}
	httputil.WritePayload(w, resp.Status(), resp.Headers, resp.Body)
}

func newExchangeRequest(r *http.Request) (*exchange.Request, error) {
	raw, body, err := httputil.ReadJSONBody(r)
	if err != nil {
		return nil, err
	}
	req, err := exchange.NewRequest(r.Method, r.URL.RequestURI(), r.Header.Clone(), body)
	if err != nil {
		return nil, err
	}
	req.RawBody = raw
	req.Host = r.Host
	req.Protocol = "http"
	if r.TLS != nil {
		req.Protocol = "https"
	}
	if addr, ok := r.Context().Value(http.LocalAddrContextKey).(*net.TCPAddr); ok {
		req.LocalPort = addr.Port
	}
	return req, nil
}

// cloudErrorFor maps an error to the ARM envelope it is rendered as.
func cloudErrorFor(err error) *arm.CloudError {
	var ce *arm.CloudError
	if errors.As(err, &ce) {
		return ce
	}
	var renderer cloudErrorer
	if errors.As(err, &renderer) {
		return renderer.CloudError()
	}
	if errors.Is(err, coordinator.ErrNotInitialized) {
		return arm.NewCloudError(http.StatusServiceUnavailable, arm.CloudErrorCodeServiceUnavailable, "", "%s", err.Error())
	}
	var coded statusCoder
	if errors.As(err, &coded) {
		return arm.NewCloudError(coded.StatusCode(), coded.Code(), "", "%s", err.Error())
	}
	return arm.NewCloudError(http.StatusInternalServerError, arm.CloudErrorCodeInternalServerError, "", "%s", err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ce := cloudErrorFor(err)
	log := logging.FromContext(r.Context())
	if ce.StatusCode >= http.StatusInternalServerError {
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", ce.StatusCode, "error", err)
	} else {
		log.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", ce.StatusCode, "error", err)
	}
	arm.WriteCloudError(w, ce)
}
