package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/example"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/logging"
	"github.com/getmockd/armmock/pkg/lro"
	"github.com/getmockd/armmock/pkg/metrics"
	"github.com/getmockd/armmock/pkg/responder"
	"github.com/getmockd/armmock/pkg/specindex"
	"github.com/getmockd/armmock/pkg/swagger"
	"github.com/getmockd/armmock/pkg/validation"
)

// Index is the spec index the coordinator searches.
type Index interface {
	lro.Matcher
	Initialize(ctx context.Context) error
	Status() (specindex.Status, error)
}

// Config configures a Coordinator.
type Config struct {
	// ValidateRequest checks parameters and bodies against the matched
	// operation before a response is synthesized.
	ValidateRequest bool

	// Profiles are the named caller profiles. A request without a known
	// profile name gets the responder.DefaultProfile entry, or the zero
	// profile when that is absent too.
	Profiles map[string]responder.Profile
}

// Coordinator orchestrates one request through search, polling URL
// discovery, synthesis and stateful assembly.
type Coordinator struct {
	cfg       Config
	index     Index
	responder *responder.Responder
	resolver  *lro.Resolver
	validator *validation.SchemaValidator
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// New creates a coordinator. A nil log discards output.
func New(cfg Config, index Index, r *responder.Responder, log *slog.Logger) *Coordinator {
	if log == nil {
		log = logging.Nop()
	}
	resolver := lro.NewResolver(index)
	resolver.SetLogger(log)
	r.SetLogger(log)
	return &Coordinator{
		cfg:       cfg,
		index:     index,
		responder: r,
		resolver:  resolver,
		validator: validation.NewSchemaValidator(),
		log:       log,
	}
}

// SetMetrics sets the collectors outcomes are recorded on.
func (c *Coordinator) SetMetrics(m *metrics.Metrics) {
	c.metrics = m
	m.TrackResources(c.responder.Pool().Count)
}

// Initialize loads the spec index.
func (c *Coordinator) Initialize(ctx context.Context) error {
	return c.index.Initialize(ctx)
}

// Status returns the spec index lifecycle state.
func (c *Coordinator) Status() (specindex.Status, error) {
	return c.index.Status()
}

// Responder returns the response synthesizer.
func (c *Coordinator) Responder() *responder.Responder { return c.responder }

// ResetState forgets every simulated resource.
func (c *Coordinator) ResetState() {
	c.responder.Reset()
	c.log.Info("resource state reset")
}

// ProfileFor returns the profile a request selects with its Mock-Profile
// header.
func (c *Coordinator) ProfileFor(req *exchange.Request) responder.Profile {
	name, ok := req.HeaderValue(arm.HeaderNameProfile)
	name = strings.TrimSpace(name)
	if ok && name != "" {
		if p, found := c.cfg.Profiles[name]; found {
			return p
		}
		c.log.Warn("unknown profile, using default", "profile", name)
	}
	return c.cfg.Profiles[responder.DefaultProfile]
}

// Search returns the operation req resolves to and the API version it was
// matched with. The declared API version is tried first, then every
// registered version. An ambiguous match resolves to its last candidate.
func (c *Coordinator) Search(req *exchange.Request) (*swagger.Operation, string, error) {
	res, err := c.match(req, "")
	if err != nil {
		return c.fromAmbiguous(req, err)
	}
	if op := res.Last(); op != nil {
		c.metrics.ObserveSearch(metrics.SearchMatched)
		return op, res.APIVersion, nil
	}

	retry, err := c.match(req, arm.UnknownAPIVersion)
	if err != nil {
		return c.fromAmbiguous(req, err)
	}
	if op := retry.Last(); op != nil {
		c.log.Debug("matched without declared api-version", "method", req.Method, "url", req.URL, "operationId", op.ID(), "apiVersion", op.APIVersion)
		c.metrics.ObserveSearch(metrics.SearchFallback)
		return op, retry.APIVersion, nil
	}
	return nil, "", &NoOperationMatchError{Method: req.Method, URL: req.URL, Reason: res.Reason}
}

func (c *Coordinator) match(req *exchange.Request, apiVersion string) (*specindex.MatchResult, error) {
	return c.index.Match(req.URL, req.Method, apiVersion)
}

func (c *Coordinator) fromAmbiguous(req *exchange.Request, err error) (*swagger.Operation, string, error) {
	var ambiguous *specindex.AmbiguousMatchError
	if !errors.As(err, &ambiguous) || ambiguous.Last() == nil {
		return nil, "", err
	}
	op := ambiguous.Last()
	c.log.Warn("ambiguous operation match, using last candidate", "method", req.Method, "url", req.URL, "operationId", op.ID(), "error", err)
	c.metrics.ObserveSearch(metrics.SearchAmbiguous)
	return op, op.APIVersion, nil
}

// GenerateResponse synthesizes the response to req into resp under profile.
func (c *Coordinator) GenerateResponse(ctx context.Context, req *exchange.Request, resp *exchange.Response, profile responder.Profile) error {
	log := logging.FromContext(ctx)

	op, apiVersion, err := c.Search(req)
	var noMatch *NoOperationMatchError
	if errors.As(err, &noMatch) {
		vreq, perr := specindex.ParseRequest(req.URL, req.Method)
		if perr != nil {
			return perr
		}
		if status, body, ok := c.HandleSpecials(req, vreq); ok {
			c.metrics.ObserveSearch(metrics.SearchSpecial)
			resp.Set(status, body, nil)
			return nil
		}
		c.metrics.ObserveSearch(metrics.SearchUnmatched)
		return err
	}
	if err != nil {
		return err
	}
	log.Debug("matched operation", "operationId", op.ID(), "apiVersion", apiVersion, "file", op.File.Path)

	if c.cfg.ValidateRequest {
		if err := c.validateRequest(op, req); err != nil {
			return err
		}
	}

	var lroCallback string
	if op.IsLongRunning() && !responder.IsLROCallback(req.Query) {
		lroCallback, err = c.FindLROGet(ctx, req, op, apiVersion)
		if err != nil {
			return err
		}
	}

	status, payload, err := c.responder.Generate(ctx, req, resp, op, lroCallback, profile)
	if err != nil {
		return err
	}
	if profile.AlwaysError != 0 {
		return &IntentionalFaultError{Status: profile.AlwaysError}
	}
	return c.responder.GenStatefulResponse(req, resp, profile, status, payload)
}

// FindLROGet returns the polling URL for a long-running request. When none
// is found and op declares a synchronous 200, it returns an empty URL and the
// call proceeds synchronously.
func (c *Coordinator) FindLROGet(ctx context.Context, req *exchange.Request, op *swagger.Operation, apiVersion string) (string, error) {
	callback, err := c.resolver.Find(ctx, req, op, apiVersion)
	if err == nil {
		c.metrics.ObserveLRO(metrics.LROResolved)
		return callback, nil
	}

	var notFound *lro.PollingCallbackNotFoundError
	if _, sync200 := op.Spec.Responses["200"]; errors.As(err, &notFound) && sync200 {
		c.log.Warn("no polling operation found, responding synchronously", "operationId", op.ID(), "url", req.URL)
		c.metrics.ObserveLRO(metrics.LRODegraded)
		return "", nil
	}
	c.metrics.ObserveLRO(metrics.LROFailed)
	return "", err
}

func (c *Coordinator) validateRequest(op *swagger.Operation, req *exchange.Request) error {
	params, _, err := example.GenExampleParameters(op, req)
	if err != nil {
		return err
	}
	result, err := validation.ValidateParameters(op, params)
	if err != nil {
		return err
	}
	body, err := c.validator.ValidateBody(op, req.Body)
	if err != nil {
		return err
	}
	result.Merge(body)
	if !result.Valid {
		return validation.NewRequestError(result)
	}
	return nil
}
