package responder

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/example"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/logging"
	"github.com/getmockd/armmock/pkg/resource"
	"github.com/getmockd/armmock/pkg/swagger"
	"github.com/getmockd/armmock/pkg/validation"
)

// DefaultExampleFolder is where generated examples are written, relative to
// the spec file.
const DefaultExampleFolder = "generated"

// Config configures a Responder.
type Config struct {
	// CascadeEnabled selects the resource pool's cascade policy.
	CascadeEnabled bool

	// ExampleGeneration persists every response regardless of profile.
	ExampleGeneration bool

	// ExampleFolder overrides DefaultExampleFolder.
	ExampleFolder string
}

// exampleSource locates one example: the operation declaring it and the
// id as written in its x-ms-examples.
type exampleSource struct {
	op  *swagger.Operation
	key string
}

// Responder synthesizes responses and owns the resource pool.
type Responder struct {
	cfg       Config
	pool      *resource.Pool
	mocker    *Mocker
	validator *validation.SchemaValidator
	log       *slog.Logger

	mu          sync.Mutex
	lroExamples map[string]map[string]exampleSource

	genMu sync.Mutex
}

// New creates a responder with an empty resource pool.
func New(cfg Config) *Responder {
	if cfg.ExampleFolder == "" {
		cfg.ExampleFolder = DefaultExampleFolder
	}
	return &Responder{
		cfg:         cfg,
		pool:        resource.NewPool(cfg.CascadeEnabled),
		mocker:      NewMocker(),
		validator:   validation.NewSchemaValidator(),
		log:         logging.Nop(),
		lroExamples: make(map[string]map[string]exampleSource),
	}
}

// SetLogger sets the operational logger.
func (r *Responder) SetLogger(log *slog.Logger) {
	if log != nil {
		r.log = log
	}
}

// Mocker returns the schema mocker, for tests to pin clocks and ids.
func (r *Responder) Mocker() *Mocker { return r.mocker }

// Pool returns the resource pool.
func (r *Responder) Pool() *resource.Pool { return r.pool }

// Reset forgets every simulated resource and remembered LRO example.
func (r *Responder) Reset() {
	r.pool.Reset()
	r.mu.Lock()
	r.lroExamples = make(map[string]map[string]exampleSource)
	r.mu.Unlock()
}

// Generate synthesizes the response for req matched to op. lroCallback is
// the polling URL of a long-running first call, or empty.
//
// With an example-id header the pinned example is used and the request must
// agree with it. Otherwise the first example is used when its response fits
// the declared schema, and the response is mocked from the schema when not.
func (r *Responder) Generate(ctx context.Context, req *exchange.Request, resp *exchange.Response, op *swagger.Operation, lroCallback string, profile Profile) (string, *swagger.ExampleResponse, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	var (
		ex     *swagger.Example
		status string
		err    error
	)
	if id, pinned := req.HeaderValue(arm.HeaderNameExampleID); pinned {
		ex, err = r.loadExample(op, strings.TrimSpace(id), req, lroCallback)
		if err != nil {
			return "", nil, err
		}
		if err := example.ValidateRequestByExample(ex, req, op); err != nil {
			return "", nil, err
		}
		status, _, err = ChooseStatus(req.Query, resp, ex.Responses, lroCallback)
		if err != nil {
			return "", nil, withOperation(err, op)
		}
	} else {
		ex, status, err = r.exampleOrMock(req, resp, op, lroCallback)
		if err != nil {
			return "", nil, err
		}
		PatchExampleResponses(ex, req)
	}

	payload := ex.Responses[status]
	if payload == nil {
		payload = &swagger.ExampleResponse{}
		ex.Responses[status] = payload
	}
	if IsLROCallback(req.Query) {
		if obj, ok := payload.Body.(map[string]any); ok {
			obj["status"] = provisioningSucceeded
		}
	}

	if r.cfg.ExampleGeneration || profile.ExampleGeneration {
		if _, err := r.saveExample(op, ex, req); err != nil {
			return "", nil, err
		}
	}
	return status, payload, nil
}

func (r *Responder) exampleOrMock(req *exchange.Request, resp *exchange.Response, op *swagger.Operation, lroCallback string) (*swagger.Example, string, error) {
	status := "200"
	ex, err := r.loadExample(op, "", req, lroCallback)
	if err == nil {
		var chosen string
		chosen, _, err = ChooseStatus(req.Query, resp, ex.Responses, lroCallback)
		if err == nil {
			status = chosen
			err = r.validateExampleResponse(op, status, ex.Responses[status])
		}
	}
	if err == nil {
		return ex, status, nil
	}

	r.log.Error("failed to use example response, mocking response", "operationId", op.ID(), "error", err)
	if ex == nil {
		ex = &swagger.Example{Parameters: map[string]any{}, Responses: map[string]*swagger.ExampleResponse{}}
	}
	status, err = r.mockResponse(req, resp, op, ex, status, lroCallback)
	if err != nil {
		return nil, "", err
	}
	return ex, status, nil
}

// mockResponse mocks status into ex. An undeclared status is replaced by the
// one ChooseStatus picks among the declared ones.
func (r *Responder) mockResponse(req *exchange.Request, resp *exchange.Response, op *swagger.Operation, ex *swagger.Example, status, lroCallback string) (string, error) {
	if _, declared := op.Spec.Responses[status]; !declared {
		placeholders := make(map[string]*swagger.ExampleResponse)
		for _, code := range op.StatusCodes() {
			if _, err := strconv.Atoi(code); err == nil {
				placeholders[code] = &swagger.ExampleResponse{}
			}
		}
		chosen, _, err := ChooseStatus(req.Query, resp, placeholders, lroCallback)
		if err != nil {
			return "", withOperation(err, op)
		}
		status = chosen
	}

	pollURL := lroCallback
	if pollURL == "" {
		pollURL = req.AbsoluteURL()
	}
	mocked, err := r.mocker.MockResponse(op, status, pollURL)
	if err != nil {
		return "", err
	}
	ex.Responses[status] = mocked
	return status, nil
}

func (r *Responder) validateExampleResponse(op *swagger.Operation, status string, payload *swagger.ExampleResponse) error {
	var body any
	if payload != nil {
		body = payload.Body
	}
	result, err := r.validator.ValidateResponse(op, status, body)
	if err != nil {
		return err
	}
	if !result.Valid {
		reasons := make([]string, 0, len(result.Errors))
		for _, fe := range result.Errors {
			reasons = append(reasons, fe.Error())
		}
		return &WrongExampleResponseError{OperationID: op.ID(), Status: status, Reason: strings.Join(reasons, "; ")}
	}
	return nil
}

// loadExample returns a private copy of the example with the given id, or of
// the first example in id order when id is empty. Examples remembered for
// the request URL by an earlier long-running call are candidates too.
func (r *Responder) loadExample(op *swagger.Operation, id string, req *exchange.Request, lroCallback string) (*swagger.Example, error) {
	sources := make(map[string]exampleSource)

	r.mu.Lock()
	remembered, ok := r.lroExamples[req.AbsoluteURL()]
	if !ok {
		remembered = r.lroExamples[req.AbsoluteURL()+"&"+arm.QueryLROCallback+"=true"]
	}
	for k, src := range remembered {
		sources[k] = src
	}
	r.mu.Unlock()

	for key := range op.Spec.Examples {
		sources[strings.TrimSpace(key)] = exampleSource{op: op, key: key}
	}
	if len(sources) == 0 {
		return nil, &ExampleNotFoundError{OperationID: op.ID(), ID: id}
	}

	if id == "" {
		ids := make([]string, 0, len(sources))
		for k := range sources {
			ids = append(ids, k)
		}
		sort.Strings(ids)
		id = ids[0]
	}
	src, ok := sources[id]
	if !ok {
		return nil, &ExampleNotFoundError{OperationID: op.ID(), ID: id}
	}

	if lroCallback != "" {
		r.mu.Lock()
		r.lroExamples[lroCallback] = sources
		r.mu.Unlock()
	}

	ex, err := src.op.Example(src.key)
	if errors.Is(err, swagger.ErrExampleNotDeclared) {
		return nil, &ExampleNotFoundError{OperationID: op.ID(), ID: id}
	}
	if err != nil {
		return nil, err
	}
	return cloneExample(ex), nil
}

func withOperation(err error, op *swagger.Operation) error {
	var wrong *WrongExampleResponseError
	if errors.As(err, &wrong) && wrong.OperationID == "" {
		wrong.OperationID = op.ID()
	}
	return err
}
