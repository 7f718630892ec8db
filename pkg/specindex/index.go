package specindex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/logging"
	"github.com/getmockd/armmock/pkg/swagger"
)

// Status is the lifecycle state of an Index.
type Status int

// Index lifecycle states.
const (
	NotInitialized Status = iota
	Initialized
	InitializationFailed
)

func (s Status) String() string {
	switch s {
	case Initialized:
		return "Initialized"
	case InitializationFailed:
		return "InitializationFailed"
	default:
		return "NotInitialized"
	}
}

// Default discovery patterns, relative to the spec root.
var (
	DefaultPatterns = []string{"**/resource-manager/**/*.json"}
	DefaultExclude  = []string{"**/examples/**", "**/scenarios/**"}
)

// Config configures spec discovery.
type Config struct {
	// Root is the directory holding the spec tree.
	Root string
	// Patterns are doublestar globs selecting spec documents.
	Patterns []string
	// Exclude are doublestar globs removing files from the selection.
	Exclude []string
}

// MatchResult is the outcome of matching one request.
type MatchResult struct {
	// Operations are the matches ordered least specific first.
	Operations []*swagger.Operation
	// APIVersion is the version the match was made against.
	APIVersion string
	// Reason explains an empty match.
	Reason string
}

// Last returns the most specific match, or nil.
func (r *MatchResult) Last() *swagger.Operation {
	if r == nil || len(r.Operations) == 0 {
		return nil
	}
	return r.Operations[len(r.Operations)-1]
}

// Index holds every operation of a spec tree.
type Index struct {
	cfg    Config
	loader *swagger.Loader
	log    *slog.Logger

	mu       sync.RWMutex
	status   Status
	initErr  error
	files    int
	ops      int
	versions map[string]map[string][]*swagger.Operation
}

// New creates an uninitialized index.
func New(cfg Config) *Index {
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = DefaultPatterns
	}
	if cfg.Exclude == nil {
		cfg.Exclude = DefaultExclude
	}
	return &Index{
		cfg:      cfg,
		loader:   swagger.NewLoader(),
		log:      logging.Nop(),
		versions: make(map[string]map[string][]*swagger.Operation),
	}
}

// SetLogger sets the operational logger.
func (ix *Index) SetLogger(log *slog.Logger) {
	if log != nil {
		ix.log = log
		ix.loader.SetLogger(log)
	}
}

// Loader returns the loader used for documents and examples.
func (ix *Index) Loader() *swagger.Loader { return ix.loader }

// Status returns the lifecycle state and, when initialization failed, why.
func (ix *Index) Status() (Status, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.status, ix.initErr
}

// Initialize discovers and loads the spec tree. It may be called again to
// reload.
func (ix *Index) Initialize(ctx context.Context) error {
	versions, files, ops, err := ix.load(ctx)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if err != nil {
		ix.status = InitializationFailed
		ix.initErr = err
		return err
	}
	ix.versions = versions
	ix.files = files
	ix.ops = ops
	ix.status = Initialized
	ix.initErr = nil
	ix.log.Info("spec index initialized", "root", ix.cfg.Root, "files", files, "operations", ops, "providers", len(versions))
	return nil
}

func (ix *Index) load(ctx context.Context) (map[string]map[string][]*swagger.Operation, int, int, error) {
	paths, err := ix.discover()
	if err != nil {
		return nil, 0, 0, err
	}
	ix.loader.Reset()

	versions := make(map[string]map[string][]*swagger.Operation)
	var files, count int
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, 0, 0, err
		}

		f, err := ix.loader.Load(path)
		if err != nil {
			if errors.Is(err, swagger.ErrNotSwagger2) {
				ix.log.Debug("skipping non-swagger document", "path", path)
			} else {
				ix.log.Warn("skipping unreadable spec", "path", path, "error", err)
			}
			continue
		}
		ops, err := f.Operations()
		if err != nil {
			ix.log.Warn("skipping spec with invalid paths", "path", path, "error", err)
			continue
		}

		files++
		for _, op := range ops {
			byVersion, ok := versions[op.Provider]
			if !ok {
				byVersion = make(map[string][]*swagger.Operation)
				versions[op.Provider] = byVersion
			}
			byVersion[op.APIVersion] = append(byVersion[op.APIVersion], op)
			count++
		}
	}
	return versions, files, count, nil
}

// discover returns the absolute paths of every selected spec document, sorted.
func (ix *Index) discover() ([]string, error) {
	root, err := filepath.Abs(ix.cfg.Root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("spec root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("spec root %s is not a directory", root)
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range ix.cfg.Patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("spec pattern %q: %w", pattern, err)
		}
		for _, rel := range matches {
			if seen[rel] || ix.excluded(rel) {
				continue
			}
			seen[rel] = true
			paths = append(paths, filepath.Join(root, filepath.FromSlash(rel)))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (ix *Index) excluded(rel string) bool {
	for _, pattern := range ix.cfg.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Files returns the number of loaded documents.
func (ix *Index) Files() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.files
}

// Operations returns the number of registered operations.
func (ix *Index) Operations() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.ops
}

// Providers returns the registered provider namespaces, sorted.
func (ix *Index) Providers() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]string, 0, len(ix.versions))
	for p := range ix.versions {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// APIVersions returns the API versions registered for a provider, ascending.
func (ix *Index) APIVersions(provider string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return sortedVersions(ix.versions[strings.ToLower(provider)])
}

func sortedVersions(byVersion map[string][]*swagger.Operation) []string {
	out := make([]string, 0, len(byVersion))
	for v := range byVersion {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

type candidate struct {
	op    *swagger.Operation
	score int
	order int
}

// Match finds the operations a request URL resolves to. An empty apiVersion
// uses the url's api-version query value; arm.UnknownAPIVersion searches every
// registered version. Zero matches are reported through MatchResult.Reason.
// A tie between different templates for the top score returns an
// *AmbiguousMatchError.
func (ix *Index) Match(rawURL, method, apiVersion string) (*MatchResult, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.status != Initialized {
		return nil, ErrNotInitialized
	}

	req, err := ParseRequest(rawURL, method)
	if err != nil {
		return nil, err
	}
	if apiVersion == "" {
		apiVersion = req.APIVersion
	}
	result := &MatchResult{APIVersion: apiVersion}

	// Placeholder-namespace templates answer only when the request's own
	// provider has no matching operation in any version.
	candidates, known := ix.collect(req, req.Provider, apiVersion)
	if len(candidates) == 0 && !ix.servesAnyVersion(req) {
		var anyKnown bool
		candidates, anyKnown = ix.collect(req, swagger.AnyProvider, apiVersion)
		known = known || anyKnown
	}

	if len(candidates) == 0 {
		if !known {
			result.Reason = fmt.Sprintf("no spec registered for provider %s with api-version %s", req.Provider, apiVersion)
		} else {
			result.Reason = fmt.Sprintf("no operation of provider %s with api-version %s matches %s %s", req.Provider, apiVersion, req.Method, req.Path)
		}
		return result, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score < candidates[j].score
		}
		return candidates[i].order < candidates[j].order
	})
	result.Operations = make([]*swagger.Operation, len(candidates))
	for i, c := range candidates {
		result.Operations[i] = c.op
	}

	if tied := topTies(candidates); len(tied) > 1 {
		return nil, &AmbiguousMatchError{Method: req.Method, Path: req.Path, Candidates: tied}
	}
	return result, nil
}

// collect returns the operations of provider at apiVersion whose method and
// template match req, and whether provider registers that version at all.
func (ix *Index) collect(req *ValidationRequest, provider, apiVersion string) ([]candidate, bool) {
	byVersion, ok := ix.versions[provider]
	if !ok {
		return nil, false
	}
	versions := []string{apiVersion}
	if apiVersion == arm.UnknownAPIVersion {
		versions = sortedVersions(byVersion)
	}

	var candidates []candidate
	known := false
	for _, version := range versions {
		ops, ok := byVersion[version]
		if !ok {
			continue
		}
		known = true
		for _, op := range ops {
			if op.Method != req.Method {
				continue
			}
			if _, ok := op.Template.Match(req.Path, req.Query); ok {
				candidates = append(candidates, candidate{op: op, score: op.Template.Score(), order: len(candidates)})
			}
		}
	}
	return candidates, known
}

// servesAnyVersion reports whether the request's own provider has a matching
// operation in some registered version.
func (ix *Index) servesAnyVersion(req *ValidationRequest) bool {
	candidates, _ := ix.collect(req, req.Provider, arm.UnknownAPIVersion)
	return len(candidates) > 0
}

// topTies returns the top-scored candidates when they span more than one
// template. The same template in several API versions is not a tie.
func topTies(candidates []candidate) []*swagger.Operation {
	top := candidates[len(candidates)-1].score
	var tied []*swagger.Operation
	templates := make(map[string]bool)
	for _, c := range candidates {
		if c.score != top {
			continue
		}
		tied = append(tied, c.op)
		templates[strings.ToLower(c.op.Template.String())] = true
	}
	if len(templates) < 2 {
		return nil
	}
	return tied
}
