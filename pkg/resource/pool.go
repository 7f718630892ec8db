package resource

import (
	"net/http"
	"strings"
	"sync"

	"github.com/getmockd/armmock/pkg/arm"
)

type node struct {
	name     string
	url      string
	body     any
	exists   bool
	children map[string]*node
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// Snapshot is a copy of one node's state.
type Snapshot struct {
	Name     string
	URL      string
	Body     any
	Exists   bool
	Children int
}

// Pool is the in-memory resource hierarchy. It is safe for concurrent use.
type Pool struct {
	cascade bool

	mu   sync.RWMutex
	root *node
}

// NewPool creates an empty pool. The cascade policy is fixed for its lifetime.
func NewPool(cascade bool) *Pool {
	return &Pool{cascade: cascade, root: newNode()}
}

// CascadeEnabled reports the pool's policy.
func (p *Pool) CascadeEnabled() bool { return p.cascade }

func keys(rawURL string) []string {
	segments := arm.Segments(rawURL)
	for i, s := range segments {
		segments[i] = strings.ToLower(s)
	}
	return segments
}

// Update applies a request to the pool: PUT and POST create, DELETE deletes,
// every other method leaves the pool unchanged.
func (p *Pool) Update(method, rawURL string, body any) Outcome {
	switch strings.ToUpper(method) {
	case http.MethodPut, http.MethodPost:
		segments := arm.Segments(rawURL)
		if len(segments) == 0 {
			return Unchanged
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.add(p.root, segments, 0, arm.PureURL(rawURL), body)
	case http.MethodDelete:
		segments := keys(rawURL)
		if len(segments) == 0 {
			return Unchanged
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.delete(p.root, segments)
	default:
		return Unchanged
	}
}

// add realizes segments[i:] under n. Scaffolding created before a rejection
// is left in place without the exists flag.
func (p *Pool) add(n *node, segments []string, i int, fullURL string, body any) Outcome {
	key := strings.ToLower(segments[i])
	level := i + 1
	remaining := len(segments) - i
	guarded := p.cascade && remaining > 1 && arm.IsManagementLevel(level, segments)

	child, ok := n.children[key]
	switch {
	case !ok && guarded:
		return RejectedByCascadePolicy
	case !ok:
		child = newNode()
		n.children[key] = child
	case guarded && !child.exists:
		return RejectedByCascadePolicy
	}

	if remaining == 1 {
		child.url = fullURL
		child.name = segments[i]
		child.body = body
		child.exists = true
		return Created
	}
	return p.add(child, segments, i+1, fullURL, body)
}

func (p *Pool) delete(n *node, segments []string) Outcome {
	child, ok := n.children[segments[0]]
	if !ok {
		return AlreadyAbsent
	}
	if len(segments) > 1 {
		return p.delete(child, segments[1:])
	}

	child.exists = false
	if len(child.children) == 0 || p.cascade {
		delete(n.children, segments[0])
	}
	return Deleted
}

func (p *Pool) find(rawURL string) (*node, int) {
	segments := keys(rawURL)
	n := p.root
	for _, key := range segments {
		child, ok := n.children[key]
		if !ok {
			return nil, len(segments)
		}
		n = child
	}
	return n, len(segments)
}

// HasURL reports whether the URL addresses a live resource. Without cascading
// any tracked node qualifies; with cascading a management-level node must
// exist, while list endpoints only need to be tracked.
func (p *Pool) HasURL(rawURL string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n, depth := p.find(rawURL)
	if n == nil {
		return false
	}
	return !p.cascade || n.exists || !arm.IsManagementLevel(depth, arm.Segments(rawURL))
}

// IsListURL reports whether the URL addresses a collection.
func (p *Pool) IsListURL(rawURL string) bool {
	return arm.IsListPath(arm.Segments(rawURL))
}

// Get returns a snapshot of the node a URL addresses.
func (p *Pool) Get(rawURL string) (Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n, _ := p.find(rawURL)
	if n == nil || n == p.root {
		return Snapshot{}, false
	}
	return Snapshot{Name: n.name, URL: n.url, Body: n.body, Exists: n.exists, Children: len(n.children)}, true
}

// Count returns the number of live resources.
func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return count(p.root)
}

func count(n *node) int {
	total := 0
	for _, child := range n.children {
		if child.exists {
			total++
		}
		total += count(child)
	}
	return total
}

// Reset removes every resource.
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.root = newNode()
}
