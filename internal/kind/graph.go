// Package kind provides a typed transformation graph for project
// references: named kinds recognized by predicates, directed conversion
// edges between them, shortest-path normalization with result caching,
// and an ingress wrapper that normalizes function arguments.
package kind

import (
	"log"
	"sync"
)

// Kind names a category of representation (e.g. "github_stub").
type Kind string

// Predicate reports whether a value belongs to a kind. Predicates must be
// cheap and side-effect-free: detection may evaluate several before a match.
type Predicate func(value any) bool

// Context carries optional parameters through a transformation chain.
type Context map[string]any

// Transform converts a value of one kind into the next. ctx may be nil.
type Transform func(value any, ctx Context) (any, error)

// Edge is a single registered conversion between two kinds.
type Edge struct {
	From Kind
	To   Kind
	fn   Transform
}

type kindEntry struct {
	name Kind
	pred Predicate
}

// Graph holds the kind registry and transformation edges. Registration is
// expected at process start; after that the graph is read-mostly, guarded
// by a single RWMutex so late registration stays safe alongside concurrent
// readers. Edge and kind order is registration order, which is significant:
// detection takes the first matching predicate, and path resolution breaks
// length ties toward earlier-registered edges.
type Graph struct {
	mu    sync.RWMutex
	kinds []kindEntry
	index map[Kind]int
	out   map[Kind][]*Edge
	edges map[Kind]map[Kind]*Edge
	cache *resultCache

	// Warnf receives warning-level notices (duplicate edge registration).
	// Defaults to log.Printf.
	Warnf func(format string, args ...any)
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[Kind]int),
		out:   make(map[Kind][]*Edge),
		edges: make(map[Kind]map[Kind]*Edge),
		cache: newResultCache(),
		Warnf: log.Printf,
	}
}

// RegisterKind adds a kind with its recognition predicate. Registering an
// existing kind replaces its predicate in place: detection priority keeps
// the original position, and existing edges are untouched.
func (g *Graph) RegisterKind(name Kind, pred Predicate) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i, ok := g.index[name]; ok {
		g.kinds[i].pred = pred
		return
	}
	g.index[name] = len(g.kinds)
	g.kinds = append(g.kinds, kindEntry{name: name, pred: pred})
}

// Kinds returns all registered kinds in registration (detection-priority)
// order.
func (g *Graph) Kinds() []Kind {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]Kind, len(g.kinds))
	for i, k := range g.kinds {
		names[i] = k.name
	}
	return names
}

// HasKind reports whether a kind is registered.
func (g *Graph) HasKind(name Kind) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.index[name]
	return ok
}

// DetectKind classifies a value as the first registered kind whose
// predicate accepts it. Detection is order-sensitive by design: callers
// needing unambiguous classification must register mutually exclusive
// predicates.
func (g *Graph) DetectKind(value any) (Kind, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, k := range g.kinds {
		if k.pred != nil && k.pred(value) {
			return k.name, nil
		}
	}
	return "", &UnrecognizedError{Value: value}
}

// RegisterEdge adds a directed conversion edge. Both kinds must already be
// registered; violating that is a programming error and panics. Registering
// a duplicate edge replaces the prior function with a warning.
func (g *Graph) RegisterEdge(from, to Kind, fn Transform) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.index[from]; !ok {
		panic("kind: RegisterEdge: unknown source kind " + string(from))
	}
	if _, ok := g.index[to]; !ok {
		panic("kind: RegisterEdge: unknown target kind " + string(to))
	}
	if prior, ok := g.edges[from][to]; ok {
		g.Warnf("kind: edge %s -> %s re-registered, replacing prior function", from, to)
		prior.fn = fn
		return
	}
	e := &Edge{From: from, To: to, fn: fn}
	g.out[from] = append(g.out[from], e)
	if g.edges[from] == nil {
		g.edges[from] = make(map[Kind]*Edge)
	}
	g.edges[from][to] = e
}

// ApplyEdge invokes the single registered edge between two kinds. The edge
// function runs outside the graph lock: transforms may block on I/O.
func (g *Graph) ApplyEdge(from, to Kind, value any, ctx Context) (any, error) {
	g.mu.RLock()
	e, ok := g.edges[from][to]
	var fn Transform
	if ok {
		fn = e.fn
	}
	g.mu.RUnlock()
	if !ok {
		return nil, &EdgeError{From: from, To: to}
	}
	out, err := fn(value, ctx)
	if err != nil {
		return nil, &TransformError{From: from, To: to, Err: err}
	}
	return out, nil
}

// FindPath returns the shortest chain of edges from one kind to another,
// found by breadth-first search. The path is empty when from == to. Among
// equal-length paths the earliest-registered edges win, because BFS visits
// a node's outgoing edges in registration order.
func (g *Graph) FindPath(from, to Kind) ([]*Edge, error) {
	if from == to {
		return nil, nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	visited := map[Kind]bool{from: true}
	via := make(map[Kind]*Edge)
	queue := []Kind{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.out[cur] {
			if visited[e.To] {
				continue
			}
			visited[e.To] = true
			via[e.To] = e
			if e.To == to {
				return assemblePath(via, from, to), nil
			}
			queue = append(queue, e.To)
		}
	}
	return nil, &PathError{From: from, To: to}
}

func assemblePath(via map[Kind]*Edge, from, to Kind) []*Edge {
	var rev []*Edge
	for at := to; at != from; {
		e := via[at]
		rev = append(rev, e)
		at = e.From
	}
	path := make([]*Edge, len(rev))
	for i, e := range rev {
		path[len(rev)-1-i] = e
	}
	return path
}
