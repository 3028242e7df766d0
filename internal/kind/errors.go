package kind

import "fmt"

// UnrecognizedError indicates no registered predicate matched the input.
type UnrecognizedError struct {
	Value any
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("unrecognized reference: %v (no registered kind matches)", e.Value)
}

// PathError indicates the graph has no route between two kinds.
type PathError struct {
	From Kind
	To   Kind
}

func (e *PathError) Error() string {
	return fmt.Sprintf("no transformation path from %s to %s", e.From, e.To)
}

// EdgeError indicates a resolved path referenced an edge the graph cannot
// apply. This cannot happen under single-writer use; seeing it means the
// graph was mutated mid-resolution.
type EdgeError struct {
	From Kind
	To   Kind
}

func (e *EdgeError) Error() string {
	return fmt.Sprintf("internal: no edge from %s to %s", e.From, e.To)
}

// TransformError indicates an edge function failed. The chain aborts and
// nothing is cached. The cause is available via Unwrap.
type TransformError struct {
	From Kind
	To   Kind
	Err  error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transforming %s to %s: %v", e.From, e.To, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }
