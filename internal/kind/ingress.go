package kind

import "fmt"

// Arg is one named, ordered argument of a wrapped callable.
type Arg struct {
	Name  string
	Value any
}

// Func is the callable shape the ingress wrapper operates on: an ordered
// list of named arguments, so one argument can be selected either by name
// or by position.
type Func func(ctx Context, args []Arg) (any, error)

// ArgSelector designates which argument an ingress wrapper normalizes.
// The zero selector means the first positional argument.
type ArgSelector struct {
	name    string
	byName  bool
	index   int
	byIndex bool
}

// ByName selects the argument with the given name.
func ByName(name string) ArgSelector {
	return ArgSelector{name: name, byName: true}
}

// ByIndex selects the argument at the given position.
func ByIndex(i int) ArgSelector {
	return ArgSelector{index: i, byIndex: true}
}

func (s ArgSelector) locate(args []Arg) (int, error) {
	if s.byName {
		for i := range args {
			if args[i].Name == s.name {
				return i, nil
			}
		}
		return 0, fmt.Errorf("no argument named %q", s.name)
	}
	i := 0
	if s.byIndex {
		i = s.index
	}
	if i < 0 || i >= len(args) {
		return 0, fmt.Errorf("argument index %d out of range (have %d)", i, len(args))
	}
	return i, nil
}

// IngressOptions configures an ingress wrapper.
type IngressOptions struct {
	// Selector picks the argument to normalize. Zero value: first
	// positional argument.
	Selector ArgSelector
	// Context is passed to edge functions during normalization. When nil,
	// the call-time context is used instead.
	Context Context
}

// Ingress returns a wrapper that normalizes one argument to the target kind
// before the wrapped function runs. With no selector the first positional
// argument is normalized. The wrapped function never observes the original
// value: normalization errors surface before it executes.
func (g *Graph) Ingress(to Kind, sel ...ArgSelector) func(Func) Func {
	var opts IngressOptions
	if len(sel) > 0 {
		opts.Selector = sel[0]
	}
	return g.IngressWith(to, opts)
}

// IngressWith is Ingress with explicit options.
func (g *Graph) IngressWith(to Kind, opts IngressOptions) func(Func) Func {
	return func(fn Func) Func {
		return func(ctx Context, args []Arg) (any, error) {
			i, err := opts.Selector.locate(args)
			if err != nil {
				return nil, err
			}
			normCtx := opts.Context
			if normCtx == nil {
				normCtx = ctx
			}
			normalized, err := g.NormalizeWith(args[i].Value, to, NormalizeOptions{Context: normCtx})
			if err != nil {
				return nil, err
			}
			rewritten := make([]Arg, len(args))
			copy(rewritten, args)
			rewritten[i].Value = normalized
			return fn(ctx, rewritten)
		}
	}
}

// KindHandle is an accessor bound to one kind, the discoverable spelling of
// the same wrapper: g.ForKind("local_proj_folder").Ingress() behaves
// exactly like g.Ingress("local_proj_folder").
type KindHandle struct {
	g    *Graph
	kind Kind
}

// ForKind returns a handle bound to the named kind.
func (g *Graph) ForKind(name Kind) KindHandle {
	return KindHandle{g: g, kind: name}
}

// Ingress is g.Ingress with the handle's kind.
func (h KindHandle) Ingress(sel ...ArgSelector) func(Func) Func {
	return h.g.Ingress(h.kind, sel...)
}

// IngressWith is g.IngressWith with the handle's kind.
func (h KindHandle) IngressWith(opts IngressOptions) func(Func) Func {
	return h.g.IngressWith(h.kind, opts)
}

// Normalize is g.Normalize with the handle's kind as target.
func (h KindHandle) Normalize(value any) (any, error) {
	return h.g.Normalize(value, h.kind)
}
