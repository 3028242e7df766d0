package kind

import (
	"errors"
	"fmt"
	"testing"
)

// ingressGraph has raw: -> norm: so wrappers have something to normalize.
func ingressGraph(t *testing.T) *Graph {
	t.Helper()
	g := New()
	stringKind(g, "raw")
	stringKind(g, "norm")
	g.RegisterEdge("raw", "norm", relabel("raw", "norm"))
	return g
}

// describe echoes its arguments so tests can see exactly what the wrapped
// function observed.
func describe(_ Context, args []Arg) (any, error) {
	out := ""
	for _, a := range args {
		out += fmt.Sprintf("%s=%v;", a.Name, a.Value)
	}
	return out, nil
}

func TestIngressFourSyntaxesEquivalent(t *testing.T) {
	g := ingressGraph(t)

	wrappers := map[string]func(Func) Func{
		"kind+name":   g.Ingress("norm", ByName("project")),
		"kind only":   g.Ingress("norm"),
		"handle+name": g.ForKind("norm").Ingress(ByName("project")),
		"handle only": g.ForKind("norm").Ingress(),
	}

	inputs := []string{"raw:dol", "raw:meshed", "norm:already"}
	for _, input := range inputs {
		args := []Arg{{Name: "project", Value: input}, {Name: "depth", Value: 2}}
		want := ""
		for name, wrap := range wrappers {
			got, err := wrap(describe)(nil, args)
			if err != nil {
				t.Fatalf("%s(%s): %v", name, input, err)
			}
			if want == "" {
				want = got.(string)
				continue
			}
			if got != want {
				t.Errorf("%s(%s) = %v, other syntaxes gave %v", name, input, got, want)
			}
		}
		if want != fmt.Sprintf("project=norm:%s;depth=2;", trimAfterColon(input)) {
			t.Errorf("wrapped function saw %q", want)
		}
	}
}

func trimAfterColon(s string) string {
	for i := range s {
		if s[i] == ':' {
			return s[i+1:]
		}
	}
	return s
}

func TestIngressDefaultsToFirstArgument(t *testing.T) {
	g := ingressGraph(t)
	wrapped := g.Ingress("norm")(describe)

	got, err := wrapped(nil, []Arg{{Name: "p", Value: "raw:x"}, {Name: "other", Value: "raw:y"}})
	if err != nil {
		t.Fatalf("wrapped: %v", err)
	}
	if got != "p=norm:x;other=raw:y;" {
		t.Errorf("only the first argument should be normalized, got %v", got)
	}
}

func TestIngressByIndex(t *testing.T) {
	g := ingressGraph(t)
	wrapped := g.Ingress("norm", ByIndex(1))(describe)

	got, err := wrapped(nil, []Arg{{Name: "p", Value: "raw:x"}, {Name: "q", Value: "raw:y"}})
	if err != nil {
		t.Fatalf("wrapped: %v", err)
	}
	if got != "p=raw:x;q=norm:y;" {
		t.Errorf("got %v", got)
	}
}

func TestIngressNormalizationFailsBeforeCall(t *testing.T) {
	g := ingressGraph(t)
	executed := false
	wrapped := g.Ingress("norm")(func(_ Context, _ []Arg) (any, error) {
		executed = true
		return nil, nil
	})

	_, err := wrapped(nil, []Arg{{Name: "p", Value: 42}})
	var ue *UnrecognizedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnrecognizedError, got %v", err)
	}
	if executed {
		t.Error("wrapped function must not run when normalization fails")
	}
}

func TestIngressUnknownArgumentName(t *testing.T) {
	g := ingressGraph(t)
	wrapped := g.Ingress("norm", ByName("missing"))(describe)

	if _, err := wrapped(nil, []Arg{{Name: "p", Value: "raw:x"}}); err == nil {
		t.Error("expected error for unknown argument name")
	}
}

func TestIngressDecorationTimeContext(t *testing.T) {
	g := New()
	stringKind(g, "raw")
	stringKind(g, "norm")
	g.RegisterEdge("raw", "norm", func(v any, ctx Context) (any, error) {
		suffix, _ := ctx["suffix"].(string)
		return "norm:" + suffix, nil
	})

	wrapped := g.IngressWith("norm", IngressOptions{Context: Context{"suffix": "fixed"}})(describe)
	// The decoration-time context wins over the call-time one.
	got, err := wrapped(Context{"suffix": "call"}, []Arg{{Name: "p", Value: "raw:x"}})
	if err != nil {
		t.Fatalf("wrapped: %v", err)
	}
	if got != "p=norm:fixed;" {
		t.Errorf("got %v", got)
	}
}

func TestIngressOriginalArgsUntouched(t *testing.T) {
	g := ingressGraph(t)
	wrapped := g.Ingress("norm")(describe)

	args := []Arg{{Name: "p", Value: "raw:x"}}
	if _, err := wrapped(nil, args); err != nil {
		t.Fatal(err)
	}
	if args[0].Value != "raw:x" {
		t.Error("wrapper must not mutate the caller's argument slice")
	}
}
