package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddRootPersistsInOrder(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	a := t.TempDir()
	b := t.TempDir()
	if err := store.AddRoot(a); err != nil {
		t.Fatalf("AddRoot(a): %v", err)
	}
	if err := store.AddRoot(b); err != nil {
		t.Fatalf("AddRoot(b): %v", err)
	}

	roots, err := store.Roots()
	if err != nil {
		t.Fatalf("Roots: %v", err)
	}
	if len(roots) != 2 || roots[0] != a || roots[1] != b {
		t.Errorf("roots = %v, want [%s %s]", roots, a, b)
	}

	// A fresh store over the same dir sees the persisted state.
	reopened, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	roots2, err := reopened.Roots()
	if err != nil {
		t.Fatal(err)
	}
	if len(roots2) != 2 || roots2[0] != a {
		t.Errorf("persisted roots = %v", roots2)
	}
}

func TestAddRootIdempotent(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a := t.TempDir()
	for i := 0; i < 3; i++ {
		if err := store.AddRoot(a); err != nil {
			t.Fatal(err)
		}
	}
	roots, err := store.Roots()
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 1 {
		t.Errorf("duplicate AddRoot must not grow the list: %v", roots)
	}
}

func TestAddRootRejectsMissingAndFiles(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AddRoot(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for a missing path")
	}

	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := store.AddRoot(f); err == nil {
		t.Error("expected error for a regular file")
	}
}

func TestRemoveRoot(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a := t.TempDir()
	b := t.TempDir()
	for _, r := range []string{a, b} {
		if err := store.AddRoot(r); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.RemoveRoot(a); err != nil {
		t.Fatalf("RemoveRoot: %v", err)
	}
	roots, err := store.Roots()
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 1 || roots[0] != b {
		t.Errorf("roots after remove = %v", roots)
	}

	// Removing an unregistered root is a no-op.
	if err := store.RemoveRoot(a); err != nil {
		t.Errorf("removing an absent root should not fail: %v", err)
	}
}

func TestRootsEmptyWithoutFile(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	roots, err := store.Roots()
	if err != nil {
		t.Fatalf("Roots on empty store: %v", err)
	}
	if len(roots) != 0 {
		t.Errorf("expected no roots, got %v", roots)
	}
}
