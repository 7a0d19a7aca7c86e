package compiler

import (
	"fmt"
	"testing"
)

func TestSymbols_ResolveInsertsOnFirstReference(t *testing.T) {
	symbols := NewSymbols()

	idx, isNew, err := symbols.Resolve("x")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !isNew {
		t.Fatal("expected first reference to 'x' to be new")
	}
	if idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}

	idx2, isNew2, err := symbols.Resolve("x")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if isNew2 {
		t.Fatal("expected second reference to 'x' to not be new")
	}
	if idx2 != idx {
		t.Fatalf("expected stable index %d, got %d", idx, idx2)
	}
}

func TestSymbols_MonotonicFirstSeenOrder(t *testing.T) {
	symbols := NewSymbols()

	names := []string{"a", "b", "c"}
	for i, name := range names {
		idx, _, err := symbols.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if idx != i {
			t.Fatalf("Resolve(%q): expected index %d, got %d", name, i, idx)
		}
	}

	if symbols.Len() != len(names) {
		t.Fatalf("expected Len() %d, got %d", len(names), symbols.Len())
	}
}

func TestSymbols_ExceedsCap(t *testing.T) {
	symbols := NewSymbols()

	for i := 0; i < maxSymbols; i++ {
		name := fmt.Sprintf("sym%d", i)
		if _, _, err := symbols.Resolve(name); err != nil {
			t.Fatalf("Resolve entry %d: %v", i, err)
		}
	}

	if _, _, err := symbols.Resolve("one-too-many"); err == nil {
		t.Fatal("expected an error past the symbol table cap")
	}
}
