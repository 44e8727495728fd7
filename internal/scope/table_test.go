package scope

import (
	"errors"
	"testing"

	"github.com/devaloop-labs/devalang-sub003/internal/core"
)

func TestGetWalksParentChain(t *testing.T) {
	root := New()
	root.Set("x", core.Number(1))
	child := WithParent(root)

	v, err := child.Get("x")
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := v.AsNumber(); n != 1 {
		t.Fatalf("x = %v, want 1", n)
	}
}

func TestGetUnknownIdentifierErrors(t *testing.T) {
	root := New()
	if _, err := root.Get("missing"); !errors.Is(err, ErrUnknownIdentifier) {
		t.Fatalf("expected ErrUnknownIdentifier, got %v", err)
	}
}

func TestVarUpdateHoistsToAncestor(t *testing.T) {
	root := New()
	root.SetWithType("count", core.Number(0), BindVar)
	child := WithParent(root)

	if err := child.Update("count", core.Number(5)); err != nil {
		t.Fatal(err)
	}
	v, _ := root.Get("count")
	if n, _ := v.AsNumber(); n != 5 {
		t.Fatalf("root count = %v, want 5", n)
	}
	if _, ok := child.variables["count"]; ok {
		t.Fatal("var update should not create a local binding when an ancestor already owns the name")
	}
}

func TestConstUpdateFails(t *testing.T) {
	root := New()
	root.SetWithType("pi", core.Number(3), BindConst)

	err := root.Update("pi", core.Number(4))
	if !errors.Is(err, ErrConstReassignment) {
		t.Fatalf("expected ErrConstReassignment, got %v", err)
	}
}

func TestLetShadowingInChildScope(t *testing.T) {
	root := New()
	root.Set("x", core.Number(1))
	child := WithParent(root)
	child.Set("x", core.Number(2))

	v, _ := child.Get("x")
	if n, _ := v.AsNumber(); n != 2 {
		t.Fatalf("child x = %v, want 2 (shadowed)", n)
	}
	rv, _ := root.Get("x")
	if n, _ := rv.AsNumber(); n != 1 {
		t.Fatalf("root x = %v, want 1 (unaffected by shadow)", n)
	}
}

func TestUpdateUnboundCreatesLetInCurrentScope(t *testing.T) {
	root := New()
	child := WithParent(root)
	if err := child.Update("fresh", core.Number(9)); err != nil {
		t.Fatal(err)
	}
	if _, err := root.Get("fresh"); err == nil {
		t.Fatal("expected fresh to stay local to child, not leak to root")
	}
	v, err := child.Get("fresh")
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := v.AsNumber(); n != 9 {
		t.Fatalf("fresh = %v, want 9", n)
	}
}

func TestResolveFollowsIdentifierChain(t *testing.T) {
	root := New()
	root.Set("a", core.Identifier("b"))
	root.Set("b", core.Identifier("c"))
	root.Set("c", core.Number(42))

	v, err := root.Resolve("a", 32)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := v.AsNumber(); n != 42 {
		t.Fatalf("resolved a = %v, want 42", n)
	}
}

func TestResolveExceedingDepthErrors(t *testing.T) {
	root := New()
	root.Set("a", core.Identifier("a")) // self-cycle
	if _, err := root.Resolve("a", 32); err == nil {
		t.Fatal("expected depth-exceeded error for a cyclic identifier chain")
	}
}

func TestGetBindingReportsDeclaredKind(t *testing.T) {
	root := New()
	root.SetWithType("v", core.Number(1), BindVar)
	binding, ok := root.GetBinding("v")
	if !ok || binding != BindVar {
		t.Fatalf("GetBinding = (%v, %v), want (BindVar, true)", binding, ok)
	}
	if _, ok := root.GetBinding("nope"); ok {
		t.Fatal("expected GetBinding to report false for an unbound name")
	}
}
