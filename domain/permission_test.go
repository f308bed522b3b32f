package domain

import "testing"

func TestNewPermissionSetDeduplicates(t *testing.T) {
	set := NewPermissionSet("a", "b", "a", "", "c", "b")
	if len(set) != 3 {
		t.Fatalf("expected 3 entries, got %v", set)
	}
}

func TestPermissionSetUnion(t *testing.T) {
	union := NewPermissionSet("A", "B").Union(NewPermissionSet("B", "C"))
	if len(union) != 3 {
		t.Fatalf("expected {A,B,C}, got %v", union)
	}
	for _, id := range []string{"A", "B", "C"} {
		if !union.Contains(id) {
			t.Fatalf("missing %q", id)
		}
	}
}

func TestPermissionSetContains(t *testing.T) {
	set := NewPermissionSet("read:profile")
	if !set.Contains("read:profile") || set.Contains("write:docs") {
		t.Fatalf("Contains misbehaves on %v", set)
	}
}

func TestEmptyPermissionSetIsCacheMissShaped(t *testing.T) {
	if !NewPermissionSet().IsEmpty() {
		t.Fatal("fresh set should be empty")
	}
	if NewPermissionSet("x").IsEmpty() {
		t.Fatal("populated set should not be empty")
	}
}
