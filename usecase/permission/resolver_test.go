package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/gatehouse/authengine/domain"
)

type stubAssignments struct {
	direct    map[string][]string
	inherited map[string][]string
	groups    map[string][]string
	err       error
}

func (s *stubAssignments) UserPermissions(_ context.Context, userID string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.direct[userID], nil
}

func (s *stubAssignments) GroupPermissions(_ context.Context, userID string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.inherited[userID], nil
}

func (s *stubAssignments) ActiveGroups(_ context.Context, userID string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.groups[userID], nil
}

func TestResolveUnionsDirectAndInherited(t *testing.T) {
	r := NewResolver(&stubAssignments{
		direct:    map[string][]string{"u": {"A", "B"}},
		inherited: map[string][]string{"u": {"B", "C"}},
	}, nil)

	set, err := r.Resolve(context.Background(), "u")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(set) != 3 {
		t.Fatalf("expected {A,B,C}, got %v", set)
	}
	for _, id := range []string{"A", "B", "C"} {
		if !set.Contains(id) {
			t.Fatalf("missing %q in %v", id, set)
		}
	}
}

func TestResolveDeduplicatesAcrossSources(t *testing.T) {
	// u1 holds read:profile directly and again through the editors group.
	r := NewResolver(&stubAssignments{
		direct:    map[string][]string{"u1": {"read:profile"}},
		inherited: map[string][]string{"u1": {"write:docs", "read:profile"}},
		groups:    map[string][]string{"u1": {"editors"}},
	}, nil)

	set, err := r.Resolve(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(set) != 2 || !set.Contains("read:profile") || !set.Contains("write:docs") {
		t.Fatalf("expected {read:profile, write:docs}, got %v", set)
	}
}

func TestResolveUserWithNoGrants(t *testing.T) {
	r := NewResolver(&stubAssignments{}, nil)

	set, err := r.Resolve(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !set.IsEmpty() {
		t.Fatalf("expected empty set, got %v", set)
	}
}

func TestResolvePropagatesStorageErrors(t *testing.T) {
	boom := domain.StorageFailure("perm", errors.New("down"))
	r := NewResolver(&stubAssignments{err: boom}, nil)

	if _, err := r.Resolve(context.Background(), "u"); !errors.Is(err, boom) {
		t.Fatalf("got %v, want the storage error", err)
	}
}

func TestResolveGroupMemberships(t *testing.T) {
	r := NewResolver(&stubAssignments{
		groups: map[string][]string{"u1": {"editors", "reviewers"}},
	}, nil)

	groups, err := r.ResolveGroupMemberships(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ResolveGroupMemberships: %v", err)
	}
	if len(groups) != 2 || groups[0] != "editors" {
		t.Fatalf("unexpected groups: %v", groups)
	}
}
