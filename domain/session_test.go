package domain

import (
	"testing"
	"time"
)

func TestSessionExpiryBoundary(t *testing.T) {
	t0 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	timeout := 28800 * time.Second
	session := &Session{LastAccessTime: t0}

	cases := []struct {
		name    string
		at      time.Time
		expired bool
	}{
		{"just created", t0, false},
		{"one second before timeout", t0.Add(timeout - time.Second), false},
		{"exactly at timeout", t0.Add(timeout), false},
		{"one second past timeout", t0.Add(timeout + time.Second), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := session.IsExpired(timeout, tc.at); got != tc.expired {
				t.Fatalf("IsExpired at %v = %v, want %v", tc.at, got, tc.expired)
			}
		})
	}
}

func TestNilSessionIsExpired(t *testing.T) {
	var session *Session
	if !session.IsExpired(time.Hour, time.Now()) {
		t.Fatal("nil session must read as expired")
	}
}

func TestSessionAge(t *testing.T) {
	t0 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session := &Session{LastAccessTime: t0}
	if got := session.Age(t0.Add(90 * time.Second)); got != 90*time.Second {
		t.Fatalf("Age = %v, want 90s", got)
	}
}

func TestCachedPermissionsUnionsChains(t *testing.T) {
	session := &Session{
		UserPermissionChain:  []string{"read:profile"},
		GroupPermissionChain: []string{"write:docs", "read:profile"},
	}
	set := session.CachedPermissions()
	if len(set) != 2 || !set.Contains("read:profile") || !set.Contains("write:docs") {
		t.Fatalf("unexpected union: %v", set)
	}
}
