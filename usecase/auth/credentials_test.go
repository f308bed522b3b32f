package auth

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/gatehouse/authengine/domain"
)

func TestCredentialValidatorBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}

	dir := &fakeDirectory{
		users: map[string]*domain.User{
			"u1": {ID: "u1", Email: "real@x.com", Status: domain.UserStatusActive},
		},
		hashes: map[string]string{"u1": string(hash)},
	}
	v := NewCredentialValidator(dir, nil)

	userID, ok, err := v.Validate(context.Background(), "real@x.com", "correct horse")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !ok || userID != "u1" {
		t.Fatalf("expected match for u1, got (%q, %v)", userID, ok)
	}

	if _, ok, _ := v.Validate(context.Background(), "real@x.com", "wrong"); ok {
		t.Fatal("wrong password must not validate")
	}
}

func TestCredentialValidatorExpectedFailuresAreValues(t *testing.T) {
	dir := &fakeDirectory{
		users: map[string]*domain.User{
			"u1": {ID: "u1", Email: "real@x.com", Status: domain.UserStatusActive},
			"u2": {ID: "u2", Email: "gone@x.com", Status: domain.UserStatusInactive},
		},
		hashes: map[string]string{"u1": "hash:pw"},
	}
	v := NewCredentialValidator(dir, plainVerifier)
	ctx := context.Background()

	cases := []struct {
		name  string
		email string
		pass  string
	}{
		{"unknown email", "nobody@x.com", "pw"},
		{"inactive user", "gone@x.com", "pw"},
		{"wrong password", "real@x.com", "nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userID, ok, err := v.Validate(ctx, tc.email, tc.pass)
			if err != nil {
				t.Fatalf("expected failure as a value, got error %v", err)
			}
			if ok || userID != "" {
				t.Fatalf("expected rejection, got (%q, %v)", userID, ok)
			}
		})
	}
}

func TestCredentialValidatorMissingLoginRow(t *testing.T) {
	dir := &fakeDirectory{
		users: map[string]*domain.User{
			"u1": {ID: "u1", Email: "real@x.com", Status: domain.UserStatusActive},
		},
		hashes: map[string]string{},
	}
	v := NewCredentialValidator(dir, plainVerifier)

	_, ok, err := v.Validate(context.Background(), "real@x.com", "pw")
	if err != nil {
		t.Fatalf("missing login row is an expected failure, got %v", err)
	}
	if ok {
		t.Fatal("user without a login row must not validate")
	}
}
