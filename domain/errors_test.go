package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsDomainError(t *testing.T) {
	if !IsDomainError(ErrSessionNotFound, ErrCodeNotFound) {
		t.Fatal("sentinel should match its code")
	}
	if IsDomainError(ErrSessionNotFound, ErrCodeUnauthorized) {
		t.Fatal("sentinel should not match another code")
	}
	wrapped := fmt.Errorf("lookup: %w", ErrUserNotFound)
	if !IsDomainError(wrapped, ErrCodeNotFound) {
		t.Fatal("wrapped sentinel should still match")
	}
}

func TestFatalClassification(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"nil", nil, false},
		{"auth failure", ErrInvalidCredentials, false},
		{"not found", ErrSessionNotFound, false},
		{"storage", StorageFailure("sessions.upsert", errors.New("conn reset")), true},
		{"untagged", errors.New("driver panic"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsFatal(tc.err); got != tc.fatal {
				t.Fatalf("IsFatal(%v) = %v, want %v", tc.err, got, tc.fatal)
			}
		})
	}
}

func TestStorageFailureWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := StorageFailure("sessions.touch", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause should survive wrapping")
	}
}

func TestAuthFailureForCarriesUserID(t *testing.T) {
	err := AuthFailureFor("u1", "user not found")
	var dErr *Error
	if !errors.As(err, &dErr) || dErr.UserID != "u1" {
		t.Fatalf("userId not carried: %+v", dErr)
	}
	if dErr.Code != ErrCodeUnauthorized {
		t.Fatalf("code = %s, want UNAUTHORIZED", dErr.Code)
	}
}
