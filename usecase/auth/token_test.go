package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/gatehouse/authengine/domain"
)

func TestStructuralValidator(t *testing.T) {
	v := StructuralValidator{MinLength: 16}

	cases := []struct {
		name  string
		token string
		valid bool
	}{
		{"empty", "", false},
		{"too short", "abc123", false},
		{"exact length", strings.Repeat("a", 16), true},
		{"longer", NewBearerToken(), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.token)
			if tc.valid && err != nil {
				t.Fatalf("unexpected rejection: %v", err)
			}
			if !tc.valid && !errors.Is(err, domain.ErrMalformedToken) {
				t.Fatalf("got %v, want ErrMalformedToken", err)
			}
		})
	}
}

func TestStructuralValidatorDefaultMinLength(t *testing.T) {
	v := StructuralValidator{}
	if err := v.Validate("short"); !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("default minimum should reject short tokens, got %v", err)
	}
	if err := v.Validate(strings.Repeat("x", 16)); err != nil {
		t.Fatalf("16 bytes should pass the default minimum: %v", err)
	}
}

func TestJWTValidator(t *testing.T) {
	const secret = "test-secret"

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	v := NewJWTValidator(secret, StructuralValidator{MinLength: 16})

	if err := v.Validate(signed); err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if err := v.Validate(signed + "tampered"); !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("tampered token accepted: %v", err)
	}
	if err := v.Validate("not-a-jwt"); !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("garbage accepted: %v", err)
	}

	wrongKey := NewJWTValidator("other-secret", nil)
	if err := wrongKey.Validate(signed); !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("token signed with another key accepted: %v", err)
	}
}

func TestNewBearerToken(t *testing.T) {
	a := NewBearerToken()
	b := NewBearerToken()
	if a == b {
		t.Fatal("tokens must be unique")
	}
	if len(a) != bearerTokenBytes*2 {
		t.Fatalf("unexpected token length %d", len(a))
	}
}
