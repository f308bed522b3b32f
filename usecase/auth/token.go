package auth

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/golang-jwt/jwt/v4"

	"github.com/gatehouse/authengine/domain"
)

// TokenValidator checks a bearer token before it is looked up in the session
// store. Validation failures are returned as domain.ErrMalformedToken.
type TokenValidator interface {
	Validate(token string) error
}

// StructuralValidator accepts any non-empty token of at least MinLength
// bytes. It is a weak boundary on purpose: callers needing cryptographic
// assurance compose a stronger validator in front of it.
type StructuralValidator struct {
	MinLength int
}

func (v StructuralValidator) Validate(token string) error {
	min := v.MinLength
	if min <= 0 {
		min = 16
	}
	if token == "" || len(token) < min {
		return domain.ErrMalformedToken
	}
	return nil
}

// JWTValidator verifies an HMAC-signed JWT and then delegates to the next
// validator in the chain.
type JWTValidator struct {
	secret []byte
	next   TokenValidator
}

func NewJWTValidator(secret string, next TokenValidator) *JWTValidator {
	return &JWTValidator{
		secret: []byte(secret),
		next:   next,
	}
}

func (v *JWTValidator) Validate(token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrMalformedToken
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrMalformedToken
	}
	if v.next != nil {
		return v.next.Validate(token)
	}
	return nil
}

const bearerTokenBytes = 32

// NewBearerToken generates an opaque session secret, distinct from any
// long-term credential.
func NewBearerToken() string {
	buf := make([]byte, bearerTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
