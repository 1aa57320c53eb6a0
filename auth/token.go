/*
token.go - Signed session tokens

Sessions cross the HTTP boundary as HMAC-signed JWTs. The Signer is the
only holder of the secret; handlers issue on login and verify on every
authenticated request.
*/
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// ErrInvalidToken is returned for any token that fails to parse,
// verify, or is expired.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the JWT payload carrying a Session.
type Claims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	AgentID  string `json:"agentId,omitempty"`
	jwt.StandardClaims
}

// Signer issues and verifies session tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the session, valid for the configured TTL
// from now.
func (s *Signer) Issue(session Session, now time.Time) (string, error) {
	claims := Claims{
		Username: session.Username,
		Name:     session.Name,
		Role:     string(session.Role),
		AgentID:  session.AgentID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the Session it carries.
func (s *Signer) Verify(tokenString string) (Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Session{}, ErrInvalidToken
	}

	return Session{
		Username: claims.Username,
		Name:     claims.Name,
		Role:     Role(claims.Role),
		AgentID:  claims.AgentID,
	}, nil
}
