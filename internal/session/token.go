package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
)

// userIDClaims are probed in order for the caller's identifier.
var userIDClaims = []string{"sub", "user_id", "userId", "id", "_id"}

// TokenParser turns a bearer token into a Session.
//
// With a secret, tokens must be HS256 JWTs signed with it and the session is
// keyed by the subject claim. Without one the backend stays the authority:
// the token is forwarded as is and the session is keyed by a hash of the
// whole token. Unverified claims are never trusted, since anyone can mint a
// token naming another shopper.
type TokenParser struct {
	secret []byte
}

// NewTokenParser creates a TokenParser. An empty secret disables verification.
func NewTokenParser(secret string) *TokenParser {
	p := &TokenParser{}
	if secret != "" {
		p.secret = []byte(secret)
	}
	return p
}

// Verifies reports whether tokens are checked against a secret.
func (p *TokenParser) Verifies() bool {
	return len(p.secret) > 0
}

// Parse returns Anonymous for an empty token and an Authenticated session
// otherwise. It fails with utils.ErrInvalidToken when verification is on and
// the token does not pass it.
func (p *TokenParser) Parse(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Anonymous{}, nil
	}

	claims := jwt.MapClaims{}
	if p.Verifies() {
		_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return p.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrInvalidToken, err)
		}
		userID := userIDFromClaims(claims)
		if userID == "" {
			return nil, fmt.Errorf("%w: no subject claim", utils.ErrInvalidToken)
		}
		return Authenticated{Token: token, UserID: userID}, nil
	}

	return Authenticated{Token: token, UserID: opaqueUserID(token)}, nil
}

func userIDFromClaims(claims jwt.MapClaims) string {
	for _, key := range userIDClaims {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

func opaqueUserID(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "tok_" + hex.EncodeToString(sum[:])
}

// IssueToken signs an HS256 token for userID. It is used by tests and local
// tooling; production tokens come from the storefront backend.
func IssueToken(secret, userID string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID})
	return t.SignedString([]byte(secret))
}
