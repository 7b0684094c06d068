package auth

import (
	"time"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenConfig carries the signing material shared by issuer and validator.
// It is passed in explicitly; nothing here reads ambient configuration.
type TokenConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

type Claims struct {
	Username string   `json:"name"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type TokenIssuer struct {
	cfg TokenConfig
}

func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// Issue signs a claim set for a validated identity. The expiry window is
// fixed by configuration; callers cannot mint longer-lived tokens.
func (i *TokenIssuer) Issue(userID uuid.UUID, username string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.cfg.Secret)
}

type TokenValidator struct {
	cfg TokenConfig
}

func NewTokenValidator(cfg TokenConfig) *TokenValidator {
	return &TokenValidator{cfg: cfg}
}

func (v *TokenValidator) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, domain.ErrInvalidToken
	}
	return v.cfg.Secret, nil
}

// Validate verifies structure, signature, issuer, audience and expiry with
// zero clock skew. Every failure mode collapses to ErrInvalidToken so the
// caller cannot tell a bad signature from an expired token.
func (v *TokenValidator) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// DerivePrincipal parses a token without checking its lifetime, for flows
// that need the claims of an already-expired token. Signature, issuer and
// audience are still enforced. Not a substitute for Validate on request
// paths.
func (v *TokenValidator) DerivePrincipal(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	if claims.Issuer != v.cfg.Issuer {
		return nil, domain.ErrInvalidToken
	}
	audienceOK := false
	for _, aud := range claims.Audience {
		if aud == v.cfg.Audience {
			audienceOK = true
			break
		}
	}
	if !audienceOK {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
