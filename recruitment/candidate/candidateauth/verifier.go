package candidateauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingSubject = errors.New("candidateauth: token has no subject")

// Claims carried by identity provider session tokens
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// AccountID is the token subject
func (c *Claims) AccountID() kernel.AccountID {
	return kernel.NewAccountID(c.Subject)
}

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// JWTVerifier checks RS256 tokens against a key source
type JWTVerifier struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
}

// NewJWKSVerifier fetches signing keys from jwksURL and keeps them
// refreshed in the background until ctx is done
func NewJWKSVerifier(ctx context.Context, jwksURL, issuer string) (*JWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("candidateauth: JWKS url is required")
	}

	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("candidateauth: load JWKS: %w", err)
	}
	return NewJWTVerifier(k.Keyfunc, issuer), nil
}

// NewJWTVerifier builds a verifier over any key source. An empty issuer
// skips the iss check.
func NewJWTVerifier(kf jwt.Keyfunc, issuer string) *JWTVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &JWTVerifier{
		keyfunc: kf,
		parser:  jwt.NewParser(opts...),
	}
}

func (v *JWTVerifier) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	if _, err := v.parser.ParseWithClaims(token, claims, v.keyfunc); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
