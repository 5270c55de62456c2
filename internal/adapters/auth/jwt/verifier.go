package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"vet-clinic-scheduling/internal/ports/auth"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrMissingUserID = errors.New("jwt claims missing user id")
)

// consoleClaims es el payload que emite el login de la consola.
// sub = user id.
type consoleClaims struct {
	Email    string `json:"email,omitempty"`
	ClinicID string `json:"clinic_id,omitempty"`
	Role     string `json:"role,omitempty"`
	gojwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier con tokens HS256.
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		leeway: 30 * time.Second,
	}
}

var _ auth.AuthVerifier = (*Verifier)(nil)

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithLeeway(v.leeway),
		gojwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(v.issuer))
	}

	var cc consoleClaims
	_, err := gojwt.ParseWithClaims(token, &cc, func(t *gojwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	uid := strings.TrimSpace(cc.Subject)
	if uid == "" {
		return auth.Claims{}, ErrMissingUserID
	}

	return auth.Claims{
		UserID:   uid,
		Email:    strings.ToLower(strings.TrimSpace(cc.Email)),
		ClinicID: cc.ClinicID,
		Role:     cc.Role,
	}, nil
}

// Sign emite un token para userID. Lo usan los tests y el seed local.
func (v *Verifier) Sign(c auth.Claims, ttl time.Duration, now time.Time) (string, error) {
	if v == nil || len(v.secret) == 0 {
		return "", ErrNotConfigured
	}
	cc := consoleClaims{
		Email:    c.Email,
		ClinicID: c.ClinicID,
		Role:     c.Role,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    v.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, cc).SignedString(v.secret)
}
