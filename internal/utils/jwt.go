package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Claims are the custom JWT claims carried by both token classes.  Access
// tokens authorize API calls; refresh tokens are accepted only by the
// refresh endpoint.  Both encode the user id and role so that a fresh pair
// can be minted without an extra lookup on the happy path.
type Claims struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair bundles a freshly signed access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenIssuer signs and verifies the two token classes.  Each class has its
// own secret and time-to-live so that leaking one secret never compromises
// the other class.
type TokenIssuer struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

// ErrInvalidToken is returned when a token fails signature, expiry or
// claims-shape validation.  Callers map it to 401.
var ErrInvalidToken = errors.New("invalid token")

// NewTokenIssuer constructs a TokenIssuer from the two secrets and TTLs.
func NewTokenIssuer(accessSecret string, accessTTL time.Duration, refreshSecret string, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		AccessSecret:  accessSecret,
		AccessTTL:     accessTTL,
		RefreshSecret: refreshSecret,
		RefreshTTL:    refreshTTL,
	}
}

// IssuePair signs an access and a refresh token for the given user.  The two
// signatures are independent, so the refresh token is signed on a separate
// goroutine while the access token is signed on the calling one.  Both
// results are joined before returning; if either signing fails the whole
// pair is discarded.
func (i *TokenIssuer) IssuePair(userID uint64, role string) (TokenPair, error) {
	type signed struct {
		token string
		err   error
	}
	refresh := make(chan signed, 1)
	go func() {
		t, err := i.sign(userID, role, i.RefreshSecret, i.RefreshTTL)
		refresh <- signed{token: t, err: err}
	}()

	access, err := i.sign(userID, role, i.AccessSecret, i.AccessTTL)
	r := <-refresh
	if err != nil {
		return TokenPair{}, err
	}
	if r.err != nil {
		return TokenPair{}, r.err
	}
	return TokenPair{AccessToken: access, RefreshToken: r.token}, nil
}

// VerifyAccess validates an access token and returns its claims.
func (i *TokenIssuer) VerifyAccess(raw string) (*Claims, error) {
	return verify(raw, i.AccessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (i *TokenIssuer) VerifyRefresh(raw string) (*Claims, error) {
	return verify(raw, i.RefreshSecret)
}

// sign builds and signs an HS256 JWT carrying the user id and role plus the
// standard exp/iat claims derived from the given TTL.
func (i *TokenIssuer) sign(userID uint64, role string, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// verify parses a token against the given secret, accepting only the HMAC
// family of signing methods.  Expired, malformed or foreign-signed tokens
// all surface as ErrInvalidToken.
func verify(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
