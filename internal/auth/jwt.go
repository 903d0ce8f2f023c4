package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token use values embedded in the token_use claim. The refresh endpoint
// only accepts refresh tokens; everything else only accepts access tokens.
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

// ErrWrongTokenUse indicates a token was presented to the wrong endpoint,
// e.g. an access token sent to /auth/refresh.
var ErrWrongTokenUse = errors.New("unexpected token use")

// Claims defines the payload encoded for authenticated users.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Role     string `json:"role"`
	TokenUse string `json:"token_use"`
}

// JWTManager handles issuing and verifying HMAC signed token pairs.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTManager constructs a manager with the given secret and lifetimes.
func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 720 * time.Hour
	}
	return &JWTManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// GeneratePair creates an access/refresh token pair for the provided subject.
func (m *JWTManager) GeneratePair(subject, email, role string) (access, refresh string, err error) {
	access, err = m.generate(subject, email, role, TokenUseAccess, m.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = m.generate(subject, email, role, TokenUseRefresh, m.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (m *JWTManager) generate(subject, email, role, use string, ttl time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("jwt secret must not be empty")
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email:    email,
		Role:     role,
		TokenUse: use,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseAccessToken verifies an access token's signature and payload.
func (m *JWTManager) ParseAccessToken(token string) (*Claims, error) {
	return m.parse(token, TokenUseAccess)
}

// ParseRefreshToken verifies a refresh token's signature and payload.
func (m *JWTManager) ParseRefreshToken(token string) (*Claims, error) {
	return m.parse(token, TokenUseRefresh)
}

func (m *JWTManager) parse(token, expectedUse string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.TokenUse != expectedUse {
		return nil, ErrWrongTokenUse
	}

	return claims, nil
}
