package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/veecerts/asset-api/internal/config"
	"github.com/veecerts/asset-api/internal/domain/account"
)

const (
	tokenIssuer  = "veecerts"
	tokenSubject = "User Token"
)

var errInvalidToken = errors.New("invalid token")

// Claims carries the user's email alongside the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Manager issues and verifies HS256 session tokens.
type Manager struct {
	secret []byte
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{secret: []byte(cfg.SecretKey)}
}

// Issue signs a session token for the user.
func (m *Manager) Issue(user *account.User, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   tokenSubject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: user.Email,
	})
	return token.SignedString(m.secret)
}

// Verify parses a session token and returns the email claim.
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Email == "" {
		return "", errInvalidToken
	}
	return claims.Email, nil
}
