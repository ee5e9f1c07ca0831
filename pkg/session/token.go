package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Manager issues and validates signed guest-session tokens. A token only
// carries session identity so the cart key survives reloads; it is not an
// authentication credential.
type Manager struct {
	secretKey  string
	expiryDays int
}

type Claims struct {
	SessionID string `json:"session_id"`
	Locale    string `json:"locale,omitempty"`
	jwt.RegisteredClaims
}

func NewManager(secretKey string, expiryDays int) *Manager {
	return &Manager{
		secretKey:  secretKey,
		expiryDays: expiryDays,
	}
}

func (m *Manager) Issue(sessionID, locale string) (string, error) {
	claims := &Claims{
		SessionID: sessionID,
		Locale:    locale,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24 * time.Duration(m.expiryDays))),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid session token")
}
