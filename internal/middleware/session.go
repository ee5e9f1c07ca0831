package middleware

import (
	"strings"

	"golang-storefront-backend/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionHeader = "X-Session-Token"

var supportedLocales = map[string]bool{"en": true, "ar": true}

type SessionMiddleware struct {
	manager *session.Manager
}

func NewSessionMiddleware(manager *session.Manager) *SessionMiddleware {
	return &SessionMiddleware{manager: manager}
}

// GuestSession resolves the guest session for every request. A valid token
// from the session header (or a Bearer Authorization header) is reused; a
// missing, expired or tampered token gets a fresh session issued on the
// response. Requests never fail over session state, at worst the visitor
// starts with an empty cart.
func (s *SessionMiddleware) GuestSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := resolveLocale(c)

		if claims := s.resolveClaims(c); claims != nil {
			c.Set("session_id", claims.SessionID)
			if claims.Locale != "" && c.GetHeader("Accept-Language") == "" {
				locale = claims.Locale
			}
			c.Set("locale", locale)
			c.Next()
			return
		}

		sessionID := uuid.New().String()
		token, err := s.manager.Issue(sessionID, locale)
		if err == nil {
			c.Header(sessionHeader, token)
		}

		c.Set("session_id", sessionID)
		c.Set("locale", locale)
		c.Next()
	}
}

func (s *SessionMiddleware) resolveClaims(c *gin.Context) *session.Claims {
	tokenString := c.GetHeader(sessionHeader)
	if tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		return nil
	}

	claims, err := s.manager.Validate(tokenString)
	if err != nil {
		return nil
	}
	return claims
}

func resolveLocale(c *gin.Context) string {
	lang := c.GetHeader("Accept-Language")
	if idx := strings.IndexAny(lang, ",;-"); idx >= 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if supportedLocales[lang] {
		return lang
	}
	return "en"
}

// GetSessionID helper function to extract the guest session ID from context
func GetSessionID(c *gin.Context) string {
	if sessionID, exists := c.Get("session_id"); exists {
		return sessionID.(string)
	}
	return ""
}

// GetLocale helper function to extract the resolved locale from context
func GetLocale(c *gin.Context) string {
	if locale, exists := c.Get("locale"); exists {
		return locale.(string)
	}
	return "en"
}
