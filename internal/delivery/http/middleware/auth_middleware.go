package middleware

import (
	"strings"

	"dealscout/config"
	"dealscout/internal/delivery/http/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys the middleware stores caller identity under.
const (
	userIDKey      = "userID"
	preferencesKey = "preferences"
)

// AuthMiddleware validates JWT access tokens.
type AuthMiddleware struct {
	cfg *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// Authenticate rejects requests without a valid Bearer token and stores the
// caller's user ID on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, preferences, err := m.callerID(c)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", err.Error())
		}

		c.Set(userIDKey, userID)
		c.Set(preferencesKey, preferences)

		return next(c)
	}
}

// OptionalAuthenticate resolves the caller when a valid token is present and
// lets anonymous requests through untouched. Used on endpoints that degrade
// rather than fail without an identity.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return next(c)
		}
		if userID, preferences, err := m.callerID(c); err == nil {
			c.Set(userIDKey, userID)
			c.Set(preferencesKey, preferences)
		}

		return next(c)
	}
}

func (m *AuthMiddleware) callerID(c echo.Context) (uuid.UUID, []string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, nil, errors.New("Authorization header is missing")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return uuid.Nil, nil, errors.New("Invalid token format, must be Bearer token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.cfg.SecretKey.Access), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, nil, errors.New("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, nil, errors.New("Failed to parse token claims")
	}

	subject, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, nil, errors.New("User ID missing from token")
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, nil, errors.New("Invalid user ID format in token")
	}

	return userID, claimedPreferences(claims), nil
}

// claimedPreferences extracts the optional "prefs" claim. Tokens without it
// simply carry no profile preferences.
func claimedPreferences(claims jwt.MapClaims) []string {
	raw, ok := claims["prefs"].([]any)
	if !ok {
		return nil
	}

	preferences := make([]string, 0, len(raw))
	for _, item := range raw {
		if preference, ok := item.(string); ok && preference != "" {
			preferences = append(preferences, preference)
		}
	}

	return preferences
}

// UserID returns the authenticated caller's ID, or uuid.Nil for anonymous
// requests.
func UserID(c echo.Context) uuid.UUID {
	if userID, ok := c.Get(userIDKey).(uuid.UUID); ok {
		return userID
	}

	return uuid.Nil
}

// Preferences returns the profile preference categories carried by the
// caller's token, or nil for anonymous requests and tokens without the claim.
func Preferences(c echo.Context) []string {
	if preferences, ok := c.Get(preferencesKey).([]string); ok {
		return preferences
	}

	return nil
}
