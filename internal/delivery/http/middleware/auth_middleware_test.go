package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dealscout/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccessSecret = "test-access-secret"

func testAuthMiddleware() *AuthMiddleware {
	cfg := &config.Config{}
	cfg.SecretKey.Access = testAccessSecret

	return NewAuthMiddleware(cfg)
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAccessSecret))
	require.NoError(t, err)

	return token
}

func invoke(middleware echo.MiddlewareFunc, authorization string) (echo.Context, *httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/deals", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen echo.Context
	err := middleware(func(c echo.Context) error {
		seen = c
		return nil
	})(c)

	return seen, rec, err
}

func TestAuthenticate_ExtractsCallerIdentity(t *testing.T) {
	userID := uuid.New()
	token := signedToken(t, jwt.MapClaims{
		"sub":   userID.String(),
		"prefs": []any{"Food", "Nightlife"},
	})

	c, _, err := invoke(testAuthMiddleware().Authenticate, "Bearer "+token)
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, userID, UserID(c))
	assert.Equal(t, []string{"Food", "Nightlife"}, Preferences(c))
}

func TestAuthenticate_RejectsMissingToken(t *testing.T) {
	c, rec, err := invoke(testAuthMiddleware().Authenticate, "")
	require.NoError(t, err)

	assert.Nil(t, c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_RejectsBadSignature(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.New().String(),
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	c, rec, err := invoke(testAuthMiddleware().Authenticate, "Bearer "+token)
	require.NoError(t, err)

	assert.Nil(t, c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthenticate_AnonymousPassesThrough(t *testing.T) {
	c, _, err := invoke(testAuthMiddleware().OptionalAuthenticate, "")
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, uuid.Nil, UserID(c))
	assert.Nil(t, Preferences(c))
}

func TestOptionalAuthenticate_InvalidTokenTreatedAsAnonymous(t *testing.T) {
	c, _, err := invoke(testAuthMiddleware().OptionalAuthenticate, "Bearer not-a-token")
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, uuid.Nil, UserID(c))
}

func TestClaimedPreferences_TokensWithoutClaim(t *testing.T) {
	assert.Nil(t, claimedPreferences(jwt.MapClaims{"sub": "x"}))
	assert.Empty(t, claimedPreferences(jwt.MapClaims{"prefs": []any{42, ""}}))
}
