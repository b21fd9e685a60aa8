package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcoach/internal/shared/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			CookieName: "tripcoach_session",
		},
	}
}

func signToken(t *testing.T, cfg *config.Config, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWT.Secret))
	require.NoError(t, err)
	return signed
}

func accessClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": "11111111-1111-1111-1111-111111111111",
		"email":   "sofia@example.com",
		"role":    role,
		"status":  "ACTIVE",
		"type":    "access",
		"exp":     time.Now().Add(15 * time.Minute).Unix(),
	}
}

func newTestRouter(cfg *config.Config, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		role, _ := c.Get("user_role")
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	r.GET("/guarded", chain...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	cfg := testConfig()
	r := newTestRouter(cfg, JWTAuthWithConfig(cfg))

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsBadSignature(t *testing.T) {
	cfg := testConfig()
	other := testConfig()
	other.JWT.Secret = "another-secret"

	token := signToken(t, other, accessClaims("TOURIST"))
	r := newTestRouter(cfg, JWTAuthWithConfig(cfg))

	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	cfg := testConfig()
	claims := accessClaims("TOURIST")
	claims["type"] = "refresh"
	token := signToken(t, cfg, claims)

	r := newTestRouter(cfg, JWTAuthWithConfig(cfg))
	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsBlockedStatus(t *testing.T) {
	cfg := testConfig()
	claims := accessClaims("TOURIST")
	claims["status"] = "BLOCKED"
	token := signToken(t, cfg, claims)

	r := newTestRouter(cfg, JWTAuthWithConfig(cfg))
	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, cfg, accessClaims("GUIDE"))

	r := newTestRouter(cfg, JWTAuthWithConfig(cfg))
	w := doRequest(r, token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "GUIDE", body["role"])
}

func TestJWTAuthReadsSessionCookie(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, cfg, accessClaims("TOURIST"))
	r := newTestRouter(cfg, JWTAuthWithConfig(cfg))

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, cfg, accessClaims("ADMIN"))

	r := newTestRouter(cfg, JWTAuthWithConfig(cfg), RequireAdmin())
	w := doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesRedirectsWrongRoleHome(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, cfg, accessClaims("TOURIST"))

	r := newTestRouter(cfg, JWTAuthWithConfig(cfg), RequireAdmin())
	w := doRequest(r, token)
	require.Equal(t, http.StatusForbidden, w.Code)

	var body struct {
		Status string `json:"status"`
		Errors struct {
			Redirect string `json:"redirect"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "/tourist/dashboard", body.Errors.Redirect)
}

func TestRequireRolesGuideRedirect(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, cfg, accessClaims("GUIDE"))

	r := newTestRouter(cfg, JWTAuthWithConfig(cfg), RequireTourist())
	w := doRequest(r, token)
	require.Equal(t, http.StatusForbidden, w.Code)

	var body struct {
		Errors struct {
			Redirect string `json:"redirect"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/guide/dashboard", body.Errors.Redirect)
}

func TestOptionalAuthPassesWithoutToken(t *testing.T) {
	cfg := testConfig()
	r := newTestRouter(cfg, OptionalAuthWithConfig(cfg))

	w := doRequest(r, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body["role"])
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	cfg := testConfig()
	r := newTestRouter(cfg, OptionalAuthWithConfig(cfg))

	w := doRequest(r, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
}
