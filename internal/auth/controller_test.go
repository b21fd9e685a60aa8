package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcoach/internal/shared/config"
	"tripcoach/internal/users"
)

func newRefreshRouter(t *testing.T, cfg *config.Config, svc Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/refresh", NewController(svc, cfg).RefreshToken)
	return router
}

func loginPair(t *testing.T, svc Service, email, password string) *AuthResponse {
	t.Helper()
	resp, err := svc.Login(context.Background(), &LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return resp
}

func TestRefreshTokenFromCookie(t *testing.T) {
	repo := newFakeRepository()
	cfg := testConfig()
	cfg.JWT.CookieName = "tripcoach_session"
	svc := NewService(repo, cfg)
	seedUser(repo, "mina@example.com", "secret123", users.RoleTourist, users.StatusActive)
	pair := loginPair(t, svc, "mina@example.com", "secret123")

	// Browser flow: no JSON body, refresh token in its own cookie.
	req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(""))
	req.AddCookie(&http.Cookie{Name: "tripcoach_session_refresh", Value: pair.RefreshToken})

	w := httptest.NewRecorder()
	newRefreshRouter(t, cfg, svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
}

func TestRefreshTokenRejectsAccessTokenCookie(t *testing.T) {
	repo := newFakeRepository()
	cfg := testConfig()
	cfg.JWT.CookieName = "tripcoach_session"
	svc := NewService(repo, cfg)
	seedUser(repo, "mina@example.com", "secret123", users.RoleTourist, users.StatusActive)
	pair := loginPair(t, svc, "mina@example.com", "secret123")

	// An access token in the refresh cookie is the wrong token type.
	req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(""))
	req.AddCookie(&http.Cookie{Name: "tripcoach_session_refresh", Value: pair.AccessToken})

	w := httptest.NewRecorder()
	newRefreshRouter(t, cfg, svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshTokenWithoutBodyOrCookie(t *testing.T) {
	repo := newFakeRepository()
	cfg := testConfig()
	cfg.JWT.CookieName = "tripcoach_session"
	svc := NewService(repo, cfg)

	req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(""))
	w := httptest.NewRecorder()
	newRefreshRouter(t, cfg, svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginSetsSessionAndRefreshCookies(t *testing.T) {
	repo := newFakeRepository()
	cfg := testConfig()
	cfg.JWT.CookieName = "tripcoach_session"
	svc := NewService(repo, cfg)
	seedUser(repo, "mina@example.com", "secret123", users.RoleTourist, users.StatusActive)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", NewController(svc, cfg).Login)

	body := `{"email":"mina@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	names := make(map[string]bool)
	for _, cookie := range w.Result().Cookies() {
		names[cookie.Name] = true
	}
	assert.True(t, names["tripcoach_session"])
	assert.True(t, names["tripcoach_session_refresh"])
}
