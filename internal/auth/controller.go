package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/utils/response"
)

type Controller interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	RefreshToken(c *gin.Context)
	ChangePassword(c *gin.Context)
	GetMe(c *gin.Context)
}

type controller struct {
	service   Service
	config    *config.Config
	validator *validator.Validate
}

func NewController(service Service, cfg *config.Config) Controller {
	return &controller{
		service:   service,
		config:    cfg,
		validator: validator.New(),
	}
}

func (ctrl *controller) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	authResponse, err := ctrl.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.RespondJSON(c, "error", http.StatusConflict, "Email already registered", nil, err.Error())
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to register user", nil, err.Error())
		return
	}

	ctrl.setSessionCookies(c, authResponse.AccessToken, authResponse.RefreshToken)
	response.RespondJSON(c, "success", http.StatusCreated, "User registered successfully", authResponse, nil)
}

func (ctrl *controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	authResponse, err := ctrl.service.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid email or password", nil, err.Error())
		case errors.Is(err, ErrAccountNotActive):
			response.RespondJSON(c, "error", http.StatusForbidden, "Account is not allowed to sign in", nil, err.Error())
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to login", nil, err.Error())
		}
		return
	}

	ctrl.setSessionCookies(c, authResponse.AccessToken, authResponse.RefreshToken)
	response.RespondJSON(c, "success", http.StatusOK, "Login successful", authResponse, nil)
}

// Logout always clears the session cookie, even when the token is
// already invalid, so a broken session can always be abandoned.
func (ctrl *controller) Logout(c *gin.Context) {
	ctrl.clearSessionCookie(c)
	response.RespondJSON(c, "success", http.StatusOK, "Logged out successfully", nil, nil)
}

func (ctrl *controller) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Browser clients send no body; their refresh token lives in
		// its own cookie next to the access-token session cookie.
		cookie, cookieErr := c.Cookie(ctrl.refreshCookieName())
		if cookieErr != nil || cookie == "" {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
			return
		}
		req.RefreshToken = cookie
	}

	tokenPair, err := ctrl.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid or expired refresh token", nil, err.Error())
		case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrAccountNotActive):
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Session is no longer valid", nil, err.Error())
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to refresh token", nil, err.Error())
		}
		return
	}

	ctrl.setSessionCookies(c, tokenPair.AccessToken, tokenPair.RefreshToken)
	response.RespondJSON(c, "success", http.StatusOK, "Token refreshed successfully", tokenPair, nil)
}

func (ctrl *controller) ChangePassword(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Unauthorized", nil, nil)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	if err := ctrl.service.ChangePassword(c.Request.Context(), userID.(string), &req); err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Current password is incorrect", nil, err.Error())
		case errors.Is(err, ErrUserNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "User not found", nil, err.Error())
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to change password", nil, err.Error())
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

func (ctrl *controller) GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Unauthorized", nil, nil)
		return
	}

	user, err := ctrl.service.GetIdentity(c.Request.Context(), userID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusNotFound, "User not found", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "User retrieved successfully", user, nil)
}

func (ctrl *controller) refreshCookieName() string {
	return ctrl.config.JWT.CookieName + "_refresh"
}

// setSessionCookies stores the access token in the session cookie the
// route guards read, and the refresh token in a companion cookie that
// outlives it so browser clients can refresh without a request body.
func (ctrl *controller) setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	accessMaxAge := int(ctrl.config.JWT.JWTExpiresIn.Seconds())
	c.SetCookie(ctrl.config.JWT.CookieName, accessToken, accessMaxAge, "/", ctrl.config.JWT.CookieDomain, ctrl.config.JWT.CookieSecure, true)
	refreshMaxAge := int(ctrl.config.JWT.RefreshExpiresIn.Seconds())
	c.SetCookie(ctrl.refreshCookieName(), refreshToken, refreshMaxAge, "/", ctrl.config.JWT.CookieDomain, ctrl.config.JWT.CookieSecure, true)
}

func (ctrl *controller) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ctrl.config.JWT.CookieName, "", -1, "/", ctrl.config.JWT.CookieDomain, ctrl.config.JWT.CookieSecure, true)
	c.SetCookie(ctrl.refreshCookieName(), "", -1, "/", ctrl.config.JWT.CookieDomain, ctrl.config.JWT.CookieSecure, true)
}
