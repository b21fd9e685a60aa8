package middleware

import (
	"net/http"
	"strings"

	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/constants"
	"tripcoach/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// extractToken pulls the access token from the Authorization header or,
// for browser clients, from the session cookie. Header wins when both
// are present.
func extractToken(c *gin.Context, cfg *config.Config) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(cfg.JWT.CookieName); err == nil {
		return cookie
	}
	return ""
}

// JWTAuthWithConfig creates a JWT authentication middleware with config.
// Every authentication failure produces the same 401 envelope; clients
// treat that status as the global redirect-to-login signal.
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c, cfg)
		if tokenString == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})

		if err != nil || !token.Valid {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid token claims", nil, nil)
			c.Abort()
			return
		}

		if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid token type", nil, nil)
			c.Abort()
			return
		}

		// Blocked and deleted accounts carry their status in the claims;
		// they are denied at the guard even with a valid signature.
		if status, ok := claims["status"].(string); ok {
			if !constants.StatusMayAuthenticate(status) {
				response.RespondJSON(c, "error", http.StatusUnauthorized, "Account is not active", nil, nil)
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims["user_id"])
		c.Set("user_email", claims["email"])
		c.Set("user_role", claims["role"])

		c.Next()
	}
}

// RequireRoles checks if the authenticated user has any of the required
// roles. A wrong-role user is valid, just misrouted: the 403 payload
// carries the landing path for the user's own role so the client can
// redirect home rather than to login.
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
			c.Abort()
			return
		}

		role, _ := userRole.(string)
		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil,
			map[string]interface{}{
				"redirect": constants.DashboardPathFor(role),
			})
		c.Abort()
	}
}

// RequireAdmin requires the ADMIN role
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(constants.RoleAdmin)
}

// RequireGuide requires the GUIDE role
func RequireGuide() gin.HandlerFunc {
	return RequireRoles(constants.RoleGuide)
}

// RequireTourist requires the TOURIST role
func RequireTourist() gin.HandlerFunc {
	return RequireRoles(constants.RoleTourist)
}

// OptionalAuthWithConfig validates the token if present but doesn't require it
func OptionalAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c, cfg)
		if tokenString == "" {
			c.Next()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})

		if err != nil || !token.Valid {
			c.Next()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
				c.Next()
				return
			}

			c.Set("user_id", claims["user_id"])
			c.Set("user_email", claims["email"])
			c.Set("user_role", claims["role"])
		}

		c.Next()
	}
}
