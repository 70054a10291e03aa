package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"

	"github.com/DeepaShriSG/EcomBE/models"
	"github.com/DeepaShriSG/EcomBE/utils"
)

// ClaimsKey is the context key the decoded token is stored under.
const ClaimsKey = "claims"

func extractToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// Authenticate validates the bearer token and attaches its claims to the
// request context. Missing token is 400, expired or malformed is 401.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := extractToken(c)
			if !ok {
				return c.JSON(http.StatusBadRequest, map[string]string{
					"message": "Token not found",
				})
			}

			claims, err := utils.ValidateJWT(secret, tokenString)
			if err != nil {
				if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
					return c.JSON(http.StatusUnauthorized, map[string]string{
						"message": "Token has expired",
					})
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Invalid token",
				})
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// RequireAdmin rejects any request whose token does not carry the admin role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(ClaimsKey).(*utils.Claims)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": "Token not found",
			})
		}
		if claims.Role != models.RoleAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{
				"message": "Only Admins are allowed",
			})
		}
		return next(c)
	}
}

// ClaimsFrom returns the claims the Authenticate middleware stored.
func ClaimsFrom(c echo.Context) (*utils.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*utils.Claims)
	return claims, ok
}
