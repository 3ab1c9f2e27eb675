package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/balojey/abdullateef-api/logger"
	"github.com/balojey/abdullateef-api/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// VerifyJWT checks an HS256 token against secret and returns its claims
func VerifyJWT(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

func extractUserPermissionsFromClaims(claims jwt.MapClaims) map[string]bool {
	permissionSet := make(map[string]bool)

	userPermissions, ok := claims["permissions"].([]interface{})
	if !ok {
		return permissionSet
	}

	for _, p := range userPermissions {
		if perm, ok := p.(string); ok {
			permissionSet[perm] = true
		}
	}

	return permissionSet
}

var (
	errTokenMissing  = errors.New("authorization token missing")
	errBadAuthHeader = errors.New("invalid authorization header format")
)

// bearerToken reads the token from the Authorization header, falling back to the access cookie
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if token := c.Cookies("access"); token != "" {
			return token, nil
		}
		return "", errTokenMissing
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", errBadAuthHeader
	}
	return tokenParts[1], nil
}

// RequirePermissions lets the request through when the token carries any of the permissions.
// An empty secret disables the check.
func RequirePermissions(secret string, permissions ...string) fiber.Handler {
	if secret == "" {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := VerifyJWT(token, secret)
		if err != nil {
			logger.Warning("JWT verification failed: " + err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Session expired. Login again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		userPermissions := extractUserPermissionsFromClaims(claims)
		for _, permission := range permissions {
			if userPermissions[permission] {
				c.Locals("user", claims)
				c.Locals("permissions", userPermissions)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Insufficient permissions",
			Status:  fiber.StatusForbidden,
		})
	}
}
