package middleware

import (
	"strings"

	"github.com/careerhq/careerhq-api/model"
	"github.com/careerhq/careerhq-api/utils/auth"
	"github.com/careerhq/careerhq-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager       *auth.JWTManager
	blacklistService *auth.BlacklistService
	db               *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:       jwtManager,
		blacklistService: auth.NewBlacklistService(db),
		db:               db,
	}
}

// authenticate validates the bearer token, loads the user, and stores both in
// the request context. On failure it writes the error response and returns nil.
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*model.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, response.Unauthorized(c, "Missing authorization token")
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, response.Unauthorized(c, "Invalid authorization format")
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		if err == auth.ErrExpiredToken {
			return nil, response.Unauthorized(c, "Token has expired")
		}
		return nil, response.Unauthorized(c, "Invalid token")
	}

	if claims.TokenType != "access" {
		return nil, response.Unauthorized(c, "Invalid token type")
	}

	// Check if token is revoked (blacklisted)
	isRevoked, err := m.blacklistService.IsTokenRevoked(c.Context(), claims.ID)
	if err != nil {
		return nil, response.InternalServerError(c, "Failed to check token status")
	}
	if isRevoked {
		return nil, response.Unauthorized(c, "Token has been revoked")
	}

	// Load user and verify token version
	var user model.User
	if err := m.db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.Unauthorized(c, "User not found")
		}
		return nil, response.InternalServerError(c, "Failed to load user")
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, response.Unauthorized(c, "Token has been invalidated")
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_role", claims.Role)
	c.Locals("claims", claims)
	c.Locals("user", &user)

	return &user, nil
}

// Required is middleware that requires a valid JWT access token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, errResp := m.authenticate(c)
		if user == nil {
			return errResp
		}
		return c.Next()
	}
}

// Optional authenticates when a valid bearer token is present but never
// rejects the request. Handlers use the stored user to widen visibility for
// back-office reads on otherwise public routes.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Next()
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil || claims.TokenType != "access" {
			return c.Next()
		}

		if revoked, err := m.blacklistService.IsTokenRevoked(c.Context(), claims.ID); err != nil || revoked {
			return c.Next()
		}

		var user model.User
		if err := m.db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			return c.Next()
		}
		if user.TokenVersion != claims.TokenVersion {
			return c.Next()
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_role", claims.Role)
		c.Locals("claims", claims)
		c.Locals("user", &user)

		return c.Next()
	}
}

// RequireAdmin requires a valid token belonging to an admin account
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, errResp := m.authenticate(c)
		if user == nil {
			return errResp
		}
		if !user.IsAdmin() {
			return response.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}

// GetUser returns the authenticated user stored by the auth middleware
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user, ok := c.Locals("user").(*model.User)
	return user, ok
}

// GetClaims returns the validated token claims stored by the auth middleware
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals("claims").(*auth.Claims)
	return claims, ok
}
