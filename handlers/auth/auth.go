package auth

import (
	"time"

	"github.com/careerhq/careerhq-api/model"
	"github.com/careerhq/careerhq-api/utils/auth"
	"github.com/careerhq/careerhq-api/utils/middleware"
	"github.com/careerhq/careerhq-api/utils/response"
	"github.com/careerhq/careerhq-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles back-office authentication requests
type AuthHandler struct {
	db         *gorm.DB
	validator  *validation.Validator
	jwtManager *auth.JWTManager
	blacklist  *auth.BlacklistService
	bruteForce *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, bruteForce *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:         db,
		validator:  validation.NewValidator(),
		jwtManager: jwtManager,
		blacklist:  auth.NewBlacklistService(db),
		bruteForce: bruteForce,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest represents the token refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is returned on login and refresh
type TokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *model.User `json:"user,omitempty"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var user model.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if h.bruteForce != nil {
			h.bruteForce.RecordFailedAttempt(c, c.IP())
		}
		return response.Unauthorized(c, "Invalid email or password")
	}

	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		if h.bruteForce != nil {
			h.bruteForce.RecordFailedAttempt(c, c.IP())
		}
		return response.Unauthorized(c, "Invalid email or password")
	}

	if h.bruteForce != nil {
		h.bruteForce.RecordSuccessfulAttempt(c, c.IP())
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	now := time.Now()
	h.db.Model(&user).Update("last_login_at", now)
	user.LastLoginAt = &now

	return response.Success(c, TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         &user,
	})
}

// Logout handles POST /api/auth/logout. The presented access token is
// blacklisted until its natural expiry.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := h.blacklist.RevokeToken(c.Context(), claims.ID, claims.UserID, expiresAt, "logout"); err != nil {
		return response.InternalServerError(c, "Failed to log out")
	}

	return response.SuccessWithMessage(c, "Logged out successfully", nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	return response.Success(c, user)
}

// RefreshToken handles POST /api/auth/refresh. A valid refresh token is
// exchanged for a fresh pair; the old refresh token is revoked.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	claims, err := h.jwtManager.ValidateToken(req.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, "Invalid refresh token")
	}

	if claims.TokenType != "refresh" {
		return response.Unauthorized(c, "Invalid token type")
	}

	revoked, err := h.blacklist.IsTokenRevoked(c.Context(), claims.ID)
	if err != nil || revoked {
		return response.Unauthorized(c, "Invalid refresh token")
	}

	var user model.User
	if err := h.db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		return response.Unauthorized(c, "Account no longer exists")
	}

	if user.TokenVersion != claims.TokenVersion {
		return response.Unauthorized(c, "Token has been invalidated")
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	h.blacklist.RevokeToken(c.Context(), claims.ID, claims.UserID, expiresAt, "rotated")

	return response.Success(c, TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}
