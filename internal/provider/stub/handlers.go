package stub

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/partner-hub/pkg/util"
)

// AuthHandler exposes the GoTrue-style endpoints of the emulator.
type AuthHandler struct {
	store  *AccountStore
	tokens *TokenManager
	cost   int
	logger *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store *AccountStore, tokens *TokenManager, bcryptCost int, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, cost: bcryptCost, logger: logger}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Data     struct {
		FullName string `json:"full_name"`
	} `json:"data"`
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp handles POST /auth/v1/signup. The emulator confirms accounts
// immediately and returns a usable session.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	hash, err := HashPassword(req.Password, h.cost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	account, err := h.store.Create(req.Data.FullName, req.Email, hash)
	if err != nil {
		return err
	}

	h.logger.Info("account registered", zap.String("account_id", account.ID))
	return h.respondWithSession(c, account, http.StatusOK)
}

// Token handles POST /auth/v1/token?grant_type=password.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	if c.Query("grant_type") != "password" {
		return apperrors.NewValidationError("unsupported grant_type", nil)
	}

	var req passwordGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, ok := h.store.GetByEmail(req.Email)
	if !ok {
		return apperrors.NewUnauthorized("Invalid login credentials")
	}
	if err := ComparePassword(account.PasswordHash, req.Password); err != nil {
		return apperrors.NewUnauthorized("Invalid login credentials")
	}

	return h.respondWithSession(c, account, http.StatusOK)
}

// Logout handles POST /auth/v1/logout. Tokens are stateless, so revocation
// is a no-op acknowledgment.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

// User handles GET /auth/v1/user for the bearer token's account.
func (h *AuthHandler) User(c *fiber.Ctx) error {
	claims, err := h.claimsFromRequest(c)
	if err != nil {
		return err
	}
	account, ok := h.store.GetByID(claims.Subject)
	if !ok {
		return apperrors.NewUnauthorized("account not found")
	}
	return c.JSON(accountJSON(account))
}

func (h *AuthHandler) claimsFromRequest(c *fiber.Ctx) (*Claims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, apperrors.NewUnauthorized("missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}
	claims, err := h.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	return claims, nil
}

func (h *AuthHandler) respondWithSession(c *fiber.Ctx, account *Account, status int) error {
	token, expiresAt, err := h.tokens.GenerateToken(account)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.Status(status).JSON(fiber.Map{
		"access_token":  token,
		"token_type":    "bearer",
		"expires_in":    int(h.tokens.TTL().Seconds()),
		"expires_at":    expiresAt.Unix(),
		"refresh_token": uuid.NewString(),
		"user":          accountJSON(account),
	})
}

func accountJSON(account *Account) fiber.Map {
	return fiber.Map{
		"id":    account.ID,
		"email": account.Email,
		"user_metadata": fiber.Map{
			"full_name": account.Name,
		},
		"created_at": account.CreatedAt.Format(time.RFC3339),
	}
}
