package stub

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/partner-hub/internal/config"
	"github.com/spec-kit/partner-hub/internal/observability"
	apperrors "github.com/spec-kit/partner-hub/pkg/util"
)

// Server bundles the emulator's fiber app with its dependencies.
type Server struct {
	App    *fiber.App
	Store  *AccountStore
	Tokens *TokenManager
}

// NewServer assembles the emulator app with middleware and routes.
func NewServer(cfg config.StubProviderConfig, logger *zap.Logger, metrics *observability.Metrics) *Server {
	store := NewAccountStore()
	tokens := NewTokenManager(cfg.JWTSecret, cfg.TokenTTLMinutes)
	handler := NewAuthHandler(store, tokens, cfg.BcryptCost, logger)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))

	registerRoutes(app, handler)

	return &Server{App: app, Store: store, Tokens: tokens}
}

func registerRoutes(app *fiber.App, handler *AuthHandler) {
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive", "service": "stub-identity-provider"})
	})

	authGroup := app.Group("/auth/v1")
	authGroup.Post("/signup", handler.SignUp)
	authGroup.Post("/token", handler.Token)
	authGroup.Post("/logout", handler.Logout)
	authGroup.Get("/user", handler.User)
}

// errorHandlingMiddleware converts DomainErrors into GoTrue-shaped error
// bodies so the HTTP client's pass-through parsing sees realistic payloads.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{
					"code": domainErr.HTTPStatus,
					"msg":  domainErr.Message,
				})
				err = nil
			}
		}()
		return c.Next()
	}
}
