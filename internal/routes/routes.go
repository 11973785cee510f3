package routes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/gatepass/gatepass/internal/account"
	"github.com/gatepass/gatepass/internal/config"
	"github.com/gatepass/gatepass/internal/credential"
	"github.com/gatepass/gatepass/internal/middleware"
	"github.com/gatepass/gatepass/internal/store"
	"github.com/gatepass/gatepass/internal/token"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// The file-backed store is for local development only.
	if !isDev(d.Cfg.AppEnv) && d.DB == nil && d.Cache == nil {
		return fmt.Errorf("a database or redis backend is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Liveness and readiness
	RegisterHealthRoutes(app, d)

	records, backend, err := newStore(d)
	if err != nil {
		return err
	}
	if d.Logger != nil {
		d.Logger.Info("record store ready", "backend", backend)
	}

	hasher := credential.NewHasher(d.Cfg.HashingSecret)
	tokenSvc := token.NewService(records, hasher, d.Cfg.TokenTTL)
	accountSvc := account.NewService(records, hasher, tokenSvc)

	RegisterUserRoutes(app, account.NewHandler(accountSvc))
	RegisterTokenRoutes(app, token.NewHandler(tokenSvc))

	return nil
}

// newStore picks the record store backend: postgres when a database is
// configured, redis otherwise, and the file store as the dev fallback.
func newStore(d Deps) (store.Store, string, error) {
	switch {
	case d.DB != nil:
		return store.NewPostgresStore(d.DB), "postgres", nil
	case d.Cache != nil:
		return store.NewRedisStore(d.Cache), "redis", nil
	default:
		fs, err := store.NewFileStore(d.Cfg.DataDir)
		return fs, "file", err
	}
}

func methodNotAllowed(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusMethodNotAllowed, "method not allowed")
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
