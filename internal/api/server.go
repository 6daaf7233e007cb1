package api

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-lens/internal/config"
	"github.com/insightdelivered/statement-lens/internal/extractor"
	"github.com/insightdelivered/statement-lens/internal/ingest"
	"github.com/insightdelivered/statement-lens/internal/logger"
)

// Version is reported by the health endpoint and the CLI.
const Version = "2.0.0"

const requestIDKey = "requestid"

// New builds the fiber app with every route and middleware registered.
// ext is used for PDF uploads and for /api/extract.
func New(cfg *config.Config, ext extractor.Extractor, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "statement-lens " + Version,
		BodyLimit:             cfg.MaxUploadBytes(),
		DisableStartupMessage: true,
		ErrorHandler:          handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(requestLogger(log))

	h := &Handler{
		ingest:    ingest.NewService(ext),
		extractor: ext,
	}
	h.RegisterRoutes(app)

	if cfg.StaticDir != "" {
		serveSPA(app, cfg.StaticDir)
	}
	return app
}

// requestLogger puts a request-scoped logger into the user context and logs
// one line per request once the handler chain returns.
func requestLogger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals(requestIDKey).(string)

		log := base.With().Str("request_id", reqID).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext(), log))

		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error().Err(err)
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}

// handleError renders any error that escapes a handler in the JSON envelope.
func handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
}

// serveSPA serves the built frontend and falls back to index.html for client
// routes so deep links work.
func serveSPA(app *fiber.App, dir string) {
	app.Static("/", dir)
	index := filepath.Join(dir, "index.html")
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return fiber.ErrNotFound
		}
		return c.SendFile(index)
	})
}
