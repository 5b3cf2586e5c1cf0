package server

import (
	"time"

	"order-intake-bot/internal/config"
	"order-intake-bot/internal/pkg/logger"
	"order-intake-bot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Server is the small operational HTTP surface next to the bot: health
// and log read-back. It carries no order-intake functionality.
type Server struct {
	app *fiber.App
	cfg *config.Config
}

func New(cfg *config.Config, sysLogger logger.ILogger, reference service.IReferenceService) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	startedAt := time.Now()

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":           "ok",
			"uptime_seconds":   int(time.Since(startedAt).Seconds()),
			"reference_loaded": reference.Loaded(),
		})
	})

	app.Get("/api/logs", func(c *fiber.Ctx) error {
		level := c.Query("level")
		limit := c.QueryInt("limit", 100)
		offset := c.QueryInt("offset", 0)

		entries, err := sysLogger.GetLogs(level, limit, offset)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"logs": entries})
	})

	return &Server{
		app: app,
		cfg: cfg,
	}
}

func (s *Server) Run() error {
	return s.app.Listen(":" + s.cfg.App.OpsPort)
}
