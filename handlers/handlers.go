// handlers/handlers.go - HTTP surface wiring
package handlers

import (
	"errors"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"racelog/services"
)

// Handler holds the injected store handle and the services built on
// it. Nothing here keeps state of its own.
type Handler struct {
	db      *gorm.DB
	records *services.RecordService
	scores  *services.ScoreService
}

func New(db *gorm.DB) *Handler {
	return &Handler{
		db:      db,
		records: services.NewRecordService(db),
		scores:  services.NewScoreService(db),
	}
}

// Register mounts the event log routes. Paths match the original
// on-site clients.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": "hello"})
	})

	app.Get("/teams", h.GetTeams)
	app.Get("/tasks", h.GetTasks)
	app.Post("/taskslog", h.LogDeparture)
	app.Post("/arrivallog", h.LogArrival)
}

// ErrorHandler renders every handler error as the JSON envelope the
// clients expect.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// fail maps the service taxonomy onto status codes: validation and
// idempotency rejections are the caller's fault (400), store failures
// are ours (500, detail logged server-side only).
func fail(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	case errors.Is(err, services.ErrAlreadyLogged):
		return fiber.NewError(fiber.StatusBadRequest, "already logged")
	default:
		log.Printf("❌ store error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "storage error")
	}
}
