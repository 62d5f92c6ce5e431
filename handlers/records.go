// handlers/records.go - Checkpoint event log endpoints
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"racelog/services"
)

// LogDeparture records a team leaving a checkpoint with its task
// outcomes. Accepted submissions answer 201 with no body; duplicates
// and malformed submissions answer 400.
// POST /taskslog
func (h *Handler) LogDeparture(c *fiber.Ctx) error {
	var req struct {
		Team       uint                  `json:"team"`
		Checkpoint uint                  `json:"checkpoint"`
		Tasks      []services.TaskResult `json:"tasks"`
	}

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.records.LogDeparture(c.Context(), req.Team, req.Checkpoint, req.Tasks); err != nil {
		return fail(err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

// LogArrival records a team reaching a checkpoint.
// POST /arrivallog
func (h *Handler) LogArrival(c *fiber.Ctx) error {
	var req struct {
		Team       uint   `json:"team"`
		Checkpoint uint   `json:"checkpoint"`
		Status     string `json:"status"`
	}

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.records.LogArrival(c.Context(), req.Team, req.Checkpoint, req.Status); err != nil {
		return fail(err)
	}

	return c.SendStatus(fiber.StatusOK)
}
