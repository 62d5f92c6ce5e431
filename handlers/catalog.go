// handlers/catalog.go - Team and task read projections
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"racelog/models"
)

// GetTeams returns every team with its replayed point total.
// GET /teams
func (h *Handler) GetTeams(c *fiber.Ctx) error {
	standings, err := h.scores.Standings(c.Context())
	if err != nil {
		return fail(err)
	}

	return c.JSON(standings)
}

// GetTasks returns the task catalog, optionally filtered to one
// checkpoint. The filter is always a bound parameter.
// GET /tasks?c=<checkpoint_id>
func (h *Handler) GetTasks(c *fiber.Ctx) error {
	q := h.db.WithContext(c.Context()).Order("id")

	if raw := c.Query("c"); raw != "" {
		checkpointID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid checkpoint filter")
		}
		q = q.Where("checkpoint_id = ?", uint(checkpointID))
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return fail(err)
	}

	return c.JSON(tasks)
}
