package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// ListPlansHandler returns the caller's plans. Anonymous callers get an
// empty list so the client can render before sign-in.
func ListPlansHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := currentUser(c)
		if userID == "" {
			return c.JSON(fiber.Map{"plans": []domain.Plan{}})
		}

		plans, err := deps.Plans.List(c.Context(), userID)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"plans": plans})
	}
}

// CreatePlanHandler saves a new trip plan for the caller.
func CreatePlanHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var plan domain.Plan
		if err := c.BodyParser(&plan); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		created, err := deps.Plans.Create(c.Context(), currentUser(c), &plan)
		if err != nil {
			if errors.Is(err, domain.ErrTitleRequired) {
				return errBadRequest(c, "title is required")
			}
			return errInternal(c, err.Error())
		}
		return c.Status(201).JSON(created)
	}
}

// DeletePlanHandler removes one of the caller's plans.
func DeletePlanHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "plan id is required")
		}

		// Deleting an unknown or foreign plan is a no-op that still
		// reports success.
		if err := deps.Plans.Delete(c.Context(), currentUser(c), id); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"deleted": true})
	}
}

// PlanStatsHandler computes distance and travel time for a plan's route.
func PlanStatsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "plan id is required")
		}

		stats, err := deps.Plans.Stats(c.Context(), currentUser(c), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "plan not found")
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(stats)
	}
}
