package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// ListNotesHandler returns the caller's notes, or an empty list for
// anonymous callers.
func ListNotesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := currentUser(c)
		if userID == "" {
			return c.JSON(fiber.Map{"notes": []domain.Note{}})
		}

		notes, err := deps.Notes.List(c.Context(), userID)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"notes": notes})
	}
}

// CreateNoteHandler saves a note, receipt, or voucher for the caller.
func CreateNoteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var note domain.Note
		if err := c.BodyParser(&note); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		created, err := deps.Notes.Create(c.Context(), currentUser(c), &note)
		if err != nil {
			if errors.Is(err, domain.ErrTitleRequired) {
				return errBadRequest(c, "title is required")
			}
			return errInternal(c, err.Error())
		}
		return c.Status(201).JSON(created)
	}
}

// DeleteNoteHandler removes one of the caller's notes.
func DeleteNoteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "note id is required")
		}

		// Deleting an unknown or foreign note is a no-op that still
		// reports success.
		if err := deps.Notes.Delete(c.Context(), currentUser(c), id); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"deleted": true})
	}
}
