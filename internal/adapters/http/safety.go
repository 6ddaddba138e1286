package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/pkg/metrics"
)

// SafetyCodeHandler returns the caller's share code, minting one on
// first use.
func SafetyCodeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := deps.Safety.Code(c.Context(), currentUser(c))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "user not found")
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"code": code})
	}
}

// ListContactsHandler returns the caller's safety contacts, both sides
// of the link.
func ListContactsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contacts, err := deps.Safety.ListContacts(c.Context(), currentUser(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"contacts": contacts})
	}
}

// AddContactHandler redeems another user's share code.
func AddContactHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Code string `json:"code"`
		}
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		contact, err := deps.Safety.AddContact(c.Context(), currentUser(c), req.Code)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidCode):
				return errBadRequest(c, "code must be 6 characters")
			case errors.Is(err, domain.ErrCodeNotFound):
				return errNotFound(c, "code not found")
			case errors.Is(err, domain.ErrSelfContact):
				return errBadRequest(c, "cannot add yourself")
			case errors.Is(err, domain.ErrContactExists):
				return errConflict(c, "contact already added")
			}
			return errInternal(c, err.Error())
		}
		return c.Status(201).JSON(contact)
	}
}

// RemoveContactHandler deletes a contact link from either side.
func RemoveContactHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "contact id is required")
		}

		if err := deps.Safety.RemoveContact(c.Context(), currentUser(c), id); err != nil {
			if errors.Is(err, domain.ErrContactNotFound) {
				return errNotFound(c, "contact not found")
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"deleted": true})
	}
}

// UpdateLocationHandler records the caller's position on every link
// they own. Last write wins.
func UpdateLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		}
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		updated, err := deps.Safety.UpdateLocation(c.Context(), currentUser(c), req.Lat, req.Lng)
		if err != nil {
			return errInternal(c, err.Error())
		}

		metrics.LocationPings.Inc()
		return c.JSON(fiber.Map{"updated": updated})
	}
}

// SendSOSHandler raises an SOS alert on one of the caller's redeemed
// contacts.
func SendSOSHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			ContactID string              `json:"contact_id"`
			Location  *domain.Coordinates `json:"location"`
		}
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.ContactID == "" {
			return errBadRequest(c, "contact_id is required")
		}

		alert, err := deps.Safety.SendSOS(c.Context(), currentUser(c), req.ContactID, req.Location)
		if err != nil {
			if errors.Is(err, domain.ErrContactNotFound) {
				return errNotFound(c, "contact not found")
			}
			return errInternal(c, err.Error())
		}

		metrics.SOSAlertsSent.Inc()
		return c.Status(201).JSON(alert)
	}
}

// ListSOSHandler returns unread SOS alerts addressed to the caller.
func ListSOSHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		alerts, err := deps.Safety.ListUnreadSOS(c.Context(), currentUser(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"alerts": alerts})
	}
}

// MarkSOSReadHandler acknowledges an alert. Only the addressee may do so.
func MarkSOSReadHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			AlertID string `json:"alert_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.AlertID == "" {
			return errBadRequest(c, "alert_id is required")
		}

		if err := deps.Safety.MarkSOSRead(c.Context(), currentUser(c), req.AlertID); err != nil {
			if errors.Is(err, domain.ErrAlertNotFound) {
				return errNotFound(c, "alert not found")
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"read": true})
	}
}
