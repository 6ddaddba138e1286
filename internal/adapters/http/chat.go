package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/pkg/metrics"
)

type chatRequest struct {
	Prompt   string               `json:"prompt"`
	History  []domain.ChatMessage `json:"history"`
	Location *domain.Coordinates  `json:"location"`
}

// ChatHandler runs one guide conversation turn. Anonymous callers get
// answers but nothing is persisted for them.
func ChatHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		ctx := c.UserContext()
		result, err := deps.Chat.Chat(ctx, currentUser(c), req.Prompt, req.History, req.Location)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyPrompt) {
				metrics.ChatTurns.WithLabelValues("rejected").Inc()
				return errBadRequest(c, "prompt is required")
			}
			if errors.Is(err, domain.ErrUpstream) {
				metrics.ChatTurns.WithLabelValues("upstream_error").Inc()
				LoggerFromCtx(ctx).Warn("chat upstream failed", "error", err)
				return errUpstream(c)
			}
			metrics.ChatTurns.WithLabelValues("error").Inc()
			return errInternal(c, err.Error())
		}

		metrics.ChatTurns.WithLabelValues("ok").Inc()
		return c.JSON(result)
	}
}
