package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/botboard/backend/internal/httpserver/httputil"
	"github.com/botboard/backend/internal/services/ingest"
)

func (h *handler) ingestInteraction(c *fiber.Ctx) error {
	var req ingest.Request
	if err := c.BodyParser(&req); err != nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "invalid JSON body")
	}

	result, err := h.container.Ingest.Record(c.Context(), req, requestUUID(c))
	if err != nil {
		h.container.Observability.RecordIngest(false)
		if errors.Is(err, ingest.ErrTelegramIDRequired) {
			return httputil.WriteError(c, fiber.StatusBadRequest, "telegram_id is required")
		}
		slog.Error("record interaction", "error", err, "telegram_id", req.TelegramID)
		return httputil.WriteError(c, fiber.StatusInternalServerError, err.Error())
	}

	h.container.Observability.RecordIngest(true)
	return c.JSON(fiber.Map{
		"success":   true,
		"dialog_id": result.DialogID,
		"user_id":   result.UserID,
	})
}

// ingestStatus is the probe the bot uses to verify the API is reachable.
func (h *handler) ingestStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "Bot webhook API is running"})
}
