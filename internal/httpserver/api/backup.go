package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/botboard/backend/internal/httpserver/httputil"
)

func (h *handler) runBackup(c *fiber.Ctx) error {
	snapshot, err := h.container.Backup.Run(c.Context(), requestUUID(c))
	if err != nil {
		slog.Error("create backup snapshot", "error", err)
		return httputil.WriteError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"backup_data": snapshot,
		"message":     "Backup completed successfully",
	})
}
