package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/botboard/backend/internal/httpserver/httputil"
)

func (h *handler) costsToday(c *fiber.Ctx) error {
	report, err := h.container.Reports.CostsToday(c.Context())
	if err != nil {
		slog.Error("sum daily costs", "error", err)
		return httputil.WriteError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(report)
}

func (h *handler) qualityToday(c *fiber.Ctx) error {
	report, err := h.container.Reports.QualityToday(c.Context())
	if err != nil {
		slog.Error("compute daily quality", "error", err)
		return httputil.WriteError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(report)
}
