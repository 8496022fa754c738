package api

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/botboard/backend/internal/httpserver/httputil"
	"github.com/botboard/backend/internal/services/analytics"
)

func (h *handler) analyticsDashboard(c *fiber.Ctx) error {
	params := analytics.Params{
		Days:   c.QueryInt("days", 0),
		Model:  normalizeFilter(c.Query("model")),
		Status: normalizeFilter(c.Query("status")),
	}

	key := fmt.Sprintf("days=%d&model=%s&status=%s", params.Days, params.Model, params.Status)
	if data, ok := h.container.DashboardCache.Get(c.Context(), key); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(data)
	}

	dashboard, err := h.container.Analytics.Dashboard(c.Context(), params)
	if err != nil {
		slog.Error("aggregate analytics", "error", err)
		return httputil.WriteError(c, fiber.StatusInternalServerError, err.Error())
	}

	data, err := json.Marshal(dashboard)
	if err != nil {
		return httputil.WriteError(c, fiber.StatusInternalServerError, err.Error())
	}
	h.container.DashboardCache.Set(c.Context(), key, data)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
