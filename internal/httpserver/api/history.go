package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/botboard/backend/internal/httpserver/httputil"
	"github.com/botboard/backend/internal/services/history"
)

func (h *handler) userMessages(c *fiber.Ctx) error {
	telegramID, ok := optionalInt64Query(c, "telegram_id")
	if !ok {
		return httputil.WriteError(c, fiber.StatusBadRequest, "telegram_id must be a number")
	}
	if telegramID == nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "telegram_id required")
	}

	resp, err := h.container.History.Messages(c.Context(), *telegramID)
	if err != nil {
		slog.Error("list user messages", "error", err, "telegram_id", *telegramID)
		return httputil.WriteError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(resp)
}

func (h *handler) userHistory(c *fiber.Ctx) error {
	telegramID, ok := optionalInt64Query(c, "telegram_id")
	if !ok {
		return httputil.WriteError(c, fiber.StatusBadRequest, "telegram_id must be a number")
	}
	userID, ok := optionalInt64Query(c, "user_id")
	if !ok {
		return httputil.WriteError(c, fiber.StatusBadRequest, "user_id must be a number")
	}
	if telegramID == nil && userID == nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "telegram_id or user_id is required")
	}

	resp, err := h.container.History.UserHistory(c.Context(), telegramID, userID)
	if err != nil {
		if errors.Is(err, history.ErrUserNotFound) {
			return httputil.WriteError(c, fiber.StatusNotFound, "User not found")
		}
		slog.Error("load user history", "error", err)
		return httputil.WriteError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(resp)
}
