package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// requestUUID extracts the requestid middleware value for event correlation.
func requestUUID(c *fiber.Ctx) *uuid.UUID {
	rid, _ := c.Locals("requestid").(string)
	if rid == "" {
		return nil
	}
	id, err := uuid.Parse(rid)
	if err != nil {
		return nil
	}
	return &id
}

// normalizeFilter maps the frontend's "all" sentinel to an empty filter.
func normalizeFilter(value string) string {
	value = strings.TrimSpace(value)
	if value == "all" {
		return ""
	}
	return value
}

// optionalInt64Query parses a numeric query parameter when present.
func optionalInt64Query(c *fiber.Ctx, name string) (*int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &value, true
}
