// Package api wires the dashboard endpoints onto the Fiber app.
package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/botboard/backend/internal/app"
)

type handler struct {
	container *app.Container
}

// Register mounts every dashboard endpoint under /api.
func Register(fiberApp *fiber.App, container *app.Container) {
	if fiberApp == nil || container == nil {
		return
	}

	h := &handler{container: container}

	group := fiberApp.Group("/api")
	group.Post("/ingest", h.ingestInteraction)
	group.Get("/ingest", h.ingestStatus)
	group.Get("/analytics", h.analyticsDashboard)
	group.Get("/costs", h.costsToday)
	group.Get("/quality", h.qualityToday)
	group.Get("/messages", h.userMessages)
	group.Get("/users/history", h.userHistory)
	group.Get("/backup", h.runBackup)
	group.Post("/backup", h.runBackup)
}
