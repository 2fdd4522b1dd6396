package http

import (
	"github.com/labstack/echo/v4"
)

func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/api")

	g.GET("/snapshot", h.Snapshot)
	g.GET("/tasks", h.ListActive)
	g.GET("/history", h.ListHistory)
	g.GET("/metrics", h.Metrics)
	g.GET("/notifications", h.Notifications)
	g.GET("/export.csv", h.ExportCSV)

	g.POST("/tasks", h.SaveTask)
	g.POST("/tasks/quick", h.QuickAdd)
	g.POST("/tasks/clear", h.ClearActive)
	g.POST("/tasks/:id/status", h.ChangeStatus)
	g.POST("/tasks/:id/edit", h.OpenEdit)
	g.DELETE("/tasks/:id", h.DeleteTask)
	g.POST("/history/clear", h.ClearHistory)
	g.POST("/reset", h.Reset)

	g.POST("/session/create", h.OpenCreate)
	g.POST("/session/close", h.CloseSession)

	g.DELETE("/notifications/:id", h.DismissNotification)
	g.POST("/theme/toggle", h.ToggleTheme)
	g.PUT("/theme", h.SetTheme)
}
