package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"opdash/internal/api"
	"opdash/internal/domain"
)

// Handler exposes dashboard intents and views as JSON endpoints
type Handler struct {
	dashboard api.DashboardAPI
}

func NewHandler(dashboard api.DashboardAPI) *Handler {
	return &Handler{dashboard: dashboard}
}

type statusRequest struct {
	Status string `json:"status"`
}

type quickAddRequest struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

// confirmFrom reads the confirm query parameter. Destructive endpoints are
// no-ops unless the caller passes confirm=true.
func confirmFrom(c echo.Context) api.Confirmer {
	return api.ConfirmIf(c.QueryParam("confirm") == "true")
}

// ========== Views ==========

func (h *Handler) Snapshot(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.Snapshot())
}

func (h *Handler) ListActive(c echo.Context) error {
	tasks := h.dashboard.Active()
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) ListHistory(c echo.Context) error {
	tasks := h.dashboard.History()
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) Metrics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.Metrics())
}

func (h *Handler) Notifications(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.Notifications())
}

func (h *Handler) ExportCSV(c echo.Context) error {
	tasks := h.dashboard.Active()
	switch c.QueryParam("collection") {
	case "", "active":
	case "history":
		tasks = h.dashboard.History()
	default:
		return badRequest("collection must be active or history")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return api.WriteCSV(c.Response(), tasks)
}

// ========== Intents ==========

func (h *Handler) SaveTask(c echo.Context) error {
	var task domain.Task
	if err := c.Bind(&task); err != nil {
		return badRequest("invalid JSON payload")
	}

	result, err := h.dashboard.SaveTask(c.Request().Context(), task)
	if err != nil {
		return toHTTPError(err)
	}
	status := http.StatusOK
	if task.ID == "" {
		status = http.StatusCreated
	}
	return c.JSON(status, result)
}

func (h *Handler) QuickAdd(c echo.Context) error {
	var req quickAddRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid JSON payload")
	}

	result, err := h.dashboard.QuickAdd(c.Request().Context(), req.Name, req.Owner)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) ChangeStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid JSON payload")
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return badRequest(err.Error())
	}

	result, err := h.dashboard.ChangeStatus(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	result, err := h.dashboard.DeleteTask(c.Request().Context(), c.Param("id"), confirmFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ClearHistory(c echo.Context) error {
	result, err := h.dashboard.ClearHistory(c.Request().Context(), confirmFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ClearActive(c echo.Context) error {
	result, err := h.dashboard.ClearActiveTasks(c.Request().Context(), confirmFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Reset(c echo.Context) error {
	result, err := h.dashboard.ResetToDefaults(c.Request().Context(), confirmFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// ========== Edit Session ==========

func (h *Handler) OpenCreate(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.OpenCreate())
}

func (h *Handler) OpenEdit(c echo.Context) error {
	session, err := h.dashboard.OpenEdit(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, session)
}

func (h *Handler) CloseSession(c echo.Context) error {
	h.dashboard.CloseSession()
	return c.JSON(http.StatusOK, h.dashboard.Session())
}

// ========== Notifications and Theme ==========

func (h *Handler) DismissNotification(c echo.Context) error {
	if !h.dashboard.DismissNotification(c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, echo.Map{
			"error": "notification not found",
			"code":  "NOT_FOUND",
		})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ToggleTheme(c echo.Context) error {
	theme, err := h.dashboard.ToggleTheme(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, themeRequest{Theme: string(theme)})
}

func (h *Handler) SetTheme(c echo.Context) error {
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid JSON payload")
	}

	if err := h.dashboard.SetTheme(c.Request().Context(), domain.Theme(req.Theme)); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, themeRequest{Theme: string(h.dashboard.Theme())})
}
