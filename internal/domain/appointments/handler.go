package appointments

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the appointment endpoints of the sandbox API.
type Handler struct {
	svc *Service
}

// NewHandler creates a Handler over the service.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes binds the appointment routes to an API group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/appointments", h.Create)
	g.GET("/appointments", h.ListDay)
	g.GET("/appointments/patient", h.ListByPatient)
	g.GET("/appointments/:id", h.Get)
	g.PATCH("/appointments/:id", h.Update)
}

// Create handles POST /appointments. Overlaps map to 409.
func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid_json"})
	}

	created, details, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err, details)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListDay handles GET /appointments?date&kinesiologist_id.
func (h *Handler) ListDay(c echo.Context) error {
	items, details, err := h.svc.ListDay(c.Request().Context(), c.QueryParam("kinesiologist_id"), c.QueryParam("date"))
	if err != nil {
		return writeError(c, err, details)
	}
	return c.JSON(http.StatusOK, items)
}

// ListByPatient handles GET /appointments/patient?patient_id&from&to.
func (h *Handler) ListByPatient(c echo.Context) error {
	items, details, err := h.svc.ListByPatient(c.Request().Context(),
		c.QueryParam("patient_id"), c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return writeError(c, err, details)
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /appointments/:id.
func (h *Handler) Get(c echo.Context) error {
	a, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, a)
}

// Update handles PATCH /appointments/:id (cancel, reschedule, edit notes).
func (h *Handler) Update(c echo.Context) error {
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid_json"})
	}

	updated, details, err := h.svc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return writeError(c, err, details)
	}
	return c.JSON(http.StatusOK, updated)
}

func writeError(c echo.Context, err error, details map[string]string) error {
	switch {
	case errors.Is(err, ErrValidation):
		body := map[string]interface{}{"error": "validation_error"}
		if len(details) > 0 {
			body["details"] = details
		}
		return c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, ErrOverlap):
		return c.JSON(http.StatusConflict, map[string]string{"error": "overlap"})
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not_found"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal_error"})
	}
}
