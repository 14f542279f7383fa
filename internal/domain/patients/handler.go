package patients

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler exposes the patient endpoints of the sandbox API.
type Handler struct {
	svc *Service
}

// NewHandler creates a Handler over the service.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes binds the patient routes to an API group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/patients", h.Register)
	g.GET("/patients/search", h.Search)
	g.GET("/patients/:id", h.Get)
}

// Register handles POST /patients. Duplicate DNI or email map to 409.
func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid_json"})
	}

	created, details, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": "validation_error", "details": details})
		case errors.Is(err, ErrDuplicateDNI):
			return c.JSON(http.StatusConflict, map[string]string{"error": "duplicate_dni"})
		case errors.Is(err, ErrDuplicateEmail):
			return c.JSON(http.StatusConflict, map[string]string{"error": "duplicate_email"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		}
	}
	return c.JSON(http.StatusCreated, created)
}

// Search handles GET /patients/search?query&limit.
func (h *Handler) Search(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	items, err := h.svc.Search(c.Request().Context(), c.QueryParam("query"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal_error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /patients/:id.
func (h *Handler) Get(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid_id"})
		case errors.Is(err, ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not_found"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		}
	}
	return c.JSON(http.StatusOK, p)
}
