package identity

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthnexus/clinic/internal/platform/apperr"
	"github.com/healthnexus/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group, requireAuth echo.MiddlewareFunc) {
	patients := api.Group("/patients")
	patients.POST("/register", h.Register)
	patients.POST("/login", h.Login)
	patients.POST("/logout", h.Logout, requireAuth)
	patients.GET("/me", h.Me, requireAuth)
}

func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	session, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, session)
}

func (h *Handler) Login(c echo.Context) error {
	var in LoginInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	session, err := h.svc.Login(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}

// Logout holds no server-side session state. The endpoint exists so clients
// have a single place to end a session; they discard the token on return.
func (h *Handler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{})
}

func (h *Handler) Me(c echo.Context) error {
	patientID, ok := auth.PatientIDFromContext(c.Request().Context())
	if !ok {
		return apperr.Authentication("not authenticated")
	}
	p, err := h.svc.GetProfile(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
