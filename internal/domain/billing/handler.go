package billing

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
	patients := api.Group("/patients", requireAuth)
	patients.GET("/bills", h.ListBills)
	patients.POST("/payment", h.Pay)
}

func (h *Handler) ListBills(c echo.Context) error {
	patientID, ok := auth.PatientIDFromContext(c.Request().Context())
	if !ok {
		return apperr.Authentication("not authenticated")
	}
	bills, err := h.svc.ListBills(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	if bills == nil {
		bills = []*Bill{}
	}
	return c.JSON(http.StatusOK, bills)
}

func (h *Handler) Pay(c echo.Context) error {
	patientID, ok := auth.PatientIDFromContext(c.Request().Context())
	if !ok {
		return apperr.Authentication("not authenticated")
	}
	var in PayInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	result, err := h.svc.Pay(c.Request().Context(), patientID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
