package prescription

import (
	"net/http"

	"github.com/google/uuid"
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
	admin := api.Group("/admin")
	admin.GET("/prescriptions/:patientId", h.ListByPatient, requireAuth)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	requesterID, ok := auth.PatientIDFromContext(c.Request().Context())
	if !ok {
		return apperr.Authentication("not authenticated")
	}
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return apperr.Validation("invalid patient id")
	}
	prescriptions, err := h.svc.ListByPatient(c.Request().Context(), requesterID, patientID)
	if err != nil {
		return err
	}
	if prescriptions == nil {
		prescriptions = []*Prescription{}
	}
	return c.JSON(http.StatusOK, prescriptions)
}
