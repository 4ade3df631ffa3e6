package catalog

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthnexus/clinic/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group, requireAuth echo.MiddlewareFunc) {
	doctors := api.Group("/doctors")
	doctors.GET("/all-doctors", h.ListDoctors)
	doctors.GET("/slots/:doctorId", h.DoctorSlots, requireAuth)
	doctors.GET("/:doctorId", h.GetDoctor)

	admin := api.Group("/admin")
	admin.GET("/alltest", h.ListMedicalTests)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	doctors, err := h.svc.ListDoctors(c.Request().Context(), c.QueryParam("speciality"))
	if err != nil {
		return err
	}
	if doctors == nil {
		doctors = []*Doctor{}
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		return apperr.Validation("invalid doctor id")
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DoctorSlots(c echo.Context) error {
	id, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		return apperr.Validation("invalid doctor id")
	}
	slots, err := h.svc.DoctorSlots(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string][]string{"slots": slots})
}

func (h *Handler) ListMedicalTests(c echo.Context) error {
	tests, err := h.svc.ListMedicalTests(c.Request().Context())
	if err != nil {
		return err
	}
	if tests == nil {
		tests = []*MedicalTest{}
	}
	return c.JSON(http.StatusOK, tests)
}
