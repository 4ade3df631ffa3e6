package booking

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
	patients.POST("/addappointment", h.CreateAppointment)
	patients.GET("/appointments", h.ListAppointments)

	tests := api.Group("/booked-tests", requireAuth)
	tests.POST("/book", h.BookTest)
	tests.GET("/my-tests", h.ListBookedTests)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	patientID, ok := auth.PatientIDFromContext(c.Request().Context())
	if !ok {
		return apperr.Authentication("not authenticated")
	}
	var in CreateAppointmentInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	appt, err := h.svc.CreateAppointment(c.Request().Context(), patientID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, appt)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	patientID, ok := auth.PatientIDFromContext(c.Request().Context())
	if !ok {
		return apperr.Authentication("not authenticated")
	}
	appts, err := h.svc.ListAppointments(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	if appts == nil {
		appts = []*Appointment{}
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) BookTest(c echo.Context) error {
	patientID, ok := auth.PatientIDFromContext(c.Request().Context())
	if !ok {
		return apperr.Authentication("not authenticated")
	}
	var in BookTestInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	bt, err := h.svc.BookTest(c.Request().Context(), patientID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "test booked",
		"booking": bt,
	})
}

func (h *Handler) ListBookedTests(c echo.Context) error {
	patientID, ok := auth.PatientIDFromContext(c.Request().Context())
	if !ok {
		return apperr.Authentication("not authenticated")
	}
	tests, err := h.svc.ListBookedTests(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	if tests == nil {
		tests = []*BookedTest{}
	}
	return c.JSON(http.StatusOK, tests)
}
