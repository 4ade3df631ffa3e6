package prescription

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthnexus/clinic/internal/platform/apperr"
	"github.com/healthnexus/clinic/internal/platform/auth"
)

func listRequest(t *testing.T, h *Handler, requesterID uuid.UUID, pathPatientID string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithPatientID(req.Context(), requesterID))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues(pathPatientID)
	return rec, h.ListByPatient(c)
}

func TestListByPatientHandler_OwnRecords(t *testing.T) {
	repo := &mockRepo{}
	h := NewHandler(NewService(repo))
	patientID := uuid.New()
	repo.Create(context.Background(), &Prescription{PatientID: patientID, DoctorID: uuid.New(), Disease: "Flu"})

	rec, err := listRequest(t, h, patientID, patientID.String())
	if err != nil {
		t.Fatalf("ListByPatient() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []Prescription
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d prescriptions, want 1", len(got))
	}
}

func TestListByPatientHandler_ForeignPatient(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}))

	_, err := listRequest(t, h, uuid.New(), uuid.NewString())
	if !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Errorf("error kind = %v, want authentication", apperr.KindOf(err))
	}
}

func TestListByPatientHandler_InvalidID(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}))

	_, err := listRequest(t, h, uuid.New(), "not-a-uuid")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("error kind = %v, want validation", apperr.KindOf(err))
	}
}
