package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthnexus/clinic/internal/platform/apperr"
	"github.com/healthnexus/clinic/internal/platform/auth"
)

func TestPayHandler_ReturnsTransactionID(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/patients/payment",
		strings.NewReader(`{"amount":75}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(auth.WithPatientID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Pay(c); err != nil {
		t.Fatalf("Pay() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result PayResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !result.Success || result.TransactionID == "" {
		t.Errorf("result = %+v, want success with transaction id", result)
	}
}

func TestPayHandler_RejectsZeroAmount(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/patients/payment",
		strings.NewReader(`{"amount":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(auth.WithPatientID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Pay(c)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("error kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestListBillsHandler_EmptyArray(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/patients/bills", nil)
	req = req.WithContext(auth.WithPatientID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListBills(c); err != nil {
		t.Fatalf("ListBills() error = %v", err)
	}

	var bills []Bill
	if err := json.Unmarshal(rec.Body.Bytes(), &bills); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if bills == nil {
		t.Error("expected empty JSON array, got null")
	}
}

func TestListBillsHandler_ReturnsOwnBills(t *testing.T) {
	svc, repo := newTestService()
	h := NewHandler(svc)
	patientID := uuid.New()
	repo.CreateBill(context.Background(), &Bill{PatientID: patientID, ServiceName: "Consultation", Amount: 100})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/patients/bills", nil)
	req = req.WithContext(auth.WithPatientID(req.Context(), patientID))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListBills(c); err != nil {
		t.Fatalf("ListBills() error = %v", err)
	}

	var bills []Bill
	if err := json.Unmarshal(rec.Body.Bytes(), &bills); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(bills) != 1 || bills[0].ServiceName != "Consultation" {
		t.Errorf("bills = %+v, want the consultation bill", bills)
	}
}
