package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestKindOf(t *testing.T) {
	err := Conflict("slot taken")
	if KindOf(err) != KindConflict {
		t.Errorf("expected conflict, got %s", KindOf(err))
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("create appointment: %w", NotFound("doctor not found"))
	if KindOf(err) != KindNotFound {
		t.Errorf("expected not_found, got %s", KindOf(err))
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("expected internal for unclassified error")
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := BookingFailed(cause, "could not persist booking")
	if !errors.Is(err, cause) {
		t.Error("expected cause to survive wrapping")
	}
}

func doRequest(t *testing.T, err error) (*httptest.ResponseRecorder, response) {
	t.Helper()
	e := echo.New()
	logger := zerolog.New(os.Stderr)
	e.HTTPErrorHandler = HTTPErrorHandler(logger)
	e.GET("/boom", func(c echo.Context) error { return err })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   Kind
	}{
		{Validation("name is required"), http.StatusBadRequest, KindValidation},
		{Authentication("invalid credentials"), http.StatusUnauthorized, KindAuthentication},
		{NotFound("doctor not found"), http.StatusNotFound, KindNotFound},
		{Conflict("slot already booked"), http.StatusConflict, KindConflict},
		{BookingFailed(errors.New("db down"), "could not persist booking"), http.StatusBadGateway, KindBookingFailed},
		{errors.New("boom"), http.StatusInternalServerError, KindInternal},
	}
	for _, tc := range cases {
		rec, body := doRequest(t, tc.err)
		if rec.Code != tc.status {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
		if body.Error != tc.kind {
			t.Errorf("%v: expected kind %s, got %s", tc.err, tc.kind, body.Error)
		}
	}
}

func TestHTTPErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	rec, body := doRequest(t, echo.NewHTTPError(http.StatusNotFound, "no such route"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if body.Message != "no such route" {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestHTTPErrorHandler_InternalHidesDetail(t *testing.T) {
	_, body := doRequest(t, errors.New("pq: password authentication failed"))
	if body.Message != "internal server error" {
		t.Errorf("internal detail leaked: %q", body.Message)
	}
}
