// Package client is the Go facade over the clinic API: one HTTP client that
// owns the session, attaches the bearer token, and normalizes every failure
// into a typed error. A failed call is always reported as a failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request unless the caller's context is
// stricter.
const DefaultTimeout = 10 * time.Second

// Session is the explicit client-side session state: the bearer token and
// the profile it was issued for. Login and Register set it, Logout clears
// it.
type Session struct {
	Token   string  `json:"token"`
	Patient Patient `json:"patient"`
}

// Client calls the clinic API. Not safe for concurrent mutation of the
// session; create one client per user session.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the current session, or nil when logged out.
func (c *Client) Session() *Session { return c.session }

// --- identity ---

// Register creates an account and starts a session.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/patients/register", in, &s); err != nil {
		return nil, err
	}
	c.session = &s
	return &s, nil
}

// Login authenticates and starts a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/patients/login", in, &s); err != nil {
		return nil, err
	}
	c.session = &s
	return &s, nil
}

// Logout ends the session. The local session is cleared even if the server
// call fails; the token is worthless to the client either way.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/patients/logout", nil, nil)
	c.session = nil
	return err
}

// Me fetches the authenticated patient's profile.
func (c *Client) Me(ctx context.Context) (*Patient, error) {
	var p Patient
	if err := c.do(ctx, http.MethodGet, "/api/patients/me", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// --- catalog ---

// Doctors lists the catalog, optionally filtered by exact speciality.
func (c *Client) Doctors(ctx context.Context, speciality string) ([]Doctor, error) {
	path := "/api/doctors/all-doctors"
	if speciality != "" {
		path += "?speciality=" + url.QueryEscape(speciality)
	}
	var doctors []Doctor
	if err := c.do(ctx, http.MethodGet, path, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// Doctor fetches a single catalog entry.
func (c *Client) Doctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	var d Doctor
	if err := c.do(ctx, http.MethodGet, "/api/doctors/"+id.String(), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DoctorSlots fetches a doctor's bookable slots.
func (c *Client) DoctorSlots(ctx context.Context, id uuid.UUID) ([]string, error) {
	var resp struct {
		Slots []string `json:"slots"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/doctors/slots/"+id.String(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Slots, nil
}

// MedicalTests lists the bookable lab tests.
func (c *Client) MedicalTests(ctx context.Context) ([]MedicalTest, error) {
	var tests []MedicalTest
	if err := c.do(ctx, http.MethodGet, "/api/admin/alltest", nil, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// --- booking ---

// BookAppointment books a doctor's slot.
func (c *Client) BookAppointment(ctx context.Context, in AppointmentInput) (*Appointment, error) {
	var a Appointment
	if err := c.do(ctx, http.MethodPost, "/api/patients/addappointment", in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Appointments lists the session patient's appointments.
func (c *Client) Appointments(ctx context.Context) ([]Appointment, error) {
	var appts []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/patients/appointments", nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// BookTest books a lab test. A transport-level failure is retried exactly
// once, with an explicit timestamp so the booking time is the same on both
// attempts. Server-side rejections (validation, auth, not-found, conflict)
// are not retried.
func (c *Client) BookTest(ctx context.Context, testID uuid.UUID) (*BookTestResult, error) {
	var result BookTestResult
	err := c.do(ctx, http.MethodPost, "/api/booked-tests/book",
		map[string]interface{}{"testId": testID}, &result)
	if err == nil {
		return &result, nil
	}
	if kind := KindOf(err); kind != KindNetwork && kind != KindTimeout {
		return nil, err
	}

	retryIn := map[string]interface{}{
		"testId": testID,
		"date":   time.Now().UTC().Format(time.RFC3339),
	}
	if err := c.do(ctx, http.MethodPost, "/api/booked-tests/book", retryIn, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MyTests lists the session patient's test bookings.
func (c *Client) MyTests(ctx context.Context) ([]BookedTest, error) {
	var tests []BookedTest
	if err := c.do(ctx, http.MethodGet, "/api/booked-tests/my-tests", nil, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// --- billing ---

// Bills lists the session patient's bills.
func (c *Client) Bills(ctx context.Context) ([]Bill, error) {
	var bills []Bill
	if err := c.do(ctx, http.MethodGet, "/api/patients/bills", nil, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// Pay records a payment, optionally against a bill.
func (c *Client) Pay(ctx context.Context, amount float64, billID *uuid.UUID) (*PayResult, error) {
	in := map[string]interface{}{"amount": amount}
	if billID != nil {
		in["billId"] = billID
	}
	var result PayResult
	if err := c.do(ctx, http.MethodPost, "/api/patients/payment", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- prescriptions ---

// Prescriptions lists the session patient's prescriptions.
func (c *Client) Prescriptions(ctx context.Context) ([]Prescription, error) {
	if c.session == nil {
		return nil, &Error{Kind: "authentication", Message: "not logged in"}
	}
	path := "/api/admin/prescriptions/" + c.session.Patient.ID.String()
	var prescriptions []Prescription
	if err := c.do(ctx, http.MethodGet, path, nil, &prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// --- transport ---

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return normalizeTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeServerError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode,
			Message: "malformed response body", cause: err}
	}
	return nil
}

func normalizeTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return &Error{Kind: KindTimeout, Message: "request timed out", cause: err}
	}
	return &Error{Kind: KindNetwork, Message: "no response from server", cause: err}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func decodeServerError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return &Error{Kind: apiErr.Error, Status: resp.StatusCode, Message: apiErr.Message}
	}
	return &Error{Kind: KindServer, Status: resp.StatusCode, Message: string(body)}
}

