package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/healthnexus/clinic/internal/domain/catalog"
	"github.com/healthnexus/clinic/internal/platform/apperr"
	"github.com/healthnexus/clinic/internal/platform/db"
)

// Catalog is the slice of the catalog service the booking flow needs:
// existence checks that already yield not-found errors.
type Catalog interface {
	GetDoctor(ctx context.Context, id uuid.UUID) (*catalog.Doctor, error)
	GetMedicalTest(ctx context.Context, id uuid.UUID) (*catalog.MedicalTest, error)
}

type Service struct {
	appointments AppointmentRepository
	bookedTests  BookedTestRepository
	catalog      Catalog
	tx           db.TxRunner
}

func NewService(appointments AppointmentRepository, bookedTests BookedTestRepository, cat Catalog, tx db.TxRunner) *Service {
	return &Service{appointments: appointments, bookedTests: bookedTests, catalog: cat, tx: tx}
}

// CreateAppointment books a doctor's slot for the patient. The slot must
// reference an existing doctor and must not already be held by a pending or
// confirmed appointment. A storage failure is reported as a booking failure,
// never as success.
func (s *Service) CreateAppointment(ctx context.Context, patientID uuid.UUID, in CreateAppointmentInput) (*Appointment, error) {
	if in.DoctorID == uuid.Nil {
		return nil, apperr.Validation("doctorId is required")
	}
	if strings.TrimSpace(in.Date) == "" {
		return nil, apperr.Validation("date is required")
	}

	if _, err := s.catalog.GetDoctor(ctx, in.DoctorID); err != nil {
		return nil, err
	}

	appt := &Appointment{
		DoctorID:  in.DoctorID,
		PatientID: patientID,
		Date:      in.Date,
		Time:      in.Time,
		Status:    StatusPending,
		Reason:    in.Reason,
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.appointments.FindActive(ctx, in.DoctorID, in.Date, in.Time); err == nil {
			return apperr.Conflict("the slot is already booked")
		} else if !db.IsNotFound(err) {
			return fmt.Errorf("check slot: %w", err)
		}
		return s.appointments.Create(ctx, appt)
	})
	if err != nil {
		if apperr.IsKind(err, apperr.KindConflict) {
			return nil, err
		}
		// The partial unique index catches a concurrent racer the
		// in-transaction check missed.
		if db.IsUniqueViolation(err) {
			return nil, apperr.Conflict("the slot is already booked")
		}
		return nil, apperr.BookingFailed(err, "could not book the appointment")
	}

	return appt, nil
}

// ListAppointments returns the patient's own appointments, newest first.
func (s *Service) ListAppointments(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	appts, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

var appointmentTransitions = map[string][]string{
	StatusPending: {StatusConfirmed, StatusCancelled},
}

// UpdateAppointmentStatus moves an appointment through the pending ->
// {confirmed, cancelled} state machine. Used by the staff workflow, not
// exposed on the patient API.
func (s *Service) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status string) error {
	if status != StatusConfirmed && status != StatusCancelled {
		return apperr.Validation("status must be confirmed or cancelled")
	}

	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return apperr.NotFound("appointment not found")
		}
		return fmt.Errorf("lookup appointment: %w", err)
	}

	allowed := false
	for _, next := range appointmentTransitions[appt.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperr.Conflict("appointment is %s and cannot become %s", appt.Status, status)
	}

	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	return nil
}

// BookTest books a lab test for the patient. The first insert lets storage
// assign the booking time; if it fails, one retry is made with an explicit
// timestamp before giving up. At most one record is created.
func (s *Service) BookTest(ctx context.Context, patientID uuid.UUID, in BookTestInput) (*BookedTest, error) {
	if in.TestID == uuid.Nil {
		return nil, apperr.Validation("testId is required")
	}

	var bookedAt time.Time
	if in.Date != "" {
		parsed, err := time.Parse(time.RFC3339, in.Date)
		if err != nil {
			return nil, apperr.Validation("date must be an RFC 3339 timestamp")
		}
		bookedAt = parsed
	}

	if _, err := s.catalog.GetMedicalTest(ctx, in.TestID); err != nil {
		return nil, err
	}

	bt := &BookedTest{
		TestID:    in.TestID,
		PatientID: patientID,
		BookedAt:  bookedAt,
		Status:    StatusPending,
	}
	if err := s.bookedTests.Create(ctx, bt); err == nil {
		return bt, nil
	}

	if bookedAt.IsZero() {
		bookedAt = time.Now().UTC()
	}
	retry := &BookedTest{
		TestID:    in.TestID,
		PatientID: patientID,
		BookedAt:  bookedAt,
		Status:    StatusPending,
	}
	if err := s.bookedTests.Create(ctx, retry); err != nil {
		return nil, apperr.BookingFailed(err, "could not book the test")
	}
	return retry, nil
}

// ListBookedTests returns the patient's own test bookings, newest first.
func (s *Service) ListBookedTests(ctx context.Context, patientID uuid.UUID) ([]*BookedTest, error) {
	tests, err := s.bookedTests.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list booked tests: %w", err)
	}
	return tests, nil
}
