package booking

import (
	"context"

	"github.com/google/uuid"
)

// AppointmentRepository is the persistence contract for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)
	// FindActive returns the pending or confirmed appointment occupying the
	// given (doctor, date, time) slot, regardless of which patient holds it.
	FindActive(ctx context.Context, doctorID uuid.UUID, date, timeSlot string) (*Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// BookedTestRepository is the persistence contract for test bookings.
type BookedTestRepository interface {
	// Create inserts the booking. A zero BookedAt lets the storage layer
	// assign the current time.
	Create(ctx context.Context, bt *BookedTest) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*BookedTest, error)
}
