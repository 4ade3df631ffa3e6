package booking

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. New appointments always start pending; an external
// actor (clinic staff) moves them to confirmed or cancelled.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Appointment is a patient's booking of a doctor's slot. Date and Time are
// kept as the opaque strings the client presents ("2025-03-01", "9:00 AM");
// slot identity is their exact pairing with the doctor.
type Appointment struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctorId"`
	PatientID uuid.UUID `json:"patientId"`
	Date      string    `json:"date"`
	Time      string    `json:"time,omitempty"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookedTest is a patient's lab-test booking.
type BookedTest struct {
	ID        uuid.UUID `json:"id"`
	TestID    uuid.UUID `json:"testId"`
	PatientID uuid.UUID `json:"patientId"`
	BookedAt  time.Time `json:"bookedAt"`
	Status    string    `json:"status"`
	Result    string    `json:"result,omitempty"`
}

// CreateAppointmentInput is the payload for the appointment endpoint.
type CreateAppointmentInput struct {
	DoctorID uuid.UUID `json:"doctorId"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Reason   string    `json:"reason"`
}

// BookTestInput is the payload for the test-booking endpoint. Date is
// optional: clients retrying a failed booking send an explicit RFC 3339
// timestamp so the booking time does not drift between attempts.
type BookTestInput struct {
	TestID uuid.UUID `json:"testId"`
	Date   string    `json:"date,omitempty"`
}
