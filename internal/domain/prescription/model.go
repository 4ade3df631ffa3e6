package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Medicine is one line of a prescription, stored as jsonb.
type Medicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

// Prescription is written by a doctor through a staff workflow; patients can
// only read their own.
type Prescription struct {
	ID           uuid.UUID  `json:"id"`
	PatientID    uuid.UUID  `json:"patientId"`
	DoctorID     uuid.UUID  `json:"doctorId"`
	Disease      string     `json:"disease"`
	Medicines    []Medicine `json:"medicines"`
	Instructions string     `json:"instructions,omitempty"`
	FileURL      string     `json:"fileUrl,omitempty"`
	Date         time.Time  `json:"date"`
}
