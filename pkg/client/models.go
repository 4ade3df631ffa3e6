package client

import (
	"time"

	"github.com/google/uuid"
)

// Wire types mirrored from the API responses.

type Patient struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	DateOfBirth string    `json:"dateOfBirth"`
}

type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
}

type Doctor struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Speciality      string    `json:"speciality"`
	Image           string    `json:"image,omitempty"`
	AvailableSlots  []string  `json:"availableSlots,omitempty"`
	ConsultationFee float64   `json:"consultationFee,omitempty"`
	Rating          float64   `json:"rating,omitempty"`
	Experience      int       `json:"experience,omitempty"`
	Qualification   string    `json:"qualification,omitempty"`
}

type MedicalTest struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
}

type AppointmentInput struct {
	DoctorID uuid.UUID `json:"doctorId"`
	Date     string    `json:"date"`
	Time     string    `json:"time,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

type Appointment struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctorId"`
	PatientID uuid.UUID `json:"patientId"`
	Date      string    `json:"date"`
	Time      string    `json:"time,omitempty"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
}

type BookedTest struct {
	ID        uuid.UUID `json:"id"`
	TestID    uuid.UUID `json:"testId"`
	PatientID uuid.UUID `json:"patientId"`
	BookedAt  time.Time `json:"bookedAt"`
	Status    string    `json:"status"`
	Result    string    `json:"result,omitempty"`
}

type BookTestResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Booking BookedTest `json:"booking"`
}

type Bill struct {
	ID            uuid.UUID `json:"id"`
	PatientID     uuid.UUID `json:"patientId"`
	ServiceName   string    `json:"serviceName"`
	Amount        float64   `json:"amount"`
	Paid          bool      `json:"paid"`
	TransactionID string    `json:"transactionId,omitempty"`
	Date          time.Time `json:"date"`
}

type PayResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
}

type Medicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

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
