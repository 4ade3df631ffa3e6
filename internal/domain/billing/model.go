package billing

import (
	"time"

	"github.com/google/uuid"
)

// Bill is a charge issued to a patient by the clinic.
type Bill struct {
	ID            uuid.UUID `json:"id"`
	PatientID     uuid.UUID `json:"patientId"`
	ServiceName   string    `json:"serviceName"`
	Amount        float64   `json:"amount"`
	Paid          bool      `json:"paid"`
	TransactionID string    `json:"transactionId,omitempty"`
	Date          time.Time `json:"date"`
}

// Payment records a settled amount. When BillID is set the payment is linked
// to that bill and the bill is marked paid.
type Payment struct {
	ID            uuid.UUID  `json:"id"`
	PatientID     uuid.UUID  `json:"patientId"`
	BillID        *uuid.UUID `json:"billId,omitempty"`
	Amount        float64    `json:"amount"`
	TransactionID string     `json:"transactionId"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// PayInput is the payload for the payment endpoint.
type PayInput struct {
	Amount float64    `json:"amount"`
	BillID *uuid.UUID `json:"billId,omitempty"`
}

// PayResult is the payment endpoint's response envelope.
type PayResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
}
