package prescription

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for prescriptions.
type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error)
}
