package identity

import (
	"context"

	"github.com/google/uuid"
)

// PatientRepository is the persistence contract for patient records.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
}
