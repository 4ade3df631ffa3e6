package catalog

import (
	"context"

	"github.com/google/uuid"
)

// DoctorRepository is the persistence contract for the doctor catalog.
type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	List(ctx context.Context, speciality string) ([]*Doctor, error)
}

// MedicalTestRepository is the persistence contract for lab tests.
type MedicalTestRepository interface {
	Create(ctx context.Context, t *MedicalTest) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalTest, error)
	List(ctx context.Context) ([]*MedicalTest, error)
}
