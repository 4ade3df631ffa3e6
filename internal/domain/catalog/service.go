package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthnexus/clinic/internal/platform/apperr"
	"github.com/healthnexus/clinic/internal/platform/db"
)

type Service struct {
	doctors DoctorRepository
	tests   MedicalTestRepository
}

func NewService(doctors DoctorRepository, tests MedicalTestRepository) *Service {
	return &Service{doctors: doctors, tests: tests}
}

// ListDoctors returns the catalog, optionally filtered by exact speciality.
func (s *Service) ListDoctors(ctx context.Context, speciality string) ([]*Doctor, error) {
	doctors, err := s.doctors.List(ctx, speciality)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.NotFound("doctor not found")
		}
		return nil, fmt.Errorf("lookup doctor: %w", err)
	}
	return d, nil
}

// DoctorSlots returns a doctor's stored availability, or the default slot
// list when none is stored.
func (s *Service) DoctorSlots(ctx context.Context, doctorID uuid.UUID) ([]string, error) {
	d, err := s.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if len(d.AvailableSlots) == 0 {
		return DefaultSlots, nil
	}
	return d.AvailableSlots, nil
}

func (s *Service) ListMedicalTests(ctx context.Context) ([]*MedicalTest, error) {
	tests, err := s.tests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list medical tests: %w", err)
	}
	return tests, nil
}

func (s *Service) GetMedicalTest(ctx context.Context, id uuid.UUID) (*MedicalTest, error) {
	t, err := s.tests.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.NotFound("medical test not found")
		}
		return nil, fmt.Errorf("lookup medical test: %w", err)
	}
	return t, nil
}
