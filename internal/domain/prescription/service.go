package prescription

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthnexus/clinic/internal/platform/apperr"
)

type Service struct {
	prescriptions Repository
}

func NewService(prescriptions Repository) *Service {
	return &Service{prescriptions: prescriptions}
}

// ListByPatient returns the prescriptions of the requested patient. The
// requester may only read their own: a mismatch is rejected rather than
// filtered.
func (s *Service) ListByPatient(ctx context.Context, requesterID, patientID uuid.UUID) ([]*Prescription, error) {
	if requesterID != patientID {
		return nil, apperr.Authentication("cannot read another patient's prescriptions")
	}
	prescriptions, err := s.prescriptions.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	return prescriptions, nil
}
