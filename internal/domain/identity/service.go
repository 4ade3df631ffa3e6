package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/healthnexus/clinic/internal/platform/apperr"
	"github.com/healthnexus/clinic/internal/platform/auth"
	"github.com/healthnexus/clinic/internal/platform/db"
)

type Service struct {
	patients PatientRepository
	tokens   *auth.TokenIssuer
}

func NewService(patients PatientRepository, tokens *auth.TokenIssuer) *Service {
	return &Service{patients: patients, tokens: tokens}
}

// Register validates the input, persists a new patient with a hashed
// password and returns a signed session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	required := map[string]string{
		"name":        in.Name,
		"email":       in.Email,
		"password":    in.Password,
		"address":     in.Address,
		"phone":       in.Phone,
		"dateOfBirth": in.DateOfBirth,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return nil, apperr.Validation("%s is required", field)
		}
	}
	if !strings.Contains(in.Email, "@") {
		return nil, apperr.Validation("email is not valid")
	}

	if _, err := s.patients.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Validation("email is already registered")
	} else if !db.IsNotFound(err) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &Patient{
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		Address:      in.Address,
		Phone:        in.Phone,
		DateOfBirth:  in.DateOfBirth,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		// Unique index backstop for a concurrent registration with the
		// same email.
		if db.IsUniqueViolation(err) {
			return nil, apperr.Validation("email is already registered")
		}
		return nil, fmt.Errorf("create patient: %w", err)
	}

	return s.issueSession(p)
}

// Login checks the credentials and returns a fresh session. Unknown email
// and wrong password produce the same message.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperr.Validation("email and password are required")
	}

	p, err := s.patients.GetByEmail(ctx, in.Email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.Authentication("invalid email or password")
		}
		return nil, fmt.Errorf("lookup patient: %w", err)
	}
	if !auth.VerifyPassword(p.PasswordHash, in.Password) {
		return nil, apperr.Authentication("invalid email or password")
	}

	return s.issueSession(p)
}

// GetProfile returns the patient record behind an authenticated request.
func (s *Service) GetProfile(ctx context.Context, patientID uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.NotFound("patient not found")
		}
		return nil, fmt.Errorf("lookup patient: %w", err)
	}
	return p, nil
}

func (s *Service) issueSession(p *Patient) (*Session, error) {
	token, err := s.tokens.Issue(p.ID, p.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, Patient: p}, nil
}
