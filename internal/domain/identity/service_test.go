package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/healthnexus/clinic/internal/platform/apperr"
	"github.com/healthnexus/clinic/internal/platform/auth"
)

type mockPatientRepo struct {
	byID    map[uuid.UUID]*Patient
	byEmail map[string]*Patient
	failAll bool
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{
		byID:    make(map[uuid.UUID]*Patient),
		byEmail: make(map[string]*Patient),
	}
}

func (m *mockPatientRepo) Create(ctx context.Context, p *Patient) error {
	if m.failAll {
		return context.DeadlineExceeded
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.byID[p.ID] = p
	m.byEmail[strings.ToLower(p.Email)] = p
	return nil
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockPatientRepo) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	if p, ok := m.byEmail[strings.ToLower(email)]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func newTestService() (*Service, *mockPatientRepo) {
	repo := newMockPatientRepo()
	tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	return NewService(repo, tokens), repo
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:        "Alice Hart",
		Email:       "alice@example.com",
		Password:    "pass1234",
		Address:     "12 Main St",
		Phone:       "555-0100",
		DateOfBirth: "1990-04-12",
	}
}

func TestRegister_Success(t *testing.T) {
	svc, repo := newTestService()

	session, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if session.Token == "" {
		t.Error("Register() returned empty token")
	}
	if session.Patient.PasswordHash == "pass1234" {
		t.Error("password stored in plaintext")
	}
	if _, ok := repo.byEmail["alice@example.com"]; !ok {
		t.Error("patient not persisted")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	fields := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"name", func(in *RegisterInput) { in.Name = "" }},
		{"email", func(in *RegisterInput) { in.Email = "" }},
		{"password", func(in *RegisterInput) { in.Password = "" }},
		{"address", func(in *RegisterInput) { in.Address = " " }},
		{"phone", func(in *RegisterInput) { in.Phone = "" }},
		{"dateOfBirth", func(in *RegisterInput) { in.DateOfBirth = "" }},
	}

	for _, tt := range fields {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Fatalf("Register() error kind = %v, want validation", apperr.KindOf(err))
			}
			if len(repo.byID) != 0 {
				t.Error("record persisted despite validation failure")
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	in := validInput()
	in.Name = "Other Alice"
	_, err := svc.Register(context.Background(), in)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("Register() error kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	session, err := svc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.Token == "" {
		t.Error("Login() returned empty token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	if !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Errorf("Login() error kind = %v, want authentication", apperr.KindOf(err))
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Errorf("Login() error kind = %v, want authentication", apperr.KindOf(err))
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetProfile(context.Background(), uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("GetProfile() error kind = %v, want not_found", apperr.KindOf(err))
	}
}
