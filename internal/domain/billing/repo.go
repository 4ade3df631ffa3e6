package billing

import (
	"context"

	"github.com/google/uuid"
)

// BillRepository is the persistence contract for bills and payments.
type BillRepository interface {
	CreateBill(ctx context.Context, b *Bill) error
	GetBill(ctx context.Context, id uuid.UUID) (*Bill, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Bill, error)
	MarkPaid(ctx context.Context, billID uuid.UUID, transactionID string) error
	CreatePayment(ctx context.Context, p *Payment) error
}
