package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthnexus/clinic/internal/platform/apperr"
	"github.com/healthnexus/clinic/internal/platform/db"
)

type Service struct {
	bills BillRepository
	tx    db.TxRunner
}

func NewService(bills BillRepository, tx db.TxRunner) *Service {
	return &Service{bills: bills, tx: tx}
}

// ListBills returns the patient's own bills, newest first.
func (s *Service) ListBills(ctx context.Context, patientID uuid.UUID) ([]*Bill, error) {
	bills, err := s.bills.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

// Pay records a payment for the patient. When a bill id is given the bill
// must belong to the patient and not already be paid; the payment and the
// bill update commit together.
func (s *Service) Pay(ctx context.Context, patientID uuid.UUID, in PayInput) (*PayResult, error) {
	if in.Amount <= 0 {
		return nil, apperr.Validation("amount must be positive")
	}

	payment := &Payment{
		PatientID:     patientID,
		BillID:        in.BillID,
		Amount:        in.Amount,
		TransactionID: newTransactionID(),
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if in.BillID != nil {
			bill, err := s.bills.GetBill(ctx, *in.BillID)
			if err != nil {
				if db.IsNotFound(err) {
					return apperr.NotFound("bill not found")
				}
				return fmt.Errorf("lookup bill: %w", err)
			}
			if bill.PatientID != patientID {
				return apperr.NotFound("bill not found")
			}
			if bill.Paid {
				return apperr.Conflict("bill is already paid")
			}
			if err := s.bills.MarkPaid(ctx, bill.ID, payment.TransactionID); err != nil {
				return fmt.Errorf("mark bill paid: %w", err)
			}
		}
		return s.bills.CreatePayment(ctx, payment)
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			return nil, err
		}
		return nil, fmt.Errorf("record payment: %w", err)
	}

	return &PayResult{Success: true, TransactionID: payment.TransactionID}, nil
}

func newTransactionID() string {
	return "TXN-" + uuid.NewString()
}
