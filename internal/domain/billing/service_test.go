package billing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/healthnexus/clinic/internal/platform/apperr"
	"github.com/healthnexus/clinic/internal/platform/db"
)

type mockBillRepo struct {
	bills    map[uuid.UUID]*Bill
	payments []*Payment
}

func newMockBillRepo() *mockBillRepo {
	return &mockBillRepo{bills: make(map[uuid.UUID]*Bill)}
}

func (m *mockBillRepo) CreateBill(ctx context.Context, b *Bill) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.Date = time.Now()
	m.bills[b.ID] = b
	return nil
}

func (m *mockBillRepo) GetBill(ctx context.Context, id uuid.UUID) (*Bill, error) {
	if b, ok := m.bills[id]; ok {
		return b, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockBillRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Bill, error) {
	var out []*Bill
	for _, b := range m.bills {
		if b.PatientID == patientID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBillRepo) MarkPaid(ctx context.Context, billID uuid.UUID, transactionID string) error {
	b, ok := m.bills[billID]
	if !ok {
		return pgx.ErrNoRows
	}
	b.Paid = true
	b.TransactionID = transactionID
	return nil
}

func (m *mockBillRepo) CreatePayment(ctx context.Context, p *Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	m.payments = append(m.payments, p)
	return nil
}

func newTestService() (*Service, *mockBillRepo) {
	repo := newMockBillRepo()
	return NewService(repo, db.NopTxRunner{}), repo
}

func TestPay_GeneratesTransactionID(t *testing.T) {
	svc, repo := newTestService()

	result, err := svc.Pay(context.Background(), uuid.New(), PayInput{Amount: 50})
	if err != nil {
		t.Fatalf("Pay() error = %v", err)
	}
	if !result.Success {
		t.Error("Success = false, want true")
	}
	if !strings.HasPrefix(result.TransactionID, "TXN-") {
		t.Errorf("TransactionID = %q, want TXN- prefix", result.TransactionID)
	}
	if len(repo.payments) != 1 {
		t.Errorf("stored payments = %d, want 1", len(repo.payments))
	}
}

func TestPay_NonPositiveAmount(t *testing.T) {
	svc, repo := newTestService()

	for _, amount := range []float64{0, -10} {
		_, err := svc.Pay(context.Background(), uuid.New(), PayInput{Amount: amount})
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("Pay(amount=%v) error kind = %v, want validation", amount, apperr.KindOf(err))
		}
	}
	if len(repo.payments) != 0 {
		t.Error("payment persisted despite validation failure")
	}
}

func TestPay_LinksBill(t *testing.T) {
	svc, repo := newTestService()
	patientID := uuid.New()

	bill := &Bill{PatientID: patientID, ServiceName: "Consultation", Amount: 120}
	repo.CreateBill(context.Background(), bill)

	result, err := svc.Pay(context.Background(), patientID, PayInput{Amount: 120, BillID: &bill.ID})
	if err != nil {
		t.Fatalf("Pay() error = %v", err)
	}
	if !bill.Paid {
		t.Error("bill not marked paid")
	}
	if bill.TransactionID != result.TransactionID {
		t.Errorf("bill transaction id = %q, want %q", bill.TransactionID, result.TransactionID)
	}
}

func TestPay_ForeignBill(t *testing.T) {
	svc, repo := newTestService()

	bill := &Bill{PatientID: uuid.New(), ServiceName: "X-Ray", Amount: 80}
	repo.CreateBill(context.Background(), bill)

	_, err := svc.Pay(context.Background(), uuid.New(), PayInput{Amount: 80, BillID: &bill.ID})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("error kind = %v, want not_found", apperr.KindOf(err))
	}
	if bill.Paid {
		t.Error("foreign bill was marked paid")
	}
}

func TestPay_UnknownBill(t *testing.T) {
	svc, _ := newTestService()

	billID := uuid.New()
	_, err := svc.Pay(context.Background(), uuid.New(), PayInput{Amount: 10, BillID: &billID})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("error kind = %v, want not_found", apperr.KindOf(err))
	}
}

func TestPay_AlreadyPaidBill(t *testing.T) {
	svc, repo := newTestService()
	patientID := uuid.New()

	bill := &Bill{PatientID: patientID, ServiceName: "Lab", Amount: 40, Paid: true}
	repo.CreateBill(context.Background(), bill)

	_, err := svc.Pay(context.Background(), patientID, PayInput{Amount: 40, BillID: &bill.ID})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("error kind = %v, want conflict", apperr.KindOf(err))
	}
}

func TestListBills_ScopedToPatient(t *testing.T) {
	svc, repo := newTestService()
	alice, bob := uuid.New(), uuid.New()
	repo.CreateBill(context.Background(), &Bill{PatientID: alice, ServiceName: "Consultation", Amount: 100})
	repo.CreateBill(context.Background(), &Bill{PatientID: bob, ServiceName: "X-Ray", Amount: 60})

	bills, err := svc.ListBills(context.Background(), alice)
	if err != nil {
		t.Fatalf("ListBills() error = %v", err)
	}
	if len(bills) != 1 || bills[0].PatientID != alice {
		t.Errorf("bills = %+v, want only alice's", bills)
	}
}
