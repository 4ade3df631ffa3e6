package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthnexus/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type billRepoPG struct{ pool *pgxpool.Pool }

func NewBillRepoPG(pool *pgxpool.Pool) BillRepository { return &billRepoPG{pool: pool} }

func (r *billRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const billCols = `id, patient_id, service_name, amount, paid, transaction_id, date`

func (r *billRepoPG) scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	err := row.Scan(&b.ID, &b.PatientID, &b.ServiceName, &b.Amount, &b.Paid,
		&b.TransactionID, &b.Date)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *billRepoPG) CreateBill(ctx context.Context, b *Bill) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO bill (id, patient_id, service_name, amount, paid, transaction_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING date`,
		b.ID, b.PatientID, b.ServiceName, b.Amount, b.Paid, b.TransactionID,
	).Scan(&b.Date)
}

func (r *billRepoPG) GetBill(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return r.scanBill(r.conn(ctx).QueryRow(ctx,
		`SELECT `+billCols+` FROM bill WHERE id = $1`, id))
}

func (r *billRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Bill, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+billCols+` FROM bill WHERE patient_id = $1 ORDER BY date DESC`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*Bill
	for rows.Next() {
		b, err := r.scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *billRepoPG) MarkPaid(ctx context.Context, billID uuid.UUID, transactionID string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE bill SET paid = TRUE, transaction_id = $2 WHERE id = $1`,
		billID, transactionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *billRepoPG) CreatePayment(ctx context.Context, p *Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO payment (id, patient_id, bill_id, amount, transaction_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		p.ID, p.PatientID, p.BillID, p.Amount, p.TransactionID,
	).Scan(&p.CreatedAt)
}
