package booking

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

// =========== Appointment Repository ===========

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const apptCols = `id, doctor_id, patient_id, date, time, status, reason, created_at, updated_at`

func (r *appointmentRepoPG) scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.Date, &a.Time,
		&a.Status, &a.Reason, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointment (id, doctor_id, patient_id, date, time, status, reason)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		a.ID, a.DoctorID, a.PatientID, a.Date, a.Time, a.Status, a.Reason,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE patient_id = $1 ORDER BY created_at DESC`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []*Appointment
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func (r *appointmentRepoPG) FindActive(ctx context.Context, doctorID uuid.UUID, date, timeSlot string) (*Appointment, error) {
	return r.scanAppointment(r.conn(ctx).QueryRow(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE doctor_id = $1 AND date = $2 AND time = $3
		  AND status IN ($4, $5)`,
		doctorID, date, timeSlot, StatusPending, StatusConfirmed))
}

func (r *appointmentRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointment SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// =========== BookedTest Repository ===========

type bookedTestRepoPG struct{ pool *pgxpool.Pool }

func NewBookedTestRepoPG(pool *pgxpool.Pool) BookedTestRepository {
	return &bookedTestRepoPG{pool: pool}
}

func (r *bookedTestRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const bookedTestCols = `id, test_id, patient_id, booked_at, status, result`

func (r *bookedTestRepoPG) scanBookedTest(row pgx.Row) (*BookedTest, error) {
	var bt BookedTest
	err := row.Scan(&bt.ID, &bt.TestID, &bt.PatientID, &bt.BookedAt, &bt.Status, &bt.Result)
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func (r *bookedTestRepoPG) Create(ctx context.Context, bt *BookedTest) error {
	if bt.ID == uuid.Nil {
		bt.ID = uuid.New()
	}
	if bt.BookedAt.IsZero() {
		return r.conn(ctx).QueryRow(ctx, `
			INSERT INTO booked_test (id, test_id, patient_id, status, result)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING booked_at`,
			bt.ID, bt.TestID, bt.PatientID, bt.Status, bt.Result,
		).Scan(&bt.BookedAt)
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO booked_test (id, test_id, patient_id, booked_at, status, result)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		bt.ID, bt.TestID, bt.PatientID, bt.BookedAt, bt.Status, bt.Result)
	return err
}

func (r *bookedTestRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*BookedTest, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+bookedTestCols+` FROM booked_test WHERE patient_id = $1 ORDER BY booked_at DESC`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []*BookedTest
	for rows.Next() {
		bt, err := r.scanBookedTest(rows)
		if err != nil {
			return nil, err
		}
		tests = append(tests, bt)
	}
	return tests, rows.Err()
}
