package catalog

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

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

func (r *doctorRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const doctorCols = `id, name, speciality, image, available_slots, consultation_fee,
	rating, experience, qualification, created_at`

func (r *doctorRepoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Speciality, &d.Image, &d.AvailableSlots,
		&d.ConsultationFee, &d.Rating, &d.Experience, &d.Qualification, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctor (id, name, speciality, image, available_slots,
			consultation_fee, rating, experience, qualification)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at`,
		d.ID, d.Name, d.Speciality, d.Image, d.AvailableSlots,
		d.ConsultationFee, d.Rating, d.Experience, d.Qualification,
	).Scan(&d.CreatedAt)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *doctorRepoPG) List(ctx context.Context, speciality string) ([]*Doctor, error) {
	query := `SELECT ` + doctorCols + ` FROM doctor`
	var args []interface{}
	if speciality != "" {
		query += ` WHERE speciality = $1`
		args = append(args, speciality)
	}
	query += ` ORDER BY created_at`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []*Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

// =========== MedicalTest Repository ===========

type medicalTestRepoPG struct{ pool *pgxpool.Pool }

func NewMedicalTestRepoPG(pool *pgxpool.Pool) MedicalTestRepository {
	return &medicalTestRepoPG{pool: pool}
}

func (r *medicalTestRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const testCols = `id, name, description, price, created_at`

func (r *medicalTestRepoPG) scanTest(row pgx.Row) (*MedicalTest, error) {
	var t MedicalTest
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Price, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *medicalTestRepoPG) Create(ctx context.Context, t *MedicalTest) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medical_test (id, name, description, price)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at`,
		t.ID, t.Name, t.Description, t.Price,
	).Scan(&t.CreatedAt)
}

func (r *medicalTestRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalTest, error) {
	return r.scanTest(r.conn(ctx).QueryRow(ctx,
		`SELECT `+testCols+` FROM medical_test WHERE id = $1`, id))
}

func (r *medicalTestRepoPG) List(ctx context.Context) ([]*MedicalTest, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+testCols+` FROM medical_test ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []*MedicalTest
	for rows.Next() {
		t, err := r.scanTest(rows)
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}
