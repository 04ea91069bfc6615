package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, reservation_id, COALESCE(stay_id, 0), paid_at, amount, mode, reference, status`

type PGPaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.ReservationID, &p.StayID, &p.PaidAt, &p.Amount, &p.Mode, &p.Reference, &p.Status); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPayments(rows pgx.Rows) ([]domain.Payment, error) {
	defer rows.Close()
	out := make([]domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PGPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	// A zero PaidAt falls back to the column default.
	var paidAt *time.Time
	if !p.PaidAt.IsZero() {
		paidAt = &p.PaidAt
	}
	err := r.db.QueryRow(ctx, `INSERT INTO payments (reservation_id, stay_id, amount, mode, reference, status, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7::timestamptz, now()))
		RETURNING id, paid_at`,
		p.ReservationID, p.StayID, p.Amount, p.Mode, p.Reference, p.Status, paidAt).
		Scan(&p.ID, &p.PaidAt)
	return translate(err, "payment")
}

func (r *PGPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err, "payment")
	}
	return p, nil
}

func (r *PGPaymentRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		return nil, translate(err, "payment")
	}
	return p, nil
}

func (r *PGPaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE payments SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("payment not found")
	}
	return nil
}

func (r *PGPaymentRepository) ListByStay(ctx context.Context, stayID int64) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE stay_id=$1 ORDER BY paid_at`, stayID)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

func (r *PGPaymentRepository) ListByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE reservation_id=$1 ORDER BY paid_at`, reservationID)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

func (r *PGPaymentRepository) RefundByStay(ctx context.Context, stayID int64) (int64, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE payments SET status=$1 WHERE stay_id=$2 AND status<>$1`, domain.PaymentStatusRefunded, stayID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *PGPaymentRepository) List(ctx context.Context, f domain.PaymentFilter) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE ($1 = '' OR mode = $1) AND ($2 = '' OR status = $2)
		ORDER BY paid_at DESC`, string(f.Mode), string(f.Status))
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
