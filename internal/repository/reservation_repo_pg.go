package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
)

const reservationColumns = `r.id, r.client_id, r.room_id, r.agent_id, r.booked_at, r.start_date, r.end_date, r.adults, r.children,
	r.nights, r.total_price, r.price_overridden, r.status, r.comment, c.first_name || ' ' || c.last_name, rm.number`

const reservationFrom = ` FROM reservations r
	JOIN clients c ON c.id = r.client_id
	JOIN rooms rm ON rm.id = r.room_id`

type PGReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) ReservationRepository {
	return &PGReservationRepository{db: db}
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var r domain.Reservation
	if err := row.Scan(&r.ID, &r.ClientID, &r.RoomID, &r.AgentID, &r.BookedAt, &r.StartDate, &r.EndDate, &r.Adults, &r.Children,
		&r.Nights, &r.TotalPrice, &r.PriceOverridden, &r.Status, &r.Comment, &r.ClientName, &r.RoomNumber); err != nil {
		return nil, err
	}
	r.StartDate = domain.DateOnly(r.StartDate)
	r.EndDate = domain.DateOnly(r.EndDate)
	return &r, nil
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	defer rows.Close()
	out := make([]domain.Reservation, 0)
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (r *PGReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	err := r.db.QueryRow(ctx, `INSERT INTO reservations (client_id, room_id, agent_id, start_date, end_date, adults, children,
			nights, total_price, price_overridden, status, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, booked_at`,
		res.ClientID, res.RoomID, res.AgentID, res.StartDate, res.EndDate, res.Adults, res.Children,
		res.Nights, res.TotalPrice, res.PriceOverridden, res.Status, res.Comment).
		Scan(&res.ID, &res.BookedAt)
	return translate(err, "reservation")
}

func (r *PGReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, `SELECT `+reservationColumns+reservationFrom+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, translate(err, "reservation")
	}
	return res, nil
}

// GetForUpdate locks only the reservation row; joined rows stay unlocked.
func (r *PGReservationRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, `SELECT `+reservationColumns+reservationFrom+` WHERE r.id=$1 FOR UPDATE OF r`, id))
	if err != nil {
		return nil, translate(err, "reservation")
	}
	return res, nil
}

func (r *PGReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	cmd, err := r.db.Exec(ctx, `UPDATE reservations SET client_id=$1, room_id=$2, start_date=$3, end_date=$4, adults=$5, children=$6,
		nights=$7, total_price=$8, price_overridden=$9, status=$10, comment=$11
		WHERE id=$12`,
		res.ClientID, res.RoomID, res.StartDate, res.EndDate, res.Adults, res.Children,
		res.Nights, res.TotalPrice, res.PriceOverridden, res.Status, res.Comment, res.ID)
	if err != nil {
		return translate(err, "reservation")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("reservation not found")
	}
	return nil
}

func (r *PGReservationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id=$1`, id)
	if err != nil {
		return translate(err, "reservation")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("reservation not found")
	}
	return nil
}

func (r *PGReservationRepository) List(ctx context.Context, f domain.ReservationFilter) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+reservationFrom+`
		WHERE ($1 = '' OR c.last_name ILIKE '%' || $1 || '%' OR c.first_name ILIKE '%' || $1 || '%' OR rm.number ILIKE '%' || $1 || '%')
			AND ($2 = '' OR r.status = $2)
			AND ($3::date IS NULL OR r.start_date >= $3::date)
			AND ($4::date IS NULL OR r.end_date <= $4::date)
		ORDER BY r.booked_at DESC`,
		f.Search, string(f.Status), f.StartFrom, f.EndTo)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func (r *PGReservationRepository) ListConflicting(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+reservationFrom+`
		WHERE r.room_id=$1 AND r.status = ANY($2) AND r.id<>$3
			AND r.start_date < $5 AND r.end_date > $4
		ORDER BY r.start_date`,
		roomID, activeStatuses(), excludeID, domain.DateOnly(start), domain.DateOnly(end))
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func (r *PGReservationRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+reservationFrom+` WHERE r.client_id=$1 ORDER BY r.booked_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func (r *PGReservationRepository) ListByRoom(ctx context.Context, roomID int64, limit int) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+reservationFrom+` WHERE r.room_id=$1 ORDER BY r.start_date DESC LIMIT $2`, roomID, limit)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func (r *PGReservationRepository) CountByClient(ctx context.Context, clientID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM reservations WHERE client_id=$1`, clientID).Scan(&n)
	return n, err
}

func (r *PGReservationRepository) CountByRoom(ctx context.Context, roomID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM reservations WHERE room_id=$1`, roomID).Scan(&n)
	return n, err
}

func activeStatuses() []string {
	out := make([]string, len(domain.ActiveReservationStatuses))
	for i, s := range domain.ActiveReservationStatuses {
		out[i] = string(s)
	}
	return out
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
