package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
)

// ReportRepository runs read-only aggregates for dashboards and detail pages.
type ReportRepository interface {
	RoomStats(ctx context.Context) (domain.RoomStats, error)
	ReservationStats(ctx context.Context, today time.Time) (domain.ReservationStats, error)
	CountActiveStays(ctx context.Context) (int, error)
	CountClients(ctx context.Context) (int, error)
	// Revenue sums validated payments paid in [from, to). Zero times leave the bound open.
	Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	RecentReservations(ctx context.Context, limit int) ([]domain.Reservation, error)
	RoomsByType(ctx context.Context) ([]domain.TypeCount, error)
	ReservationsPerMonth(ctx context.Context, since time.Time) ([]domain.MonthCount, error)
	ClientTotals(ctx context.Context, clientID int64) (domain.ActivityTotals, error)
	RoomTotals(ctx context.Context, roomID int64) (domain.ActivityTotals, error)
}

type SQLReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) ReportRepository {
	return &SQLReportRepository{db: db}
}

// OpenReportDB exposes the pgx pool through database/sql.
func OpenReportDB(pool *pgxpool.Pool) *sql.DB {
	return stdlib.OpenDBFromPool(pool)
}

func (r *SQLReportRepository) RoomStats(ctx context.Context) (domain.RoomStats, error) {
	var s domain.RoomStats
	err := r.db.QueryRowContext(ctx, `SELECT count(*),
			count(*) FILTER (WHERE status = $1),
			count(*) FILTER (WHERE status = $2)
		FROM rooms`, domain.RoomStatusAvailable, domain.RoomStatusOccupied).
		Scan(&s.Total, &s.Available, &s.Occupied)
	return s, err
}

func (r *SQLReportRepository) ReservationStats(ctx context.Context, today time.Time) (domain.ReservationStats, error) {
	var s domain.ReservationStats
	err := r.db.QueryRowContext(ctx, `SELECT count(*),
			count(*) FILTER (WHERE status = $1),
			count(*) FILTER (WHERE status = $1 AND start_date = $2),
			count(*) FILTER (WHERE status = $1 AND end_date = $2)
		FROM reservations`, domain.ReservationStatusConfirmed, domain.DateOnly(today)).
		Scan(&s.Total, &s.Confirmed, &s.ArrivalsToday, &s.DeparturesToday)
	return s, err
}

func (r *SQLReportRepository) CountActiveStays(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM stays WHERE checked_out_at IS NULL`).Scan(&n)
	return n, err
}

func (r *SQLReportRepository) CountClients(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM clients`).Scan(&n)
	return n, err
}

func (r *SQLReportRepository) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var lo, hi sql.NullTime
	if !from.IsZero() {
		lo = sql.NullTime{Time: from, Valid: true}
	}
	if !to.IsZero() {
		hi = sql.NullTime{Time: to, Valid: true}
	}
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE status = $1
			AND ($2::timestamptz IS NULL OR paid_at >= $2)
			AND ($3::timestamptz IS NULL OR paid_at < $3)`,
		domain.PaymentStatusValidated, lo, hi).Scan(&total)
	return total, err
}

func (r *SQLReportRepository) RecentReservations(ctx context.Context, limit int) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT r.id, r.client_id, r.room_id, r.booked_at, r.start_date, r.end_date,
			r.nights, r.total_price, r.status, c.first_name || ' ' || c.last_name, rm.number
		FROM reservations r
		JOIN clients c ON c.id = r.client_id
		JOIN rooms rm ON rm.id = r.room_id
		ORDER BY r.booked_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Reservation, 0, limit)
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.ClientID, &res.RoomID, &res.BookedAt, &res.StartDate, &res.EndDate,
			&res.Nights, &res.TotalPrice, &res.Status, &res.ClientName, &res.RoomNumber); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *SQLReportRepository) RoomsByType(ctx context.Context) ([]domain.TypeCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT type, count(*) FROM rooms GROUP BY type ORDER BY type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TypeCount, 0)
	for rows.Next() {
		var tc domain.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func (r *SQLReportRepository) ReservationsPerMonth(ctx context.Context, since time.Time) ([]domain.MonthCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date_trunc('month', booked_at) AS month, count(*)
		FROM reservations WHERE booked_at >= $1
		GROUP BY month ORDER BY month`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.MonthCount, 0)
	for rows.Next() {
		var mc domain.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

func (r *SQLReportRepository) ClientTotals(ctx context.Context, clientID int64) (domain.ActivityTotals, error) {
	var t domain.ActivityTotals
	err := r.db.QueryRowContext(ctx, `SELECT
			(SELECT count(*) FROM reservations WHERE client_id = $1),
			(SELECT count(*) FROM stays s JOIN reservations r ON r.id = s.reservation_id WHERE r.client_id = $1),
			(SELECT COALESCE(SUM(p.amount), 0) FROM payments p JOIN reservations r ON r.id = p.reservation_id
				WHERE r.client_id = $1 AND p.status = $2)`,
		clientID, domain.PaymentStatusValidated).Scan(&t.Reservations, &t.Stays, &t.Revenue)
	return t, err
}

func (r *SQLReportRepository) RoomTotals(ctx context.Context, roomID int64) (domain.ActivityTotals, error) {
	var t domain.ActivityTotals
	err := r.db.QueryRowContext(ctx, `SELECT
			(SELECT count(*) FROM reservations WHERE room_id = $1),
			(SELECT count(*) FROM stays s JOIN reservations r ON r.id = s.reservation_id WHERE r.room_id = $1),
			(SELECT COALESCE(SUM(p.amount), 0) FROM payments p JOIN reservations r ON r.id = p.reservation_id
				WHERE r.room_id = $1 AND p.status = $2)`,
		roomID, domain.PaymentStatusValidated).Scan(&t.Reservations, &t.Stays, &t.Revenue)
	return t, err
}

var _ ReportRepository = (*SQLReportRepository)(nil)
