package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
)

const stayColumns = `id, reservation_id, arrived_at, departed_at, checked_in_at, checked_out_at, occupants, comment`

type PGStayRepository struct {
	db DBTX
}

func NewStayRepository(db DBTX) StayRepository {
	return &PGStayRepository{db: db}
}

func scanStay(row pgx.Row) (*domain.Stay, error) {
	var s domain.Stay
	if err := row.Scan(&s.ID, &s.ReservationID, &s.ArrivedAt, &s.DepartedAt, &s.CheckedInAt, &s.CheckedOutAt, &s.Occupants, &s.Comment); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGStayRepository) Create(ctx context.Context, s *domain.Stay) error {
	err := r.db.QueryRow(ctx, `INSERT INTO stays (reservation_id, arrived_at, departed_at, occupants, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, checked_in_at`,
		s.ReservationID, s.ArrivedAt, s.DepartedAt, s.Occupants, s.Comment).
		Scan(&s.ID, &s.CheckedInAt)
	return translate(err, "stay")
}

func (r *PGStayRepository) GetByID(ctx context.Context, id int64) (*domain.Stay, error) {
	s, err := scanStay(r.db.QueryRow(ctx, `SELECT `+stayColumns+` FROM stays WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err, "stay")
	}
	return s, nil
}

func (r *PGStayRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Stay, error) {
	s, err := scanStay(r.db.QueryRow(ctx, `SELECT `+stayColumns+` FROM stays WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		return nil, translate(err, "stay")
	}
	return s, nil
}

func (r *PGStayRepository) FindByReservation(ctx context.Context, reservationID int64) (*domain.Stay, error) {
	s, err := scanStay(r.db.QueryRow(ctx, `SELECT `+stayColumns+` FROM stays WHERE reservation_id=$1`, reservationID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PGStayRepository) Update(ctx context.Context, s *domain.Stay) error {
	cmd, err := r.db.Exec(ctx, `UPDATE stays SET arrived_at=$1, departed_at=$2, checked_out_at=$3, occupants=$4, comment=$5 WHERE id=$6`,
		s.ArrivedAt, s.DepartedAt, s.CheckedOutAt, s.Occupants, s.Comment, s.ID)
	if err != nil {
		return translate(err, "stay")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("stay not found")
	}
	return nil
}

func (r *PGStayRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM stays WHERE id=$1`, id)
	if err != nil {
		return translate(err, "stay")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("stay not found")
	}
	return nil
}

func (r *PGStayRepository) List(ctx context.Context, activeOnly bool) ([]domain.Stay, error) {
	rows, err := r.db.Query(ctx, `SELECT `+stayColumns+` FROM stays
		WHERE NOT $1 OR checked_out_at IS NULL
		ORDER BY checked_in_at DESC`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stays := make([]domain.Stay, 0)
	for rows.Next() {
		s, err := scanStay(rows)
		if err != nil {
			return nil, err
		}
		stays = append(stays, *s)
	}
	return stays, rows.Err()
}

var _ StayRepository = (*PGStayRepository)(nil)
