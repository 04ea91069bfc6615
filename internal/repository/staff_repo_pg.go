package repository

import (
	"context"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
)

const staffColumns = `id, username, first_name, last_name, phone, role, active, created_at`

type PGStaffRepository struct {
	db DBTX
}

func NewStaffRepository(db DBTX) StaffRepository {
	return &PGStaffRepository{db: db}
}

func scanStaff(row pgx.Row) (*domain.StaffUser, error) {
	var u domain.StaffUser
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.Active, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PGStaffRepository) GetByID(ctx context.Context, id int64) (*domain.StaffUser, error) {
	u, err := scanStaff(r.db.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff_users WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err, "staff user")
	}
	return u, nil
}

func (r *PGStaffRepository) GetByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	u, err := scanStaff(r.db.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff_users WHERE username=$1`, username))
	if err != nil {
		return nil, translate(err, "staff user")
	}
	return u, nil
}

var _ StaffRepository = (*PGStaffRepository)(nil)
