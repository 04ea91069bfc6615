package repository

import (
	"context"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
)

const roomColumns = `id, number, type, nightly_rate, beds, area_sqm, floor, COALESCE(description, ''), status`

type PGRoomRepository struct {
	db DBTX
}

func NewRoomRepository(db DBTX) RoomRepository {
	return &PGRoomRepository{db: db}
}

func scanRoom(row pgx.Row) (*domain.Room, error) {
	var r domain.Room
	if err := row.Scan(&r.ID, &r.Number, &r.Type, &r.NightlyRate, &r.Beds, &r.AreaSqm, &r.Floor, &r.Description, &r.Status); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PGRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	err := r.db.QueryRow(ctx, `INSERT INTO rooms (number, type, nightly_rate, beds, area_sqm, floor, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		room.Number, room.Type, room.NightlyRate, room.Beds, room.AreaSqm, room.Floor, room.Description, room.Status).
		Scan(&room.ID)
	return translate(err, "room")
}

func (r *PGRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err, "room")
	}
	return room, nil
}

// GetForUpdate row-locks the room until the surrounding transaction ends.
func (r *PGRoomRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		return nil, translate(err, "room")
	}
	return room, nil
}

func (r *PGRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	cmd, err := r.db.Exec(ctx, `UPDATE rooms SET number=$1, type=$2, nightly_rate=$3, beds=$4, area_sqm=$5, floor=$6, description=$7, status=$8
		WHERE id=$9`,
		room.Number, room.Type, room.NightlyRate, room.Beds, room.AreaSqm, room.Floor, room.Description, room.Status, room.ID)
	if err != nil {
		return translate(err, "room")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("room not found")
	}
	return nil
}

func (r *PGRoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE rooms SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("room not found")
	}
	return nil
}

func (r *PGRoomRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	if err != nil {
		return translate(err, "room")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("room not found")
	}
	return nil
}

func (r *PGRoomRepository) List(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, `SELECT `+roomColumns+` FROM rooms
		WHERE ($1 = '' OR type = $1) AND ($2 = '' OR status = $2)
		ORDER BY number`, string(filter.Type), string(filter.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

var _ RoomRepository = (*PGRoomRepository)(nil)
