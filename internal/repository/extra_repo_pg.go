package repository

import (
	"context"

	"github.com/Domenick1991/hoteldesk/internal/domain"
)

type PGExtraServiceRepository struct {
	db DBTX
}

func NewExtraServiceRepository(db DBTX) ExtraServiceRepository {
	return &PGExtraServiceRepository{db: db}
}

func (r *PGExtraServiceRepository) Create(ctx context.Context, s *domain.ExtraService) error {
	err := r.db.QueryRow(ctx, `INSERT INTO extra_services (name, description, price, active) VALUES ($1, $2, $3, $4) RETURNING id`,
		s.Name, s.Description, s.Price, s.Active).Scan(&s.ID)
	return translate(err, "service")
}

func (r *PGExtraServiceRepository) GetByID(ctx context.Context, id int64) (*domain.ExtraService, error) {
	var s domain.ExtraService
	err := r.db.QueryRow(ctx, `SELECT id, name, description, price, active FROM extra_services WHERE id=$1`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Active)
	if err != nil {
		return nil, translate(err, "service")
	}
	return &s, nil
}

func (r *PGExtraServiceRepository) Update(ctx context.Context, s *domain.ExtraService) error {
	cmd, err := r.db.Exec(ctx, `UPDATE extra_services SET name=$1, description=$2, price=$3, active=$4 WHERE id=$5`,
		s.Name, s.Description, s.Price, s.Active, s.ID)
	if err != nil {
		return translate(err, "service")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("service not found")
	}
	return nil
}

func (r *PGExtraServiceRepository) List(ctx context.Context, activeOnly bool) ([]domain.ExtraService, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, price, active FROM extra_services
		WHERE NOT $1 OR active ORDER BY name`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]domain.ExtraService, 0)
	for rows.Next() {
		var s domain.ExtraService
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Active); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

type PGLineItemRepository struct {
	db DBTX
}

func NewLineItemRepository(db DBTX) LineItemRepository {
	return &PGLineItemRepository{db: db}
}

func (r *PGLineItemRepository) Create(ctx context.Context, item *domain.LineItem) error {
	err := r.db.QueryRow(ctx, `INSERT INTO reservation_services (reservation_id, service_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		item.ReservationID, item.ServiceID, item.Quantity, item.UnitPrice).Scan(&item.ID)
	return translate(err, "service line")
}

func (r *PGLineItemRepository) ListByReservation(ctx context.Context, reservationID int64) ([]domain.LineItem, error) {
	rows, err := r.db.Query(ctx, `SELECT li.id, li.reservation_id, li.service_id, s.name, li.quantity, li.unit_price
		FROM reservation_services li JOIN extra_services s ON s.id = li.service_id
		WHERE li.reservation_id=$1 ORDER BY li.id`, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.LineItem, 0)
	for rows.Next() {
		var li domain.LineItem
		if err := rows.Scan(&li.ID, &li.ReservationID, &li.ServiceID, &li.ServiceName, &li.Quantity, &li.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

func (r *PGLineItemRepository) Delete(ctx context.Context, reservationID, serviceID int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM reservation_services WHERE reservation_id=$1 AND service_id=$2`, reservationID, serviceID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("service is not attached to this reservation")
	}
	return nil
}

var (
	_ ExtraServiceRepository = (*PGExtraServiceRepository)(nil)
	_ LineItemRepository     = (*PGLineItemRepository)(nil)
)
