package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository can
// run either standalone or inside Store.WithinTx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ClientField names a uniquely constrained client column.
type ClientField string

const (
	ClientFieldEmail    ClientField = "email"
	ClientFieldPhone    ClientField = "phone"
	ClientFieldIDNumber ClientField = "id_number"
)

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]domain.Client, error)
	Exists(ctx context.Context, field ClientField, value string, excludeID int64) (bool, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
	// ListConflicting returns Pending/Confirmed reservations of roomID that
	// overlap [start, end), skipping excludeID.
	ListConflicting(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) ([]domain.Reservation, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Reservation, error)
	ListByRoom(ctx context.Context, roomID int64, limit int) ([]domain.Reservation, error)
	CountByClient(ctx context.Context, clientID int64) (int, error)
	CountByRoom(ctx context.Context, roomID int64) (int, error)
}

type StayRepository interface {
	Create(ctx context.Context, stay *domain.Stay) error
	GetByID(ctx context.Context, id int64) (*domain.Stay, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Stay, error)
	// FindByReservation returns nil, nil when the reservation has no stay.
	FindByReservation(ctx context.Context, reservationID int64) (*domain.Stay, error)
	Update(ctx context.Context, stay *domain.Stay) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, activeOnly bool) ([]domain.Stay, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	ListByStay(ctx context.Context, stayID int64) ([]domain.Payment, error)
	ListByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error)
	// RefundByStay marks every payment of the stay as refunded and returns how many changed.
	RefundByStay(ctx context.Context, stayID int64) (int64, error)
	List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
}

type ExtraServiceRepository interface {
	Create(ctx context.Context, svc *domain.ExtraService) error
	GetByID(ctx context.Context, id int64) (*domain.ExtraService, error)
	Update(ctx context.Context, svc *domain.ExtraService) error
	List(ctx context.Context, activeOnly bool) ([]domain.ExtraService, error)
}

type LineItemRepository interface {
	Create(ctx context.Context, item *domain.LineItem) error
	ListByReservation(ctx context.Context, reservationID int64) ([]domain.LineItem, error)
	Delete(ctx context.Context, reservationID, serviceID int64) error
}

type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffUser, error)
	GetByUsername(ctx context.Context, username string) (*domain.StaffUser, error)
}

// Repositories groups every repository bound to the same connection or transaction.
type Repositories struct {
	Clients      ClientRepository
	Rooms        RoomRepository
	Reservations ReservationRepository
	Stays        StayRepository
	Payments     PaymentRepository
	Extras       ExtraServiceRepository
	LineItems    LineItemRepository
	Staff        StaffRepository
}

// TxRunner runs fn with repositories bound to one database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

func NewRepositories(db DBTX) Repositories {
	return Repositories{
		Clients:      NewClientRepository(db),
		Rooms:        NewRoomRepository(db),
		Reservations: NewReservationRepository(db),
		Stays:        NewStayRepository(db),
		Payments:     NewPaymentRepository(db),
		Extras:       NewExtraServiceRepository(db),
		LineItems:    NewLineItemRepository(db),
		Staff:        NewStaffRepository(db),
	}
}
