package rooms

import (
	"context"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/logger"
	"github.com/Domenick1991/hoteldesk/internal/repository"
	"github.com/sirupsen/logrus"
)

const recentReservationsLimit = 10

type RoomUseCase interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) (*domain.Room, error)
	SetStatus(ctx context.Context, id int64, status domain.RoomStatus) (*domain.Room, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error)
	Detail(ctx context.Context, id int64) (*Detail, error)
}

type TotalsReader interface {
	RoomTotals(ctx context.Context, roomID int64) (domain.ActivityTotals, error)
}

type Detail struct {
	Room               *domain.Room          `json:"room"`
	RecentReservations []domain.Reservation  `json:"recent_reservations"`
	Totals             domain.ActivityTotals `json:"totals"`
}

type RoomService struct {
	rooms        repository.RoomRepository
	reservations repository.ReservationRepository
	totals       TotalsReader
	log          logrus.FieldLogger
}

type RoomServiceOption func(*RoomService)

func WithLogger(log logrus.FieldLogger) RoomServiceOption {
	return func(s *RoomService) {
		s.log = log
	}
}

func NewRoomService(
	rooms repository.RoomRepository,
	reservations repository.ReservationRepository,
	totals TotalsReader,
	opts ...RoomServiceOption,
) *RoomService {
	s := &RoomService{
		rooms:        rooms,
		reservations: reservations,
		totals:       totals,
		log:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RoomService) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	room.Normalize()
	if err := room.Validate(); err != nil {
		return nil, err
	}
	if room.Status == domain.RoomStatusOccupied {
		return nil, domain.BusinessRulef("a new room cannot start occupied")
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, domain.AsBusinessRule(err)
	}
	s.log.WithFields(logrus.Fields{"room_id": room.ID, "number": room.Number}).Info("room created")
	return room, nil
}

// Update edits the directory fields. Occupancy is owned by check-in and
// check-out, so the Occupied status can be neither set nor cleared here.
func (s *RoomService) Update(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	room.Normalize()
	if err := room.Validate(); err != nil {
		return nil, err
	}
	current, err := s.rooms.GetByID(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if err := checkStatusEdit(current.Status, room.Status); err != nil {
		return nil, err
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, domain.AsBusinessRule(err)
	}
	return room, nil
}

func (s *RoomService) SetStatus(ctx context.Context, id int64, status domain.RoomStatus) (*domain.Room, error) {
	if !status.Valid() {
		return nil, domain.Validationf("invalid room status %q", status)
	}
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkStatusEdit(room.Status, status); err != nil {
		return nil, err
	}
	if err := s.rooms.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	room.Status = status
	s.log.WithFields(logrus.Fields{"room_id": id, "status": status}).Info("room status changed")
	return room, nil
}

func checkStatusEdit(current, next domain.RoomStatus) error {
	if current == next {
		return nil
	}
	if current == domain.RoomStatusOccupied {
		return domain.BusinessRulef("room has an active stay; check the guest out first")
	}
	if next == domain.RoomStatusOccupied {
		return domain.BusinessRulef("a room becomes occupied only through check-in")
	}
	return nil
}

func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if _, err := s.rooms.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.reservations.CountByRoom(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.BusinessRulef("room is referenced by %d reservation(s) and cannot be deleted", n)
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return domain.AsBusinessRule(err)
	}
	return nil
}

func (s *RoomService) Get(ctx context.Context, id int64) (*domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *RoomService) List(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.Validationf("invalid room type %q", filter.Type)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Validationf("invalid room status %q", filter.Status)
	}
	return s.rooms.List(ctx, filter)
}

func (s *RoomService) Detail(ctx context.Context, id int64) (*Detail, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	recent, err := s.reservations.ListByRoom(ctx, id, recentReservationsLimit)
	if err != nil {
		return nil, err
	}
	totals, err := s.totals.RoomTotals(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Room: room, RecentReservations: recent, Totals: totals}, nil
}

var _ RoomUseCase = (*RoomService)(nil)
