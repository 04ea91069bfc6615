package stay

import (
	"context"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/kafka"
	"github.com/Domenick1991/hoteldesk/internal/logger"
	"github.com/Domenick1991/hoteldesk/internal/metrics"
	"github.com/Domenick1991/hoteldesk/internal/repository"
	"github.com/sirupsen/logrus"
)

type StayUseCase interface {
	CheckIn(ctx context.Context, actor domain.StaffUser, reservationID int64, input CheckInInput) (*CheckInResult, error)
	CheckOut(ctx context.Context, actor domain.StaffUser, stayID int64, input CheckOutInput) (*CheckOutResult, error)
	Get(ctx context.Context, id int64) (*domain.Stay, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Stay, error)
	Detail(ctx context.Context, id int64) (*Detail, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, event kafka.FrontDeskEvent) error
}

type CheckInInput struct {
	ArrivedAt *time.Time `json:"arrived_at,omitempty"`
	Occupants int        `json:"occupants"`
	Comment   string     `json:"comment,omitempty"`
}

type CheckOutInput struct {
	DepartedAt *time.Time `json:"departed_at,omitempty"`
	Comment    string     `json:"comment,omitempty"`
}

type CheckInResult struct {
	Stay    *domain.Stay `json:"stay"`
	Warning string       `json:"warning,omitempty"`
}

type CheckOutResult struct {
	Stay    *domain.Stay   `json:"stay"`
	Balance domain.Balance `json:"balance"`
	Warning string         `json:"warning,omitempty"`
}

type Detail struct {
	Stay        *domain.Stay        `json:"stay"`
	Reservation *domain.Reservation `json:"reservation"`
	State       domain.StayState    `json:"state"`
	Payments    []domain.Payment    `json:"payments"`
	LineItems   []domain.LineItem   `json:"line_items"`
	Balance     domain.Balance      `json:"balance"`
}

type StayService struct {
	tx       repository.TxRunner
	repos    repository.Repositories
	events   EventPublisher
	currency string
	log      logrus.FieldLogger
	now      func() time.Time
}

type StayServiceOption func(*StayService)

func WithEventPublisher(events EventPublisher) StayServiceOption {
	return func(s *StayService) {
		s.events = events
	}
}

func WithCurrency(currency string) StayServiceOption {
	return func(s *StayService) {
		s.currency = currency
	}
}

func WithLogger(log logrus.FieldLogger) StayServiceOption {
	return func(s *StayService) {
		s.log = log
	}
}

func WithClock(now func() time.Time) StayServiceOption {
	return func(s *StayService) {
		s.now = now
	}
}

func NewStayService(tx repository.TxRunner, repos repository.Repositories, opts ...StayServiceOption) *StayService {
	s := &StayService{
		tx:       tx,
		repos:    repos,
		currency: "GNF",
		log:      logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckIn opens the stay of a confirmed reservation and marks its room occupied.
func (s *StayService) CheckIn(ctx context.Context, actor domain.StaffUser, reservationID int64, input CheckInInput) (result *CheckInResult, err error) {
	defer func() { metrics.RecordOperation("check_in", metrics.Outcome(err)) }()

	var (
		res  *domain.Reservation
		room *domain.Room
	)
	result = &CheckInResult{}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		res, err = repos.Reservations.GetForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}
		existing, err := repos.Stays.FindByReservation(ctx, reservationID)
		if err != nil {
			return err
		}
		room, err = repos.Rooms.GetForUpdate(ctx, res.RoomID)
		if err != nil {
			return err
		}

		plan, warning, err := PlanCheckIn(*res, *room, existing, input, actor.Username, s.now())
		if err != nil {
			return err
		}
		if warning != "" {
			result.Stay = existing
			result.Warning = warning
			return nil
		}

		stay := plan.Stay
		if err := repos.Stays.Create(ctx, &stay); err != nil {
			return domain.AsBusinessRule(err)
		}
		if res.Status != plan.ReservationStatus {
			res.Status = plan.ReservationStatus
			if err := repos.Reservations.Update(ctx, res); err != nil {
				return err
			}
		}
		if err := repos.Rooms.UpdateStatus(ctx, room.ID, plan.RoomStatus); err != nil {
			return err
		}
		result.Stay = &stay
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"reservation_id": reservationID, "stay_id": result.Stay.ID, "actor": actor.Username}
	if result.Warning != "" {
		s.log.WithFields(fields).Warn(result.Warning)
		return result, nil
	}
	s.log.WithFields(fields).WithField("room_id", room.ID).Info("guest checked in")
	s.publish(ctx, kafka.FrontDeskEvent{
		Type:          kafka.EventCheckedIn,
		ReservationID: reservationID,
		StayID:        result.Stay.ID,
		RoomNumber:    room.Number,
		ClientEmail:   s.clientEmail(ctx, res.ClientID),
		Status:        string(domain.StayStateActive),
		Actor:         actor.Username,
	})
	return result, nil
}

// CheckOut closes the stay once its balance is settled, freeing the room and
// completing the reservation.
func (s *StayService) CheckOut(ctx context.Context, actor domain.StaffUser, stayID int64, input CheckOutInput) (result *CheckOutResult, err error) {
	defer func() { metrics.RecordOperation("check_out", metrics.Outcome(err)) }()

	var (
		res  *domain.Reservation
		room *domain.Room
	)
	result = &CheckOutResult{}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		stay, err := repos.Stays.GetForUpdate(ctx, stayID)
		if err != nil {
			return err
		}
		res, err = repos.Reservations.GetForUpdate(ctx, stay.ReservationID)
		if err != nil {
			return err
		}
		balance, err := stayBalance(ctx, repos, *res, stay.ID)
		if err != nil {
			return err
		}
		result.Stay = stay
		result.Balance = balance

		warning, err := PlanCheckOut(stay, balance, s.currency, input, actor.Username, s.now())
		if err != nil {
			return err
		}
		if warning != "" {
			result.Warning = warning
			return nil
		}

		if err := repos.Stays.Update(ctx, stay); err != nil {
			return err
		}
		room, err = repos.Rooms.GetForUpdate(ctx, res.RoomID)
		if err != nil {
			return err
		}
		if err := repos.Rooms.UpdateStatus(ctx, room.ID, domain.RoomStatusAvailable); err != nil {
			return err
		}
		res.Status = domain.ReservationStatusCompleted
		return repos.Reservations.Update(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"reservation_id": res.ID, "stay_id": stayID, "actor": actor.Username}
	if result.Warning != "" {
		s.log.WithFields(fields).Warn(result.Warning)
		return result, nil
	}
	s.log.WithFields(fields).WithField("room_id", room.ID).Info("guest checked out")
	s.publish(ctx, kafka.FrontDeskEvent{
		Type:          kafka.EventCheckedOut,
		ReservationID: res.ID,
		StayID:        stayID,
		RoomNumber:    room.Number,
		ClientEmail:   s.clientEmail(ctx, res.ClientID),
		Status:        string(domain.StayStateCompleted),
		Actor:         actor.Username,
	})
	return result, nil
}

func (s *StayService) Get(ctx context.Context, id int64) (*domain.Stay, error) {
	return s.repos.Stays.GetByID(ctx, id)
}

func (s *StayService) List(ctx context.Context, activeOnly bool) ([]domain.Stay, error) {
	return s.repos.Stays.List(ctx, activeOnly)
}

func (s *StayService) Detail(ctx context.Context, id int64) (*Detail, error) {
	stay, err := s.repos.Stays.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.repos.Reservations.GetByID(ctx, stay.ReservationID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repos.Payments.ListByStay(ctx, stay.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.LineItems.ListByReservation(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{
		Stay:        stay,
		Reservation: res,
		State:       domain.StayStateOf(stay),
		Payments:    payments,
		LineItems:   items,
		Balance:     domain.ComputeBalance(*res, items, payments),
	}, nil
}

func stayBalance(ctx context.Context, repos repository.Repositories, res domain.Reservation, stayID int64) (domain.Balance, error) {
	items, err := repos.LineItems.ListByReservation(ctx, res.ID)
	if err != nil {
		return domain.Balance{}, err
	}
	payments, err := repos.Payments.ListByStay(ctx, stayID)
	if err != nil {
		return domain.Balance{}, err
	}
	return domain.ComputeBalance(res, items, payments), nil
}

func (s *StayService) clientEmail(ctx context.Context, clientID int64) string {
	c, err := s.repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return ""
	}
	return c.Email
}

func (s *StayService) publish(ctx context.Context, event kafka.FrontDeskEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, event); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"stay_id": event.StayID, "event": event.Type}).Warn("failed to publish event")
	}
}

var _ StayUseCase = (*StayService)(nil)
