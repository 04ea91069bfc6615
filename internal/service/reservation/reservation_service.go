package reservation

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/kafka"
	"github.com/Domenick1991/hoteldesk/internal/logger"
	"github.com/Domenick1991/hoteldesk/internal/metrics"
	"github.com/Domenick1991/hoteldesk/internal/repository"
	"github.com/Domenick1991/hoteldesk/internal/service/availability"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ReservationUseCase interface {
	Create(ctx context.Context, actor domain.StaffUser, input CreateInput) (*domain.Reservation, error)
	Update(ctx context.Context, actor domain.StaffUser, id int64, input UpdateInput) (*domain.Reservation, error)
	Confirm(ctx context.Context, actor domain.StaffUser, id int64) (*domain.Reservation, error)
	Cancel(ctx context.Context, actor domain.StaffUser, id int64, input CancelInput) (*CancelResult, error)
	Delete(ctx context.Context, actor domain.StaffUser, id int64) error
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
	Detail(ctx context.Context, id int64) (*Detail, error)
	AddService(ctx context.Context, actor domain.StaffUser, id int64, input AddServiceInput) (*domain.LineItem, error)
	RemoveService(ctx context.Context, actor domain.StaffUser, id, serviceID int64) error
}

// RoomLocker is the short-lived per-room booking lock.
type RoomLocker interface {
	AcquireRoomLock(ctx context.Context, roomID int64, ttl time.Duration) (string, bool, error)
	ReleaseRoomLock(ctx context.Context, roomID int64, token string) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, event kafka.FrontDeskEvent) error
}

type CreateInput struct {
	ClientID  int64                    `json:"client_id"`
	RoomID    int64                    `json:"room_id"`
	StartDate time.Time                `json:"start_date"`
	EndDate   time.Time                `json:"end_date"`
	Adults    int                      `json:"adults"`
	Children  int                      `json:"children"`
	Status    domain.ReservationStatus `json:"status,omitempty"`
	// TotalPrice overrides nights × nightly rate when set.
	TotalPrice *decimal.Decimal `json:"total_price,omitempty"`
	Comment    string           `json:"comment,omitempty"`
}

type UpdateInput struct {
	RoomID             int64            `json:"room_id"`
	StartDate          time.Time        `json:"start_date"`
	EndDate            time.Time        `json:"end_date"`
	Adults             int              `json:"adults"`
	Children           int              `json:"children"`
	TotalPrice         *decimal.Decimal `json:"total_price,omitempty"`
	ClearPriceOverride bool             `json:"clear_price_override,omitempty"`
	Comment            *string          `json:"comment,omitempty"`
}

type CancelInput struct {
	Reason  string `json:"reason"`
	Details string `json:"details,omitempty"`
}

type CancelResult struct {
	Reservation      *domain.Reservation `json:"reservation"`
	RefundedPayments int64               `json:"refunded_payments"`
	StayRemoved      bool                `json:"stay_removed"`
	RoomReleased     bool                `json:"room_released"`
}

type AddServiceInput struct {
	ServiceID int64            `json:"service_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type Detail struct {
	Reservation *domain.Reservation `json:"reservation"`
	Stay        *domain.Stay        `json:"stay,omitempty"`
	StayState   domain.StayState    `json:"stay_state"`
	Payments    []domain.Payment    `json:"payments"`
	LineItems   []domain.LineItem   `json:"line_items"`
	Balance     domain.Balance      `json:"balance"`
}

type ReservationService struct {
	tx            repository.TxRunner
	repos         repository.Repositories
	locker        RoomLocker
	lockTTL       time.Duration
	events        EventPublisher
	defaultStatus domain.ReservationStatus
	log           logrus.FieldLogger
	now           func() time.Time
}

type ReservationServiceOption func(*ReservationService)

func WithRoomLocker(locker RoomLocker, ttl time.Duration) ReservationServiceOption {
	return func(s *ReservationService) {
		s.locker = locker
		s.lockTTL = ttl
	}
}

func WithEventPublisher(events EventPublisher) ReservationServiceOption {
	return func(s *ReservationService) {
		s.events = events
	}
}

func WithDefaultStatus(status domain.ReservationStatus) ReservationServiceOption {
	return func(s *ReservationService) {
		s.defaultStatus = status
	}
}

func WithLogger(log logrus.FieldLogger) ReservationServiceOption {
	return func(s *ReservationService) {
		s.log = log
	}
}

func WithClock(now func() time.Time) ReservationServiceOption {
	return func(s *ReservationService) {
		s.now = now
	}
}

// NewReservationService uses tx for every write and repos for plain reads.
func NewReservationService(tx repository.TxRunner, repos repository.Repositories, opts ...ReservationServiceOption) *ReservationService {
	s := &ReservationService{
		tx:            tx,
		repos:         repos,
		lockTTL:       10 * time.Second,
		defaultStatus: domain.ReservationStatusPending,
		log:           logger.Discard(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReservationService) Create(ctx context.Context, actor domain.StaffUser, input CreateInput) (res *domain.Reservation, err error) {
	defer func() { metrics.RecordOperation("create_reservation", metrics.Outcome(err)) }()

	status := input.Status
	if status == "" {
		status = s.defaultStatus
	}
	if status != domain.ReservationStatusPending && status != domain.ReservationStatusConfirmed {
		return nil, domain.Validationf("a reservation starts as %s or %s", domain.ReservationStatusPending, domain.ReservationStatusConfirmed)
	}

	candidate := &domain.Reservation{
		ClientID:  input.ClientID,
		RoomID:    input.RoomID,
		AgentID:   actor.ID,
		StartDate: domain.DateOnly(input.StartDate),
		EndDate:   domain.DateOnly(input.EndDate),
		Adults:    input.Adults,
		Children:  input.Children,
		Status:    status,
		Comment:   strings.TrimSpace(input.Comment),
	}
	if input.TotalPrice != nil {
		candidate.TotalPrice = *input.TotalPrice
		candidate.PriceOverridden = true
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	release, err := s.lockRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	defer release()

	var client *domain.Client
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		c, err := repos.Clients.GetByID(ctx, candidate.ClientID)
		if err != nil {
			return err
		}
		room, err := repos.Rooms.GetForUpdate(ctx, candidate.RoomID)
		if err != nil {
			return err
		}
		if err := availability.Ensure(ctx, repos.Reservations, *room, candidate.StartDate, candidate.EndDate, 0, true); err != nil {
			return err
		}
		candidate.Recompute(room.NightlyRate)
		if err := repos.Reservations.Create(ctx, candidate); err != nil {
			return domain.AsBusinessRule(err)
		}
		candidate.ClientName = c.FullName()
		candidate.RoomNumber = room.Number
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"reservation_id": candidate.ID,
		"room_id":        candidate.RoomID,
		"actor":          actor.Username,
	}).Info("reservation created")
	s.publish(ctx, kafka.EventReservationCreated, candidate, client.Email, actor)
	return candidate, nil
}

// Update re-runs validation, availability and the derived fields. The room
// status is only checked when the reservation moves to another room.
func (s *ReservationService) Update(ctx context.Context, actor domain.StaffUser, id int64, input UpdateInput) (*domain.Reservation, error) {
	var updated *domain.Reservation
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		res, err := repos.Reservations.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !res.Status.Holds() {
			return domain.BusinessRulef("a %s reservation cannot be modified", strings.ToLower(string(res.Status)))
		}

		roomID := input.RoomID
		if roomID == 0 {
			roomID = res.RoomID
		}
		roomChanged := roomID != res.RoomID
		stay, err := repos.Stays.FindByReservation(ctx, id)
		if err != nil {
			return err
		}
		if roomChanged && stay != nil {
			return domain.BusinessRulef("the guest is checked in; the room cannot be changed")
		}

		res.RoomID = roomID
		res.StartDate = domain.DateOnly(input.StartDate)
		res.EndDate = domain.DateOnly(input.EndDate)
		res.Adults = input.Adults
		res.Children = input.Children
		if input.Comment != nil {
			res.Comment = *input.Comment
		}
		switch {
		case input.TotalPrice != nil:
			res.TotalPrice = *input.TotalPrice
			res.PriceOverridden = true
		case input.ClearPriceOverride:
			res.PriceOverridden = false
		}
		if err := res.Validate(); err != nil {
			return err
		}

		room, err := repos.Rooms.GetForUpdate(ctx, roomID)
		if err != nil {
			return err
		}
		if err := availability.Ensure(ctx, repos.Reservations, *room, res.StartDate, res.EndDate, res.ID, roomChanged); err != nil {
			return err
		}
		res.Recompute(room.NightlyRate)
		if stay != nil {
			items, err := repos.LineItems.ListByReservation(ctx, id)
			if err != nil {
				return err
			}
			if err := ensurePaidCovered(ctx, repos, res, stay.ID, items); err != nil {
				return err
			}
		}
		if err := repos.Reservations.Update(ctx, res); err != nil {
			return domain.AsBusinessRule(err)
		}
		res.RoomNumber = room.Number
		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"reservation_id": id, "actor": actor.Username}).Info("reservation updated")
	return updated, nil
}

func (s *ReservationService) Confirm(ctx context.Context, actor domain.StaffUser, id int64) (*domain.Reservation, error) {
	var confirmed *domain.Reservation
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		res, err := repos.Reservations.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if res.Status != domain.ReservationStatusPending {
			return domain.BusinessRulef("only a pending reservation can be confirmed (status is %s)", res.Status)
		}
		res.Status = domain.ReservationStatusConfirmed
		if err := repos.Reservations.Update(ctx, res); err != nil {
			return err
		}
		confirmed = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"reservation_id": id, "actor": actor.Username}).Info("reservation confirmed")
	s.publish(ctx, kafka.EventReservationConfirmed, confirmed, s.clientEmail(ctx, confirmed.ClientID), actor)
	return confirmed, nil
}

// Cancel refunds the payments of the stay, removes the stay, records the
// reason in the comment and frees the room, all in one transaction.
func (s *ReservationService) Cancel(ctx context.Context, actor domain.StaffUser, id int64, input CancelInput) (result *CancelResult, err error) {
	defer func() { metrics.RecordOperation("cancel_reservation", metrics.Outcome(err)) }()

	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, domain.Validationf("a cancellation reason is required")
	}

	result = &CancelResult{}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		res, err := repos.Reservations.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		switch res.Status {
		case domain.ReservationStatusCancelled:
			return domain.BusinessRulef("reservation is already cancelled")
		case domain.ReservationStatusCompleted:
			return domain.BusinessRulef("a completed reservation cannot be cancelled")
		case domain.ReservationStatusPending, domain.ReservationStatusConfirmed:
		}

		stay, err := repos.Stays.FindByReservation(ctx, id)
		if err != nil {
			return err
		}
		if stay != nil {
			// Payments lock the stay row before inserting; taking it here keeps
			// a concurrent payment from landing after the refund.
			if _, err := repos.Stays.GetForUpdate(ctx, stay.ID); err != nil {
				return err
			}
			refunded, err := repos.Payments.RefundByStay(ctx, stay.ID)
			if err != nil {
				return err
			}
			if err := repos.Stays.Delete(ctx, stay.ID); err != nil {
				return err
			}
			result.RefundedPayments = refunded
			result.StayRemoved = true
		}

		res.AppendComment(domain.CancellationNote(s.now(), reason, actor.Username, strings.TrimSpace(input.Details)))
		res.Status = domain.ReservationStatusCancelled
		if err := repos.Reservations.Update(ctx, res); err != nil {
			return err
		}

		if result.StayRemoved {
			room, err := repos.Rooms.GetForUpdate(ctx, res.RoomID)
			if err != nil {
				return err
			}
			if room.Status == domain.RoomStatusOccupied {
				if err := repos.Rooms.UpdateStatus(ctx, room.ID, domain.RoomStatusAvailable); err != nil {
					return err
				}
				result.RoomReleased = true
			}
		}
		result.Reservation = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"reservation_id":    id,
		"actor":             actor.Username,
		"refunded_payments": result.RefundedPayments,
		"room_released":     result.RoomReleased,
	}).Info("reservation cancelled")
	s.publish(ctx, kafka.EventReservationCancelled, result.Reservation, s.clientEmail(ctx, result.Reservation.ClientID), actor)
	return result, nil
}

// Delete removes a reservation that never reached check-in.
func (s *ReservationService) Delete(ctx context.Context, actor domain.StaffUser, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := repos.Reservations.GetForUpdate(ctx, id); err != nil {
			return err
		}
		stay, err := repos.Stays.FindByReservation(ctx, id)
		if err != nil {
			return err
		}
		if stay != nil {
			return domain.BusinessRulef("reservation has a stay; cancel it instead")
		}
		if err := repos.Reservations.Delete(ctx, id); err != nil {
			return domain.AsBusinessRule(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"reservation_id": id, "actor": actor.Username}).Info("reservation deleted")
	return nil
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.repos.Reservations.GetByID(ctx, id)
}

func (s *ReservationService) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Validationf("invalid reservation status %q", filter.Status)
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repos.Reservations.List(ctx, filter)
}

func (s *ReservationService) Detail(ctx context.Context, id int64) (*Detail, error) {
	res, err := s.repos.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stay, err := s.repos.Stays.FindByReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.repos.Payments.ListByReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.LineItems.ListByReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{
		Reservation: res,
		Stay:        stay,
		StayState:   domain.StayStateOf(stay),
		Payments:    payments,
		LineItems:   items,
		Balance:     domain.ComputeBalance(*res, items, payments),
	}, nil
}

// AddService attaches a catalog service, freezing its current price unless
// the caller sets one.
func (s *ReservationService) AddService(ctx context.Context, actor domain.StaffUser, id int64, input AddServiceInput) (*domain.LineItem, error) {
	if input.Quantity < 1 {
		return nil, domain.Validationf("quantity must be at least 1")
	}
	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return nil, domain.Validationf("unit price must not be negative")
	}

	var item *domain.LineItem
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		res, err := repos.Reservations.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !res.Status.Holds() {
			return domain.BusinessRulef("services cannot be added to a %s reservation", strings.ToLower(string(res.Status)))
		}
		svc, err := repos.Extras.GetByID(ctx, input.ServiceID)
		if err != nil {
			return err
		}
		if !svc.Active {
			return domain.BusinessRulef("service %q is not active", svc.Name)
		}

		li := &domain.LineItem{
			ReservationID: id,
			ServiceID:     svc.ID,
			ServiceName:   svc.Name,
			Quantity:      input.Quantity,
			UnitPrice:     svc.Price,
		}
		if input.UnitPrice != nil {
			li.UnitPrice = *input.UnitPrice
		}
		if err := repos.LineItems.Create(ctx, li); err != nil {
			return domain.AsBusinessRule(err)
		}
		item = li
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"reservation_id": id, "service_id": input.ServiceID, "actor": actor.Username}).Info("service added")
	return item, nil
}

func (s *ReservationService) RemoveService(ctx context.Context, actor domain.StaffUser, id, serviceID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		res, err := repos.Reservations.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !res.Status.Holds() {
			return domain.BusinessRulef("services cannot be removed from a %s reservation", strings.ToLower(string(res.Status)))
		}
		stay, err := repos.Stays.FindByReservation(ctx, id)
		if err != nil {
			return err
		}
		if stay != nil {
			items, err := repos.LineItems.ListByReservation(ctx, id)
			if err != nil {
				return err
			}
			kept := items[:0:0]
			for _, li := range items {
				if li.ServiceID != serviceID {
					kept = append(kept, li)
				}
			}
			if err := ensurePaidCovered(ctx, repos, res, stay.ID, kept); err != nil {
				return err
			}
		}
		return repos.LineItems.Delete(ctx, id, serviceID)
	})
}

// ensurePaidCovered refuses a change that would bring the total due of res
// below what the stay has already paid. The stay row is locked so a payment
// cannot be recorded between the check and the write.
func ensurePaidCovered(ctx context.Context, repos repository.Repositories, res *domain.Reservation, stayID int64, items []domain.LineItem) error {
	if _, err := repos.Stays.GetForUpdate(ctx, stayID); err != nil {
		return err
	}
	payments, err := repos.Payments.ListByStay(ctx, stayID)
	if err != nil {
		return err
	}
	balance := domain.ComputeBalance(*res, items, payments)
	if balance.Remaining.IsNegative() {
		return domain.BusinessRulef("the total due would drop to %s, below the %s already paid",
			balance.TotalDue.StringFixed(2), balance.Paid.StringFixed(2))
	}
	return nil
}

// lockRoom takes the Redis booking lock. Redis being down is not fatal: the
// row lock taken in the transaction still serializes bookings.
func (s *ReservationService) lockRoom(ctx context.Context, roomID int64) (func(), error) {
	noop := func() {}
	if s.locker == nil {
		return noop, nil
	}
	token, ok, err := s.locker.AcquireRoomLock(ctx, roomID, s.lockTTL)
	if err != nil {
		s.log.WithError(err).WithField("room_id", roomID).Warn("room lock unavailable, relying on row lock")
		return noop, nil
	}
	if !ok {
		return nil, domain.BusinessRulef("room is being booked by another user, please retry")
	}
	return func() {
		if err := s.locker.ReleaseRoomLock(context.WithoutCancel(ctx), roomID, token); err != nil {
			s.log.WithError(err).WithField("room_id", roomID).Warn("failed to release room lock")
		}
	}, nil
}

func (s *ReservationService) clientEmail(ctx context.Context, clientID int64) string {
	c, err := s.repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return ""
	}
	return c.Email
}

func (s *ReservationService) publish(ctx context.Context, eventType kafka.EventType, res *domain.Reservation, email string, actor domain.StaffUser) {
	if s.events == nil {
		return
	}
	event := kafka.FrontDeskEvent{
		Type:          eventType,
		ReservationID: res.ID,
		RoomNumber:    res.RoomNumber,
		ClientEmail:   email,
		Status:        string(res.Status),
		Actor:         actor.Username,
	}
	if err := s.events.PublishEvent(ctx, event); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"reservation_id": res.ID, "event": eventType}).Warn("failed to publish event")
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
