package payment

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/kafka"
	"github.com/Domenick1991/hoteldesk/internal/logger"
	"github.com/Domenick1991/hoteldesk/internal/metrics"
	"github.com/Domenick1991/hoteldesk/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PaymentUseCase interface {
	Record(ctx context.Context, actor domain.StaffUser, stayID int64, input RecordInput) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, actor domain.StaffUser, id int64, status domain.PaymentStatus) (*domain.Payment, error)
	RemainingBalance(ctx context.Context, stayID int64) (*domain.Balance, error)
	Get(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context, filter domain.PaymentFilter) (*ListResult, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, event kafka.FrontDeskEvent) error
}

type RecordInput struct {
	Amount    decimal.Decimal      `json:"amount"`
	Mode      domain.PaymentMode   `json:"mode"`
	Status    domain.PaymentStatus `json:"status,omitempty"`
	Reference string               `json:"reference,omitempty"`
	PaidAt    *time.Time           `json:"paid_at,omitempty"`
}

type ListResult struct {
	Payments       []domain.Payment `json:"payments"`
	ValidatedTotal decimal.Decimal  `json:"validated_total"`
}

type PaymentService struct {
	tx     repository.TxRunner
	repos  repository.Repositories
	events EventPublisher
	log    logrus.FieldLogger
	now    func() time.Time
}

type PaymentServiceOption func(*PaymentService)

func WithEventPublisher(events EventPublisher) PaymentServiceOption {
	return func(s *PaymentService) {
		s.events = events
	}
}

func WithLogger(log logrus.FieldLogger) PaymentServiceOption {
	return func(s *PaymentService) {
		s.log = log
	}
}

func WithClock(now func() time.Time) PaymentServiceOption {
	return func(s *PaymentService) {
		s.now = now
	}
}

func NewPaymentService(tx repository.TxRunner, repos repository.Repositories, opts ...PaymentServiceOption) *PaymentService {
	s := &PaymentService{
		tx:    tx,
		repos: repos,
		log:   logger.Discard(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewReference builds a transaction reference: PAY- and 10 uppercase hex characters.
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PAY-" + strings.ToUpper(id[:10])
}

// CheckAmount enforces that amount fits in the balance before the payment is added.
func CheckAmount(amount decimal.Decimal, balance domain.Balance) error {
	if amount.IsNegative() {
		return domain.Validationf("payment amount must not be negative")
	}
	if amount.GreaterThan(balance.Remaining) {
		return domain.BusinessRulef("payment of %s exceeds the remaining balance of %s", amount.StringFixed(2), balance.Remaining.StringFixed(2))
	}
	return nil
}

// Record adds a payment to an active stay. The stay row is locked while the
// balance is computed so two concurrent payments cannot both fit.
func (s *PaymentService) Record(ctx context.Context, actor domain.StaffUser, stayID int64, input RecordInput) (p *domain.Payment, err error) {
	defer func() { metrics.RecordOperation("record_payment", metrics.Outcome(err)) }()

	if !input.Mode.Valid() {
		return nil, domain.Validationf("invalid payment mode %q", input.Mode)
	}
	status := input.Status
	if status == "" {
		status = domain.PaymentStatusValidated
	}
	if status != domain.PaymentStatusPending && status != domain.PaymentStatusValidated {
		return nil, domain.Validationf("a payment is recorded as %s or %s", domain.PaymentStatusPending, domain.PaymentStatusValidated)
	}
	if input.Amount.IsNegative() {
		return nil, domain.Validationf("payment amount must not be negative")
	}

	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		reference = NewReference()
	}
	paidAt := s.now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	var res *domain.Reservation
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		stay, err := repos.Stays.GetForUpdate(ctx, stayID)
		if err != nil {
			return err
		}
		if stay.Completed() {
			return domain.BusinessRulef("stay %d is checked out; payments are closed", stay.ID)
		}
		res, err = repos.Reservations.GetByID(ctx, stay.ReservationID)
		if err != nil {
			return err
		}
		balance, err := balanceOf(ctx, repos, *res, stay.ID)
		if err != nil {
			return err
		}
		if err := CheckAmount(input.Amount, balance); err != nil {
			return err
		}

		p = &domain.Payment{
			ReservationID: res.ID,
			StayID:        stay.ID,
			PaidAt:        paidAt,
			Amount:        input.Amount,
			Mode:          input.Mode,
			Reference:     reference,
			Status:        status,
		}
		if err := repos.Payments.Create(ctx, p); err != nil {
			return domain.AsBusinessRule(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"payment_id": p.ID,
		"stay_id":    stayID,
		"amount":     p.Amount.String(),
		"actor":      actor.Username,
	}).Info("payment recorded")
	s.publish(ctx, kafka.FrontDeskEvent{
		Type:          kafka.EventPaymentRecorded,
		ReservationID: res.ID,
		StayID:        stayID,
		PaymentID:     p.ID,
		RoomNumber:    res.RoomNumber,
		Status:        string(p.Status),
		Amount:        &p.Amount,
		Actor:         actor.Username,
	})
	return p, nil
}

// UpdateStatus moves a payment along Pending -> Validated -> Refunded.
// Validating a pending payment re-checks it against the current balance.
func (s *PaymentService) UpdateStatus(ctx context.Context, actor domain.StaffUser, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	if !status.Valid() {
		return nil, domain.Validationf("invalid payment status %q", status)
	}

	var updated *domain.Payment
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		p, err := repos.Payments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !p.Status.CanMoveTo(status) {
			return domain.BusinessRulef("payment cannot move from %s to %s", p.Status, status)
		}

		if status == domain.PaymentStatusValidated {
			if p.StayID == 0 {
				return domain.BusinessRulef("payment is no longer attached to a stay")
			}
			stay, err := repos.Stays.GetForUpdate(ctx, p.StayID)
			if err != nil {
				return err
			}
			res, err := repos.Reservations.GetByID(ctx, stay.ReservationID)
			if err != nil {
				return err
			}
			balance, err := balanceOf(ctx, repos, *res, stay.ID)
			if err != nil {
				return err
			}
			if err := CheckAmount(p.Amount, balance); err != nil {
				return err
			}
		}

		if err := repos.Payments.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		p.Status = status
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"payment_id": id, "status": status, "actor": actor.Username}).Info("payment status changed")
	return updated, nil
}

func (s *PaymentService) RemainingBalance(ctx context.Context, stayID int64) (*domain.Balance, error) {
	stay, err := s.repos.Stays.GetByID(ctx, stayID)
	if err != nil {
		return nil, err
	}
	res, err := s.repos.Reservations.GetByID(ctx, stay.ReservationID)
	if err != nil {
		return nil, err
	}
	balance, err := balanceOf(ctx, s.repos, *res, stay.ID)
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.repos.Payments.GetByID(ctx, id)
}

func (s *PaymentService) List(ctx context.Context, filter domain.PaymentFilter) (*ListResult, error) {
	if filter.Mode != "" && !filter.Mode.Valid() {
		return nil, domain.Validationf("invalid payment mode %q", filter.Mode)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Validationf("invalid payment status %q", filter.Status)
	}
	payments, err := s.repos.Payments.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, p := range payments {
		if p.Status == domain.PaymentStatusValidated {
			total = total.Add(p.Amount)
		}
	}
	return &ListResult{Payments: payments, ValidatedTotal: total}, nil
}

func balanceOf(ctx context.Context, repos repository.Repositories, res domain.Reservation, stayID int64) (domain.Balance, error) {
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

func (s *PaymentService) publish(ctx context.Context, event kafka.FrontDeskEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, event); err != nil {
		s.log.WithError(err).WithField("payment_id", event.PaymentID).Warn("failed to publish event")
	}
}

var _ PaymentUseCase = (*PaymentService)(nil)
