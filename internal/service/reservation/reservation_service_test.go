package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/kafka"
	"github.com/Domenick1991/hoteldesk/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var agent = domain.StaffUser{ID: 7, Username: "fatou", Role: domain.StaffRoleReceptionist, Active: true}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func room101() *domain.Room {
	return &domain.Room{ID: 1, Number: "101", Type: domain.RoomTypeDouble, NightlyRate: decimal.NewFromInt(500), Status: domain.RoomStatusAvailable}
}

type fakeLocker struct {
	acquired int
	released int
	busy     bool
	err      error
}

func (l *fakeLocker) AcquireRoomLock(_ context.Context, _ int64, _ time.Duration) (string, bool, error) {
	if l.err != nil {
		return "", false, l.err
	}
	if l.busy {
		return "", false, nil
	}
	l.acquired++
	return "token", true, nil
}

func (l *fakeLocker) ReleaseRoomLock(_ context.Context, _ int64, token string) error {
	if token == "token" {
		l.released++
	}
	return nil
}

type fakePublisher struct {
	events []kafka.FrontDeskEvent
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, event kafka.FrontDeskEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func TestReservationService_Create(t *testing.T) {
	ctx := context.Background()
	client := &domain.Client{ID: 3, FirstName: "Mamadou", LastName: "Diallo", Email: "m.diallo@example.gn"}

	t.Run("PricesNightsTimesRate", func(t *testing.T) {
		set := mocks.NewSet()
		locker := &fakeLocker{}
		events := &fakePublisher{}
		svc := NewReservationService(set.Tx(), set.Repositories(), WithRoomLocker(locker, time.Second), WithEventPublisher(events))

		set.Clients.On("GetByID", ctx, int64(3)).Return(client, nil)
		set.Rooms.On("GetForUpdate", ctx, int64(1)).Return(room101(), nil)
		set.Reservations.On("ListConflicting", ctx, int64(1), day(1), day(4), int64(0)).Return([]domain.Reservation{}, nil)
		set.Reservations.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Reservation).ID = 10
		}).Return(nil)

		res, err := svc.Create(ctx, agent, CreateInput{ClientID: 3, RoomID: 1, StartDate: day(1), EndDate: day(4), Adults: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(10), res.ID)
		assert.Equal(t, 3, res.Nights)
		assert.True(t, decimal.NewFromInt(1500).Equal(res.TotalPrice))
		assert.Equal(t, domain.ReservationStatusPending, res.Status)
		assert.Equal(t, int64(7), res.AgentID)
		assert.Equal(t, "101", res.RoomNumber)
		assert.Equal(t, 1, locker.acquired)
		assert.Equal(t, 1, locker.released)
		require.Len(t, events.events, 1)
		assert.Equal(t, kafka.EventReservationCreated, events.events[0].Type)
		assert.Equal(t, "m.diallo@example.gn", events.events[0].ClientEmail)
		set.AssertExpectations(t)
	})

	t.Run("OverlapRejected", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		existing := domain.Reservation{ID: 10, RoomID: 1, StartDate: day(1), EndDate: day(4), Status: domain.ReservationStatusPending}

		set.Clients.On("GetByID", ctx, int64(3)).Return(client, nil)
		set.Rooms.On("GetForUpdate", ctx, int64(1)).Return(room101(), nil)
		set.Reservations.On("ListConflicting", ctx, int64(1), day(2), day(5), int64(0)).Return([]domain.Reservation{existing}, nil)

		_, err := svc.Create(ctx, agent, CreateInput{ClientID: 3, RoomID: 1, StartDate: day(2), EndDate: day(5), Adults: 1})
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
		assert.Contains(t, err.Error(), "already booked")
		set.Reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("TouchingStayAccepted", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		existing := domain.Reservation{ID: 10, RoomID: 1, StartDate: day(1), EndDate: day(4), Status: domain.ReservationStatusConfirmed}

		set.Clients.On("GetByID", ctx, int64(3)).Return(client, nil)
		set.Rooms.On("GetForUpdate", ctx, int64(1)).Return(room101(), nil)
		set.Reservations.On("ListConflicting", ctx, int64(1), day(4), day(6), int64(0)).Return([]domain.Reservation{existing}, nil)
		set.Reservations.On("Create", ctx, mock.Anything).Return(nil)

		res, err := svc.Create(ctx, agent, CreateInput{ClientID: 3, RoomID: 1, StartDate: day(4), EndDate: day(6), Adults: 1})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1000).Equal(res.TotalPrice))
	})

	t.Run("PriceOverride", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		price := decimal.NewFromInt(1200)

		set.Clients.On("GetByID", ctx, int64(3)).Return(client, nil)
		set.Rooms.On("GetForUpdate", ctx, int64(1)).Return(room101(), nil)
		set.Reservations.On("ListConflicting", ctx, int64(1), day(1), day(4), int64(0)).Return(nil, nil)
		set.Reservations.On("Create", ctx, mock.Anything).Return(nil)

		res, err := svc.Create(ctx, agent, CreateInput{ClientID: 3, RoomID: 1, StartDate: day(1), EndDate: day(4), Adults: 1, TotalPrice: &price})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
		assert.True(t, price.Equal(res.TotalPrice))
		assert.True(t, res.PriceOverridden)
	})

	t.Run("RoomNotAvailable", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		room := room101()
		room.Status = domain.RoomStatusMaintenance

		set.Clients.On("GetByID", ctx, int64(3)).Return(client, nil)
		set.Rooms.On("GetForUpdate", ctx, int64(1)).Return(room, nil)
		set.Reservations.On("ListConflicting", ctx, int64(1), day(1), day(2), int64(0)).Return(nil, nil)

		_, err := svc.Create(ctx, agent, CreateInput{ClientID: 3, RoomID: 1, StartDate: day(1), EndDate: day(2), Adults: 1})
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
		assert.Contains(t, err.Error(), "MAINTENANCE")
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())

		_, err := svc.Create(ctx, agent, CreateInput{ClientID: 3, RoomID: 1, StartDate: day(4), EndDate: day(4), Adults: 1})
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
		set.AssertExpectations(t)
	})

	t.Run("InitialStatusCancelledRefused", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())

		_, err := svc.Create(ctx, agent, CreateInput{ClientID: 3, RoomID: 1, StartDate: day(1), EndDate: day(2), Adults: 1, Status: domain.ReservationStatusCancelled})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("LockHeldElsewhere", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories(), WithRoomLocker(&fakeLocker{busy: true}, time.Second))

		_, err := svc.Create(ctx, agent, CreateInput{ClientID: 3, RoomID: 1, StartDate: day(1), EndDate: day(2), Adults: 1})
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
		set.AssertExpectations(t)
	})

	t.Run("RedisDownFallsBackToRowLock", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories(), WithRoomLocker(&fakeLocker{err: errors.New("dial tcp: refused")}, time.Second))

		set.Clients.On("GetByID", ctx, int64(3)).Return(client, nil)
		set.Rooms.On("GetForUpdate", ctx, int64(1)).Return(room101(), nil)
		set.Reservations.On("ListConflicting", ctx, int64(1), day(1), day(2), int64(0)).Return(nil, nil)
		set.Reservations.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.Create(ctx, agent, CreateInput{ClientID: 3, RoomID: 1, StartDate: day(1), EndDate: day(2), Adults: 1})
		assert.NoError(t, err)
	})

	t.Run("PublishFailureIgnored", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories(), WithEventPublisher(&fakePublisher{err: errors.New("broker down")}))

		set.Clients.On("GetByID", ctx, int64(3)).Return(client, nil)
		set.Rooms.On("GetForUpdate", ctx, int64(1)).Return(room101(), nil)
		set.Reservations.On("ListConflicting", ctx, int64(1), day(1), day(2), int64(0)).Return(nil, nil)
		set.Reservations.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.Create(ctx, agent, CreateInput{ClientID: 3, RoomID: 1, StartDate: day(1), EndDate: day(2), Adults: 1})
		assert.NoError(t, err)
	})
}

func TestReservationService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("SameRoomSkipsStatusCheck", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		current := &domain.Reservation{ID: 10, RoomID: 1, StartDate: day(1), EndDate: day(4), Adults: 1, Status: domain.ReservationStatusConfirmed}
		room := room101()
		room.Status = domain.RoomStatusOccupied

		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(current, nil)
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(nil, nil)
		set.Rooms.On("GetForUpdate", ctx, int64(1)).Return(room, nil)
		set.Reservations.On("ListConflicting", ctx, int64(1), day(1), day(6), int64(10)).Return(nil, nil)
		set.Reservations.On("Update", ctx, current).Return(nil)

		res, err := svc.Update(ctx, agent, 10, UpdateInput{StartDate: day(1), EndDate: day(6), Adults: 2})
		require.NoError(t, err)
		assert.Equal(t, 5, res.Nights)
		assert.True(t, decimal.NewFromInt(2500).Equal(res.TotalPrice))
		set.AssertExpectations(t)
	})

	t.Run("RoomChangeAfterCheckIn", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		current := &domain.Reservation{ID: 10, RoomID: 1, StartDate: day(1), EndDate: day(4), Adults: 1, Status: domain.ReservationStatusConfirmed}

		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(current, nil)
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil)

		_, err := svc.Update(ctx, agent, 10, UpdateInput{RoomID: 2, StartDate: day(1), EndDate: day(4), Adults: 1})
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
	})

	t.Run("ShorterStayBelowPaidRefused", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		current := &domain.Reservation{ID: 10, RoomID: 1, StartDate: day(1), EndDate: day(4), Adults: 1,
			Nights: 3, TotalPrice: decimal.NewFromInt(1500), Status: domain.ReservationStatusConfirmed}
		room := room101()
		room.Status = domain.RoomStatusOccupied

		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(current, nil)
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil)
		set.Rooms.On("GetForUpdate", ctx, int64(1)).Return(room, nil)
		set.Reservations.On("ListConflicting", ctx, int64(1), day(1), day(2), int64(10)).Return(nil, nil)
		set.LineItems.On("ListByReservation", ctx, int64(10)).Return(nil, nil)
		set.Stays.On("GetForUpdate", ctx, int64(5)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil)
		set.Payments.On("ListByStay", ctx, int64(5)).Return([]domain.Payment{
			{ID: 1, Amount: decimal.NewFromInt(1500), Status: domain.PaymentStatusValidated},
		}, nil)

		_, err := svc.Update(ctx, agent, 10, UpdateInput{StartDate: day(1), EndDate: day(2), Adults: 1})
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
		assert.Contains(t, err.Error(), "1500.00 already paid")
		set.Reservations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("LongerStayWithPaymentsAccepted", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		current := &domain.Reservation{ID: 10, RoomID: 1, StartDate: day(1), EndDate: day(4), Adults: 1,
			Nights: 3, TotalPrice: decimal.NewFromInt(1500), Status: domain.ReservationStatusConfirmed}
		room := room101()
		room.Status = domain.RoomStatusOccupied

		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(current, nil)
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil)
		set.Rooms.On("GetForUpdate", ctx, int64(1)).Return(room, nil)
		set.Reservations.On("ListConflicting", ctx, int64(1), day(1), day(5), int64(10)).Return(nil, nil)
		set.LineItems.On("ListByReservation", ctx, int64(10)).Return(nil, nil)
		set.Stays.On("GetForUpdate", ctx, int64(5)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil)
		set.Payments.On("ListByStay", ctx, int64(5)).Return([]domain.Payment{
			{ID: 1, Amount: decimal.NewFromInt(1500), Status: domain.PaymentStatusValidated},
		}, nil)
		set.Reservations.On("Update", ctx, current).Return(nil)

		res, err := svc.Update(ctx, agent, 10, UpdateInput{StartDate: day(1), EndDate: day(5), Adults: 1})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(2000).Equal(res.TotalPrice))
		set.AssertExpectations(t)
	})

	t.Run("CancelledIsFrozen", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(&domain.Reservation{ID: 10, Status: domain.ReservationStatusCancelled}, nil)

		_, err := svc.Update(ctx, agent, 10, UpdateInput{StartDate: day(1), EndDate: day(4), Adults: 1})
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
	})
}

func TestReservationService_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending", func(t *testing.T) {
		set := mocks.NewSet()
		events := &fakePublisher{}
		svc := NewReservationService(set.Tx(), set.Repositories(), WithEventPublisher(events))
		res := &domain.Reservation{ID: 10, ClientID: 3, Status: domain.ReservationStatusPending}

		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(res, nil)
		set.Reservations.On("Update", ctx, res).Return(nil)
		set.Clients.On("GetByID", ctx, int64(3)).Return(&domain.Client{ID: 3, Email: "a@b.gn"}, nil)

		got, err := svc.Confirm(ctx, agent, 10)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusConfirmed, got.Status)
		require.Len(t, events.events, 1)
		assert.Equal(t, kafka.EventReservationConfirmed, events.events[0].Type)
	})

	t.Run("AlreadyConfirmed", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(&domain.Reservation{ID: 10, Status: domain.ReservationStatusConfirmed}, nil)

		_, err := svc.Confirm(ctx, agent, 10)
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
	})
}

func TestReservationService_Cancel(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 2, 14, 30, 0, 0, time.UTC)

	t.Run("WithStay", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories(), WithClock(func() time.Time { return now }))
		res := &domain.Reservation{ID: 10, ClientID: 3, RoomID: 1, Status: domain.ReservationStatusConfirmed, Comment: "late arrival"}
		room := room101()
		room.Status = domain.RoomStatusOccupied

		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(res, nil)
		var steps []string
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil)
		set.Stays.On("GetForUpdate", ctx, int64(5)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil).
			Run(func(mock.Arguments) { steps = append(steps, "lock stay") })
		set.Payments.On("RefundByStay", ctx, int64(5)).Return(int64(2), nil).
			Run(func(mock.Arguments) { steps = append(steps, "refund") })
		set.Stays.On("Delete", ctx, int64(5)).Return(nil).
			Run(func(mock.Arguments) { steps = append(steps, "delete stay") })
		set.Reservations.On("Update", ctx, res).Return(nil)
		set.Rooms.On("GetForUpdate", ctx, int64(1)).Return(room, nil)
		set.Rooms.On("UpdateStatus", ctx, int64(1), domain.RoomStatusAvailable).Return(nil)
		set.Clients.On("GetByID", ctx, int64(3)).Return(&domain.Client{ID: 3}, nil)

		result, err := svc.Cancel(ctx, agent, 10, CancelInput{Reason: "Client request", Details: "flight cancelled"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.RefundedPayments)
		assert.True(t, result.StayRemoved)
		assert.True(t, result.RoomReleased)
		assert.Equal(t, domain.ReservationStatusCancelled, result.Reservation.Status)
		assert.Contains(t, result.Reservation.Comment, "late arrival")
		assert.Contains(t, result.Reservation.Comment, "[CANCELLATION - 02/03/2025 14:30]")
		assert.Contains(t, result.Reservation.Comment, "Reason: Client request")
		assert.Contains(t, result.Reservation.Comment, "By: fatou")
		assert.Contains(t, result.Reservation.Comment, "Details: flight cancelled")
		assert.Equal(t, []string{"lock stay", "refund", "delete stay"}, steps)
		set.AssertExpectations(t)
	})

	t.Run("WithoutStayLeavesRoom", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		res := &domain.Reservation{ID: 10, ClientID: 3, RoomID: 1, Status: domain.ReservationStatusPending}

		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(res, nil)
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(nil, nil)
		set.Reservations.On("Update", ctx, res).Return(nil)
		set.Clients.On("GetByID", ctx, int64(3)).Return(&domain.Client{ID: 3}, nil)

		result, err := svc.Cancel(ctx, agent, 10, CancelInput{Reason: "No show"})
		require.NoError(t, err)
		assert.False(t, result.StayRemoved)
		assert.False(t, result.RoomReleased)
		set.Rooms.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ReasonRequired", func(t *testing.T) {
		set := mocks.NewSet()
		tx := set.Tx()
		svc := NewReservationService(tx, set.Repositories())

		_, err := svc.Cancel(ctx, agent, 10, CancelInput{Reason: "  "})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Zero(t, tx.Calls)
	})

	t.Run("AlreadyCancelled", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(&domain.Reservation{ID: 10, Status: domain.ReservationStatusCancelled}, nil)

		_, err := svc.Cancel(ctx, agent, 10, CancelInput{Reason: "again"})
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
	})

	t.Run("RefundFailureAborts", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		res := &domain.Reservation{ID: 10, RoomID: 1, Status: domain.ReservationStatusConfirmed}

		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(res, nil)
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(&domain.Stay{ID: 5}, nil)
		set.Stays.On("GetForUpdate", ctx, int64(5)).Return(&domain.Stay{ID: 5}, nil)
		set.Payments.On("RefundByStay", ctx, int64(5)).Return(int64(0), assert.AnError)

		_, err := svc.Cancel(ctx, agent, 10, CancelInput{Reason: "Client request"})
		assert.ErrorIs(t, err, assert.AnError)
		set.Stays.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		set.Reservations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestReservationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("NoStay", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(&domain.Reservation{ID: 10}, nil)
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(nil, nil)
		set.Reservations.On("Delete", ctx, int64(10)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, agent, 10))
		set.AssertExpectations(t)
	})

	t.Run("HasStay", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(&domain.Reservation{ID: 10}, nil)
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(&domain.Stay{ID: 5}, nil)

		err := svc.Delete(ctx, agent, 10)
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
	})

	t.Run("NotFound", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		set.Reservations.On("GetForUpdate", ctx, int64(99)).Return(nil, domain.NotFoundf("reservation not found"))

		err := svc.Delete(ctx, agent, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReservationService_Detail(t *testing.T) {
	ctx := context.Background()
	set := mocks.NewSet()
	svc := NewReservationService(set.Tx(), set.Repositories())

	res := &domain.Reservation{ID: 10, TotalPrice: decimal.NewFromInt(1500), Status: domain.ReservationStatusConfirmed}
	set.Reservations.On("GetByID", ctx, int64(10)).Return(res, nil)
	set.Stays.On("FindByReservation", ctx, int64(10)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil)
	set.Payments.On("ListByReservation", ctx, int64(10)).Return([]domain.Payment{
		{ID: 1, Amount: decimal.NewFromInt(1000), Status: domain.PaymentStatusValidated},
		{ID: 2, Amount: decimal.NewFromInt(300), Status: domain.PaymentStatusPending},
	}, nil)
	set.LineItems.On("ListByReservation", ctx, int64(10)).Return([]domain.LineItem{
		{ServiceID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
	}, nil)

	d, err := svc.Detail(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.StayStateActive, d.StayState)
	assert.True(t, decimal.NewFromInt(1600).Equal(d.Balance.TotalDue))
	assert.True(t, decimal.NewFromInt(600).Equal(d.Balance.Remaining))
}

func TestReservationService_AddService(t *testing.T) {
	ctx := context.Background()
	breakfast := &domain.ExtraService{ID: 1, Name: "Breakfast", Price: decimal.NewFromInt(50), Active: true}

	t.Run("FreezesCatalogPrice", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(&domain.Reservation{ID: 10, Status: domain.ReservationStatusConfirmed}, nil)
		set.Extras.On("GetByID", ctx, int64(1)).Return(breakfast, nil)
		set.LineItems.On("Create", ctx, mock.AnythingOfType("*domain.LineItem")).Return(nil)

		item, err := svc.AddService(ctx, agent, 10, AddServiceInput{ServiceID: 1, Quantity: 3})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(50).Equal(item.UnitPrice))
		assert.True(t, decimal.NewFromInt(150).Equal(item.Total()))
	})

	t.Run("Duplicate", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(&domain.Reservation{ID: 10, Status: domain.ReservationStatusPending}, nil)
		set.Extras.On("GetByID", ctx, int64(1)).Return(breakfast, nil)
		set.LineItems.On("Create", ctx, mock.Anything).Return(domain.Integrity("this service is already on the reservation", nil))

		_, err := svc.AddService(ctx, agent, 10, AddServiceInput{ServiceID: 1, Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
	})

	t.Run("InactiveService", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		inactive := *breakfast
		inactive.Active = false
		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(&domain.Reservation{ID: 10, Status: domain.ReservationStatusPending}, nil)
		set.Extras.On("GetByID", ctx, int64(1)).Return(&inactive, nil)

		_, err := svc.AddService(ctx, agent, 10, AddServiceInput{ServiceID: 1, Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())

		_, err := svc.AddService(ctx, agent, 10, AddServiceInput{ServiceID: 1})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestReservationService_RemoveService(t *testing.T) {
	ctx := context.Background()
	open := &domain.Reservation{ID: 10, TotalPrice: decimal.NewFromInt(1000), Status: domain.ReservationStatusConfirmed}
	items := []domain.LineItem{
		{ReservationID: 10, ServiceID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		{ReservationID: 10, ServiceID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
	}

	t.Run("NoStay", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(open, nil)
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(nil, nil)
		set.LineItems.On("Delete", ctx, int64(10), int64(1)).Return(nil)

		require.NoError(t, svc.RemoveService(ctx, agent, 10, 1))
		set.Payments.AssertNotCalled(t, "ListByStay", mock.Anything, mock.Anything)
	})

	t.Run("WouldLeaveOverpaid", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(open, nil)
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil)
		set.LineItems.On("ListByReservation", ctx, int64(10)).Return(items, nil)
		set.Stays.On("GetForUpdate", ctx, int64(5)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil)
		set.Payments.On("ListByStay", ctx, int64(5)).Return([]domain.Payment{
			{ID: 1, Amount: decimal.NewFromInt(1250), Status: domain.PaymentStatusValidated},
		}, nil)

		err := svc.RemoveService(ctx, agent, 10, 1)
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
		set.LineItems.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StillCovered", func(t *testing.T) {
		set := mocks.NewSet()
		svc := NewReservationService(set.Tx(), set.Repositories())
		set.Reservations.On("GetForUpdate", ctx, int64(10)).Return(open, nil)
		set.Stays.On("FindByReservation", ctx, int64(10)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil)
		set.LineItems.On("ListByReservation", ctx, int64(10)).Return(items, nil)
		set.Stays.On("GetForUpdate", ctx, int64(5)).Return(&domain.Stay{ID: 5, ReservationID: 10}, nil)
		set.Payments.On("ListByStay", ctx, int64(5)).Return([]domain.Payment{
			{ID: 1, Amount: decimal.NewFromInt(1050), Status: domain.PaymentStatusValidated},
			{ID: 2, Amount: decimal.NewFromInt(500), Status: domain.PaymentStatusRefunded},
		}, nil)
		set.LineItems.On("Delete", ctx, int64(10), int64(1)).Return(nil)

		require.NoError(t, svc.RemoveService(ctx, agent, 10, 1))
		set.AssertExpectations(t)
	})
}

func TestReservationService_List(t *testing.T) {
	ctx := context.Background()
	set := mocks.NewSet()
	svc := NewReservationService(set.Tx(), set.Repositories())

	_, err := svc.List(ctx, domain.ReservationFilter{Status: "LOST"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	set.Reservations.On("List", ctx, domain.ReservationFilter{Search: "diallo"}).Return([]domain.Reservation{{ID: 1}}, nil)
	list, err := svc.List(ctx, domain.ReservationFilter{Search: " diallo "})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
