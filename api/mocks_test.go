package api

import (
	"context"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/service/payment"
	"github.com/Domenick1991/hoteldesk/internal/service/reservation"
	"github.com/Domenick1991/hoteldesk/internal/service/stay"
	"github.com/stretchr/testify/mock"
)

type MockReservationUseCase struct {
	mock.Mock
}

func (m *MockReservationUseCase) Create(ctx context.Context, actor domain.StaffUser, input reservation.CreateInput) (*domain.Reservation, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Update(ctx context.Context, actor domain.StaffUser, id int64, input reservation.UpdateInput) (*domain.Reservation, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Confirm(ctx context.Context, actor domain.StaffUser, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Cancel(ctx context.Context, actor domain.StaffUser, id int64, input reservation.CancelInput) (*reservation.CancelResult, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.CancelResult), args.Error(1)
}

func (m *MockReservationUseCase) Delete(ctx context.Context, actor domain.StaffUser, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockReservationUseCase) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Detail(ctx context.Context, id int64) (*reservation.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Detail), args.Error(1)
}

func (m *MockReservationUseCase) AddService(ctx context.Context, actor domain.StaffUser, id int64, input reservation.AddServiceInput) (*domain.LineItem, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}

func (m *MockReservationUseCase) RemoveService(ctx context.Context, actor domain.StaffUser, id, serviceID int64) error {
	return m.Called(ctx, actor, id, serviceID).Error(0)
}

type MockStayUseCase struct {
	mock.Mock
}

func (m *MockStayUseCase) CheckIn(ctx context.Context, actor domain.StaffUser, reservationID int64, input stay.CheckInInput) (*stay.CheckInResult, error) {
	args := m.Called(ctx, actor, reservationID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stay.CheckInResult), args.Error(1)
}

func (m *MockStayUseCase) CheckOut(ctx context.Context, actor domain.StaffUser, stayID int64, input stay.CheckOutInput) (*stay.CheckOutResult, error) {
	args := m.Called(ctx, actor, stayID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stay.CheckOutResult), args.Error(1)
}

func (m *MockStayUseCase) Get(ctx context.Context, id int64) (*domain.Stay, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stay), args.Error(1)
}

func (m *MockStayUseCase) List(ctx context.Context, activeOnly bool) ([]domain.Stay, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]domain.Stay), args.Error(1)
}

func (m *MockStayUseCase) Detail(ctx context.Context, id int64) (*stay.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stay.Detail), args.Error(1)
}

type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) Record(ctx context.Context, actor domain.StaffUser, stayID int64, input payment.RecordInput) (*domain.Payment, error) {
	args := m.Called(ctx, actor, stayID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentUseCase) UpdateStatus(ctx context.Context, actor domain.StaffUser, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	args := m.Called(ctx, actor, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentUseCase) RemainingBalance(ctx context.Context, stayID int64) (*domain.Balance, error) {
	args := m.Called(ctx, stayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockPaymentUseCase) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentUseCase) List(ctx context.Context, filter domain.PaymentFilter) (*payment.ListResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ListResult), args.Error(1)
}
