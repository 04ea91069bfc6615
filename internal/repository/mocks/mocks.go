// Package mocks holds testify mocks of the repository interfaces shared by
// the service tests.
package mocks

import (
	"context"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Tx runs the callback directly against Repos, without a real transaction.
type Tx struct {
	Repos repository.Repositories
	Calls int
}

func (t *Tx) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	t.Calls++
	return fn(ctx, t.Repos)
}

// Set bundles one mock per repository.
type Set struct {
	Clients      *ClientRepo
	Rooms        *RoomRepo
	Reservations *ReservationRepo
	Stays        *StayRepo
	Payments     *PaymentRepo
	Extras       *ExtraRepo
	LineItems    *LineItemRepo
	Staff        *StaffRepo
}

func NewSet() *Set {
	return &Set{
		Clients:      new(ClientRepo),
		Rooms:        new(RoomRepo),
		Reservations: new(ReservationRepo),
		Stays:        new(StayRepo),
		Payments:     new(PaymentRepo),
		Extras:       new(ExtraRepo),
		LineItems:    new(LineItemRepo),
		Staff:        new(StaffRepo),
	}
}

func (s *Set) Repositories() repository.Repositories {
	return repository.Repositories{
		Clients:      s.Clients,
		Rooms:        s.Rooms,
		Reservations: s.Reservations,
		Stays:        s.Stays,
		Payments:     s.Payments,
		Extras:       s.Extras,
		LineItems:    s.LineItems,
		Staff:        s.Staff,
	}
}

func (s *Set) Tx() *Tx {
	return &Tx{Repos: s.Repositories()}
}

func (s *Set) AssertExpectations(t mock.TestingT) {
	s.Clients.AssertExpectations(t)
	s.Rooms.AssertExpectations(t)
	s.Reservations.AssertExpectations(t)
	s.Stays.AssertExpectations(t)
	s.Payments.AssertExpectations(t)
	s.Extras.AssertExpectations(t)
	s.LineItems.AssertExpectations(t)
	s.Staff.AssertExpectations(t)
}

type ClientRepo struct{ mock.Mock }

func (m *ClientRepo) Create(ctx context.Context, c *domain.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *ClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Client)
	return c, args.Error(1)
}

func (m *ClientRepo) Update(ctx context.Context, c *domain.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *ClientRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ClientRepo) Search(ctx context.Context, query string) ([]domain.Client, error) {
	args := m.Called(ctx, query)
	list, _ := args.Get(0).([]domain.Client)
	return list, args.Error(1)
}

func (m *ClientRepo) Exists(ctx context.Context, field repository.ClientField, value string, excludeID int64) (bool, error) {
	args := m.Called(ctx, field, value, excludeID)
	return args.Bool(0), args.Error(1)
}

type RoomRepo struct{ mock.Mock }

func (m *RoomRepo) Create(ctx context.Context, r *domain.Room) error {
	return m.Called(ctx, r).Error(0)
}

func (m *RoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Room)
	return r, args.Error(1)
}

func (m *RoomRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Room)
	return r, args.Error(1)
}

func (m *RoomRepo) Update(ctx context.Context, r *domain.Room) error {
	return m.Called(ctx, r).Error(0)
}

func (m *RoomRepo) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *RoomRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RoomRepo) List(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Room)
	return list, args.Error(1)
}

type ReservationRepo struct{ mock.Mock }

func (m *ReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *ReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Reservation)
	return r, args.Error(1)
}

func (m *ReservationRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Reservation)
	return r, args.Error(1)
}

func (m *ReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *ReservationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ReservationRepo) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Reservation)
	return list, args.Error(1)
}

func (m *ReservationRepo) ListConflicting(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) ([]domain.Reservation, error) {
	args := m.Called(ctx, roomID, start, end, excludeID)
	list, _ := args.Get(0).([]domain.Reservation)
	return list, args.Error(1)
}

func (m *ReservationRepo) ListByClient(ctx context.Context, clientID int64) ([]domain.Reservation, error) {
	args := m.Called(ctx, clientID)
	list, _ := args.Get(0).([]domain.Reservation)
	return list, args.Error(1)
}

func (m *ReservationRepo) ListByRoom(ctx context.Context, roomID int64, limit int) ([]domain.Reservation, error) {
	args := m.Called(ctx, roomID, limit)
	list, _ := args.Get(0).([]domain.Reservation)
	return list, args.Error(1)
}

func (m *ReservationRepo) CountByClient(ctx context.Context, clientID int64) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *ReservationRepo) CountByRoom(ctx context.Context, roomID int64) (int, error) {
	args := m.Called(ctx, roomID)
	return args.Int(0), args.Error(1)
}

type StayRepo struct{ mock.Mock }

func (m *StayRepo) Create(ctx context.Context, s *domain.Stay) error {
	return m.Called(ctx, s).Error(0)
}

func (m *StayRepo) GetByID(ctx context.Context, id int64) (*domain.Stay, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Stay)
	return s, args.Error(1)
}

func (m *StayRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Stay, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Stay)
	return s, args.Error(1)
}

func (m *StayRepo) FindByReservation(ctx context.Context, reservationID int64) (*domain.Stay, error) {
	args := m.Called(ctx, reservationID)
	s, _ := args.Get(0).(*domain.Stay)
	return s, args.Error(1)
}

func (m *StayRepo) Update(ctx context.Context, s *domain.Stay) error {
	return m.Called(ctx, s).Error(0)
}

func (m *StayRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *StayRepo) List(ctx context.Context, activeOnly bool) ([]domain.Stay, error) {
	args := m.Called(ctx, activeOnly)
	list, _ := args.Get(0).([]domain.Stay)
	return list, args.Error(1)
}

type PaymentRepo struct{ mock.Mock }

func (m *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepo) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *PaymentRepo) ListByStay(ctx context.Context, stayID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, stayID)
	list, _ := args.Get(0).([]domain.Payment)
	return list, args.Error(1)
}

func (m *PaymentRepo) ListByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, reservationID)
	list, _ := args.Get(0).([]domain.Payment)
	return list, args.Error(1)
}

func (m *PaymentRepo) RefundByStay(ctx context.Context, stayID int64) (int64, error) {
	args := m.Called(ctx, stayID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PaymentRepo) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Payment)
	return list, args.Error(1)
}

type ExtraRepo struct{ mock.Mock }

func (m *ExtraRepo) Create(ctx context.Context, s *domain.ExtraService) error {
	return m.Called(ctx, s).Error(0)
}

func (m *ExtraRepo) GetByID(ctx context.Context, id int64) (*domain.ExtraService, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.ExtraService)
	return s, args.Error(1)
}

func (m *ExtraRepo) Update(ctx context.Context, s *domain.ExtraService) error {
	return m.Called(ctx, s).Error(0)
}

func (m *ExtraRepo) List(ctx context.Context, activeOnly bool) ([]domain.ExtraService, error) {
	args := m.Called(ctx, activeOnly)
	list, _ := args.Get(0).([]domain.ExtraService)
	return list, args.Error(1)
}

type LineItemRepo struct{ mock.Mock }

func (m *LineItemRepo) Create(ctx context.Context, item *domain.LineItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *LineItemRepo) ListByReservation(ctx context.Context, reservationID int64) ([]domain.LineItem, error) {
	args := m.Called(ctx, reservationID)
	list, _ := args.Get(0).([]domain.LineItem)
	return list, args.Error(1)
}

func (m *LineItemRepo) Delete(ctx context.Context, reservationID, serviceID int64) error {
	return m.Called(ctx, reservationID, serviceID).Error(0)
}

type StaffRepo struct{ mock.Mock }

func (m *StaffRepo) GetByID(ctx context.Context, id int64) (*domain.StaffUser, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.StaffUser)
	return u, args.Error(1)
}

func (m *StaffRepo) GetByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*domain.StaffUser)
	return u, args.Error(1)
}

type ReportRepo struct{ mock.Mock }

func (m *ReportRepo) RoomStats(ctx context.Context) (domain.RoomStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RoomStats), args.Error(1)
}

func (m *ReportRepo) ReservationStats(ctx context.Context, today time.Time) (domain.ReservationStats, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(domain.ReservationStats), args.Error(1)
}

func (m *ReportRepo) CountActiveStays(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *ReportRepo) CountClients(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *ReportRepo) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *ReportRepo) RecentReservations(ctx context.Context, limit int) ([]domain.Reservation, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]domain.Reservation)
	return list, args.Error(1)
}

func (m *ReportRepo) RoomsByType(ctx context.Context) ([]domain.TypeCount, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.TypeCount)
	return list, args.Error(1)
}

func (m *ReportRepo) ReservationsPerMonth(ctx context.Context, since time.Time) ([]domain.MonthCount, error) {
	args := m.Called(ctx, since)
	list, _ := args.Get(0).([]domain.MonthCount)
	return list, args.Error(1)
}

func (m *ReportRepo) ClientTotals(ctx context.Context, clientID int64) (domain.ActivityTotals, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(domain.ActivityTotals), args.Error(1)
}

func (m *ReportRepo) RoomTotals(ctx context.Context, roomID int64) (domain.ActivityTotals, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(domain.ActivityTotals), args.Error(1)
}

var (
	_ repository.TxRunner               = (*Tx)(nil)
	_ repository.ClientRepository       = (*ClientRepo)(nil)
	_ repository.RoomRepository         = (*RoomRepo)(nil)
	_ repository.ReservationRepository  = (*ReservationRepo)(nil)
	_ repository.StayRepository         = (*StayRepo)(nil)
	_ repository.PaymentRepository      = (*PaymentRepo)(nil)
	_ repository.ExtraServiceRepository = (*ExtraRepo)(nil)
	_ repository.LineItemRepository     = (*LineItemRepo)(nil)
	_ repository.StaffRepository        = (*StaffRepo)(nil)
	_ repository.ReportRepository       = (*ReportRepo)(nil)
)
