package reports

import (
	"context"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/logger"
	"github.com/Domenick1991/hoteldesk/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	recentReservationsLimit = 5
	monthsOfHistory         = 6
)

type ReportUseCase interface {
	Dashboard(ctx context.Context, actor domain.StaffUser) (*domain.Dashboard, error)
	Report(ctx context.Context, actor domain.StaffUser) (*domain.Report, error)
}

// DashboardCache stores one dashboard snapshot per role. GetDashboard returns
// nil, nil on a miss.
type DashboardCache interface {
	GetDashboard(ctx context.Context, role domain.StaffRole) (*domain.Dashboard, error)
	SetDashboard(ctx context.Context, role domain.StaffRole, d *domain.Dashboard) error
}

type ReportService struct {
	stats repository.ReportRepository
	cache DashboardCache
	log   logrus.FieldLogger
	now   func() time.Time
}

type ReportServiceOption func(*ReportService)

func WithDashboardCache(cache DashboardCache) ReportServiceOption {
	return func(s *ReportService) {
		s.cache = cache
	}
}

func WithLogger(log logrus.FieldLogger) ReportServiceOption {
	return func(s *ReportService) {
		s.log = log
	}
}

func WithClock(now func() time.Time) ReportServiceOption {
	return func(s *ReportService) {
		s.now = now
	}
}

func NewReportService(stats repository.ReportRepository, opts ...ReportServiceOption) *ReportService {
	s := &ReportService{
		stats: stats,
		log:   logger.Discard(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dashboard returns the overview for the actor's role, served from the cache
// when a fresh snapshot exists.
func (s *ReportService) Dashboard(ctx context.Context, actor domain.StaffUser) (*domain.Dashboard, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDashboard(ctx, actor.Role)
		if err != nil {
			s.log.WithError(err).Warn("dashboard cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	d, err := s.build(ctx, actor.Role.CanViewRevenue())
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, actor.Role, d); err != nil {
			s.log.WithError(err).Warn("dashboard cache write failed")
		}
	}
	return d, nil
}

// Report is the management report. Only roles that may see revenue get it.
func (s *ReportService) Report(ctx context.Context, actor domain.StaffUser) (*domain.Report, error) {
	if !actor.Role.CanViewRevenue() {
		return nil, domain.Forbiddenf("the report is restricted to administrators")
	}
	d, err := s.build(ctx, true)
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if d.Reservations.Total > 0 && d.TotalRevenue != nil {
		avg = d.TotalRevenue.Div(decimal.NewFromInt(int64(d.Reservations.Total))).Round(2)
	}
	return &domain.Report{
		Dashboard:                *d,
		OccupancyRate:            domain.OccupancyRate(d.Rooms),
		AverageRevenuePerBooking: avg,
	}, nil
}

func (s *ReportService) build(ctx context.Context, financial bool) (*domain.Dashboard, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var (
		d   = &domain.Dashboard{GeneratedAt: now}
		err error
	)
	if d.Rooms, err = s.stats.RoomStats(ctx); err != nil {
		return nil, err
	}
	if d.Reservations, err = s.stats.ReservationStats(ctx, now); err != nil {
		return nil, err
	}
	if d.ActiveStays, err = s.stats.CountActiveStays(ctx); err != nil {
		return nil, err
	}
	if d.TotalClients, err = s.stats.CountClients(ctx); err != nil {
		return nil, err
	}
	if d.MonthRevenue, err = s.stats.Revenue(ctx, monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}
	if d.RecentReservations, err = s.stats.RecentReservations(ctx, recentReservationsLimit); err != nil {
		return nil, err
	}
	if !financial {
		return d, nil
	}

	total, err := s.stats.Revenue(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	d.TotalRevenue = &total
	if d.RoomsByType, err = s.stats.RoomsByType(ctx); err != nil {
		return nil, err
	}
	if d.ReservationsPerMonth, err = s.stats.ReservationsPerMonth(ctx, monthStart.AddDate(0, -(monthsOfHistory-1), 0)); err != nil {
		return nil, err
	}
	return d, nil
}

var _ ReportUseCase = (*ReportService)(nil)
