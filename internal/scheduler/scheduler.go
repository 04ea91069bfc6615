package scheduler

import (
	"context"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type Reporter interface {
	Report(ctx context.Context, actor domain.StaffUser) (*domain.Report, error)
}

// Scheduler runs the periodic front-desk jobs.
type Scheduler struct {
	cron     *cron.Cron
	reporter Reporter
	log      logrus.FieldLogger
	timeout  time.Duration
}

// NewScheduler registers the nightly report on spec, a six-field cron
// expression (seconds first) evaluated in UTC.
func NewScheduler(spec string, reporter Reporter, log logrus.FieldLogger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC), cron.WithSeconds()),
		reporter: reporter,
		log:      log,
		timeout:  time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, s.NightlyReport); err != nil {
		return nil, err
	}
	return s, nil
}

// NightlyReport builds the management report as the system user and logs it.
func (s *Scheduler) NightlyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	r, err := s.reporter.Report(ctx, domain.SystemUser)
	if err != nil {
		s.log.WithError(err).Error("nightly report failed")
		return
	}
	fields := logrus.Fields{
		"rooms_total":      r.Rooms.Total,
		"rooms_occupied":   r.Rooms.Occupied,
		"occupancy_rate":   r.OccupancyRate.String(),
		"active_stays":     r.ActiveStays,
		"arrivals_today":   r.Reservations.ArrivalsToday,
		"departures_today": r.Reservations.DeparturesToday,
		"month_revenue":    r.MonthRevenue.String(),
	}
	if r.TotalRevenue != nil {
		fields["total_revenue"] = r.TotalRevenue.String()
	}
	s.log.WithFields(fields).Info("nightly front-desk report")
}

func (s *Scheduler) Start() {
	s.log.Info("starting cron scheduler")
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("cron scheduler stopped")
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
