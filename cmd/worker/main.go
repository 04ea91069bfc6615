package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/hoteldesk/config"
	"github.com/Domenick1991/hoteldesk/internal/cache"
	"github.com/Domenick1991/hoteldesk/internal/kafka"
	"github.com/Domenick1991/hoteldesk/internal/logger"
	"github.com/Domenick1991/hoteldesk/internal/notify"
	"github.com/Domenick1991/hoteldesk/internal/repository"
	"github.com/Domenick1991/hoteldesk/internal/scheduler"
	"github.com/Domenick1991/hoteldesk/internal/service/reports"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	workerLog := logger.New(cfg.Log).WithField("component", "worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		workerLog.WithError(err).Fatal("connect postgres")
	}
	defer pool.Close()

	reportDB := repository.OpenReportDB(pool)
	defer reportDB.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Hotel.DashboardCacheTTLSeconds)*time.Second)
	defer redisCache.Close()

	reportService := reports.NewReportService(repository.NewReportRepository(reportDB),
		reports.WithDashboardCache(redisCache),
		reports.WithLogger(workerLog),
	)

	cron, err := scheduler.NewScheduler(cfg.Worker.ReportSchedule, reportService, workerLog)
	if err != nil {
		workerLog.WithError(err).Fatal("schedule nightly report")
	}
	cron.Start()
	defer cron.Stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, workerLog)
	defer consumer.Close()

	sender := notify.NewSender(workerLog)
	done := make(chan error, 1)
	go func() {
		done <- consumer.ConsumeEvents(ctx, func(ctx context.Context, event kafka.FrontDeskEvent) error {
			if err := sender.Send(ctx, event); err != nil {
				workerLog.WithError(err).WithField("event_id", event.ID).Warn("notification not sent")
			}
			return nil
		})
	}()

	workerLog.WithField("topic", cfg.Kafka.NotificationsTopic).Info("worker started")
	select {
	case <-ctx.Done():
		workerLog.Info("shutting down")
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			workerLog.WithError(err).Error("consumer stopped")
		}
	}
}
