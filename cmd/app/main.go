package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/hoteldesk/api"
	"github.com/Domenick1991/hoteldesk/config"
	"github.com/Domenick1991/hoteldesk/internal/bootstrap"
	"github.com/Domenick1991/hoteldesk/internal/cache"
	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/kafka"
	"github.com/Domenick1991/hoteldesk/internal/logger"
	"github.com/Domenick1991/hoteldesk/internal/migrations"
	"github.com/Domenick1991/hoteldesk/internal/repository"
	"github.com/Domenick1991/hoteldesk/internal/service/availability"
	"github.com/Domenick1991/hoteldesk/internal/service/clients"
	"github.com/Domenick1991/hoteldesk/internal/service/extras"
	"github.com/Domenick1991/hoteldesk/internal/service/payment"
	"github.com/Domenick1991/hoteldesk/internal/service/reports"
	"github.com/Domenick1991/hoteldesk/internal/service/reservation"
	"github.com/Domenick1991/hoteldesk/internal/service/rooms"
	"github.com/Domenick1991/hoteldesk/internal/service/stay"
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
	appLog := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrations.Up(cfg.Database.MigrationURL()); err != nil {
		appLog.WithError(err).Fatal("apply migrations")
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		appLog.WithError(err).Fatal("connect postgres")
	}
	defer pool.Close()

	store := repository.NewStore(pool)
	reportDB := repository.OpenReportDB(pool)
	defer reportDB.Close()
	reportRepo := repository.NewReportRepository(reportDB)

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Hotel.DashboardCacheTTLSeconds)*time.Second)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		appLog.WithError(err).Warn("redis unreachable, room locks and dashboard cache degraded")
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, appLog)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		appLog.WithError(err).Warn("kafka unreachable, events will be dropped")
	}
	events := kafka.NewPublisher(producer, cfg.Kafka.EventsTopic, cfg.Kafka.NotificationsTopic)

	availabilityService := availability.NewAvailabilityService(store.Rooms, store.Reservations)
	clientService := clients.NewClientService(store.Clients, store.Reservations, reportRepo, clients.WithLogger(appLog))
	roomService := rooms.NewRoomService(store.Rooms, store.Reservations, reportRepo, rooms.WithLogger(appLog))
	extraService := extras.NewExtraService(store.Extras)
	reservationService := reservation.NewReservationService(store, store.Repositories,
		reservation.WithRoomLocker(redisCache, time.Duration(cfg.Hotel.BookingLockTTLSeconds)*time.Second),
		reservation.WithDefaultStatus(domain.ReservationStatus(cfg.Hotel.DefaultReservationStatus)),
		reservation.WithEventPublisher(events),
		reservation.WithLogger(appLog),
	)
	stayService := stay.NewStayService(store, store.Repositories,
		stay.WithCurrency(cfg.Hotel.Currency),
		stay.WithEventPublisher(events),
		stay.WithLogger(appLog),
	)
	paymentService := payment.NewPaymentService(store, store.Repositories,
		payment.WithEventPublisher(events),
		payment.WithLogger(appLog),
	)
	reportService := reports.NewReportService(reportRepo,
		reports.WithDashboardCache(redisCache),
		reports.WithLogger(appLog),
	)

	router := bootstrap.NewRouter(cfg, appLog, store.Staff, bootstrap.Handlers{
		Clients:      api.NewClientHandler(clientService),
		Rooms:        api.NewRoomHandler(roomService, availabilityService),
		Extras:       api.NewExtraHandler(extraService),
		Reservations: api.NewReservationHandler(reservationService, stayService),
		Stays:        api.NewStayHandler(stayService, paymentService),
		Payments:     api.NewPaymentHandler(paymentService),
		Reports:      api.NewReportHandler(reportService),
	})

	if err := bootstrap.Run(ctx, cfg, router, appLog); err != nil {
		appLog.WithError(err).Fatal("server error")
	}
}
