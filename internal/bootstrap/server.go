package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/hoteldesk/api"
	"github.com/Domenick1991/hoteldesk/config"
	"github.com/Domenick1991/hoteldesk/internal/metrics"
	"github.com/Domenick1991/hoteldesk/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups the resource handlers mounted under /api/v1.
type Handlers struct {
	Clients      *api.ClientHandler
	Rooms        *api.RoomHandler
	Extras       *api.ExtraHandler
	Reservations *api.ReservationHandler
	Stays        *api.StayHandler
	Payments     *api.PaymentHandler
	Reports      *api.ReportHandler
}

// NewRouter assembles the gin engine: metrics, docs, then the authenticated
// front-desk API.
func NewRouter(cfg *config.Config, log logrus.FieldLogger, staff repository.StaffRepository, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log), metrics.Middleware())

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/docs", cfg.HTTP.SwaggerDir)
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/openapi.json"))))
	}

	v1 := router.Group("/api/v1")
	v1.Use(api.Actor(staff))
	if cfg.HTTP.RateLimitRPS > 0 {
		v1.Use(api.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst, log).Handler())
	}

	h.Clients.Register(v1.Group("/clients"))
	h.Rooms.Register(v1.Group("/rooms"))
	h.Extras.Register(v1.Group("/services"))
	h.Reservations.Register(v1.Group("/reservations"))
	h.Stays.Register(v1.Group("/stays"))
	h.Payments.Register(v1.Group("/payments", api.RequireRevenueAccess()))
	h.Reports.Register(v1.Group("/reports"))
	return router
}

// Run serves router on the configured address and blocks until ctx is
// cancelled or the server fails.
func Run(ctx context.Context, cfg *config.Config, router http.Handler, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.HTTP.Address).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info("http server stopped")
		return nil
	}
}
