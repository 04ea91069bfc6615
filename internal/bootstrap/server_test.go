package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/hoteldesk/api"
	"github.com/Domenick1991/hoteldesk/config"
	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/logger"
	"github.com/Domenick1991/hoteldesk/internal/repository/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testRouter(staff *mocks.StaffRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0"}}
	return NewRouter(cfg, logger.Discard(), staff, Handlers{
		Clients:      api.NewClientHandler(nil),
		Rooms:        api.NewRoomHandler(nil, nil),
		Extras:       api.NewExtraHandler(nil),
		Reservations: api.NewReservationHandler(nil, nil),
		Stays:        api.NewStayHandler(nil, nil),
		Payments:     api.NewPaymentHandler(nil),
		Reports:      api.NewReportHandler(nil),
	})
}

func TestNewRouter(t *testing.T) {
	staff := &mocks.StaffRepo{}
	staff.On("GetByUsername", mock.Anything, "fatou").
		Return(&domain.StaffUser{Username: "fatou", Role: domain.StaffRoleReceptionist, Active: true}, nil)
	router := testRouter(staff)

	t.Run("Health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("APIRequiresActor", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/clients", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("PaymentsRestricted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/payments", nil)
		req.Header.Set(api.StaffHeader, "fatou")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0"}}

	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, http.NotFoundHandler(), logger.Discard()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
