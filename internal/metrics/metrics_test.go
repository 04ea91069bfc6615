package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/rooms/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/rooms/:id", "204"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/12", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/rooms/:id", "204")))
}

func TestRecordOperationAndHandler(t *testing.T) {
	RecordOperation("check_out", "business_rule")
	assert.Equal(t, float64(1), testutil.ToFloat64(operations.WithLabelValues("check_out", "business_rule")))

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "hoteldesk_frontdesk_operations_total"))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "not_found", Outcome(domain.NotFoundf("stay not found")))
	assert.Equal(t, "error", Outcome(assert.AnError))
}
