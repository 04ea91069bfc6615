package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/service/payment"
	"github.com/Domenick1991/hoteldesk/internal/service/stay"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStayHandler_checkOut(t *testing.T) {
	t.Run("OutstandingBalance", func(t *testing.T) {
		stays := &MockStayUseCase{}
		handler := NewStayHandler(stays, &MockPaymentUseCase{})
		c, w := newContext("POST", "/stays/5/check-out", nil)
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		stays.On("CheckOut", c.Request.Context(), receptionist, int64(5), stay.CheckOutInput{}).
			Return(nil, domain.NewOutstandingBalance(decimal.NewFromInt(200), "GNF"))

		handler.checkOut(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "200.00", body["remaining"])
		assert.Equal(t, "GNF", body["currency"])
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		stays := &MockStayUseCase{}
		handler := NewStayHandler(stays, &MockPaymentUseCase{})
		c, w := newContext("POST", "/stays/5/check-out", nil)
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		stays.On("CheckOut", c.Request.Context(), receptionist, int64(5), stay.CheckOutInput{}).
			Return(&stay.CheckOutResult{Stay: &domain.Stay{ID: 5}, Warning: "stay 5 is already checked out"}, nil)

		handler.checkOut(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "already checked out")
	})
}

func TestStayHandler_recordPayment(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		payments := &MockPaymentUseCase{}
		handler := NewStayHandler(&MockStayUseCase{}, payments)
		c, w := newContext("POST", "/stays/5/payments", gin.H{"amount": "1500", "mode": "CASH"})
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		payments.On("Record", c.Request.Context(), receptionist, int64(5), mock.MatchedBy(func(in payment.RecordInput) bool {
			return in.Amount.Equal(decimal.NewFromInt(1500)) && in.Mode == domain.PaymentModeCash
		})).Return(&domain.Payment{ID: 1, Reference: "PAY-0A1B2C3D4E", Status: domain.PaymentStatusValidated}, nil)

		handler.recordPayment(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "PAY-0A1B2C3D4E")
	})

	t.Run("ExceedsBalance", func(t *testing.T) {
		payments := &MockPaymentUseCase{}
		handler := NewStayHandler(&MockStayUseCase{}, payments)
		c, w := newContext("POST", "/stays/5/payments", gin.H{"amount": "1", "mode": "CASH"})
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		payments.On("Record", c.Request.Context(), receptionist, int64(5), mock.MatchedBy(func(in payment.RecordInput) bool {
			return in.Amount.Equal(decimal.NewFromInt(1)) && in.Mode == domain.PaymentModeCash
		})).Return(nil, domain.BusinessRulef("payment of 1.00 exceeds the remaining balance of 0.00"))

		handler.recordPayment(c)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
