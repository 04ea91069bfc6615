package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMode string

const (
	PaymentModeCash        PaymentMode = "CASH"
	PaymentModeCard        PaymentMode = "CARD"
	PaymentModeTransfer    PaymentMode = "TRANSFER"
	PaymentModeMobileMoney PaymentMode = "MOBILE_MONEY"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeCard, PaymentModeTransfer, PaymentModeMobileMoney:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusValidated PaymentStatus = "VALIDATED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusValidated, PaymentStatusRefunded:
		return true
	}
	return false
}

// CanMoveTo lists the allowed payment status transitions. Refunded is terminal.
func (s PaymentStatus) CanMoveTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusValidated || next == PaymentStatusRefunded
	case PaymentStatusValidated:
		return next == PaymentStatusRefunded
	case PaymentStatusRefunded:
		return false
	}
	return false
}

// Payment is recorded against a stay. StayID is zero once the stay was
// removed by a cancellation; ReservationID keeps the refund trail.
type Payment struct {
	ID            int64           `json:"id"`
	ReservationID int64           `json:"reservation_id"`
	StayID        int64           `json:"stay_id"`
	PaidAt        time.Time       `json:"paid_at"`
	Amount        decimal.Decimal `json:"amount"`
	Mode          PaymentMode     `json:"mode"`
	Reference     string          `json:"reference"`
	Status        PaymentStatus   `json:"status"`
}

type PaymentFilter struct {
	Mode   PaymentMode
	Status PaymentStatus
}

// Balance is the money position of a stay.
type Balance struct {
	RoomCharge    decimal.Decimal `json:"room_charge"`
	ServicesTotal decimal.Decimal `json:"services_total"`
	TotalDue      decimal.Decimal `json:"total_due"`
	Paid          decimal.Decimal `json:"paid"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// ComputeBalance sums the amount due and the validated payments. Pending and
// refunded payments do not reduce the balance.
func ComputeBalance(res Reservation, items []LineItem, payments []Payment) Balance {
	services := LineItemsTotal(items)
	due := res.TotalPrice.Add(services)
	paid := decimal.Zero
	for _, p := range payments {
		if p.Status == PaymentStatusValidated {
			paid = paid.Add(p.Amount)
		}
	}
	return Balance{
		RoomCharge:    res.TotalPrice,
		ServicesTotal: services,
		TotalDue:      due,
		Paid:          paid,
		Remaining:     due.Sub(paid),
	}
}
