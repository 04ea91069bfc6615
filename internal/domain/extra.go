package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ExtraService is a catalog entry that can be attached to a reservation.
type ExtraService struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
}

func (s ExtraService) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return Validationf("service name is required")
	}
	if s.Price.IsNegative() {
		return Validationf("service price must not be negative")
	}
	return nil
}

// LineItem is a quantity of an extra service on a reservation. UnitPrice is
// frozen when the line is created.
type LineItem struct {
	ID            int64           `json:"id"`
	ReservationID int64           `json:"reservation_id"`
	ServiceID     int64           `json:"service_id"`
	ServiceName   string          `json:"service_name,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func LineItemsTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}
