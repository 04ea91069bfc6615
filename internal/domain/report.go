package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

type ReservationStats struct {
	Total           int `json:"total"`
	Confirmed       int `json:"confirmed"`
	ArrivalsToday   int `json:"arrivals_today"`
	DeparturesToday int `json:"departures_today"`
}

type TypeCount struct {
	Type  RoomType `json:"type"`
	Count int      `json:"count"`
}

type MonthCount struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

// Dashboard is the front-desk overview. Financial fields stay nil for roles
// that may not see revenue.
type Dashboard struct {
	Rooms              RoomStats        `json:"rooms"`
	Reservations       ReservationStats `json:"reservations"`
	ActiveStays        int              `json:"active_stays"`
	TotalClients       int              `json:"total_clients"`
	MonthRevenue       decimal.Decimal  `json:"month_revenue"`
	RecentReservations []Reservation    `json:"recent_reservations"`

	TotalRevenue         *decimal.Decimal `json:"total_revenue,omitempty"`
	RoomsByType          []TypeCount      `json:"rooms_by_type,omitempty"`
	ReservationsPerMonth []MonthCount     `json:"reservations_per_month,omitempty"`
	GeneratedAt          time.Time        `json:"generated_at"`
}

// Report is the admin-only management report.
type Report struct {
	Dashboard
	OccupancyRate            decimal.Decimal `json:"occupancy_rate"`
	AverageRevenuePerBooking decimal.Decimal `json:"average_revenue_per_booking"`
}

// OccupancyRate is occupied/total × 100 rounded to two decimals.
func OccupancyRate(stats RoomStats) decimal.Decimal {
	if stats.Total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(stats.Occupied)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(stats.Total))).
		Round(2)
}

// Totals for a single client or room detail page.
type ActivityTotals struct {
	Reservations int             `json:"reservations"`
	Stays        int             `json:"stays"`
	Revenue      decimal.Decimal `json:"revenue"`
}
