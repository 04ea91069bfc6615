package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCompleted:
		return true
	}
	return false
}

// Holds reports whether a reservation in this status still blocks its room.
func (s ReservationStatus) Holds() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed:
		return true
	case ReservationStatusCancelled, ReservationStatusCompleted:
		return false
	}
	return false
}

// ActiveReservationStatuses are the statuses considered by availability checks.
var ActiveReservationStatuses = []ReservationStatus{ReservationStatusPending, ReservationStatusConfirmed}

type Reservation struct {
	ID              int64             `json:"id"`
	ClientID        int64             `json:"client_id"`
	RoomID          int64             `json:"room_id"`
	AgentID         int64             `json:"agent_id"`
	BookedAt        time.Time         `json:"booked_at"`
	StartDate       time.Time         `json:"start_date"`
	EndDate         time.Time         `json:"end_date"`
	Adults          int               `json:"adults"`
	Children        int               `json:"children"`
	Nights          int               `json:"nights"`
	TotalPrice      decimal.Decimal   `json:"total_price"`
	PriceOverridden bool              `json:"price_overridden"`
	Status          ReservationStatus `json:"status"`
	Comment         string            `json:"comment,omitempty"`

	// Filled by list queries for display.
	ClientName string `json:"client_name,omitempty"`
	RoomNumber string `json:"room_number,omitempty"`
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NightsBetween counts calendar days in [start, end).
func NightsBetween(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
}

func (r Reservation) Guests() int {
	return r.Adults + r.Children
}

func (r Reservation) Validate() error {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return Validationf("start and end dates are required")
	}
	if !DateOnly(r.EndDate).After(DateOnly(r.StartDate)) {
		return BusinessRulef("end date must be after start date")
	}
	if r.Adults < 1 {
		return Validationf("at least one adult is required")
	}
	if r.Children < 0 {
		return Validationf("children count must not be negative")
	}
	if !r.Status.Valid() {
		return Validationf("invalid reservation status %q", r.Status)
	}
	if r.PriceOverridden && r.TotalPrice.IsNegative() {
		return Validationf("total price must not be negative")
	}
	return nil
}

// Recompute enforces the derived fields before every save: nights always
// follow the dates, and the price follows nights × rate unless overridden.
func (r *Reservation) Recompute(nightlyRate decimal.Decimal) {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return
	}
	r.StartDate = DateOnly(r.StartDate)
	r.EndDate = DateOnly(r.EndDate)
	r.Nights = NightsBetween(r.StartDate, r.EndDate)
	if !r.PriceOverridden {
		r.TotalPrice = nightlyRate.Mul(decimal.NewFromInt(int64(r.Nights)))
	}
}

// Overlaps uses the closed-open convention: a stay ending on the day another
// begins does not conflict with it.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.StartDate.Before(DateOnly(end)) && r.EndDate.After(DateOnly(start))
}

// AppendComment adds block after any existing comment text.
func (r *Reservation) AppendComment(block string) {
	if r.Comment == "" {
		r.Comment = block
		return
	}
	r.Comment += "\n\n" + block
}

// CancellationNote builds the audit block appended to a cancelled reservation.
func CancellationNote(at time.Time, reason, actor, details string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[CANCELLATION - %s]\n", at.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Reason: %s\n", reason)
	fmt.Fprintf(&b, "By: %s\n", actor)
	if details != "" {
		fmt.Fprintf(&b, "Details: %s\n", details)
	}
	return b.String()
}

type ReservationFilter struct {
	Search    string
	Status    ReservationStatus
	StartFrom *time.Time
	EndTo     *time.Time
}
