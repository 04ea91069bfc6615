package stay

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
)

const timestampLayout = "02/01/2006 15:04"

// CheckInPlan is the set of writes a check-in commits together.
type CheckInPlan struct {
	Stay              domain.Stay
	ReservationStatus domain.ReservationStatus
	RoomStatus        domain.RoomStatus
}

// PlanCheckIn decides the NotStarted -> Active transition. A non-empty
// warning means the stay already exists and nothing must be written.
func PlanCheckIn(res domain.Reservation, room domain.Room, existing *domain.Stay, input CheckInInput, actor string, now time.Time) (*CheckInPlan, string, error) {
	switch res.Status {
	case domain.ReservationStatusConfirmed:
	case domain.ReservationStatusPending:
		return nil, "", domain.BusinessRulef("reservation must be confirmed before check-in")
	case domain.ReservationStatusCancelled, domain.ReservationStatusCompleted:
		return nil, "", domain.BusinessRulef("a %s reservation cannot be checked in", strings.ToLower(string(res.Status)))
	default:
		return nil, "", domain.Validationf("invalid reservation status %q", res.Status)
	}

	if existing != nil {
		return nil, fmt.Sprintf("reservation %d is already checked in (stay %d)", res.ID, existing.ID), nil
	}
	if room.Status != domain.RoomStatusAvailable {
		return nil, "", domain.BusinessRulef("room %s is %s", room.Number, room.Status)
	}

	occupants := input.Occupants
	if occupants == 0 {
		occupants = res.Guests()
	}
	if occupants < 1 {
		return nil, "", domain.Validationf("occupant count must be at least 1")
	}

	arrived := now
	if input.ArrivedAt != nil {
		arrived = *input.ArrivedAt
	}

	stay := domain.Stay{
		ReservationID: res.ID,
		ArrivedAt:     arrived,
		CheckedInAt:   now,
		Occupants:     occupants,
	}
	stay.AppendComment(strings.TrimSpace(input.Comment))
	stay.AppendComment(fmt.Sprintf("[CHECK-IN - %s] by %s", now.Format(timestampLayout), actor))

	return &CheckInPlan{
		Stay:              stay,
		ReservationStatus: domain.ReservationStatusConfirmed,
		RoomStatus:        domain.RoomStatusOccupied,
	}, "", nil
}

// PlanCheckOut applies the Active -> Completed transition to stay. A non-empty
// warning means the stay was already completed and stay is left untouched.
func PlanCheckOut(stay *domain.Stay, balance domain.Balance, currency string, input CheckOutInput, actor string, now time.Time) (string, error) {
	if stay.Completed() {
		return fmt.Sprintf("stay %d is already checked out", stay.ID), nil
	}
	if balance.Remaining.IsPositive() {
		return "", domain.NewOutstandingBalance(balance.Remaining, currency)
	}

	departed := now
	if input.DepartedAt != nil {
		departed = *input.DepartedAt
	}
	if departed.Before(stay.ArrivedAt) {
		return "", domain.BusinessRulef("departure cannot precede arrival")
	}

	stay.DepartedAt = &departed
	stay.CheckedOutAt = &now
	stay.AppendComment(strings.TrimSpace(input.Comment))
	stay.AppendComment(fmt.Sprintf("[CHECK-OUT - %s] by %s", now.Format(timestampLayout), actor))
	return "", nil
}
