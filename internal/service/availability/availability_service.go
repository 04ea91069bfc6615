package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/repository"
)

type AvailabilityUseCase interface {
	Check(ctx context.Context, roomID int64, start, end time.Time) (*Result, error)
	Search(ctx context.Context, start, end time.Time, roomType domain.RoomType) ([]domain.Room, error)
}

// Result explains an availability answer.
type Result struct {
	Available bool                 `json:"available"`
	Reason    string               `json:"reason,omitempty"`
	Conflicts []domain.Reservation `json:"conflicts,omitempty"`
}

// Evaluate is the availability rule: the room must be Available and no
// Pending/Confirmed reservation may overlap [start, end).
func Evaluate(room domain.Room, existing []domain.Reservation, start, end time.Time) Result {
	conflicts := Conflicts(existing, start, end)
	switch {
	case room.Status != domain.RoomStatusAvailable:
		return Result{Reason: fmt.Sprintf("room %s is %s", room.Number, room.Status), Conflicts: conflicts}
	case len(conflicts) > 0:
		return Result{Reason: fmt.Sprintf("room %s is already booked for these dates", room.Number), Conflicts: conflicts}
	}
	return Result{Available: true}
}

// Conflicts keeps the reservations that still hold the room and overlap [start, end).
func Conflicts(existing []domain.Reservation, start, end time.Time) []domain.Reservation {
	var out []domain.Reservation
	for _, r := range existing {
		if r.Status.Holds() && r.Overlaps(start, end) {
			out = append(out, r)
		}
	}
	return out
}

// Ensure fails with a business-rule error when room cannot take [start, end).
// excludeID skips the reservation being edited. With requireAvailable false
// only date conflicts are checked.
func Ensure(ctx context.Context, reservations repository.ReservationRepository, room domain.Room, start, end time.Time, excludeID int64, requireAvailable bool) error {
	existing, err := reservations.ListConflicting(ctx, room.ID, domain.DateOnly(start), domain.DateOnly(end), excludeID)
	if err != nil {
		return err
	}
	if !requireAvailable {
		room.Status = domain.RoomStatusAvailable
	}
	res := Evaluate(room, existing, start, end)
	if !res.Available {
		return domain.BusinessRulef("%s", res.Reason)
	}
	return nil
}

type AvailabilityService struct {
	rooms        repository.RoomRepository
	reservations repository.ReservationRepository
}

func NewAvailabilityService(rooms repository.RoomRepository, reservations repository.ReservationRepository) *AvailabilityService {
	return &AvailabilityService{rooms: rooms, reservations: reservations}
}

func (s *AvailabilityService) Check(ctx context.Context, roomID int64, start, end time.Time) (*Result, error) {
	if err := validRange(start, end); err != nil {
		return nil, err
	}
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	existing, err := s.reservations.ListConflicting(ctx, roomID, domain.DateOnly(start), domain.DateOnly(end), 0)
	if err != nil {
		return nil, err
	}
	res := Evaluate(*room, existing, start, end)
	return &res, nil
}

// Search lists the rooms, optionally of one type, that can take [start, end).
func (s *AvailabilityService) Search(ctx context.Context, start, end time.Time, roomType domain.RoomType) ([]domain.Room, error) {
	if err := validRange(start, end); err != nil {
		return nil, err
	}
	if roomType != "" && !roomType.Valid() {
		return nil, domain.Validationf("invalid room type %q", roomType)
	}
	rooms, err := s.rooms.List(ctx, domain.RoomFilter{Type: roomType, Status: domain.RoomStatusAvailable})
	if err != nil {
		return nil, err
	}

	free := make([]domain.Room, 0, len(rooms))
	for _, room := range rooms {
		existing, err := s.reservations.ListConflicting(ctx, room.ID, domain.DateOnly(start), domain.DateOnly(end), 0)
		if err != nil {
			return nil, err
		}
		if Evaluate(room, existing, start, end).Available {
			free = append(free, room)
		}
	}
	return free, nil
}

func validRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return domain.Validationf("start and end dates are required")
	}
	if !domain.DateOnly(end).After(domain.DateOnly(start)) {
		return domain.BusinessRulef("end date must be after start date")
	}
	return nil
}

var _ AvailabilityUseCase = (*AvailabilityService)(nil)
