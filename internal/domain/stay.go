package domain

import "time"

type StayState string

const (
	StayStateNotStarted StayState = "NOT_STARTED"
	StayStateActive     StayState = "ACTIVE"
	StayStateCompleted  StayState = "COMPLETED"
)

type Stay struct {
	ID            int64      `json:"id"`
	ReservationID int64      `json:"reservation_id"`
	ArrivedAt     time.Time  `json:"arrived_at"`
	DepartedAt    *time.Time `json:"departed_at,omitempty"`
	CheckedInAt   time.Time  `json:"checked_in_at"`
	CheckedOutAt  *time.Time `json:"checked_out_at,omitempty"`
	Occupants     int        `json:"occupants"`
	Comment       string     `json:"comment,omitempty"`
}

func (s Stay) Completed() bool {
	return s.CheckedOutAt != nil
}

// StayStateOf maps the optional stay of a reservation to its lifecycle state.
func StayStateOf(s *Stay) StayState {
	switch {
	case s == nil:
		return StayStateNotStarted
	case s.Completed():
		return StayStateCompleted
	default:
		return StayStateActive
	}
}

// AppendComment adds a line to the stay comment.
func (s *Stay) AppendComment(line string) {
	if line == "" {
		return
	}
	if s.Comment == "" {
		s.Comment = line
		return
	}
	s.Comment += "\n" + line
}
