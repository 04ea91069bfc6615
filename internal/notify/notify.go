// Package notify turns front-desk events into guest notices.
package notify

import (
	"context"
	"fmt"

	"github.com/Domenick1991/hoteldesk/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Notice is a message addressed to a guest.
type Notice struct {
	To      string
	Subject string
	Body    string
}

type Sender struct {
	log logrus.FieldLogger
}

func NewSender(log logrus.FieldLogger) *Sender {
	return &Sender{log: log}
}

// Send delivers the notice for event. Events without a guest address are skipped.
func (s *Sender) Send(ctx context.Context, event kafka.FrontDeskEvent) error {
	notice, ok := Compose(event)
	if !ok {
		return nil
	}
	s.log.WithFields(logrus.Fields{
		"to":             notice.To,
		"event":          event.Type,
		"reservation_id": event.ReservationID,
	}).Info(notice.Subject)
	return ctx.Err()
}

// Compose builds the notice text for event.
func Compose(event kafka.FrontDeskEvent) (Notice, bool) {
	if event.ClientEmail == "" {
		return Notice{}, false
	}
	n := Notice{To: event.ClientEmail}
	switch event.Type {
	case kafka.EventReservationCreated:
		n.Subject = fmt.Sprintf("Reservation #%d received", event.ReservationID)
		n.Body = fmt.Sprintf("Your reservation for room %s is registered with status %s.", event.RoomNumber, event.Status)
	case kafka.EventReservationConfirmed:
		n.Subject = fmt.Sprintf("Reservation #%d confirmed", event.ReservationID)
		n.Body = fmt.Sprintf("Room %s is confirmed for your stay.", event.RoomNumber)
	case kafka.EventReservationCancelled:
		n.Subject = fmt.Sprintf("Reservation #%d cancelled", event.ReservationID)
		n.Body = "Your reservation was cancelled. Any payments were refunded."
	case kafka.EventCheckedIn:
		n.Subject = fmt.Sprintf("Welcome to room %s", event.RoomNumber)
		n.Body = "Your check-in is complete. Enjoy your stay."
	case kafka.EventCheckedOut:
		n.Subject = "Thank you for staying with us"
		n.Body = fmt.Sprintf("Check-out of room %s is complete.", event.RoomNumber)
	case kafka.EventPaymentRecorded:
		amount := "0"
		if event.Amount != nil {
			amount = event.Amount.StringFixed(2)
		}
		n.Subject = fmt.Sprintf("Payment received for reservation #%d", event.ReservationID)
		n.Body = fmt.Sprintf("We recorded a payment of %s (%s).", amount, event.Status)
	default:
		return Notice{}, false
	}
	return n, true
}
