package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventReservationCreated   EventType = "reservation_created"
	EventReservationConfirmed EventType = "reservation_confirmed"
	EventReservationCancelled EventType = "reservation_cancelled"
	EventCheckedIn            EventType = "checked_in"
	EventCheckedOut           EventType = "checked_out"
	EventPaymentRecorded      EventType = "payment_recorded"
)

type FrontDeskEvent struct {
	ID            string           `json:"id"`
	Type          EventType        `json:"type"`
	ReservationID int64            `json:"reservation_id"`
	StayID        int64            `json:"stay_id,omitempty"`
	PaymentID     int64            `json:"payment_id,omitempty"`
	RoomNumber    string           `json:"room_number,omitempty"`
	ClientEmail   string           `json:"client_email,omitempty"`
	Status        string           `json:"status,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Actor         string           `json:"actor,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

func DecodeEvent(data []byte) (FrontDeskEvent, error) {
	var event FrontDeskEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return FrontDeskEvent{}, fmt.Errorf("decode front-desk event: %w", err)
	}
	return event, nil
}

// Writer is the part of Producer the Publisher needs.
type Writer interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// Publisher sends front-desk events to the events topic and, when set, to the
// notifications topic. Events of one reservation share a partition key.
type Publisher struct {
	writer             Writer
	eventsTopic        string
	notificationsTopic string
	now                func() time.Time
}

func NewPublisher(writer Writer, eventsTopic, notificationsTopic string) *Publisher {
	return &Publisher{
		writer:             writer,
		eventsTopic:        eventsTopic,
		notificationsTopic: notificationsTopic,
		now:                time.Now,
	}
}

func (p *Publisher) PublishEvent(ctx context.Context, event FrontDeskEvent) error {
	if p == nil || p.writer == nil || p.eventsTopic == "" {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}
	key := strconv.FormatInt(event.ReservationID, 10)

	if err := p.writer.Publish(ctx, p.eventsTopic, key, event); err != nil {
		return err
	}
	if p.notificationsTopic != "" {
		return p.writer.Publish(ctx, p.notificationsTopic, key, event)
	}
	return nil
}
