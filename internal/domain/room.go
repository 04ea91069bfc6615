package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomTypeSimple RoomType = "SIMPLE"
	RoomTypeDouble RoomType = "DOUBLE"
	RoomTypeSuite  RoomType = "SUITE"
	RoomTypeDeluxe RoomType = "DELUXE"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSimple, RoomTypeDouble, RoomTypeSuite, RoomTypeDeluxe:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomStatusAvailable    RoomStatus = "AVAILABLE"
	RoomStatusOccupied     RoomStatus = "OCCUPIED"
	RoomStatusMaintenance  RoomStatus = "MAINTENANCE"
	RoomStatusOutOfService RoomStatus = "OUT_OF_SERVICE"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusOutOfService:
		return true
	}
	return false
}

type Room struct {
	ID          int64           `json:"id"`
	Number      string          `json:"number"`
	Type        RoomType        `json:"type"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
	Beds        int             `json:"beds"`
	AreaSqm     decimal.Decimal `json:"area_sqm"`
	Floor       int             `json:"floor"`
	Description string          `json:"description,omitempty"`
	Status      RoomStatus      `json:"status"`
}

func (r *Room) Normalize() {
	r.Number = strings.TrimSpace(r.Number)
	if r.Status == "" {
		r.Status = RoomStatusAvailable
	}
}

func (r Room) Validate() error {
	if r.Number == "" {
		return Validationf("room number is required")
	}
	if !r.Type.Valid() {
		return Validationf("invalid room type %q", r.Type)
	}
	if r.NightlyRate.IsNegative() {
		return Validationf("nightly rate must not be negative")
	}
	if r.Beds < 1 {
		return Validationf("a room needs at least one bed")
	}
	if r.AreaSqm.IsNegative() {
		return Validationf("area must not be negative")
	}
	if !r.Status.Valid() {
		return Validationf("invalid room status %q", r.Status)
	}
	return nil
}

type RoomFilter struct {
	Type   RoomType
	Status RoomStatus
}
