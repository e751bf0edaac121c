package interview

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSlotUnavailable = errors.New("slot is not available")

const (
	BookingStatusConfirmed = "Confirmed"
	MeetingLinkPending     = "Pending"
)

type Slot struct {
	ID        uuid.UUID  `json:"id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	IsBooked  bool       `json:"is_booked"`
	BookedBy  *uuid.UUID `json:"booked_by"`
}

type Booking struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	SlotID      uuid.UUID `json:"slot_id"`
	Status      string    `json:"status"`
	MeetingLink string    `json:"meeting_link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookingDetail is a booking joined with its slot times.
type BookingDetail struct {
	Booking
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
