package interview

import (
	"time"

	"github.com/google/uuid"
)

const EventBookingCreated = "booking.created"

// BookedEvent is what admins and downstream consumers learn about a new booking.
type BookedEvent struct {
	BookingID uuid.UUID `json:"booking_id"`
	SlotID    uuid.UUID `json:"slot_id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	BookedAt  time.Time `json:"booked_at"`
}
