package ws

import (
	"encoding/json"
	"time"

	"placement-prep/internal/domain/interview"
)

const (
	EventSlotsCreated = "slots_created"
	EventSlotBooked   = "slot_booked"
)

type SlotEvent struct {
	Type      string           `json:"type"`
	Slots     []interview.Slot `json:"slots"`
	Timestamp string           `json:"timestamp"`
}

// SlotNotifier publishes slot changes on the hub.
type SlotNotifier struct {
	hub *Hub
	now func() time.Time
}

func NewSlotNotifier(hub *Hub) *SlotNotifier {
	return &SlotNotifier{hub: hub, now: time.Now}
}

func (n *SlotNotifier) SlotsCreated(slots []interview.Slot) {
	if len(slots) == 0 {
		return
	}
	n.publish(EventSlotsCreated, slots)
}

// SlotBooked announces a slot that is no longer available; the booker's id is not shared.
func (n *SlotNotifier) SlotBooked(slot interview.Slot) {
	slot.BookedBy = nil
	n.publish(EventSlotBooked, []interview.Slot{slot})
}

func (n *SlotNotifier) publish(eventType string, slots []interview.Slot) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(SlotEvent{
		Type:      eventType,
		Slots:     slots,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
