package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"placement-prep/internal/domain/interview"
	"placement-prep/internal/domain/user"
	"placement-prep/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidSlotRequest = errors.New("invalid input: need slots array and durationMinutes")

const notifyTimeout = 15 * time.Second

var slotTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

type SlotRequest struct {
	StartTime string
	Count     int
}

type CreateSlotsInput struct {
	Slots           []SlotRequest
	DurationMinutes int
}

// BookingNotifier is told about every confirmed booking (admin email, event queue).
type BookingNotifier interface {
	NotifyBooking(ctx context.Context, evt interview.BookedEvent) error
}

// SlotEvents pushes slot changes to connected clients.
type SlotEvents interface {
	SlotsCreated(slots []interview.Slot)
	SlotBooked(slot interview.Slot)
}

type InterviewUsecase interface {
	CreateSlots(ctx context.Context, in CreateSlotsInput) ([]interview.Slot, error)
	AvailableSlots(ctx context.Context) ([]interview.Slot, error)
	Book(ctx context.Context, userID, slotID uuid.UUID) (interview.BookingDetail, error)
	MyBookings(ctx context.Context, userID uuid.UUID) ([]interview.BookingDetail, error)
}

type Interview struct {
	slots     repository.SlotRepository
	bookings  repository.BookingRepository
	users     user.Repository
	notifiers []BookingNotifier
	events    SlotEvents
	logger    *zap.Logger
	now       func() time.Time
}

func NewInterviewUsecase(
	slots repository.SlotRepository,
	bookings repository.BookingRepository,
	users user.Repository,
	events SlotEvents,
	logger *zap.Logger,
	notifiers ...BookingNotifier,
) *Interview {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interview{
		slots:     slots,
		bookings:  bookings,
		users:     users,
		notifiers: notifiers,
		events:    events,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateSlots expands each request into count identical slots. Malformed entries are skipped.
func (u *Interview) CreateSlots(ctx context.Context, in CreateSlotsInput) ([]interview.Slot, error) {
	if in.Slots == nil || in.DurationMinutes <= 0 {
		return nil, ErrInvalidSlotRequest
	}
	duration := time.Duration(in.DurationMinutes) * time.Minute

	pending := make([]interview.Slot, 0)
	for _, req := range in.Slots {
		start, ok := parseSlotTime(req.StartTime)
		if !ok || req.Count <= 0 {
			u.logger.Warn("skipping invalid slot request", zap.String("start_time", req.StartTime), zap.Int("count", req.Count))
			continue
		}
		for i := 0; i < req.Count; i++ {
			pending = append(pending, interview.Slot{StartTime: start, EndTime: start.Add(duration)})
		}
	}
	if len(pending) == 0 {
		return []interview.Slot{}, nil
	}

	created, err := u.slots.CreateMany(ctx, pending)
	if err != nil {
		return nil, err
	}
	u.logger.Info("slots created", zap.Int("count", len(created)))
	if u.events != nil {
		u.events.SlotsCreated(created)
	}
	return created, nil
}

func (u *Interview) AvailableSlots(ctx context.Context) ([]interview.Slot, error) {
	return u.slots.ListAvailable(ctx, u.now().UTC())
}

func (u *Interview) Book(ctx context.Context, userID, slotID uuid.UUID) (interview.BookingDetail, error) {
	if slotID == uuid.Nil {
		return interview.BookingDetail{}, interview.ErrSlotUnavailable
	}
	d, err := u.bookings.Book(ctx, slotID, userID)
	if err != nil {
		return interview.BookingDetail{}, err
	}

	if u.events != nil {
		u.events.SlotBooked(interview.Slot{ID: d.SlotID, StartTime: d.StartTime, EndTime: d.EndTime, IsBooked: true, BookedBy: &d.UserID})
	}
	u.notify(ctx, d)
	return d, nil
}

func (u *Interview) MyBookings(ctx context.Context, userID uuid.UUID) ([]interview.BookingDetail, error) {
	return u.bookings.ListByUser(ctx, userID)
}

// notify never fails the booking; each notifier error is only logged.
func (u *Interview) notify(ctx context.Context, d interview.BookingDetail) {
	if len(u.notifiers) == 0 {
		return
	}

	evt := interview.BookedEvent{
		BookingID: d.ID,
		SlotID:    d.SlotID,
		UserID:    d.UserID,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		BookedAt:  d.CreatedAt,
	}
	if usr, err := u.users.GetUserByID(ctx, d.UserID); err == nil {
		evt.Username = usr.Username
		evt.Email = usr.Email
	} else {
		u.logger.Warn("booking notify: user lookup failed", zap.String("user_id", d.UserID.String()), zap.Error(err))
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	for _, n := range u.notifiers {
		if n == nil {
			continue
		}
		if err := n.NotifyBooking(nctx, evt); err != nil {
			u.logger.Warn("booking notification failed", zap.String("booking_id", d.ID.String()), zap.Error(err))
		}
	}
}

func parseSlotTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range slotTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
