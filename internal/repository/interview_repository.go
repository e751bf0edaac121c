package repository

import (
	"context"
	"time"

	"placement-prep/internal/database"
	"placement-prep/internal/domain/interview"

	"github.com/google/uuid"
)

type SlotRepository interface {
	CreateMany(ctx context.Context, slots []interview.Slot) ([]interview.Slot, error)
	ListAvailable(ctx context.Context, from time.Time) ([]interview.Slot, error)
}

type BookingRepository interface {
	// Book claims an unbooked slot for userID and records the booking atomically.
	Book(ctx context.Context, slotID, userID uuid.UUID) (interview.BookingDetail, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]interview.BookingDetail, error)
}

type PostgresInterviewRepository struct {
	db database.DB
}

func NewPostgresInterviewRepository(db database.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

func (r *PostgresInterviewRepository) CreateMany(ctx context.Context, slots []interview.Slot) ([]interview.Slot, error) {
	out := make([]interview.Slot, 0, len(slots))
	if len(slots) == 0 {
		return out, nil
	}

	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, s := range slots {
			if s.ID == uuid.Nil {
				s.ID = uuid.New()
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO slots (id, start_time, end_time) VALUES ($1, $2, $3)`,
				s.ID, s.StartTime.UTC(), s.EndTime.UTC(),
			); err != nil {
				return err
			}
			s.IsBooked = false
			s.BookedBy = nil
			out = append(out, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresInterviewRepository) ListAvailable(ctx context.Context, from time.Time) ([]interview.Slot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, start_time, end_time, is_booked, booked_by FROM slots
		 WHERE is_booked = false AND start_time >= $1
		 ORDER BY start_time ASC`,
		from.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interview.Slot, 0)
	for rows.Next() {
		var s interview.Slot
		if err := rows.Scan(&s.ID, &s.StartTime, &s.EndTime, &s.IsBooked, &s.BookedBy); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresInterviewRepository) Book(ctx context.Context, slotID, userID uuid.UUID) (interview.BookingDetail, error) {
	var d interview.BookingDetail
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`UPDATE slots SET is_booked = true, booked_by = $2
			 WHERE id = $1 AND is_booked = false
			 RETURNING start_time, end_time`,
			slotID, userID,
		)
		if err := row.Scan(&d.StartTime, &d.EndTime); err != nil {
			if isNoRows(err) {
				return interview.ErrSlotUnavailable
			}
			return err
		}

		d.ID = uuid.New()
		d.UserID = userID
		d.SlotID = slotID
		d.Status = interview.BookingStatusConfirmed
		d.MeetingLink = interview.MeetingLinkPending

		return tx.QueryRow(ctx,
			`INSERT INTO bookings (id, user_id, slot_id, status, meeting_link)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING created_at, updated_at`,
			d.ID, d.UserID, d.SlotID, d.Status, d.MeetingLink,
		).Scan(&d.CreatedAt, &d.UpdatedAt)
	})
	if err != nil {
		return interview.BookingDetail{}, err
	}
	return d, nil
}

func (r *PostgresInterviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]interview.BookingDetail, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.user_id, b.slot_id, b.status, b.meeting_link, b.created_at, b.updated_at, s.start_time, s.end_time
		 FROM bookings b
		 JOIN slots s ON s.id = b.slot_id
		 WHERE b.user_id = $1
		 ORDER BY s.start_time ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interview.BookingDetail, 0)
	for rows.Next() {
		var d interview.BookingDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.SlotID, &d.Status, &d.MeetingLink, &d.CreatedAt, &d.UpdatedAt, &d.StartTime, &d.EndTime); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

var (
	_ SlotRepository    = (*PostgresInterviewRepository)(nil)
	_ BookingRepository = (*PostgresInterviewRepository)(nil)
)
