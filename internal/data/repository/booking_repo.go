package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter narrows ledger queries by actor and state. GuideID matches both
// direct guide hires and package bookings whose tour is listed by that guide.
type BookingFilter struct {
	TouristID     *uuid.UUID
	GuideID       *uuid.UUID
	Statuses      []entity.BookingStatus
	PaymentStatus *entity.PaymentStatus
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	SumTotalPrice(ctx context.Context, filter BookingFilter) (float64, error)

	// UpdateStatus sets status and replaces the history log in a single write,
	// conditional on the expected current status. Returns ErrStatusChanged when
	// the row moved on under a concurrent request.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.BookingStatus, history []entity.StatusLog) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.booking_type, b.tour_id, b.guide_id, b.hourly_rate, b.hours,
	b.tourist_id, b.tour_date, b.status, b.payment_status, b.total_price, b.status_history,
	b.created_at, b.updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	var historyJSON []byte

	err := row.Scan(
		&booking.ID,
		&booking.BookingType,
		&booking.TourID,
		&booking.GuideID,
		&booking.HourlyRate,
		&booking.Hours,
		&booking.TouristID,
		&booking.TourDate,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.TotalPrice,
		&historyJSON,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(historyJSON, &booking.StatusHistory); err != nil {
		return nil, fmt.Errorf("decode status history: %w", err)
	}

	return &booking, nil
}

// where builds the filter clause with positional args, joining tours when the
// guide filter needs the listed guide of package bookings.
func (f BookingFilter) where() (string, []any) {
	var clauses []string
	var args []any

	if f.TouristID != nil {
		args = append(args, *f.TouristID)
		clauses = append(clauses, fmt.Sprintf("b.tourist_id = $%d", len(args)))
	}
	if f.GuideID != nil {
		args = append(args, *f.GuideID)
		clauses = append(clauses, fmt.Sprintf("(b.guide_id = $%d OR t.guide_id = $%d)", len(args), len(args)))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		clauses = append(clauses, fmt.Sprintf("b.status = ANY($%d)", len(args)))
	}
	if f.PaymentStatus != nil {
		args = append(args, string(*f.PaymentStatus))
		clauses = append(clauses, fmt.Sprintf("b.payment_status = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	historyJSON, err := json.Marshal(booking.StatusHistory)
	if err != nil {
		return fmt.Errorf("encode status history: %w", err)
	}

	query := `
		INSERT INTO bookings (id, booking_type, tour_id, guide_id, hourly_rate, hours,
			tourist_id, tour_date, status, payment_status, total_price, status_history,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingType,
		booking.TourID,
		booking.GuideID,
		booking.HourlyRate,
		booking.Hours,
		booking.TouristID,
		booking.TourDate,
		booking.Status,
		booking.PaymentStatus,
		booking.TotalPrice,
		historyJSON,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("tourist_id", booking.TouristID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	where, args := filter.where()
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT `+bookingColumns+`
		FROM bookings b
		LEFT JOIN tours t ON b.tour_id = t.id
		%s
		ORDER BY b.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := filter.where()
	query := `SELECT COUNT(*) FROM bookings b LEFT JOIN tours t ON b.tour_id = t.id` + where

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) SumTotalPrice(ctx context.Context, filter BookingFilter) (float64, error) {
	where, args := filter.where()
	query := `SELECT COALESCE(SUM(b.total_price), 0) FROM bookings b LEFT JOIN tours t ON b.tour_id = t.id` + where

	var sum float64
	err := r.db.QueryRow(ctx, query, args...).Scan(&sum)
	if err != nil {
		r.log.Error("Failed to sum booking totals", zap.Error(err))
		return 0, fmt.Errorf("sum booking totals: %w", err)
	}

	return sum, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.BookingStatus, history []entity.StatusLog) error {
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode status history: %w", err)
	}

	query := `
		UPDATE bookings
		SET status = $3, status_history = $4, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, expected, next, historyJSON)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(next)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(next), err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Booking status update matched no rows",
			zap.String("booking_id", id.String()),
			zap.String("expected", string(expected)),
			zap.String("next", string(next)),
		)
		return ErrStatusChanged
	}

	return nil
}
