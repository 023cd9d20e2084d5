package repository

import (
	"context"
	"errors"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	// CreateAndMarkPaid inserts the payment and flips the booking to PAID in one
	// transaction. The UPDATE is guarded on COMPLETED+UNPAID and the payments
	// table carries a unique index on booking_id, so a racing duplicate loses
	// with ErrPaymentNotOpen or ErrDuplicatePayment.
	CreateAndMarkPaid(ctx context.Context, payment *entity.Payment) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) CreateAndMarkPaid(ctx context.Context, payment *entity.Payment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin payment transaction", zap.Error(err))
		return fmt.Errorf("begin payment transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE bookings
		SET payment_status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3 AND payment_status = $4
	`, payment.BookingID, entity.PaymentStatusPaid, entity.BookingStatusCompleted, entity.PaymentStatusUnpaid)
	if err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
		)
		return fmt.Errorf("mark booking %s paid: %w", payment.BookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrPaymentNotOpen
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (id, booking_id, tourist_email, amount, method, transaction_id, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		payment.ID,
		payment.BookingID,
		payment.TouristEmail,
		payment.Amount,
		payment.Method,
		payment.TransactionID,
		payment.PaymentDate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePayment
		}
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit payment transaction",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
		)
		return fmt.Errorf("commit payment transaction: %w", err)
	}

	return nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, booking_id, tourist_email, amount, method, transaction_id, payment_date
		FROM payments
		WHERE booking_id = $1
	`

	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.TouristEmail,
		&payment.Amount,
		&payment.Method,
		&payment.TransactionID,
		&payment.PaymentDate,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return &payment, nil
}
