package payment

import (
	"context"
	"database/sql"
	"fmt"

	"hangwa-be/internal/logger"

	"go.uber.org/zap"
)

// Repository stores the reconciliation audit log.
type Repository interface {
	SaveRecord(ctx context.Context, rec *Record) error
	ListByOrder(ctx context.Context, orderID int64) ([]*Record, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveRecord(ctx context.Context, rec *Record) error {
	log := logger.FromCtx(ctx).With(
		zap.Int64("order_id", rec.OrderID),
		zap.String("outcome", string(rec.Outcome)),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payment_records (
			order_id, status, actual_paid_amount, difference,
			outcome, note, recorded_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		rec.OrderID,
		rec.Status,
		rec.ActualPaid,
		rec.Difference,
		rec.Outcome,
		rec.Note,
		rec.RecordedBy,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		log.Error("failed to save payment record", zap.Error(err))
		return fmt.Errorf("save payment record: %w", err)
	}

	return nil
}

func (r *repository) ListByOrder(ctx context.Context, orderID int64) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, status, actual_paid_amount, difference,
		       outcome, note, recorded_by, created_at
		FROM payment_records
		WHERE order_id = $1
		ORDER BY created_at DESC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payment records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			rec  Record
			paid sql.NullInt64
		)
		if err := rows.Scan(
			&rec.ID, &rec.OrderID, &rec.Status, &paid, &rec.Difference,
			&rec.Outcome, &rec.Note, &rec.RecordedBy, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment record: %w", err)
		}
		if paid.Valid {
			rec.ActualPaid = &paid.Int64
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}
