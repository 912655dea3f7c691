package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hangwa-be/internal/logger"
	"hangwa-be/internal/payment"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, filter *Filter, sort *Sort) ([]*Order, error)
	ListDeleted(ctx context.Context) ([]*Order, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*Order, error)
	ListRevenue(ctx context.Context, from, to *time.Time) ([]*Order, error)
	UpdateStatus(ctx context.Context, id int64, change statusChange) error
	UpdatePayment(ctx context.Context, id int64, change paymentChange) error
	Update(ctx context.Context, id int64, status *statusChange, pay *paymentChange) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
	Restore(ctx context.Context, id int64) error
	Purge(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	o.id, o.order_number, o.customer_name, o.customer_phone, o.depositor_name,
	o.address_zip, o.address_line1, o.address_line2, o.special_requests,
	o.small_box_quantity, o.large_box_quantity, o.wrapping_quantity,
	o.small_box_price, o.large_box_price, o.wrapping_price,
	o.small_box_cost, o.large_box_cost, o.wrapping_cost,
	o.shipping_fee, o.total_amount, o.remote_area,
	o.status, o.scheduled_date,
	o.payment_status, o.actual_paid_amount, o.discount_amount, o.unpaid_amount,
	o.net_profit, o.payment_note,
	o.created_at, o.updated_at, o.deleted_at, o.seller_shipped_date, o.delivered_date`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o                                       Order
		depositor, requests, note               sql.NullString
		scheduled, deleted, shipped, delivered  sql.NullTime
		actualPaid, discount, unpaid, netProfit sql.NullInt64
	)

	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerPhone, &depositor,
		&o.Address.Zip, &o.Address.Line1, &o.Address.Line2, &requests,
		&o.SmallBoxQuantity, &o.LargeBoxQuantity, &o.WrappingQuantity,
		&o.SmallBoxPrice, &o.LargeBoxPrice, &o.WrappingPrice,
		&o.SmallBoxCost, &o.LargeBoxCost, &o.WrappingCost,
		&o.ShippingFee, &o.TotalAmount, &o.RemoteArea,
		&o.Status, &scheduled,
		&o.PaymentStatus, &actualPaid, &discount, &unpaid,
		&netProfit, &note,
		&o.CreatedAt, &o.UpdatedAt, &deleted, &shipped, &delivered,
	)
	if err != nil {
		return nil, err
	}

	o.DepositorName = nullString(depositor)
	o.SpecialRequests = nullString(requests)
	o.PaymentNote = nullString(note)
	o.ScheduledDate = nullTime(scheduled)
	o.DeletedAt = nullTime(deleted)
	o.SellerShippedDate = nullTime(shipped)
	o.DeliveredDate = nullTime(delivered)
	o.ActualPaidAmount = nullInt(actualPaid)
	o.DiscountAmount = nullInt(discount)
	o.UnpaidAmount = nullInt(unpaid)
	o.NetProfit = nullInt(netProfit)

	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("order_number", o.OrderNumber),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, customer_name, customer_phone, depositor_name,
			address_zip, address_line1, address_line2, special_requests,
			small_box_quantity, large_box_quantity, wrapping_quantity,
			small_box_price, large_box_price, wrapping_price,
			small_box_cost, large_box_cost, wrapping_cost,
			shipping_fee, total_amount, remote_area,
			status, scheduled_date, payment_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)
		RETURNING id, created_at, updated_at
	`,
		o.OrderNumber, o.CustomerName, o.CustomerPhone, o.DepositorName,
		o.Address.Zip, o.Address.Line1, o.Address.Line2, o.SpecialRequests,
		o.SmallBoxQuantity, o.LargeBoxQuantity, o.WrappingQuantity,
		o.SmallBoxPrice, o.LargeBoxPrice, o.WrappingPrice,
		o.SmallBoxCost, o.LargeBoxCost, o.WrappingCost,
		o.ShippingFee, o.TotalAmount, o.RemoteArea,
		o.Status, o.ScheduledDate, o.PaymentStatus,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("insert order: %w", err)
	}

	log.Info("order inserted", zap.Int64("order_id", o.ID))
	return nil
}

// GetByID returns the order whether or not it is in the trash.
func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, sort *Sort) ([]*Order, error) {
	where := []string{"o.deleted_at IS NULL"}
	args := []any{}

	if filter != nil {
		if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
			n := len(args) + 1
			where = append(where, fmt.Sprintf(
				"(o.customer_name ILIKE $%d OR o.customer_phone ILIKE $%d OR o.depositor_name ILIKE $%d OR o.order_number ILIKE $%d)",
				n, n, n, n,
			))
			args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		}
		if filter.Status != nil && *filter.Status != "" {
			where = append(where, fmt.Sprintf("o.status = $%d", len(args)+1))
			args = append(args, *filter.Status)
		}
		if filter.PaymentStatus != nil && *filter.PaymentStatus != "" {
			where = append(where, fmt.Sprintf("o.payment_status = $%d", len(args)+1))
			args = append(args, *filter.PaymentStatus)
		}
		if filter.DateFrom != nil {
			where = append(where, fmt.Sprintf("o.created_at >= $%d", len(args)+1))
			args = append(args, *filter.DateFrom)
		}
		// DateTo is exclusive.
		if filter.DateTo != nil {
			where = append(where, fmt.Sprintf("o.created_at < $%d", len(args)+1))
			args = append(args, *filter.DateTo)
		}
		if filter.RemoteOnly {
			where = append(where, "o.remote_area = TRUE")
		}
	}

	query := `SELECT ` + orderColumns + ` FROM orders o WHERE ` + strings.Join(where, " AND ")
	query += " ORDER BY " + orderBy(sort)

	if filter != nil && filter.Limit != nil && *filter.Limit > 0 {
		limit := *filter.Limit
		if limit > 500 {
			limit = 500
		}
		page := int32(1)
		if filter.Page != nil && *filter.Page > 0 {
			page = *filter.Page
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, (page-1)*limit)
	}

	logger.FromCtx(ctx).Debug("executing list orders query",
		zap.String("query", query),
		zap.Any("args", args),
	)

	return r.query(ctx, query, args...)
}

func orderBy(sort *Sort) string {
	if sort == nil {
		return "o.created_at DESC"
	}

	dir := strings.ToUpper(string(sort.Direction))
	if dir != string(SortDirectionAsc) && dir != string(SortDirectionDesc) {
		dir = string(SortDirectionDesc)
	}

	switch sort.Field {
	case SortFieldTotalAmount:
		return "o.total_amount " + dir + ", o.id DESC"
	case SortFieldCustomerName:
		return "o.customer_name " + dir + ", o.id DESC"
	case SortFieldScheduledDate:
		return "o.scheduled_date " + dir + " NULLS LAST, o.id DESC"
	default:
		return "o.created_at " + dir
	}
}

func (r *repository) ListDeleted(ctx context.Context) ([]*Order, error) {
	return r.query(ctx,
		`SELECT `+orderColumns+` FROM orders o WHERE o.deleted_at IS NOT NULL ORDER BY o.deleted_at DESC`)
}

// ListByIDs returns the active orders among ids, newest first.
func (r *repository) ListByIDs(ctx context.Context, ids []int64) ([]*Order, error) {
	return r.query(ctx,
		`SELECT `+orderColumns+` FROM orders o WHERE o.deleted_at IS NULL AND o.id = ANY($1) ORDER BY o.created_at DESC`,
		pq.Array(ids))
}

// ListRevenue returns active orders that have received money, oldest first.
func (r *repository) ListRevenue(ctx context.Context, from, to *time.Time) ([]*Order, error) {
	where := []string{
		"o.deleted_at IS NULL",
		"o.payment_status IN ($1, $2)",
	}
	args := []any{payment.StatusConfirmed, payment.StatusPartial}

	if from != nil {
		where = append(where, fmt.Sprintf("o.created_at >= $%d", len(args)+1))
		args = append(args, *from)
	}
	if to != nil {
		where = append(where, fmt.Sprintf("o.created_at < $%d", len(args)+1))
		args = append(args, *to)
	}

	query := `SELECT ` + orderColumns + ` FROM orders o WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY o.created_at ASC`

	return r.query(ctx, query, args...)
}

func (r *repository) query(ctx context.Context, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, change statusChange) error {
	return updateStatus(ctx, r.db, id, change)
}

func (r *repository) UpdatePayment(ctx context.Context, id int64, change paymentChange) error {
	return updatePayment(ctx, r.db, id, change)
}

// Update writes the status and payment halves in one transaction.
func (r *repository) Update(ctx context.Context, id int64, status *statusChange, pay *paymentChange) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order update: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if status != nil {
		if err = updateStatus(ctx, tx, id, *status); err != nil {
			return err
		}
	}
	if pay != nil {
		if err = updatePayment(ctx, tx, id, *pay); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit order update: %w", err)
	}
	return nil
}

func updateStatus(ctx context.Context, ex execer, id int64, change statusChange) error {
	res, err := ex.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
		    scheduled_date = $2,
		    seller_shipped_date = COALESCE($3, seller_shipped_date),
		    delivered_date = COALESCE($4, delivered_date),
		    updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
	`,
		change.Status,
		change.ScheduledDate,
		change.SellerShippedDate,
		change.DeliveredDate,
		id,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return requireAffected(res)
}

// updatePayment never touches total_amount or the snapshot pricing columns.
func updatePayment(ctx context.Context, ex execer, id int64, change paymentChange) error {
	res, err := ex.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = $1,
		    actual_paid_amount = $2,
		    discount_amount = $3,
		    unpaid_amount = $4,
		    net_profit = $5,
		    payment_note = $6,
		    updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
	`,
		change.Status,
		change.ActualPaidAmount,
		change.DiscountAmount,
		change.UnpaidAmount,
		change.NetProfit,
		change.Note,
		id,
	)
	if err != nil {
		return fmt.Errorf("update order payment: %w", err)
	}
	return requireAffected(res)
}

// SoftDelete and Restore only flip deleted_at so a restored order matches the original.
func (r *repository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`, at, id)
	if err != nil {
		return fmt.Errorf("soft delete order: %w", err)
	}
	return requireAffected(res)
}

func (r *repository) Restore(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("restore order: %w", err)
	}
	return requireAffected(res)
}

// Purge hard-deletes an order that is already in the trash.
func (r *repository) Purge(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM orders WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("purge order: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}
