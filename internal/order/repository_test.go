package order

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"hangwa-be/internal/payment"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderRowColumns = []string{
	"id", "order_number", "customer_name", "customer_phone", "depositor_name",
	"address_zip", "address_line1", "address_line2", "special_requests",
	"small_box_quantity", "large_box_quantity", "wrapping_quantity",
	"small_box_price", "large_box_price", "wrapping_price",
	"small_box_cost", "large_box_cost", "wrapping_cost",
	"shipping_fee", "total_amount", "remote_area",
	"status", "scheduled_date",
	"payment_status", "actual_paid_amount", "discount_amount", "unpaid_amount",
	"net_profit", "payment_note",
	"created_at", "updated_at", "deleted_at", "seller_shipped_date", "delivered_date",
}

func addOrderRow(rows *sqlmock.Rows, id int64, deletedAt any) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, "HG-20260920-100000-0001", "김철수", "010-1234-5678", nil,
		"06236", "서울특별시 강남구 테헤란로 123", "", "문 앞에 놓아주세요",
		4, 0, 2,
		19000, 21000, 1000,
		9000, 0, 0,
		4000, 82000, false,
		"pending", nil,
		"pending", nil, nil, nil,
		nil, nil,
		now, now, deletedAt, nil, nil,
	)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	o := &Order{
		OrderNumber:      "HG-20260920-100000-0001",
		CustomerName:     "김철수",
		CustomerPhone:    "010-1234-5678",
		SmallBoxQuantity: 4,
		WrappingQuantity: 2,
		SmallBoxPrice:    19000,
		ShippingFee:      4000,
		TotalAmount:      82000,
		Status:           StatusPending,
		PaymentStatus:    payment.StatusPending,
	}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))

		err := repo.Create(ctx, o)
		require.NoError(t, err)
		assert.Equal(t, int64(11), o.ID)
		assert.Equal(t, now, o.CreatedAt)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO orders`).WillReturnError(errors.New("db error"))

		err := repo.Create(ctx, o)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders o WHERE o.id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(addOrderRow(sqlmock.NewRows(orderRowColumns), 1, nil))

		o, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), o.ID)
		assert.Equal(t, StatusPending, o.Status)
		assert.Nil(t, o.DepositorName)
		require.NotNil(t, o.SpecialRequests)
		assert.Equal(t, "문 앞에 놓아주세요", *o.SpecialRequests)
		assert.False(t, o.Deleted())
	})

	t.Run("Trashed order is still returned", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders o WHERE o.id = \$1`).
			WithArgs(int64(2)).
			WillReturnRows(addOrderRow(sqlmock.NewRows(orderRowColumns), 2, time.Now()))

		o, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.True(t, o.Deleted())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders o WHERE o.id = \$1`).
			WithArgs(int64(3)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 3)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("No filter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders o WHERE o.deleted_at IS NULL ORDER BY o.created_at DESC$`).
			WillReturnRows(addOrderRow(sqlmock.NewRows(orderRowColumns), 1, nil))

		orders, err := repo.List(ctx, nil, nil)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("Combined filters and paging", func(t *testing.T) {
		status := StatusScheduled
		payStatus := payment.StatusConfirmed
		search := " 김철수 "
		from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
		limit, page := int32(20), int32(3)

		query := regexp.QuoteMeta(`WHERE o.deleted_at IS NULL AND (o.customer_name ILIKE $1 OR o.customer_phone ILIKE $1 OR o.depositor_name ILIKE $1 OR o.order_number ILIKE $1) AND o.status = $2 AND o.payment_status = $3 AND o.created_at >= $4 AND o.created_at < $5 AND o.remote_area = TRUE ORDER BY o.total_amount ASC, o.id DESC LIMIT $6 OFFSET $7`)

		mock.ExpectQuery(query).
			WithArgs("%김철수%", status, payStatus, from, to, limit, int32(40)).
			WillReturnRows(sqlmock.NewRows(orderRowColumns))

		orders, err := repo.List(ctx, &Filter{
			Status:        &status,
			PaymentStatus: &payStatus,
			Search:        &search,
			DateFrom:      &from,
			DateTo:        &to,
			RemoteOnly:    true,
			Limit:         &limit,
			Page:          &page,
		}, &Sort{Field: SortFieldTotalAmount, Direction: "asc"})
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("Limit is capped", func(t *testing.T) {
		limit := int32(5000)
		mock.ExpectQuery(`LIMIT \$1 OFFSET \$2`).
			WithArgs(int32(500), int32(0)).
			WillReturnRows(sqlmock.NewRows(orderRowColumns))

		_, err := repo.List(ctx, &Filter{Limit: &limit}, nil)
		assert.NoError(t, err)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders`).WillReturnError(errors.New("db error"))

		_, err := repo.List(ctx, nil, nil)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE o.deleted_at IS NULL AND o.id = ANY($1)`)).
		WithArgs(pq.Array([]int64{1, 2})).
		WillReturnRows(addOrderRow(sqlmock.NewRows(orderRowColumns), 1, nil))

	orders, err := NewRepository(db).ListByIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "o.created_at DESC", orderBy(nil))
	assert.Equal(t, "o.created_at DESC", orderBy(&Sort{Field: "drop table", Direction: "sideways"}))
	assert.Equal(t, "o.customer_name ASC, o.id DESC", orderBy(&Sort{Field: SortFieldCustomerName, Direction: SortDirectionAsc}))
	assert.Equal(t, "o.scheduled_date DESC NULLS LAST, o.id DESC", orderBy(&Sort{Field: SortFieldScheduledDate}))
}

func TestRepository_ListRevenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE o.deleted_at IS NULL AND o.payment_status IN ($1, $2) AND o.created_at >= $3 ORDER BY o.created_at ASC`)).
		WithArgs(payment.StatusConfirmed, payment.StatusPartial, from).
		WillReturnRows(addOrderRow(sqlmock.NewRows(orderRowColumns), 1, nil))

	orders, err := repo.ListRevenue(context.Background(), &from, nil)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Updates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("UpdateStatus", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders\s+SET status = \$1`).
			WithArgs(StatusSellerShipped, nil, &now, nil, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 1, statusChange{Status: StatusSellerShipped, SellerShippedDate: &now})
		assert.NoError(t, err)
	})

	t.Run("UpdateStatus on missing order", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 9, statusChange{Status: StatusPending})
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("UpdatePayment", func(t *testing.T) {
		paid, zero, profit := int64(82000), int64(0), int64(42000)
		note := "완납"
		mock.ExpectExec(`UPDATE orders\s+SET payment_status = \$1`).
			WithArgs(payment.StatusConfirmed, &paid, &zero, &zero, &profit, &note, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePayment(ctx, 1, paymentChange{
			Status:           payment.StatusConfirmed,
			ActualPaidAmount: &paid,
			DiscountAmount:   &zero,
			UnpaidAmount:     &zero,
			NetProfit:        &profit,
			Note:             &note,
		})
		assert.NoError(t, err)
	})

	t.Run("Update in one transaction", func(t *testing.T) {
		paid, zero, profit := int64(82000), int64(0), int64(42000)
		note := "완납"
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE orders\s+SET status = \$1`).
			WithArgs(StatusSellerShipped, nil, &now, nil, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE orders\s+SET payment_status = \$1`).
			WithArgs(payment.StatusConfirmed, &paid, &zero, &zero, &profit, &note, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Update(ctx, 1,
			&statusChange{Status: StatusSellerShipped, SellerShippedDate: &now},
			&paymentChange{
				Status:           payment.StatusConfirmed,
				ActualPaidAmount: &paid,
				DiscountAmount:   &zero,
				UnpaidAmount:     &zero,
				NetProfit:        &profit,
				Note:             &note,
			})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update rolls back when the payment half fails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE orders\s+SET status = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE orders\s+SET payment_status = \$1`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.Update(ctx, 1,
			&statusChange{Status: StatusSellerShipped, SellerShippedDate: &now},
			&paymentChange{Status: payment.StatusRefunded})
		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SoftDelete", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`)).
			WithArgs(now, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SoftDelete(ctx, 1, now))
	})

	t.Run("Restore active order", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`)).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Restore(ctx, 1), ErrOrderNotFound)
	})

	t.Run("Purge", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM orders WHERE id = $1 AND deleted_at IS NOT NULL`)).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Purge(ctx, 1))
	})

	t.Run("Exec error", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM orders`).WillReturnError(errors.New("db error"))

		err := repo.Purge(ctx, 2)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrOrderNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
