package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hangwa-be/internal/logger"
	"hangwa-be/internal/metrics"
	"hangwa-be/internal/payment"
	"hangwa-be/internal/pricing"
	"hangwa-be/internal/revenue"
	"hangwa-be/internal/user"
	"hangwa-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// SettingsProvider supplies the current price and shipping configuration.
type SettingsProvider interface {
	Snapshot(ctx context.Context) (pricing.Snapshot, error)
}

type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*pricing.Quote, error)
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, filter *Filter, sort *Sort) ([]*Order, error)
	ListTrash(ctx context.Context) ([]*Order, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*Order, error)
	UpdateStatus(ctx context.Context, id int64, input StatusUpdate, role user.Role) (*Order, error)
	UpdatePayment(ctx context.Context, id int64, input PaymentUpdate) (*Order, *payment.Reconciliation, error)
	Update(ctx context.Context, id int64, input Update, role user.Role) (*Order, *payment.Reconciliation, error)
	PaymentHistory(ctx context.Context, id int64) ([]*payment.Record, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	Purge(ctx context.Context, id int64, confirmed bool) error
	BulkMarkSellerShipped(ctx context.Context, ids []int64, role user.Role) (BatchResult, error)
	BulkSoftDelete(ctx context.Context, ids []int64) (BatchResult, error)
	BulkPurge(ctx context.Context, ids []int64, confirmed bool) (BatchResult, error)
	Revenue(ctx context.Context, from, to *time.Time) (*revenue.Report, error)
}

type service struct {
	repo        Repository
	paymentRepo payment.Repository
	settings    SettingsProvider
	now         func() time.Time
}

func NewService(repo Repository, payRepo payment.Repository, settings SettingsProvider) Service {
	return &service{
		repo:        repo,
		paymentRepo: payRepo,
		settings:    settings,
		now:         time.Now,
	}
}

var kst = time.FixedZone("KST", 9*60*60)

const orderNumberAttempts = 3

func (s *service) Quote(ctx context.Context, input QuoteInput) (*pricing.Quote, error) {
	snapshot, err := s.settings.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	q, err := pricing.NewQuote(input.Quantities, snapshot, input.Address.Full())
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Int("small_box", input.Quantities.SmallBox),
		zap.Int("large_box", input.Quantities.LargeBox),
		zap.Int("wrapping", input.Quantities.Wrapping),
	)

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, ErrCustomerNameRequired
	}
	phone, err := normalizePhone(input.CustomerPhone)
	if err != nil {
		return nil, err
	}
	if err := input.Address.Validate(); err != nil {
		return nil, err
	}
	if err := input.Quantities.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	status := StatusPending
	var scheduled *time.Time
	if input.ScheduledDate != nil {
		day := dateOnly(*input.ScheduledDate)
		if day.Before(dateOnly(now)) {
			return nil, ErrScheduledDateInPast
		}
		scheduled = &day
		status = StatusScheduled
	}

	snapshot, err := s.settings.Snapshot(ctx)
	if err != nil {
		log.Error("failed to load settings snapshot", zap.Error(err))
		return nil, fmt.Errorf("load settings: %w", err)
	}

	quote, err := pricing.NewQuote(input.Quantities, snapshot, input.Address.Full())
	if err != nil {
		return nil, err
	}

	o := &Order{
		CustomerName:     name,
		CustomerPhone:    phone,
		DepositorName:    trimmedOrNil(input.DepositorName),
		Address:          input.Address,
		SpecialRequests:  trimmedOrNil(input.SpecialRequests),
		SmallBoxQuantity: input.Quantities.SmallBox,
		LargeBoxQuantity: input.Quantities.LargeBox,
		WrappingQuantity: input.Quantities.Wrapping,
		SmallBoxPrice:    quote.Prices.UnitPrice(pricing.SmallBox),
		LargeBoxPrice:    quote.Prices.UnitPrice(pricing.LargeBox),
		WrappingPrice:    quote.Prices.UnitPrice(pricing.Wrapping),
		SmallBoxCost:     quote.Prices.UnitCost(pricing.SmallBox),
		LargeBoxCost:     quote.Prices.UnitCost(pricing.LargeBox),
		WrappingCost:     quote.Prices.UnitCost(pricing.Wrapping),
		ShippingFee:      quote.ShippingFee,
		TotalAmount:      quote.Total,
		RemoteArea:       quote.RemoteArea,
		Status:           status,
		ScheduledDate:    scheduled,
		PaymentStatus:    payment.StatusPending,
	}

	for attempt := 1; ; attempt++ {
		o.OrderNumber = utils.GenerateOrderNumber(s.now())
		err = s.repo.Create(ctx, o)
		if err == nil {
			break
		}
		if !isUniqueViolation(err) || attempt == orderNumberAttempts {
			log.Error("failed to create order", zap.Error(err))
			return nil, err
		}
		log.Warn("order number collision, retrying", zap.Int("attempt", attempt))
	}

	metrics.OrdersCreatedTotal.Inc()
	if o.RemoteArea {
		metrics.RemoteAreaOrdersTotal.Inc()
	}

	log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Int64("total_amount", o.TotalAmount),
		zap.Int64("shipping_fee", o.ShippingFee),
		zap.Bool("remote_area", o.RemoteArea),
	)

	return o, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter *Filter, sort *Sort) ([]*Order, error) {
	return s.repo.List(ctx, filter, sort)
}

func (s *service) ListTrash(ctx context.Context) ([]*Order, error) {
	return s.repo.ListDeleted(ctx)
}

func (s *service) ListByIDs(ctx context.Context, ids []int64) ([]*Order, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyBatch
	}
	return s.repo.ListByIDs(ctx, ids)
}

func (s *service) UpdateStatus(ctx context.Context, id int64, input StatusUpdate, role user.Role) (*Order, error) {
	o, _, err := s.Update(ctx, id, Update{Status: &input}, role)
	return o, err
}

func (s *service) UpdatePayment(ctx context.Context, id int64, input PaymentUpdate) (*Order, *payment.Reconciliation, error) {
	return s.Update(ctx, id, Update{Payment: &input}, "")
}

// Update applies a status change, a payment change, or both. Both halves are
// validated before anything is written; a combined update is one transaction.
func (s *service) Update(ctx context.Context, id int64, input Update, role user.Role) (*Order, *payment.Reconciliation, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Int64("order_id", id),
	)

	if input.Status == nil && input.Payment == nil {
		return nil, nil, ErrNothingToUpdate
	}
	if input.Payment != nil && !input.Payment.Status.Valid() {
		return nil, nil, payment.ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if o.Deleted() {
		return nil, nil, ErrOrderNotFound
	}

	var sc *statusChange
	if input.Status != nil {
		c, err := s.planStatus(o, *input.Status, role)
		if err != nil {
			log.Warn("status change rejected",
				zap.String("from", string(o.Status)),
				zap.String("to", string(input.Status.Status)),
				zap.Error(err),
			)
			return nil, nil, err
		}
		sc = &c
	}

	var (
		pc  *paymentChange
		rec *payment.Reconciliation
	)
	if input.Payment != nil {
		c, r, err := planPayment(o, *input.Payment)
		if err != nil {
			log.Warn("payment change rejected", zap.Error(err))
			return nil, nil, err
		}
		pc, rec = &c, r
	}

	switch {
	case sc != nil && pc != nil:
		err = s.repo.Update(ctx, id, sc, pc)
	case sc != nil:
		err = s.repo.UpdateStatus(ctx, id, *sc)
	default:
		err = s.repo.UpdatePayment(ctx, id, *pc)
	}
	if err != nil {
		log.Error("failed to update order", zap.Error(err))
		return nil, nil, err
	}

	if sc != nil {
		if o.Status != sc.Status {
			metrics.OrderStatusTransitionsTotal.WithLabelValues(string(sc.Status)).Inc()
		}
		log.Info("order status updated",
			zap.String("from", string(o.Status)),
			zap.String("to", string(sc.Status)),
		)
		o.Status = sc.Status
		o.ScheduledDate = sc.ScheduledDate
		if sc.SellerShippedDate != nil {
			o.SellerShippedDate = sc.SellerShippedDate
		}
		if sc.DeliveredDate != nil {
			o.DeliveredDate = sc.DeliveredDate
		}
	}

	if pc != nil {
		s.recordPayment(ctx, log, id, pc, rec)

		o.PaymentStatus = pc.Status
		o.ActualPaidAmount = pc.ActualPaidAmount
		o.DiscountAmount = pc.DiscountAmount
		o.UnpaidAmount = pc.UnpaidAmount
		o.NetProfit = pc.NetProfit
		o.PaymentNote = pc.Note
		log.Info("order payment updated", zap.String("result_status", string(pc.Status)))
	}

	return o, rec, nil
}

func (s *service) planStatus(o *Order, input StatusUpdate, role user.Role) (statusChange, error) {
	if err := CanTransition(o.Status, input.Status, role); err != nil {
		return statusChange{}, err
	}

	change := statusChange{Status: input.Status, ScheduledDate: o.ScheduledDate}
	now := s.now()

	switch input.Status {
	case StatusScheduled:
		if input.ScheduledDate == nil {
			if o.ScheduledDate == nil {
				return statusChange{}, ErrScheduledDateRequired
			}
		} else {
			day := dateOnly(*input.ScheduledDate)
			if day.Before(dateOnly(now)) {
				return statusChange{}, ErrScheduledDateInPast
			}
			change.ScheduledDate = &day
		}
	case StatusPending:
		change.ScheduledDate = nil
	case StatusSellerShipped:
		if o.Status != StatusSellerShipped {
			change.SellerShippedDate = &now
		}
	case StatusDelivered:
		if o.Status != StatusDelivered {
			change.DeliveredDate = &now
		}
	}
	return change, nil
}

// planPayment reconciles revenue-bearing statuses; pending and refunded keep
// the recorded amounts.
func planPayment(o *Order, input PaymentUpdate) (paymentChange, *payment.Reconciliation, error) {
	change := paymentChange{
		Status:           input.Status,
		ActualPaidAmount: o.ActualPaidAmount,
		DiscountAmount:   o.DiscountAmount,
		UnpaidAmount:     o.UnpaidAmount,
		NetProfit:        o.NetProfit,
		Note:             o.PaymentNote,
	}
	if !input.Status.RevenueBearing() {
		return change, nil, nil
	}

	paid := o.TotalAmount
	if input.ActualPaidAmount != nil {
		paid = *input.ActualPaidAmount
	}
	reason := input.Reason
	if reason == payment.ReasonNone && input.Status == payment.StatusPartial {
		reason = payment.ReasonPartial
	}

	r, err := payment.Reconcile(o.TotalAmount, paid, reason)
	if err != nil {
		return paymentChange{}, nil, err
	}

	change.Status = r.Status
	change.ActualPaidAmount = &r.ActualPaid
	change.DiscountAmount = &r.DiscountAmount
	change.UnpaidAmount = &r.UnpaidAmount
	change.Note = &r.Note

	in := o.RevenueInput()
	in.ActualPaidAmount = change.ActualPaidAmount
	in.DiscountAmount = change.DiscountAmount
	in.UnpaidAmount = change.UnpaidAmount
	profit := revenue.OrderProfit(in).NetProfit
	change.NetProfit = &profit

	return change, &r, nil
}

func (s *service) recordPayment(ctx context.Context, log *zap.Logger, id int64, pc *paymentChange, rec *payment.Reconciliation) {
	audit := &payment.Record{
		OrderID:    id,
		Status:     pc.Status,
		ActualPaid: pc.ActualPaidAmount,
		RecordedBy: utils.GetUsernameFromContext(ctx),
	}
	if rec != nil {
		audit.Difference = rec.Difference
		audit.Outcome = rec.Outcome
		audit.Note = rec.Note
		metrics.PaymentReconciliationsTotal.WithLabelValues(string(rec.Outcome)).Inc()
	}
	if err := s.paymentRepo.SaveRecord(ctx, audit); err != nil {
		// The order row is authoritative; a missing audit entry is only logged.
		log.Warn("failed to record payment audit entry", zap.Error(err))
	}
}

func (s *service) PaymentHistory(ctx context.Context, id int64) ([]*payment.Record, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByOrder(ctx, id)
}

func (s *service) SoftDelete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id, s.now()); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("order moved to trash", zap.Int64("order_id", id))
	return nil
}

func (s *service) Restore(ctx context.Context, id int64) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("order restored", zap.Int64("order_id", id))
	return nil
}

func (s *service) Purge(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.purge(ctx, id)
}

func (s *service) purge(ctx context.Context, id int64) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !o.Deleted() {
		return ErrNotInTrash
	}
	if err := s.repo.Purge(ctx, id); err != nil {
		return err
	}
	logger.FromCtx(ctx).Warn("order permanently deleted",
		zap.Int64("order_id", id),
		zap.String("order_number", o.OrderNumber),
	)
	return nil
}

func (s *service) BulkMarkSellerShipped(ctx context.Context, ids []int64, role user.Role) (BatchResult, error) {
	if len(ids) == 0 {
		return BatchResult{}, ErrEmptyBatch
	}
	res := runBatch(ctx, ids, func(ctx context.Context, id int64) error {
		_, err := s.UpdateStatus(ctx, id, StatusUpdate{Status: StatusSellerShipped}, role)
		return err
	})
	s.logBatch(ctx, "bulk_seller_shipped", res)
	return res, nil
}

func (s *service) BulkSoftDelete(ctx context.Context, ids []int64) (BatchResult, error) {
	if len(ids) == 0 {
		return BatchResult{}, ErrEmptyBatch
	}
	res := runBatch(ctx, ids, s.SoftDelete)
	s.logBatch(ctx, "bulk_soft_delete", res)
	return res, nil
}

func (s *service) BulkPurge(ctx context.Context, ids []int64, confirmed bool) (BatchResult, error) {
	if !confirmed {
		return BatchResult{}, ErrConfirmationRequired
	}
	if len(ids) == 0 {
		return BatchResult{}, ErrEmptyBatch
	}
	res := runBatch(ctx, ids, s.purge)
	s.logBatch(ctx, "bulk_purge", res)
	return res, nil
}

func (s *service) logBatch(ctx context.Context, op string, res BatchResult) {
	if failed := res.Failed(); failed > 0 {
		metrics.BatchItemFailuresTotal.WithLabelValues(op).Add(float64(failed))
	}
	logger.FromCtx(ctx).Info("batch finished",
		zap.String("operation", op),
		zap.Int("succeeded", res.Succeeded()),
		zap.Int("failed", res.Failed()),
		zap.Int64s("failed_ids", res.FailedIDs()),
	)
}

// Revenue aggregates confirmed and partially paid orders in [from, to).
func (s *service) Revenue(ctx context.Context, from, to *time.Time) (*revenue.Report, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Revenue"),
	)

	orders, err := s.repo.ListRevenue(ctx, from, to)
	if err != nil {
		log.Error("failed to load revenue orders", zap.Error(err))
		return nil, err
	}

	inputs := make([]revenue.Input, 0, len(orders))
	for _, o := range orders {
		inputs = append(inputs, o.RevenueInput())
	}

	report := revenue.BuildReport(from, to, inputs)
	log.Debug("revenue report built", zap.Int64("orders", report.Summary.OrderCount))
	return &report, nil
}

// normalizePhone accepts "010-1234-5678" style input and keeps the hyphenated form.
func normalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '-' || r == ' ':
		default:
			return "", ErrInvalidPhone
		}
	}

	d := digits.String()
	if len(d) < 9 || len(d) > 11 || d[0] != '0' {
		return "", ErrInvalidPhone
	}

	switch len(d) {
	case 11:
		return d[:3] + "-" + d[3:7] + "-" + d[7:], nil
	case 10:
		if strings.HasPrefix(d, "02") {
			return d[:2] + "-" + d[2:6] + "-" + d[6:], nil
		}
		return d[:3] + "-" + d[3:6] + "-" + d[6:], nil
	default:
		return d[:2] + "-" + d[2:5] + "-" + d[5:], nil
	}
}

func dateOnly(t time.Time) time.Time {
	k := t.In(kst)
	return time.Date(k.Year(), k.Month(), k.Day(), 0, 0, 0, 0, kst)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
