package httpapi

import (
	"context"
	"time"

	"hangwa-be/internal/adminsetting"
	"hangwa-be/internal/dashboard"
	"hangwa-be/internal/order"
	"hangwa-be/internal/payment"
	"hangwa-be/internal/pricing"
	"hangwa-be/internal/revenue"
	"hangwa-be/internal/setting"
	"hangwa-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Quote(ctx context.Context, input order.QuoteInput) (*pricing.Quote, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

func (m *MockOrderService) Create(ctx context.Context, input order.CreateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, filter *order.Filter, sort *order.Sort) ([]*order.Order, error) {
	args := m.Called(ctx, filter, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) ListTrash(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) ListByIDs(ctx context.Context, ids []int64) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id int64, input order.StatusUpdate, role user.Role) (*order.Order, error) {
	args := m.Called(ctx, id, input, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, id int64, input order.Update, role user.Role) (*order.Order, *payment.Reconciliation, error) {
	args := m.Called(ctx, id, input, role)
	o, _ := args.Get(0).(*order.Order)
	rec, _ := args.Get(1).(*payment.Reconciliation)
	return o, rec, args.Error(2)
}

func (m *MockOrderService) UpdatePayment(ctx context.Context, id int64, input order.PaymentUpdate) (*order.Order, *payment.Reconciliation, error) {
	args := m.Called(ctx, id, input)
	o, _ := args.Get(0).(*order.Order)
	rec, _ := args.Get(1).(*payment.Reconciliation)
	return o, rec, args.Error(2)
}

func (m *MockOrderService) PaymentHistory(ctx context.Context, id int64) ([]*payment.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Record), args.Error(1)
}

func (m *MockOrderService) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderService) Restore(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderService) Purge(ctx context.Context, id int64, confirmed bool) error {
	return m.Called(ctx, id, confirmed).Error(0)
}

func (m *MockOrderService) BulkMarkSellerShipped(ctx context.Context, ids []int64, role user.Role) (order.BatchResult, error) {
	args := m.Called(ctx, ids, role)
	return args.Get(0).(order.BatchResult), args.Error(1)
}

func (m *MockOrderService) BulkSoftDelete(ctx context.Context, ids []int64) (order.BatchResult, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(order.BatchResult), args.Error(1)
}

func (m *MockOrderService) BulkPurge(ctx context.Context, ids []int64, confirmed bool) (order.BatchResult, error) {
	args := m.Called(ctx, ids, confirmed)
	return args.Get(0).(order.BatchResult), args.Error(1)
}

func (m *MockOrderService) Revenue(ctx context.Context, from, to *time.Time) (*revenue.Report, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*revenue.Report), args.Error(1)
}

type MockSettingService struct {
	mock.Mock
}

func (m *MockSettingService) List(ctx context.Context) ([]*setting.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*setting.Setting), args.Error(1)
}

func (m *MockSettingService) Get(ctx context.Context, key string) (*setting.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*setting.Setting), args.Error(1)
}

func (m *MockSettingService) Upsert(ctx context.Context, input setting.UpsertInput) (*setting.Setting, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*setting.Setting), args.Error(1)
}

func (m *MockSettingService) Snapshot(ctx context.Context) (pricing.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(pricing.Snapshot)
	return snap, args.Error(1)
}

type MockAdminSettings struct {
	mock.Mock
}

func (m *MockAdminSettings) Get(ctx context.Context) (*adminsetting.AdminSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adminsetting.AdminSettings), args.Error(1)
}

func (m *MockAdminSettings) Save(ctx context.Context, s adminsetting.AdminSettings) (*adminsetting.AdminSettings, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adminsetting.AdminSettings), args.Error(1)
}

type MockDashboard struct {
	mock.Mock
}

func (m *MockDashboard) List(ctx context.Context) ([]*dashboard.Content, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dashboard.Content), args.Error(1)
}

func (m *MockDashboard) Upsert(ctx context.Context, key, content string) (*dashboard.Content, error) {
	args := m.Called(ctx, key, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Content), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, password string, role user.Role) (user.User, error) {
	args := m.Called(ctx, username, password, role)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, username, password string) (string, user.User, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Get(1).(user.User), args.Error(2)
}
