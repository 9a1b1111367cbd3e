package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetByPhone(ctx context.Context, phone kernel.Phone) (*courier.Courier, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) UpsertDevice(ctx context.Context, d courier.Device) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockCourierRepository) ListDevices(ctx context.Context, courierID kernel.UUID) ([]courier.Device, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]courier.Device), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByPhone(ctx context.Context, phone kernel.Phone) (*customer.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GrantMonthlyCredit(ctx context.Context, id kernel.UUID, monthStart time.Time) (bool, error) {
	args := m.Called(ctx, id, monthStart)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) ConsumeFreeCredit(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockAdminRepository struct{ mock.Mock }

func (m *MockAdminRepository) Upsert(ctx context.Context, a *admin.Admin) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAdminRepository) GetByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.Admin), args.Error(1)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Get(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) ListPendingIDs(ctx context.Context, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockWalletRepository struct{ mock.Mock }

func (m *MockWalletRepository) Ensure(ctx context.Context, ownerID kernel.UUID, kind wallet.OwnerKind) (*wallet.Wallet, error) {
	args := m.Called(ctx, ownerID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID, kind wallet.OwnerKind) (*wallet.Wallet, error) {
	args := m.Called(ctx, ownerID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) AppendTransaction(ctx context.Context, tx wallet.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletRepository) ListTransactions(ctx context.Context, walletID kernel.UUID, limit int) ([]wallet.Transaction, error) {
	args := m.Called(ctx, walletID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wallet.Transaction), args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Append(ctx context.Context, r position.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockLocationRepository) Latest(ctx context.Context, courierID kernel.UUID) (position.Report, error) {
	args := m.Called(ctx, courierID)
	return args.Get(0).(position.Report), args.Error(1)
}

type MockPresenceRegistry struct{ mock.Mock }

func (m *MockPresenceRegistry) Register(ctx context.Context, courierID kernel.UUID, connID string) error {
	return m.Called(ctx, courierID, connID).Error(0)
}

func (m *MockPresenceRegistry) Remove(ctx context.Context, courierID kernel.UUID, connID string) (bool, error) {
	args := m.Called(ctx, courierID, connID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPresenceRegistry) Lookup(ctx context.Context, courierID kernel.UUID) (string, bool, error) {
	args := m.Called(ctx, courierID)
	return args.String(0), args.Bool(1), args.Error(2)
}

// MockUoW satisfies every unit-of-work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) AdminRepository() ports.AdminRepository {
	args := m.Called()
	return args.Get(0).(ports.AdminRepository)
}

func (m *MockUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

func (m *MockUoW) WalletRepository() ports.WalletRepository {
	args := m.Called()
	return args.Get(0).(ports.WalletRepository)
}

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	args := m.Called()
	return args.Get(0).(ports.LocationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockAdminUoWFactory struct{ mock.Mock }

func (m *MockAdminUoWFactory) Create() commands.AdminUoW {
	args := m.Called()
	return args.Get(0).(commands.AdminUoW)
}

type MockLocationUoWFactory struct{ mock.Mock }

func (m *MockLocationUoWFactory) Create() commands.LocationUoW {
	args := m.Called()
	return args.Get(0).(commands.LocationUoW)
}

type MockWalletUoWFactory struct{ mock.Mock }

func (m *MockWalletUoWFactory) Create() commands.WalletUoW {
	args := m.Called()
	return args.Get(0).(commands.WalletUoW)
}

type MockPositionCache struct{ mock.Mock }

func (m *MockPositionCache) Get(ctx context.Context, courierID kernel.UUID) (*position.LastKnown, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*position.LastKnown), args.Error(1)
}

func (m *MockPositionCache) GetMany(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]position.LastKnown, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]position.LastKnown), args.Error(1)
}

func (m *MockPositionCache) Put(ctx context.Context, p position.LastKnown) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

type MockCodeStore struct{ mock.Mock }

func (m *MockCodeStore) Save(ctx context.Context, phone kernel.Phone, code string, ttl time.Duration) error {
	args := m.Called(ctx, phone, code, ttl)
	return args.Error(0)
}

func (m *MockCodeStore) Consume(ctx context.Context, phone kernel.Phone, code string) (bool, error) {
	args := m.Called(ctx, phone, code)
	return args.Bool(0), args.Error(1)
}

type MockRateLimiter struct{ mock.Mock }

func (m *MockRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

type MockCodeSender struct{ mock.Mock }

func (m *MockCodeSender) SendCode(ctx context.Context, phone kernel.Phone, code string) error {
	args := m.Called(ctx, phone, code)
	return args.Error(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(subject kernel.UUID, role kernel.Role) (string, error) {
	args := m.Called(subject, role)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) Verify(token string) (ports.Principal, error) {
	args := m.Called(token)
	return args.Get(0).(ports.Principal), args.Error(1)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

type MockPushNotifier struct{ mock.Mock }

func (m *MockPushNotifier) Notify(ctx context.Context, courierID kernel.UUID, tokens []string, n ports.PushNotification) error {
	args := m.Called(ctx, courierID, tokens, n)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, channel, event string, payload any) error {
	args := m.Called(ctx, channel, event, payload)
	return args.Error(0)
}

type MockNearestCourierFinder struct{ mock.Mock }

func (m *MockNearestCourierFinder) FindNearest(ctx context.Context, pickup kernel.GeoPoint) (*kernel.UUID, error) {
	args := m.Called(ctx, pickup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.UUID), args.Error(1)
}

type MockTaskAssigner struct{ mock.Mock }

func (m *MockTaskAssigner) Handle(ctx context.Context, cmd commands.AssignTaskCommand) (commands.AssignTaskResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AssignTaskResult), args.Error(1)
}
