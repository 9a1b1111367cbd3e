package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/ledger"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterDeviceCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	c := newCourier(t)
	cmd, err := commands.NewRegisterDeviceCommand(c.ID(), "ExponentPushToken[abc]", "ios")
	require.NoError(t, err)

	repo := new(MockCourierRepository)
	uow := new(MockUoW)
	factory := new(MockCourierUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("Get", ctx, c.ID()).Return(c, nil).Once(),
		repo.On("UpsertDevice", ctx, courier.Device{CourierID: c.ID(), PushToken: "ExponentPushToken[abc]", Platform: courier.PlatformIOS}).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err = commands.NewRegisterDeviceCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSetCourierActiveCommandHandler_Handle_Deactivate(t *testing.T) {
	ctx := t.Context()
	c := newCourier(t)
	cmd, _ := commands.NewSetCourierActiveCommand(c.ID(), false)

	repo := new(MockCourierRepository)
	uow := new(MockUoW)
	factory := new(MockCourierUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("CourierRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", ctx, c.ID()).Return(c, nil)
	repo.On("Update", ctx, c).Return(nil).Once()

	err := commands.NewSetCourierActiveCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, c.IsActive())
	repo.AssertExpectations(t)
}

func TestSetCourierActiveCommandHandler_Handle_NoChange(t *testing.T) {
	ctx := t.Context()
	c := newCourier(t)
	cmd, _ := commands.NewSetCourierActiveCommand(c.ID(), true)

	repo := new(MockCourierRepository)
	uow := new(MockUoW)
	factory := new(MockCourierUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("CourierRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", ctx, c.ID()).Return(c, nil)

	err := commands.NewSetCourierActiveCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPingCourierCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	c := newCourier(t)
	cmd, _ := commands.NewPingCourierCommand(c.ID(), "")

	setup := func() (*MockCourierUoWFactory, *MockPresenceRegistry, *MockPublisher, *MockPushNotifier) {
		repo := new(MockCourierRepository)
		uow := new(MockUoW)
		factory := new(MockCourierUoWFactory)

		factory.On("Create").Return(uow)
		uow.On("Begin", ctx).Return(nil)
		uow.On("CourierRepository").Return(repo)
		uow.On("Rollback", ctx).Return(nil)
		repo.On("Get", ctx, c.ID()).Return(c, nil)
		repo.On("ListDevices", ctx, c.ID()).Return([]courier.Device{{CourierID: c.ID(), PushToken: "t1"}}, nil)
		return factory, new(MockPresenceRegistry), new(MockPublisher), new(MockPushNotifier)
	}

	t.Run("connected courier gets event and push", func(t *testing.T) {
		factory, presence, publisher, notifier := setup()
		presence.On("Lookup", ctx, c.ID()).Return("conn-1", true, nil).Once()
		publisher.On("Publish", ctx, ports.CourierChannel(c.ID()), ports.EventPing, mock.MatchedBy(func(p commands.Ping) bool {
			return p.Message == "Please check for available tasks"
		})).Return(nil).Once()
		notifier.On("Notify", ctx, c.ID(), []string{"t1"}, mock.Anything).Return(nil).Once()

		err := commands.NewPingCourierCommandHandler(factory, presence, publisher, notifier, discardLogger()).Handle(ctx, cmd)

		require.NoError(t, err)
		publisher.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("offline courier gets push only", func(t *testing.T) {
		factory, presence, publisher, notifier := setup()
		presence.On("Lookup", ctx, c.ID()).Return("", false, nil).Once()
		notifier.On("Notify", ctx, c.ID(), []string{"t1"}, mock.Anything).Return(nil).Once()

		err := commands.NewPingCourierCommandHandler(factory, presence, publisher, notifier, discardLogger()).Handle(ctx, cmd)

		require.NoError(t, err)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		notifier.AssertExpectations(t)
	})

	t.Run("presence failure still publishes", func(t *testing.T) {
		factory, presence, publisher, notifier := setup()
		presence.On("Lookup", ctx, c.ID()).Return("", false, errors.New("redis down")).Once()
		publisher.On("Publish", ctx, ports.CourierChannel(c.ID()), ports.EventPing, mock.Anything).Return(nil).Once()
		notifier.On("Notify", ctx, c.ID(), []string{"t1"}, mock.Anything).Return(nil).Once()

		err := commands.NewPingCourierCommandHandler(factory, presence, publisher, notifier, discardLogger()).Handle(ctx, cmd)

		require.NoError(t, err)
		publisher.AssertExpectations(t)
	})
}

func TestRegisterCustomerCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterCustomerCommand("Dilnoza", "+998 93 000 11 22")
	require.NoError(t, err)

	t.Run("new phone", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		walletRepo := new(MockWalletRepository)
		uow := new(MockUoW)
		factory := new(MockUoWFactory)

		var added *customer.Customer
		factory.On("Create").Return(uow)
		uow.On("Begin", ctx).Return(nil)
		uow.On("CustomerRepository").Return(customerRepo)
		uow.On("WalletRepository").Return(walletRepo)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		customerRepo.On("GetByPhone", ctx, cmd.Phone()).Return(nil, errs.ErrObjectNotFound).Once()
		customerRepo.On("Add", ctx, mock.AnythingOfType("*customer.Customer")).
			Run(func(args mock.Arguments) {
				added = args.Get(1).(*customer.Customer)
				customerRepo.On("GetByPhone", ctx, cmd.Phone()).Return(added, nil).Once()
			}).
			Return(nil).Once()
		walletRepo.On("Ensure", ctx, mock.Anything, wallet.OwnerCustomer).Return(newWallet(t, kernel.NewUUID(), wallet.OwnerCustomer, 0), nil)

		handler := commands.NewRegisterCustomerCommandHandler(factory, ledger.New(), 2)
		got, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, got.FreeCredits())
		assert.Equal(t, "Dilnoza", got.Name())
	})

	t.Run("existing phone", func(t *testing.T) {
		existing, _ := customer.NewCustomer(kernel.NewUUID(), cmd.Phone(), "Other", 0, fixedNow)

		customerRepo := new(MockCustomerRepository)
		uow := new(MockUoW)
		factory := new(MockUoWFactory)

		factory.On("Create").Return(uow)
		uow.On("Begin", ctx).Return(nil)
		uow.On("CustomerRepository").Return(customerRepo)
		uow.On("Rollback", ctx).Return(nil)
		customerRepo.On("GetByPhone", ctx, cmd.Phone()).Return(existing, nil)

		handler := commands.NewRegisterCustomerCommandHandler(factory, ledger.New(), 2)
		_, err := handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
	})
}
