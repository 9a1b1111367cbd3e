package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateTaskCommand(t *testing.T, creator task.Creator) commands.CreateTaskCommand {
	t.Helper()
	cmd, err := commands.NewCreateTaskCommand(
		newPlace(t, "Chorsu bazaar", 41.326, 69.228),
		newPlace(t, "Yunusabad 4", 41.366, 69.287),
		creator,
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateTaskCommandHandler_Handle_CustomerUsesFreeCredit(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	creator, _ := task.NewCustomerCreator(customerID)
	cmd := newCreateTaskCommand(t, creator)

	customerRepo := new(MockCustomerRepository)
	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	finder := new(MockNearestCourierFinder)
	assigner := new(MockTaskAssigner)

	courierID := kernel.NewUUID()
	isFree := mock.MatchedBy(func(tk *task.Task) bool { return !tk.IsChargeable() && tk.PaymentStatus() == task.Waived })

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", ctx, customerID).Return(nil, nil).Once(),
		customerRepo.On("GrantMonthlyCredit", ctx, customerID, mock.AnythingOfType("time.Time")).Return(false, nil).Once(),
		customerRepo.On("ConsumeFreeCredit", ctx, customerID).Return(true, nil).Once(),
		uow.On("TaskRepository").Return(taskRepo).Once(),
		taskRepo.On("Add", ctx, isFree).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		finder.On("FindNearest", ctx, cmd.Pickup().Point()).Return(&courierID, nil).Once(),
		assigner.On("Handle", ctx, mock.MatchedBy(func(c commands.AssignTaskCommand) bool {
			return c.CourierID().IsEqual(courierID)
		})).Return(commands.AssignTaskResult{Task: restoreTask(t, task.Assigned, &courierID, false), Changed: true}, nil).Once(),
	)

	handler := commands.NewCreateTaskCommandHandler(factory, finder, assigner, 10000, discardLogger())
	res, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, res.Assigned)
	assert.Equal(t, task.Assigned, res.Task.Status())
	customerRepo.AssertExpectations(t)
	taskRepo.AssertExpectations(t)
	assigner.AssertExpectations(t)
}

func TestCreateTaskCommandHandler_Handle_NoCreditMakesTaskChargeable(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	creator, _ := task.NewCustomerCreator(customerID)
	cmd := newCreateTaskCommand(t, creator)

	customerRepo := new(MockCustomerRepository)
	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	finder := new(MockNearestCourierFinder)
	assigner := new(MockTaskAssigner)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	customerRepo.On("Get", ctx, customerID).Return(nil, nil)
	customerRepo.On("GrantMonthlyCredit", ctx, customerID, mock.Anything).Return(false, nil)
	customerRepo.On("ConsumeFreeCredit", ctx, customerID).Return(false, nil)
	taskRepo.On("Add", ctx, mock.MatchedBy(func(tk *task.Task) bool {
		return tk.IsChargeable() && tk.Price() == 10000 && tk.PaymentStatus() == task.Unpaid
	})).Return(nil).Once()
	finder.On("FindNearest", ctx, mock.Anything).Return(nil, nil)

	handler := commands.NewCreateTaskCommandHandler(factory, finder, assigner, 10000, discardLogger())
	res, err := handler.Handle(ctx, cmd)

	// No courier: the task is created and stays pending.
	require.NoError(t, err)
	assert.False(t, res.Assigned)
	assert.Equal(t, task.Pending, res.Task.Status())
	assigner.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	taskRepo.AssertExpectations(t)
}

func TestCreateTaskCommandHandler_Handle_AdminTaskIsFree(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateTaskCommand(t, task.NewAdminCreator())

	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	finder := new(MockNearestCourierFinder)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	taskRepo.On("Add", ctx, mock.MatchedBy(func(tk *task.Task) bool { return !tk.IsChargeable() })).Return(nil)
	finder.On("FindNearest", ctx, mock.Anything).Return(nil, errors.New("read replica down"))

	handler := commands.NewCreateTaskCommandHandler(factory, finder, new(MockTaskAssigner), 10000, discardLogger())
	res, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, res.Assigned)
	uow.AssertNotCalled(t, "CustomerRepository")
}

func TestCreateTaskCommandHandler_Handle_UnknownCustomer(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	creator, _ := task.NewCustomerCreator(customerID)
	cmd := newCreateTaskCommand(t, creator)

	customerRepo := new(MockCustomerRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("Rollback", ctx).Return(nil)
	customerRepo.On("Get", ctx, customerID).Return(nil, errs.NewObjectNotFoundError("customer", customerID))

	handler := commands.NewCreateTaskCommandHandler(factory, new(MockNearestCourierFinder), new(MockTaskAssigner), 10000, discardLogger())
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestNewCreateTaskCommand_Invalid(t *testing.T) {
	_, err := commands.NewCreateTaskCommand(kernel.Place{}, kernel.Place{}, task.Creator{Kind: task.CreatedByCustomer})

	require.Error(t, err)
}
