package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type assignMocks struct {
	taskRepo    *MockTaskRepository
	courierRepo *MockCourierRepository
	uow         *MockUoW
	factory     *MockUoWFactory
	publisher   *MockPublisher
	notifier    *MockPushNotifier
}

func newAssignMocks() assignMocks {
	return assignMocks{
		taskRepo:    new(MockTaskRepository),
		courierRepo: new(MockCourierRepository),
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory),
		publisher:   new(MockPublisher),
		notifier:    new(MockPushNotifier),
	}
}

func (m assignMocks) handler() commands.AssignTaskCommandHandler {
	return commands.NewAssignTaskCommandHandler(m.factory, m.publisher, m.notifier, discardLogger())
}

func TestAssignTaskCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	c := newCourier(t)
	tk := restoreTask(t, task.Pending, nil, true)
	cmd, err := commands.NewAssignTaskCommand(tk.ID(), c.ID())
	require.NoError(t, err)

	m := newAssignMocks()
	devices := []courier.Device{{CourierID: c.ID(), PushToken: "expo-1", Platform: courier.PlatformAndroid}}

	mock.InOrder(
		m.factory.On("Create").Return(m.uow).Once(),
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.uow.On("TaskRepository").Return(m.taskRepo).Once(),
		m.uow.On("CourierRepository").Return(m.courierRepo).Once(),
		m.taskRepo.On("GetForUpdate", ctx, tk.ID()).Return(tk, nil).Once(),
		m.courierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once(),
		m.taskRepo.On("Update", ctx, tk).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.publisher.On("Publish", ctx, ports.CourierChannel(c.ID()), ports.EventTaskAssign, mock.AnythingOfType("commands.TaskEvent")).
			Return(nil).Once(),
		m.factory.On("Create").Return(m.uow).Once(),
		m.uow.On("CourierRepository").Return(m.courierRepo).Once(),
		m.courierRepo.On("ListDevices", ctx, c.ID()).Return(devices, nil).Once(),
		m.notifier.On("Notify", ctx, c.ID(), []string{"expo-1"}, mock.AnythingOfType("ports.PushNotification")).
			Return(errors.New("push provider down")).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	res, err := m.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, task.Assigned, res.Task.Status())
	assert.True(t, res.Task.IsAssignedTo(c.ID()))
	m.taskRepo.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

func TestAssignTaskCommandHandler_Handle_SameCourierIsIdempotent(t *testing.T) {
	ctx := t.Context()
	c := newCourier(t)
	id := c.ID()
	tk := restoreTask(t, task.Assigned, &id, true)
	cmd, _ := commands.NewAssignTaskCommand(tk.ID(), c.ID())

	m := newAssignMocks()
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("TaskRepository").Return(m.taskRepo)
	m.uow.On("CourierRepository").Return(m.courierRepo)
	m.uow.On("Rollback", ctx).Return(nil)
	m.taskRepo.On("GetForUpdate", ctx, tk.ID()).Return(tk, nil)
	m.courierRepo.On("Get", ctx, c.ID()).Return(c, nil)

	res, err := m.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, res.Changed)
	m.taskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignTaskCommandHandler_Handle_OtherCourierConflicts(t *testing.T) {
	ctx := t.Context()
	holder := kernel.NewUUID()
	tk := restoreTask(t, task.Assigned, &holder, true)
	challenger := newCourier(t)
	cmd, _ := commands.NewAssignTaskCommand(tk.ID(), challenger.ID())

	m := newAssignMocks()
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("TaskRepository").Return(m.taskRepo)
	m.uow.On("CourierRepository").Return(m.courierRepo)
	m.uow.On("Rollback", ctx).Return(nil)
	m.taskRepo.On("GetForUpdate", ctx, tk.ID()).Return(tk, nil)
	m.courierRepo.On("Get", ctx, challenger.ID()).Return(challenger, nil)

	_, err := m.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	require.ErrorIs(t, err, task.ErrAssignedToAnotherCourier)
	m.uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignTaskCommandHandler_Handle_TaskNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAssignTaskCommand(kernel.NewUUID(), kernel.NewUUID())

	m := newAssignMocks()
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("TaskRepository").Return(m.taskRepo)
	m.uow.On("CourierRepository").Return(m.courierRepo)
	m.uow.On("Rollback", ctx).Return(nil)
	m.taskRepo.On("GetForUpdate", ctx, cmd.TaskID()).Return(nil, errs.NewObjectNotFoundError("task", cmd.TaskID()))

	_, err := m.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAssignTaskCommandHandler_Handle_CancelledTask(t *testing.T) {
	ctx := t.Context()
	c := newCourier(t)
	tk := restoreTask(t, task.Cancelled, nil, false)
	cmd, _ := commands.NewAssignTaskCommand(tk.ID(), c.ID())

	m := newAssignMocks()
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("TaskRepository").Return(m.taskRepo)
	m.uow.On("CourierRepository").Return(m.courierRepo)
	m.uow.On("Rollback", ctx).Return(nil)
	m.taskRepo.On("GetForUpdate", ctx, tk.ID()).Return(tk, nil)
	m.courierRepo.On("Get", ctx, c.ID()).Return(c, nil)

	_, err := m.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, task.ErrIllegalTransition)
}

func TestAssignTaskCommandHandler_Handle_ValidationError(t *testing.T) {
	m := newAssignMocks()

	_, err := m.handler().Handle(t.Context(), commands.AssignTaskCommand{})

	require.ErrorIs(t, err, commands.ErrAssignTaskCommandIsNotConstructed)
	m.factory.AssertNotCalled(t, "Create")
}
